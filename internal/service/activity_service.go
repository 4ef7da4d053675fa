package service

import (
	"encoding/json"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
)

type ActivityService struct {
	logRepo *repository.ActivityLogRepository
}

func NewActivityService(logRepo *repository.ActivityLogRepository) *ActivityService {
	return &ActivityService{logRepo: logRepo}
}

// Log 活動ログの追記。text/question の参照は任意で、
// activity_type は未知の文字列でも検証エラーにしない。
func (s *ActivityService) Log(studentID uint, textID, questionID *uint, activityType string, details json.RawMessage) (*model.StudentActivityLog, error) {
	if activityType == "" {
		return nil, util.ValidationErr("activity_type is required")
	}
	if len(details) == 0 {
		details = json.RawMessage("{}")
	}

	entry := &model.StudentActivityLog{
		StudentID:    studentID,
		TextID:       textID,
		QuestionID:   questionID,
		ActivityType: activityType,
		Details:      details,
	}
	if err := s.logRepo.Create(entry); err != nil {
		return nil, util.WrapDB(err, "activity log failed")
	}
	return entry, nil
}
