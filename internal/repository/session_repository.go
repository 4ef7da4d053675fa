package repository

import (
	"errors"
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) FindByStudentAndText(studentID, textID uint) (*model.ReadingSession, error) {
	var session model.ReadingSession
	err := r.DB.Where("student_id = ? AND text_id = ?", studentID, textID).First(&session).Error
	return &session, err
}

// GetOrCreate セッション作成の唯一の経路。初回アクセスで reading フェーズの行を作る。
// 同時作成は一意制約で2本目が弾かれるため、重複キー時は読み直す。
func (r *SessionRepository) GetOrCreate(studentID, textID uint) (*model.ReadingSession, error) {
	session, err := r.FindByStudentAndText(studentID, textID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	session = &model.ReadingSession{
		StudentID:        studentID,
		TextID:           textID,
		CurrentPhase:     model.PhaseReading,
		ReadingStartTime: time.Now(),
	}
	if err := r.DB.Create(session).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByStudentAndText(studentID, textID)
		}
		return nil, err
	}
	return session, nil
}

func (r *SessionRepository) Save(session *model.ReadingSession) error {
	return r.DB.Save(session).Error
}
