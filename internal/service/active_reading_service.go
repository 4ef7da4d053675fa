package service

import (
	"encoding/json"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
)

type ActiveReadingService struct {
	readingRepo *repository.ActiveReadingRepository
	textRepo    *repository.TextRepository
}

func NewActiveReadingService(readingRepo *repository.ActiveReadingRepository, textRepo *repository.TextRepository) *ActiveReadingService {
	return &ActiveReadingService{
		readingRepo: readingRepo,
		textRepo:    textRepo,
	}
}

func (s *ActiveReadingService) Create(studentID, textID uint, contentType model.ActiveReadingType, title string, data json.RawMessage) (*model.ActiveReadingContent, error) {
	if !contentType.Valid() {
		return nil, util.ValidationErr("invalid content_type")
	}
	if title == "" {
		return nil, util.ValidationErr("title is required")
	}

	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	content := &model.ActiveReadingContent{
		StudentID:   studentID,
		TextID:      textID,
		ContentType: contentType,
		Title:       title,
		Data:        data,
	}
	if err := s.readingRepo.Create(content); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}
	return content, nil
}

func (s *ActiveReadingService) ListForText(studentID, textID uint) ([]model.ActiveReadingContent, error) {
	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	contents, err := s.readingRepo.ListByStudentAndText(studentID, textID)
	if err != nil {
		return nil, util.WrapDB(err, "content not found")
	}
	return contents, nil
}

// Update 部分更新。リクエストに含まれたフィールド（title / data）だけを上書きする。
func (s *ActiveReadingService) Update(studentID uint, contentID string, title *string, data json.RawMessage) (*model.ActiveReadingContent, error) {
	content, err := s.readingRepo.FindOwned(contentID, studentID)
	if err != nil {
		return nil, util.WrapDB(err, "content not found")
	}

	if title != nil {
		content.Title = *title
	}
	if data != nil {
		content.Data = data
	}

	if err := s.readingRepo.Save(content); err != nil {
		return nil, util.WrapDB(err, "content not found")
	}
	return content, nil
}

func (s *ActiveReadingService) Delete(studentID uint, contentID string) error {
	content, err := s.readingRepo.FindOwned(contentID, studentID)
	if err != nil {
		return util.WrapDB(err, "content not found")
	}
	return util.WrapDB(s.readingRepo.Delete(content), "content not found")
}
