package service

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"github.com/Koto-ptts/japanese-cbt-app/internal/repository"
	"github.com/Koto-ptts/japanese-cbt-app/internal/util"
)

type AnnotationService struct {
	annotationRepo *repository.AnnotationRepository
	textRepo       *repository.TextRepository
}

func NewAnnotationService(annotationRepo *repository.AnnotationRepository, textRepo *repository.TextRepository) *AnnotationService {
	return &AnnotationService{
		annotationRepo: annotationRepo,
		textRepo:       textRepo,
	}
}

// Create 注釈を保存する。スパンは本文の文字数範囲に収まっていること。
// 既存注釈との重なりは許容する（重複チェックなし）。
func (s *AnnotationService) Create(studentID, textID uint, annotationType model.AnnotationType, start, end int, content string) (*model.StudentAnnotation, error) {
	if !annotationType.Valid() {
		return nil, util.ValidationErr("invalid annotation_type")
	}

	text, err := s.textRepo.FindActiveByID(textID)
	if err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	if start < 0 || end < start || end > len([]rune(text.Content)) {
		return nil, util.ValidationErr("annotation span out of range")
	}

	annotation := &model.StudentAnnotation{
		StudentID:      studentID,
		TextID:         textID,
		StartPosition:  start,
		EndPosition:    end,
		AnnotationType: annotationType,
		Content:        content,
	}
	if err := s.annotationRepo.Create(annotation); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}
	return annotation, nil
}

func (s *AnnotationService) ListForText(studentID, textID uint) ([]model.StudentAnnotation, error) {
	if _, err := s.textRepo.FindActiveByID(textID); err != nil {
		return nil, util.WrapDB(err, "text not found")
	}

	annotations, err := s.annotationRepo.ListByStudentAndText(studentID, textID)
	if err != nil {
		return nil, util.WrapDB(err, "annotations not found")
	}
	return annotations, nil
}

// UpdateContent 内容のみ更新可能。位置やタイプは作り直しでしか変えられない。
// 非所有の注釈は不存在として扱う。
func (s *AnnotationService) UpdateContent(studentID, annotationID uint, content string) (*model.StudentAnnotation, error) {
	annotation, err := s.annotationRepo.FindOwned(annotationID, studentID)
	if err != nil {
		return nil, util.WrapDB(err, "annotation not found")
	}

	annotation.Content = content
	if err := s.annotationRepo.Save(annotation); err != nil {
		return nil, util.WrapDB(err, "annotation not found")
	}
	return annotation, nil
}

func (s *AnnotationService) Delete(studentID, annotationID uint) error {
	annotation, err := s.annotationRepo.FindOwned(annotationID, studentID)
	if err != nil {
		return util.WrapDB(err, "annotation not found")
	}
	return util.WrapDB(s.annotationRepo.Delete(annotation), "annotation not found")
}
