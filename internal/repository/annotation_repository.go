package repository

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type AnnotationRepository struct {
	DB *gorm.DB
}

func NewAnnotationRepository(db *gorm.DB) *AnnotationRepository {
	return &AnnotationRepository{DB: db}
}

func (r *AnnotationRepository) Create(annotation *model.StudentAnnotation) error {
	return r.DB.Create(annotation).Error
}

// ListByStudentAndText 開始位置昇順。
func (r *AnnotationRepository) ListByStudentAndText(studentID, textID uint) ([]model.StudentAnnotation, error) {
	var annotations []model.StudentAnnotation
	err := r.DB.Where("student_id = ? AND text_id = ?", studentID, textID).
		Order("start_position ASC").
		Find(&annotations).Error
	return annotations, err
}

// FindOwned 所有者まで含めて解決する。非所有は不存在と同じ扱いになる。
func (r *AnnotationRepository) FindOwned(id, studentID uint) (*model.StudentAnnotation, error) {
	var annotation model.StudentAnnotation
	err := r.DB.Where("id = ? AND student_id = ?", id, studentID).First(&annotation).Error
	return &annotation, err
}

func (r *AnnotationRepository) Save(annotation *model.StudentAnnotation) error {
	return r.DB.Save(annotation).Error
}

func (r *AnnotationRepository) Delete(annotation *model.StudentAnnotation) error {
	return r.DB.Unscoped().Delete(annotation).Error
}
