package repository

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type ActiveReadingRepository struct {
	DB *gorm.DB
}

func NewActiveReadingRepository(db *gorm.DB) *ActiveReadingRepository {
	return &ActiveReadingRepository{DB: db}
}

func (r *ActiveReadingRepository) Create(content *model.ActiveReadingContent) error {
	return r.DB.Create(content).Error
}

// ListByStudentAndText 作成日時降順。
func (r *ActiveReadingRepository) ListByStudentAndText(studentID, textID uint) ([]model.ActiveReadingContent, error) {
	var contents []model.ActiveReadingContent
	err := r.DB.Where("student_id = ? AND text_id = ?", studentID, textID).
		Order("created_at DESC").
		Find(&contents).Error
	return contents, err
}

func (r *ActiveReadingRepository) FindOwned(id string, studentID uint) (*model.ActiveReadingContent, error) {
	var content model.ActiveReadingContent
	err := r.DB.Where("id = ? AND student_id = ?", id, studentID).First(&content).Error
	return &content, err
}

func (r *ActiveReadingRepository) Save(content *model.ActiveReadingContent) error {
	return r.DB.Save(content).Error
}

func (r *ActiveReadingRepository) Delete(content *model.ActiveReadingContent) error {
	return r.DB.Unscoped().Delete(content).Error
}
