package repository

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type TextRepository struct {
	DB *gorm.DB
}

func NewTextRepository(db *gorm.DB) *TextRepository {
	return &TextRepository{DB: db}
}

// FindActiveByID 有効な文章のみ解決する。無効化された文章は存在しない扱い。
func (r *TextRepository) FindActiveByID(id uint) (*model.Text, error) {
	var text model.Text
	err := r.DB.Where("id = ? AND is_active = ?", id, true).First(&text).Error
	return &text, err
}

func (r *TextRepository) ListActive() ([]model.Text, error) {
	var texts []model.Text
	err := r.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&texts).Error
	return texts, err
}

func (r *TextRepository) ListActiveByCreator(userID uint) ([]model.Text, error) {
	var texts []model.Text
	err := r.DB.Where("created_by_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&texts).Error
	return texts, err
}
