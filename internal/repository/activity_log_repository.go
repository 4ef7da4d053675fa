package repository

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	DB *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{DB: db}
}

// Create 追記のみ。更新・削除APIは提供しない。
func (r *ActivityLogRepository) Create(entry *model.StudentActivityLog) error {
	return r.DB.Create(entry).Error
}
