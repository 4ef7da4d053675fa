package repository

import (
	"errors"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Create(profile *model.UserProfile) error {
	return r.DB.Create(profile).Error
}

func (r *ProfileRepository) FindByUserID(userID uint) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

// GetOrCreate プロファイル欠落時は生徒として遅延作成する。
// 一意制約に当たった場合（同時リクエスト）は読み直す。
func (r *ProfileRepository) GetOrCreate(userID uint) (*model.UserProfile, error) {
	profile, err := r.FindByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = &model.UserProfile{UserID: userID, IsTeacher: false}
	if err := r.Create(profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByUserID(userID)
		}
		return nil, err
	}
	return profile, nil
}
