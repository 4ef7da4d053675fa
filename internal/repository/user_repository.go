package repository

import (
	"time"

	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

// ListStudents 生徒ロールのアカウント一覧（名前順）。
func (r *UserRepository) ListStudents() ([]model.User, error) {
	var users []model.User
	err := r.DB.
		Joins("JOIN user_profiles ON user_profiles.user_id = users.id").
		Where("user_profiles.is_teacher = ?", false).
		Order("users.name ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) CountStudents() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Joins("JOIN user_profiles ON user_profiles.user_id = users.id").
		Where("user_profiles.is_teacher = ?", false).
		Count(&count).Error
	return count, err
}

// FindStudentByID 生徒ロールであることまで確認して取得する。
func (r *UserRepository) FindStudentByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.
		Joins("JOIN user_profiles ON user_profiles.user_id = users.id").
		Where("users.id = ? AND user_profiles.is_teacher = ?", id, false).
		First(&user).Error
	return &user, err
}
