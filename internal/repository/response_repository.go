package repository

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

func (r *ResponseRepository) FindByStudentAndQuestion(studentID, questionID uint) (*model.StudentResponse, error) {
	var response model.StudentResponse
	err := r.DB.Where("student_id = ? AND question_id = ?", studentID, questionID).
		First(&response).Error
	return &response, err
}

func (r *ResponseRepository) Create(response *model.StudentResponse) error {
	return r.DB.Create(response).Error
}

func (r *ResponseRepository) Save(response *model.StudentResponse) error {
	return r.DB.Save(response).Error
}
