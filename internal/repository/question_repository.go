package repository

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` ASC")
		}).
		First(&question, id).Error
	return &question, err
}

// ListByText 順序（order）昇順で全問題を返す。
func (r *QuestionRepository) ListByText(textID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("text_id = ?", textID).
		Order("`order` ASC").
		Find(&questions).Error
	return questions, err
}

// FindChoiceForQuestion 選択肢が当該問題のものであることまで確認する。
func (r *QuestionRepository) FindChoiceForQuestion(choiceID, questionID uint) (*model.QuestionChoice, error) {
	var choice model.QuestionChoice
	err := r.DB.Where("id = ? AND question_id = ?", choiceID, questionID).First(&choice).Error
	return &choice, err
}
