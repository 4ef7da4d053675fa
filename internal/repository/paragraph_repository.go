package repository

import (
	"github.com/Koto-ptts/japanese-cbt-app/internal/model"
	"gorm.io/gorm"
)

type ParagraphRepository struct {
	DB *gorm.DB
}

func NewParagraphRepository(db *gorm.DB) *ParagraphRepository {
	return &ParagraphRepository{DB: db}
}

// Create 単発保存。(student, text, paragraph_number) の一意制約違反は
// gorm.ErrDuplicatedKey としてそのまま上へ返す。
func (r *ParagraphRepository) Create(paragraph *model.UserParagraphDefinition) error {
	return r.DB.Create(paragraph).Error
}

// ListByStudentAndText 段落番号昇順。
func (r *ParagraphRepository) ListByStudentAndText(studentID, textID uint) ([]model.UserParagraphDefinition, error) {
	var paragraphs []model.UserParagraphDefinition
	err := r.DB.Where("student_id = ? AND text_id = ?", studentID, textID).
		Order("paragraph_number ASC").
		Find(&paragraphs).Error
	return paragraphs, err
}

func (r *ParagraphRepository) FindOwned(studentID, textID uint, paragraphNumber int) (*model.UserParagraphDefinition, error) {
	var paragraph model.UserParagraphDefinition
	err := r.DB.Where("student_id = ? AND text_id = ? AND paragraph_number = ?",
		studentID, textID, paragraphNumber).
		First(&paragraph).Error
	return &paragraph, err
}

func (r *ParagraphRepository) Delete(paragraph *model.UserParagraphDefinition) error {
	return r.DB.Unscoped().Delete(paragraph).Error
}

// ReplaceAll 既存の段落定義を全削除してから一括挿入する。
// delete+insert を1トランザクションで実行し、途中失敗で段落ゼロの状態を残さない。
func (r *ParagraphRepository) ReplaceAll(studentID, textID uint, paragraphs []model.UserParagraphDefinition) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("student_id = ? AND text_id = ?", studentID, textID).
			Delete(&model.UserParagraphDefinition{}).Error; err != nil {
			return err
		}
		if len(paragraphs) == 0 {
			return nil
		}
		return tx.Create(&paragraphs).Error
	})
}
