package model

// StudentResponse 生徒回答
// (student, question) ごとに1行。再提出は同じ行を上書きする（履歴なし）。
// swagger:model
type StudentResponse struct {
	BaseModel
	StudentID        uint   `gorm:"uniqueIndex:idx_student_question;not null;comment:生徒" json:"studentId"`
	QuestionID       uint   `gorm:"uniqueIndex:idx_student_question;not null;comment:問題" json:"questionId"`
	ResponseText     string `gorm:"type:text;comment:回答内容" json:"responseText"`
	SelectedChoiceID *uint  `gorm:"comment:選択した選択肢" json:"selectedChoiceId"`
	IsSubmitted      bool   `gorm:"default:false;comment:提出済み" json:"isSubmitted"`

	Student        *User           `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Question       *Question       `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	SelectedChoice *QuestionChoice `gorm:"foreignKey:SelectedChoiceID" json:"selectedChoice,omitempty"`
}

func (StudentResponse) TableName() string {
	return "student_responses"
}
