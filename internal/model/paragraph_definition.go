package model

// UserParagraphDefinition ユーザー定義段落
// (student, text, paragraph_number) で一意。
// swagger:model
type UserParagraphDefinition struct {
	BaseModel
	StudentID       uint   `gorm:"uniqueIndex:idx_student_text_paragraph;not null;comment:生徒" json:"studentId"`
	TextID          uint   `gorm:"uniqueIndex:idx_student_text_paragraph;not null;comment:対象文章" json:"textId"`
	ParagraphNumber int    `gorm:"uniqueIndex:idx_student_text_paragraph;not null;comment:段落番号" json:"paragraphNumber"`
	Content         string `gorm:"type:text;not null;comment:段落内容" json:"content"`
	StartOffset     int    `gorm:"not null;comment:開始位置" json:"startOffset"`
	EndOffset       int    `gorm:"not null;comment:終了位置" json:"endOffset"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Text    *Text `gorm:"foreignKey:TextID" json:"text,omitempty"`
}

func (UserParagraphDefinition) TableName() string {
	return "user_paragraph_definitions"
}
