package model

type QuestionType string

const (
	QuestionChoiceType QuestionType = "choice"    // 選択問題
	QuestionEssay      QuestionType = "essay"     // 記述問題
	QuestionTable      QuestionType = "table"     // 表作成問題
	QuestionHighlight  QuestionType = "highlight" // ハイライト問題
)

// Question 問題
// swagger:model
type Question struct {
	BaseModel
	TextID       uint         `gorm:"index;not null;comment:対象文章" json:"textId"`
	QuestionText string       `gorm:"type:text;not null;comment:問題文" json:"questionText"`
	QuestionType QuestionType `gorm:"size:20;not null;comment:問題タイプ" json:"questionType"`
	Order        int          `gorm:"default:1;comment:順序" json:"order"`
	HideText     bool         `gorm:"default:false;comment:文章を隠す" json:"hideText"`
	AllowNotes   bool         `gorm:"column:allow_notes_only;default:false;comment:メモのみ参照可能" json:"allowNotesOnly"`
	// フェーズゲートでは未使用。text_detail は常に全問題を表示する（フェーズ依存）。
	ShowInAnsweringPhase bool `gorm:"default:true;comment:解答フェーズで表示" json:"showInAnsweringPhase"`

	Text    *Text            `gorm:"foreignKey:TextID" json:"text,omitempty"`
	Choices []QuestionChoice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionChoice 選択肢
// swagger:model
type QuestionChoice struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null;comment:問題ID" json:"questionId"`
	ChoiceText string `gorm:"size:500;not null;comment:選択肢" json:"choiceText"`
	IsCorrect  bool   `gorm:"default:false;comment:正解" json:"isCorrect"`
	Order      int    `gorm:"default:1;comment:順序" json:"order"`
}

func (QuestionChoice) TableName() string {
	return "question_choices"
}
