package model

import "time"

type SessionPhase string

const (
	PhaseReading   SessionPhase = "reading"   // 読解フェーズ
	PhaseAnswering SessionPhase = "answering" // 解答フェーズ
	// completed は宣言のみで、現状どの遷移からも到達しない。
	PhaseCompleted SessionPhase = "completed" // 完了
)

// ReadingSession 読解セッション
// (student, text) ごとに1行。初回アクセス時に reading フェーズで作成される。
// swagger:model
type ReadingSession struct {
	BaseModel
	StudentID          uint         `gorm:"uniqueIndex:idx_session_student_text;not null;comment:生徒" json:"studentId"`
	TextID             uint         `gorm:"uniqueIndex:idx_session_student_text;not null;comment:対象文章" json:"textId"`
	CurrentPhase       SessionPhase `gorm:"size:20;default:'reading';comment:現在のフェーズ" json:"currentPhase"`
	ReadingStartTime   time.Time    `gorm:"comment:読解開始時刻" json:"readingStartTime"`
	ReadingEndTime     *time.Time   `gorm:"comment:読解終了時刻" json:"readingEndTime"`
	AnsweringStartTime *time.Time   `gorm:"comment:解答開始時刻" json:"answeringStartTime"`
	AnsweringEndTime   *time.Time   `gorm:"comment:解答終了時刻" json:"answeringEndTime"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Text    *Text `gorm:"foreignKey:TextID" json:"text,omitempty"`
}

func (ReadingSession) TableName() string {
	return "reading_sessions"
}
