package model

import (
	"encoding/json"
	"time"
)

// StudentActivityLog 生徒活動ログ
// 追記専用。activity_type は任意の文字列を受け付ける。
// swagger:model
type StudentActivityLog struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID    uint            `gorm:"index;not null;comment:生徒" json:"studentId"`
	TextID       *uint           `gorm:"index;comment:対象文章" json:"textId"`
	QuestionID   *uint           `gorm:"comment:対象問題" json:"questionId"`
	ActivityType string          `gorm:"size:50;not null;comment:活動タイプ" json:"activityType"`
	Details      json.RawMessage `gorm:"type:json;comment:詳細情報" json:"details"`
	Timestamp    time.Time       `gorm:"autoCreateTime;comment:記録時刻" json:"timestamp"`

	Student  *User     `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Text     *Text     `gorm:"foreignKey:TextID" json:"text,omitempty"`
	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (StudentActivityLog) TableName() string {
	return "student_activity_logs"
}
