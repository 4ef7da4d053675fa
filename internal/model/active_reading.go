package model

import "encoding/json"

type ActiveReadingType string

const (
	ReadingLogicStructure      ActiveReadingType = "logic-structure"      // 論理構造分析
	ReadingCausalMap           ActiveReadingType = "causal-map"           // 因果関係マップ
	ReadingConceptMap          ActiveReadingType = "concept-map"          // 概念マップ
	ReadingArgumentAnalysis    ActiveReadingType = "argument-analysis"    // 論証構造分析
	ReadingPerspectiveAnalysis ActiveReadingType = "perspective-analysis" // 多角的視点分析
)

func (t ActiveReadingType) Valid() bool {
	switch t {
	case ReadingLogicStructure, ReadingCausalMap, ReadingConceptMap,
		ReadingArgumentAnalysis, ReadingPerspectiveAnalysis:
		return true
	}
	return false
}

// ActiveReadingContent 積極的読み分析
// swagger:model
type ActiveReadingContent struct {
	UUIDBase
	StudentID   uint              `gorm:"index:idx_reading_student_text;not null;comment:生徒" json:"studentId"`
	TextID      uint              `gorm:"index:idx_reading_student_text;not null;comment:対象文章" json:"textId"`
	ContentType ActiveReadingType `gorm:"size:30;not null;comment:コンテンツタイプ" json:"contentType"`
	Title       string            `gorm:"size:200;not null;comment:タイトル" json:"title"`
	Data        json.RawMessage   `gorm:"type:json;comment:分析データ" json:"data"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Text    *Text `gorm:"foreignKey:TextID" json:"text,omitempty"`
}

func (ActiveReadingContent) TableName() string {
	return "active_reading_contents"
}
