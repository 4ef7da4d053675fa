package model

type AnnotationType string

const (
	AnnotationHighlight AnnotationType = "highlight" // ハイライト
	AnnotationNote      AnnotationType = "note"      // 注釈
	AnnotationMemo      AnnotationType = "memo"      // メモ
)

func (t AnnotationType) Valid() bool {
	switch t {
	case AnnotationHighlight, AnnotationNote, AnnotationMemo:
		return true
	}
	return false
}

// StudentAnnotation 生徒注釈
// [StartPosition, EndPosition) は本文の文字オフセット。重複する注釈は許容される。
// swagger:model
type StudentAnnotation struct {
	BaseModel
	StudentID      uint           `gorm:"index:idx_annotation_student_text;not null;comment:生徒" json:"studentId"`
	TextID         uint           `gorm:"index:idx_annotation_student_text;not null;comment:対象文章" json:"textId"`
	StartPosition  int            `gorm:"not null;comment:開始位置" json:"startPosition"`
	EndPosition    int            `gorm:"not null;comment:終了位置" json:"endPosition"`
	AnnotationType AnnotationType `gorm:"size:20;not null;comment:注釈タイプ" json:"annotationType"`
	Content        string         `gorm:"type:text;comment:内容" json:"content"`

	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Text    *Text `gorm:"foreignKey:TextID" json:"text,omitempty"`
}

func (StudentAnnotation) TableName() string {
	return "student_annotations"
}
