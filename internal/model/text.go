package model

// Text 文章
// swagger:model
type Text struct {
	BaseModel
	Title       string `gorm:"size:200;not null;comment:タイトル" json:"title"`
	Content     string `gorm:"type:text;not null;comment:本文" json:"content"`
	Author      string `gorm:"size:100;comment:作者" json:"author"`
	CreatedByID uint   `gorm:"index;not null;comment:作成者" json:"createdById"`
	IsActive    bool   `gorm:"default:true;comment:有効" json:"isActive"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
}

func (Text) TableName() string {
	return "texts"
}
