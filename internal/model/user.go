package model

import (
	"time"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"autoCreateTime" json:"lastLogin"`
	LastSeen  time.Time `gorm:"autoCreateTime" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// UserProfile ユーザープロファイル
// ロールはプロファイル側で持つ。ダッシュボード初回アクセス時に生徒として遅延作成される。
// swagger:model
type UserProfile struct {
	BaseModel
	UserID    uint  `gorm:"uniqueIndex;not null;comment:ユーザーID" json:"userId"`
	IsTeacher bool  `gorm:"default:false;comment:教員フラグ" json:"isTeacher"`
	User      *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
