package model

import (
	"time"
)

type UserRole string

const (
	Admin      UserRole = "admin"
	Instructor UserRole = "pengajar"
	Student    UserRole = "pelajar"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:100;unique;not null" json:"email"`
	Password string    `gorm:"size:100;not null" json:"-"`
	Disabled bool      `gorm:"default:false" json:"disabled"`
	LastSeen time.Time `json:"lastSeen"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Profile 每个用户注册时创建一条，角色默认为 pelajar（学生）
// swagger:model Profile
type Profile struct {
	UUIDBase
	UserID    uint     `gorm:"uniqueIndex;not null" json:"userId"`
	FullName  string   `gorm:"size:100;not null" json:"fullName"`
	Role      UserRole `gorm:"size:20;default:'pelajar'" json:"role"`
	AvatarURL string   `gorm:"size:255" json:"avatarUrl"`
	Bio       string   `gorm:"type:text" json:"bio"`
}

func (Profile) TableName() string {
	return "profiles"
}
