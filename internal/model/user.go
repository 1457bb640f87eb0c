package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Role        UserRole  `gorm:"size:20;default:'student';index" json:"role"`
	NISN        string    `gorm:"size:20;index" json:"nisn,omitempty"` // nomor induk siswa nasional
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:100;index" json:"email,omitempty"`
	Password    string    `gorm:"size:100" json:"-"`
	AvatarURL   string    `gorm:"size:255" json:"avatarUrl,omitempty"`
	TotalPoints int       `gorm:"default:0" json:"totalPoints"`
	LastLogin   time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
