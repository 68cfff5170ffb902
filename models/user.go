package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type User struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"size:30;unique;not null" json:"name"`
	Email           string    `gorm:"size:100;unique;not null" json:"email"`
	Password        string    `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	Role            string    `gorm:"size:20;not null" json:"role"`
	CanSeeMCQ       bool      `gorm:"not null;default:false" json:"canSeeMCQ"`
	CanSeeTrueFalse bool      `gorm:"not null;default:false" json:"canSeeTrueFalse"`
	CanSeeFillBlank bool      `gorm:"not null;default:false" json:"canSeeFillBlank"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// IsValidRole reports whether role is one of the two enumerated values.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}
