package models

import "time"

// User is a login identity. The company it administers is found by matching
// Email against Company.AdminEmail.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"password_hash"` // bcrypt
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
