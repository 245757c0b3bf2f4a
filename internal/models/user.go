package models

import "gorm.io/gorm"

// User represents a user in the system.
type User struct {
	gorm.Model
	Username     string `gorm:"size:50;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	IsPrivate    bool   `gorm:"not null;default:false"`
	IsAdmin      bool   `gorm:"not null;default:false;index"`
}
