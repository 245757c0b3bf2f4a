package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a public post on a user's profile.
type Message struct {
	gorm.Model
	SenderID uint   `gorm:"not null;index"`
	Content  string `gorm:"type:text;not null"`

	Sender User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE;"`
}

// Like joins a user and a message they liked.
// The composite primary key allows at most one like per (user, message).
type Like struct {
	UserID    uint `gorm:"primaryKey"`
	MessageID uint `gorm:"primaryKey"`
	CreatedAt time.Time

	User    User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
	Message Message `gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE;"`
}
