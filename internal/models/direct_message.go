package models

import "time"

// DirectMessage is a private message from one user to another.
// Rows are never updated after creation.
type DirectMessage struct {
	ID         uint      `gorm:"primaryKey"`
	SenderID   uint      `gorm:"not null;index:idx_dm_pair,priority:1"`
	ReceiverID uint      `gorm:"not null;index:idx_dm_pair,priority:2"`
	Content    string    `gorm:"type:text;not null"`
	Timestamp  time.Time `gorm:"not null;index"`

	Sender   User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE;"`
	Receiver User `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE;"`
}
