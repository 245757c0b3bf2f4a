package models

import "time"

// FollowStatus defines the state of a follow between two users.
type FollowStatus string

const (
	// FollowPending is a request to follow a private account that has not been answered yet.
	FollowPending FollowStatus = "pending"

	// FollowAccepted means the follower is part of the followee's audience.
	FollowAccepted FollowStatus = "accepted"
)

// Follow represents a directed follow from FollowerID to FolloweeID.
// The primary key is a composite of (FollowerID, FolloweeID) to ensure uniqueness.
type Follow struct {
	FollowerID uint         `gorm:"primaryKey"`
	FolloweeID uint         `gorm:"primaryKey"`
	Status     FollowStatus `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Follower User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Followee User `gorm:"foreignKey:FolloweeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
