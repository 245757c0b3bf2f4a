package store

import (
	"context"

	"warbler/backend/internal/models"

	"gorm.io/gorm"
)

// Stats summarises table sizes for the admin dashboard.
type Stats struct {
	Users          int64
	PrivateUsers   int64
	Messages       int64
	Likes          int64
	Blocks         int64
	DirectMessages int64
}

// Stats counts the rows of every table shown on the admin dashboard.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	counts := []struct {
		dst   *int64
		query func(*gorm.DB) *gorm.DB
	}{
		{&st.Users, func(db *gorm.DB) *gorm.DB { return db.Model(&models.User{}) }},
		{&st.PrivateUsers, func(db *gorm.DB) *gorm.DB { return db.Model(&models.User{}).Where("is_private = ?", true) }},
		{&st.Messages, func(db *gorm.DB) *gorm.DB { return db.Model(&models.Message{}) }},
		{&st.Likes, func(db *gorm.DB) *gorm.DB { return db.Model(&models.Like{}) }},
		{&st.Blocks, func(db *gorm.DB) *gorm.DB { return db.Model(&models.Block{}) }},
		{&st.DirectMessages, func(db *gorm.DB) *gorm.DB { return db.Model(&models.DirectMessage{}) }},
	}

	for _, c := range counts {
		if err := c.query(s.conn(ctx)).Count(c.dst).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return &st, nil
}
