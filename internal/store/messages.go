package store

import (
	"context"
	"strings"

	"warbler/backend/internal/models"

	"gorm.io/gorm"
)

// PostMessage publishes a public message on senderID's profile.
func (s *Store) PostMessage(ctx context.Context, senderID uint, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Message content is required.")
	}

	msg := models.Message{SenderID: senderID, Content: content}
	if err := s.conn(ctx).Create(&msg).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

// GetMessage loads a public message with its sender.
func (s *Store) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	if err := s.conn(ctx).Preload("Sender").First(&msg, id).Error; err != nil {
		return nil, translate(err, "Message", id)
	}
	return &msg, nil
}

// UserMessages lists userID's public messages, newest first.
func (s *Store) UserMessages(ctx context.Context, userID uint) ([]models.Message, error) {
	var msgs []models.Message
	err := s.conn(ctx).
		Where("sender_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

// Feed pages through public messages of public accounts, newest first.
func (s *Store) Feed(ctx context.Context, page, limit int) (*Page[models.Message], error) {
	query := s.conn(ctx).Model(&models.Message{}).
		Joins("JOIN users ON users.id = messages.sender_id AND users.deleted_at IS NULL").
		Where("users.is_private = ?", false)

	result, err := Paginate[models.Message](query, page, limit, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Sender").Order("messages.created_at DESC, messages.id DESC")
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return result, nil
}

// Like records that userID likes messageID.
func (s *Store) Like(ctx context.Context, userID, messageID uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.GetMessage(ctx, messageID); err != nil {
			return err
		}

		liked, err := tx.HasLiked(ctx, userID, messageID)
		if err != nil {
			return err
		}
		if liked {
			return models.NewConflictError("You already liked this message.", nil)
		}

		like := models.Like{UserID: userID, MessageID: messageID}
		if err := tx.conn(ctx).Create(&like).Error; err != nil {
			return translate(err, "Like", messageID)
		}
		return nil
	})
}

// Unlike removes userID's like from messageID.
func (s *Store) Unlike(ctx context.Context, userID, messageID uint) error {
	result := s.conn(ctx).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Like", messageID)
	}
	return nil
}

// HasLiked reports whether userID likes messageID.
func (s *Store) HasLiked(ctx context.Context, userID, messageID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

// LikeCount counts the likes on messageID.
func (s *Store) LikeCount(ctx context.Context, messageID uint) (int64, error) {
	var n int64
	if err := s.conn(ctx).Model(&models.Like{}).Where("message_id = ?", messageID).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// LikedMessageIDs returns which of messageIDs userID likes.
func (s *Store) LikedMessageIDs(ctx context.Context, userID uint, messageIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(messageIDs))
	if len(messageIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := s.conn(ctx).Model(&models.Like{}).
		Where("user_id = ? AND message_id IN ?", userID, messageIDs).
		Pluck("message_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
