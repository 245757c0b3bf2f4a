package store

import (
	"context"
	"errors"

	"warbler/backend/internal/models"
)

// SendDirectMessage stores a direct message from senderID to receiverID stamped
// with the store clock. A zero receiver or empty content is rejected with
// ErrValidation before anything is written. A sender that no longer exists
// gets ErrForbidden.
func (s *Store) SendDirectMessage(ctx context.Context, senderID, receiverID uint, content string) (*models.DirectMessage, error) {
	if receiverID == 0 || content == "" {
		return nil, models.NewValidationError("Invalid input.")
	}

	var dm models.DirectMessage
	err := s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.GetUser(ctx, senderID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.NewForbiddenError("Sender account no longer exists.")
			}
			return err
		}
		if _, err := tx.GetUser(ctx, receiverID); err != nil {
			return err
		}

		dm = models.DirectMessage{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Content:    content,
			Timestamp:  tx.now(),
		}
		if err := tx.conn(ctx).Create(&dm).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dm, nil
}

// Thread returns every direct message exchanged between a and b in either
// direction, oldest first.
func (s *Store) Thread(ctx context.Context, a, b uint) ([]models.DirectMessage, error) {
	var msgs []models.DirectMessage
	err := s.conn(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp ASC, id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}
