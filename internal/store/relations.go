package store

import (
	"context"
	"errors"

	"warbler/backend/internal/models"

	"gorm.io/gorm"
)

// Follow makes followerID follow followeeID. Following a private account
// creates a pending request; a public one is accepted immediately.
func (s *Store) Follow(ctx context.Context, followerID, followeeID uint) (models.FollowStatus, error) {
	if followerID == followeeID {
		return "", models.NewValidationError("You cannot follow yourself.")
	}

	var status models.FollowStatus
	err := s.Transaction(ctx, func(tx *Store) error {
		target, err := tx.GetUser(ctx, followeeID)
		if err != nil {
			return err
		}

		blocked, err := tx.IsBlocked(ctx, followeeID, followerID)
		if err != nil {
			return err
		}
		if blocked {
			return models.NewForbiddenError("You cannot follow this user.")
		}

		existing, err := tx.FollowStatus(ctx, followerID, followeeID)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.NewConflictError("You already follow or requested to follow this user.", nil)
		}

		status = models.FollowAccepted
		if target.IsPrivate {
			status = models.FollowPending
		}

		follow := models.Follow{FollowerID: followerID, FolloweeID: followeeID, Status: status}
		if err := tx.conn(ctx).Create(&follow).Error; err != nil {
			return translate(err, "Follow", followeeID)
		}
		return nil
	})
	return status, err
}

// Unfollow removes the follow, or cancels a pending request, from followerID to followeeID.
func (s *Store) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	result := s.conn(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", followeeID)
	}
	return nil
}

// AcceptFollow accepts a pending request from followerID to followeeID.
func (s *Store) AcceptFollow(ctx context.Context, followeeID, followerID uint) error {
	result := s.conn(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ? AND status = ?", followerID, followeeID, models.FollowPending).
		Update("status", models.FollowAccepted)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow request", followerID)
	}
	return nil
}

// DeclineFollow deletes a pending request from followerID to followeeID.
func (s *Store) DeclineFollow(ctx context.Context, followeeID, followerID uint) error {
	result := s.conn(ctx).
		Where("follower_id = ? AND followee_id = ? AND status = ?", followerID, followeeID, models.FollowPending).
		Delete(&models.Follow{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Follow request", followerID)
	}
	return nil
}

// FollowStatus returns the status of the follow from followerID to followeeID,
// or nil when there is none.
func (s *Store) FollowStatus(ctx context.Context, followerID, followeeID uint) (*models.FollowStatus, error) {
	var follow models.Follow
	err := s.conn(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&follow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &follow.Status, nil
}

// FollowerCount counts accepted followers of userID.
func (s *Store) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Follow{}).
		Where("followee_id = ? AND status = ?", userID, models.FollowAccepted).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// FollowingCount counts accounts userID follows with an accepted follow.
func (s *Store) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", userID, models.FollowAccepted).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// PendingRequests lists users waiting for userID to accept their follow request.
func (s *Store) PendingRequests(ctx context.Context, userID uint) ([]models.User, error) {
	var follows []models.Follow
	err := s.conn(ctx).
		Where("followee_id = ? AND status = ?", userID, models.FollowPending).
		Preload("Follower").
		Order("created_at ASC").
		Find(&follows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	users := make([]models.User, 0, len(follows))
	for _, f := range follows {
		users = append(users, f.Follower)
	}
	return users, nil
}

// Block records that blockerID blocked blockedID and drops any follow between them.
func (s *Store) Block(ctx context.Context, blockerID, blockedID uint) error {
	if blockerID == blockedID {
		return models.NewValidationError("You cannot block yourself.")
	}

	return s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.GetUser(ctx, blockedID); err != nil {
			return err
		}

		blocked, err := tx.IsBlocked(ctx, blockerID, blockedID)
		if err != nil {
			return err
		}
		if blocked {
			return models.NewConflictError("You already blocked this user.", nil)
		}

		block := models.Block{BlockerID: blockerID, BlockedID: blockedID}
		if err := tx.conn(ctx).Create(&block).Error; err != nil {
			return translate(err, "Block", blockedID)
		}

		err = tx.conn(ctx).
			Where("(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)",
				blockerID, blockedID, blockedID, blockerID).
			Delete(&models.Follow{}).Error
		if err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// Unblock removes the block from blockerID to blockedID.
func (s *Store) Unblock(ctx context.Context, blockerID, blockedID uint) error {
	result := s.conn(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Block", blockedID)
	}
	return nil
}

// IsBlocked reports whether blockerID has blocked blockedID.
func (s *Store) IsBlocked(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}
