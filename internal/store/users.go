package store

import (
	"context"
	"errors"
	"strings"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/models"

	"gorm.io/gorm"
)

// MinPasswordLength is the shortest password accepted at registration and on change.
const MinPasswordLength = 6

const maxUsernameLength = 50

// Register creates a user with a bcrypt-hashed password.
func (s *Store) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLength {
		return nil, models.NewValidationError("Username must be between 1 and 50 characters.")
	}
	if len(password) < MinPasswordLength {
		return nil, models.NewValidationError("Password must be at least 6 characters long.")
	}

	var existing models.User
	err := s.conn(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, models.NewConflictError("Username already taken.", nil)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := s.conn(ctx).Create(&user).Error; err != nil {
		return nil, translate(err, "User", username)
	}
	return &user, nil
}

// Authenticate returns the user whose username and password match.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "User", id)
	}
	return &user, nil
}

// GetUserByUsername loads a user by handle.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err, "User", username)
	}
	return &user, nil
}

// ChangePassword replaces the stored hash when oldPassword matches it.
// On a mismatch it returns ErrInvalidCredentials and leaves the row untouched.
func (s *Store) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return models.NewValidationError("Password must be at least 6 characters long.")
	}

	return s.Transaction(ctx, func(tx *Store) error {
		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		if !auth.CheckPassword(user.PasswordHash, oldPassword) {
			return models.ErrInvalidCredentials
		}

		hash, err := auth.HashPassword(newPassword)
		if err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.conn(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// TogglePrivacy flips the user's privacy flag and returns the new value.
func (s *Store) TogglePrivacy(ctx context.Context, userID uint) (bool, error) {
	var private bool
	err := s.Transaction(ctx, func(tx *Store) error {
		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		private = !user.IsPrivate
		if err := tx.conn(ctx).Model(user).Update("is_private", private).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	return private, err
}

// CanView reports whether viewerID may see target's profile.
// A nil viewer is anonymous. Private profiles are visible to their owner and
// to users holding an accepted follow.
func (s *Store) CanView(ctx context.Context, viewerID *uint, target *models.User) (bool, error) {
	if !target.IsPrivate {
		return true, nil
	}
	if viewerID == nil {
		return false, nil
	}
	if *viewerID == target.ID {
		return true, nil
	}

	status, err := s.FollowStatus(ctx, *viewerID, target.ID)
	if err != nil {
		return false, err
	}
	return status != nil && *status == models.FollowAccepted, nil
}

// RecentUsers lists the newest users first.
func (s *Store) RecentUsers(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	if err := s.conn(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// SetAdmin grants or revokes admin rights.
func (s *Store) SetAdmin(ctx context.Context, userID uint, admin bool) error {
	res := s.conn(ctx).Model(&models.User{}).Where("id = ?", userID).Update("is_admin", admin)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}
