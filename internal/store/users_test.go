package store

import (
	"context"
	"strings"
	"testing"

	"warbler/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u, err := s.Register(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.False(t, u.IsPrivate)
	assert.False(t, u.IsAdmin)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := s.Register(ctx, "alice", "password123")
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := s.Register(ctx, "bob", "12345")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("long username", func(t *testing.T) {
		_, err := s.Register(ctx, strings.Repeat("x", 51), "password123")
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustRegister(t, s, "alice")

	u, err := s.Authenticate(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	_, err = s.Authenticate(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("correct old password replaces the hash", func(t *testing.T) {
		s := newTestStore(t)
		alice := mustRegister(t, s, "alice")

		require.NoError(t, s.ChangePassword(ctx, alice.ID, "password123", "newsecret"))

		_, err := s.Authenticate(ctx, "alice", "password123")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials, "old password must stop working")
		_, err = s.Authenticate(ctx, "alice", "newsecret")
		assert.NoError(t, err, "new password must work")
	})

	t.Run("wrong old password leaves state unchanged", func(t *testing.T) {
		s := newTestStore(t)
		alice := mustRegister(t, s, "alice")

		err := s.ChangePassword(ctx, alice.ID, "not-my-password", "newsecret")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)

		stored, err := s.GetUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.PasswordHash, stored.PasswordHash)
	})

	t.Run("too short new password", func(t *testing.T) {
		s := newTestStore(t)
		alice := mustRegister(t, s, "alice")

		err := s.ChangePassword(ctx, alice.ID, "password123", "abc")
		assert.ErrorIs(t, err, models.ErrValidation)

		_, err = s.Authenticate(ctx, "alice", "password123")
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		s := newTestStore(t)
		err := s.ChangePassword(ctx, 42, "password123", "newsecret")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestTogglePrivacy_IsItsOwnInverse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustRegister(t, s, "alice")

	private, err := s.TogglePrivacy(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, private)

	private, err = s.TogglePrivacy(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, private)

	stored, err := s.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPrivate)
}

func TestCanView(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustRegister(t, s, "owner")
	follower := mustRegister(t, s, "follower")
	requester := mustRegister(t, s, "requester")
	stranger := mustRegister(t, s, "stranger")

	// Follow while public so the follow is accepted, then go private.
	_, err := s.Follow(ctx, follower.ID, owner.ID)
	require.NoError(t, err)
	mustSetPrivate(t, s, owner)
	status, err := s.Follow(ctx, requester.ID, owner.ID)
	require.NoError(t, err)
	require.Equal(t, models.FollowPending, status)

	cases := []struct {
		name   string
		viewer *uint
		want   bool
	}{
		{"anonymous", nil, false},
		{"owner", &owner.ID, true},
		{"accepted follower", &follower.ID, true},
		{"pending requester", &requester.ID, false},
		{"stranger", &stranger.ID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := s.CanView(ctx, tc.viewer, owner)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}

	t.Run("public profile is visible to everyone", func(t *testing.T) {
		ok, err := s.CanView(ctx, nil, stranger)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRecentUsers(t *testing.T) {
	s := newTestStore(t)
	mustRegister(t, s, "a")
	mustRegister(t, s, "b")
	c := mustRegister(t, s, "c")

	users, err := s.RecentUsers(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, c.ID, users[0].ID)
}

func TestSetAdmin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := mustRegister(t, s, "boss")

	require.NoError(t, s.SetAdmin(ctx, u.ID, true))
	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	assert.ErrorIs(t, s.SetAdmin(ctx, 999, true), models.ErrNotFound)
}
