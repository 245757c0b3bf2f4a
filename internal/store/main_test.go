package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"warbler/backend/internal/database"
	"warbler/backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection would get its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// stepClock returns strictly increasing times one second apart.
type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	clock := &stepClock{cur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(setupTestDB(t), WithClock(clock.Now))
}

func mustRegister(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	u, err := s.Register(context.Background(), username, "password123")
	require.NoError(t, err)
	return u
}

func mustSetPrivate(t *testing.T, s *Store, u *models.User) {
	t.Helper()
	private, err := s.TogglePrivacy(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, private)
	u.IsPrivate = true
}
