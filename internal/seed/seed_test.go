package seed

import (
	"context"
	"testing"

	"warbler/backend/internal/database"
	"warbler/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return store.New(db)
}

func TestRun(t *testing.T) {
	st := setupTestStore(t)
	ctx := context.Background()

	res, err := NewSeeder(st, 42).Run(ctx, Options{
		Users:          5,
		Messages:       10,
		DirectMessages: 6,
		PrivateRatio:   0.5,
		AdminUsername:  "root",
		AdminPassword:  "rootpass",
	})
	require.NoError(t, err)

	require.Len(t, res.Users, 6)
	assert.Equal(t, 10, res.Messages)
	assert.Equal(t, 6, res.DirectMessages)

	admin, err := st.Authenticate(ctx, "root", "rootpass")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, stats.Users)
	assert.EqualValues(t, 10, stats.Messages)
	assert.EqualValues(t, 6, stats.DirectMessages)
	assert.EqualValues(t, res.Likes, stats.Likes)

	for _, u := range res.Users[1:] {
		_, err := st.Authenticate(ctx, u.Username, DefaultPassword)
		assert.NoError(t, err, "generated user %s can log in", u.Username)
	}
}

func TestRun_SingleUserSkipsRelations(t *testing.T) {
	st := setupTestStore(t)

	res, err := NewSeeder(st, 1).Run(context.Background(), Options{Users: 1, Messages: 5, DirectMessages: 5})
	require.NoError(t, err)
	assert.Len(t, res.Users, 1)
	assert.Zero(t, res.Messages)
	assert.Zero(t, res.DirectMessages)
}

func TestNewSeeder_SameSeedSameUsers(t *testing.T) {
	opts := Options{Users: 3}

	first, err := NewSeeder(setupTestStore(t), 7).Run(context.Background(), opts)
	require.NoError(t, err)
	second, err := NewSeeder(setupTestStore(t), 7).Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, first.Users, 3)
	require.Len(t, second.Users, 3)
	for i := range first.Users {
		assert.Equal(t, first.Users[i].Username, second.Users[i].Username)
	}
}
