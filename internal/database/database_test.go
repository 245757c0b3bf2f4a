package database

import (
	"path/filepath"
	"testing"

	"warbler/backend/internal/config"
	"warbler/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLiteMigratesSchema(t *testing.T) {
	cfg := &config.Config{
		DBDriver:    "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "warbler.db"),
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	for _, model := range []interface{}{
		&models.User{},
		&models.Message{},
		&models.Like{},
		&models.Block{},
		&models.Follow{},
		&models.DirectMessage{},
	} {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(&config.Config{DBDriver: "oracle", DatabaseURL: "x"})
	assert.Error(t, err)
}
