package db

import (
	"context"
	"path/filepath"
	"testing"

	"task_manager_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUninitialized(t *testing.T) {
	DB = nil

	assert.Error(t, AutoMigrate(&models.DashboardSnapshot{}))
	assert.Error(t, Ping(context.Background()))
	assert.NoError(t, Close())
}

func TestInitializeAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")

	require.NoError(t, Initialize(path, "production"))
	t.Cleanup(func() {
		Close()
		DB = nil
	})

	require.NoError(t, Migrate())
	assert.True(t, DB.Migrator().HasTable(&models.DashboardSnapshot{}))
	assert.NoError(t, Ping(context.Background()))
	assert.FileExists(t, path)
}
