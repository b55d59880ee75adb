package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p3bustos/jobtracker/internal/db"
)

func TestOpenSQLite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tracker.db")

	gdb, err := db.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseSQLite(gdb) })

	var one int
	require.NoError(t, gdb.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
	assert.FileExists(t, path)
}

func TestOpenSQLite_InMemory(t *testing.T) {
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	assert.NoError(t, db.CloseSQLite(gdb))
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := db.NewRedisClient(context.Background(), "not-a-redis-url")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestNewPostgresPool_BadURL(t *testing.T) {
	_, err := db.NewPostgresPool(context.Background(), "postgres://%zz")
	assert.Error(t, err)
}
