package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p3bustos/jobtracker/internal/config"
)

// clearEnv blanks every variable FromEnv reads so the host environment
// does not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TRACKER_PORT", "STORAGE_DRIVER", "DATABASE_URL", "SQLITE_PATH",
		"EVENTS_BACKEND", "REDIS_URL", "NATS_URL", "LOG_LEVEL", "LOG_PRETTY",
		"CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://tracker@localhost/tracker")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, config.StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, config.EventsRedis, cfg.EventsBackend)
	assert.Equal(t, "./data/tracker.db", cfg.SQLitePath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestFromEnv_PostgresRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVENTS_BACKEND", "none")

	_, err := config.FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestFromEnv_RedisRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "memory")

	_, err := config.FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestFromEnv_NATSRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("EVENTS_BACKEND", "nats")

	_, err := config.FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NATS_URL")

	t.Setenv("NATS_URL", "nats://localhost:4222")
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, config.EventsNATS, cfg.EventsBackend)
}

func TestFromEnv_UnknownValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := config.FromEnv()
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("EVENTS_BACKEND", "kafka")
	_, err = config.FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_SQLiteWithoutEvents(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/jobs.db")
	t.Setenv("EVENTS_BACKEND", "none")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com ,")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, config.StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/jobs.db", cfg.SQLitePath)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.AllowedOrigins)
}

// An explicitly empty value disables the optional listeners.
func TestFromEnv_EmptyDisables(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("EVENTS_BACKEND", "none")
	t.Setenv("TRACKER_GRPC_PORT", "")
	t.Setenv("STATS_SNAPSHOT_SPEC", "")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.GRPCPort)
	assert.Empty(t, cfg.StatsSnapshotSpec)
}

func TestFromEnv_GRPCAndScheduleOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("EVENTS_BACKEND", "none")
	t.Setenv("TRACKER_GRPC_PORT", "50051")
	t.Setenv("STATS_SNAPSHOT_SPEC", "@hourly")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "50051", cfg.GRPCPort)
	assert.Equal(t, "@hourly", cfg.StatsSnapshotSpec)
}
