// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits with an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"
)

// Event backends.
const (
	EventsRedis = "redis"
	EventsNATS  = "nats"
	EventsNone  = "none"
)

// Config holds all runtime configuration for the tracker service.
type Config struct {
	Port     string
	GRPCPort string // empty disables the gRPC listener

	StorageDriver string
	DatabaseURL   string
	SQLitePath    string

	EventsBackend string
	RedisURL      string
	NatsURL       string

	LogLevel  string
	LogPretty bool

	StatsSnapshotSpec string // cron spec; empty disables the scheduler
	AllowedOrigins    []string
}

// Load reads a .env file if one exists, then environment variables, and
// returns a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("TRACKER_PORT", "8082"),
		GRPCPort:          getEnvAllowEmpty("TRACKER_GRPC_PORT", "9092"),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		SQLitePath:        getEnv("SQLITE_PATH", "./data/tracker.db"),
		EventsBackend:     strings.ToLower(getEnv("EVENTS_BACKEND", EventsRedis)),
		RedisURL:          os.Getenv("REDIS_URL"),
		NatsURL:           os.Getenv("NATS_URL"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogPretty:         os.Getenv("LOG_PRETTY") == "true",
		StatsSnapshotSpec: getEnvAllowEmpty("STATS_SNAPSHOT_SPEC", "@every 15m"),
		AllowedOrigins:    splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageSQLite, StorageMemory:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be one of postgres, sqlite, memory, got %q", cfg.StorageDriver)
	}

	switch cfg.EventsBackend {
	case EventsRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when EVENTS_BACKEND=%s", EventsRedis)
		}
	case EventsNATS:
		if cfg.NatsURL == "" {
			return nil, fmt.Errorf("NATS_URL is required when EVENTS_BACKEND=%s", EventsNATS)
		}
	case EventsNone:
	default:
		return nil, fmt.Errorf("EVENTS_BACKEND must be one of redis, nats, none, got %q", cfg.EventsBackend)
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvAllowEmpty is getEnv, except that a variable set to "" stays empty.
func getEnvAllowEmpty(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
