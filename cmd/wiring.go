package main

import (
	"context"
	"fmt"

	"github.com/p3bustos/jobtracker/internal/config"
	"github.com/p3bustos/jobtracker/internal/db"
	"github.com/p3bustos/jobtracker/internal/events"
	"github.com/p3bustos/jobtracker/internal/logger"
	"github.com/p3bustos/jobtracker/internal/store"
	"github.com/p3bustos/jobtracker/internal/tracker"
)

// repository is a tracker.Repository that can create its own schema.
type repository interface {
	tracker.Repository
	Migrate(ctx context.Context) error
}

type memoryRepository struct{ *store.Memory }

func (memoryRepository) Migrate(context.Context) error { return nil }

// openRepository connects the configured storage driver. The returned func
// releases the connection.
func openRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		log.Info().Msg("Connecting to PostgreSQL…")
		pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("PostgreSQL: %w", err)
		}
		log.Info().Msg("PostgreSQL connected ✓")
		return store.NewPostgres(pool), pool.Close, nil

	case config.StorageSQLite:
		log.Info().Str("path", cfg.SQLitePath).Msg("Opening SQLite…")
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("SQLite: %w", err)
		}
		log.Info().Msg("SQLite opened ✓")
		return store.NewSQLite(gdb), func() { _ = db.CloseSQLite(gdb) }, nil

	default:
		log.Warn().Msg("Using in-memory storage; data is lost on exit")
		return memoryRepository{store.NewMemory()}, func() {}, nil
	}
}

// openEvents connects the configured event backend.
func openEvents(ctx context.Context, cfg *config.Config, log *logger.Logger) (tracker.EventPublisher, func(), error) {
	switch cfg.EventsBackend {
	case config.EventsRedis:
		log.Info().Msg("Connecting to Redis…")
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("Redis: %w", err)
		}
		log.Info().Msg("Redis connected ✓")
		return events.NewRedis(rdb), func() { _ = rdb.Close() }, nil

	case config.EventsNATS:
		log.Info().Msg("Connecting to NATS…")
		conn, err := db.NewNATSConn(cfg.NatsURL)
		if err != nil {
			return nil, nil, fmt.Errorf("NATS: %w", err)
		}
		log.Info().Msg("NATS connected ✓")
		return events.NewNATS(conn), func() { _ = conn.Drain() }, nil

	default:
		return events.Nop{}, func() {}, nil
	}
}
