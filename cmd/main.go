// jobmate tracker-service
//
// Tracks a job search: each application moves through a fixed set of
// statuses and the service answers aggregate questions about them.
// Exposes a REST API (chi) and a gRPC API backed by the same Service:
//   - create / update / delete / get applications
//   - list by status, active, in interview, recent, company search
//   - stats snapshot and per-status breakdown
//
// Publishes application events to Redis or NATS, and a periodic stats
// snapshot on the same channel.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/p3bustos/jobtracker/internal/config"
	"github.com/p3bustos/jobtracker/internal/logger"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tracker-service",
		Short:        "Job application tracker",
		Version:      version,
		SilenceUsage: true,
		// No subcommand means serve.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newStatsCmd())
	return root
}

// ─── Config ──────────────────────────────────────────────────────────────────

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)
	return cfg, logger.Get(), nil
}
