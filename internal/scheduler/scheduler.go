// Package scheduler wires up the cron job that periodically publishes a
// fresh stats snapshot for dashboards subscribed to tracker events.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/p3bustos/jobtracker/internal/logger"
	"github.com/p3bustos/jobtracker/internal/tracker"
)

// snapshotter is the part of *tracker.Service the scheduler drives.
type snapshotter interface {
	PublishStatsSnapshot(ctx context.Context) (tracker.Stats, error)
}

// Scheduler wraps robfig/cron and manages the snapshot loop.
type Scheduler struct {
	cron *cron.Cron
	svc  snapshotter
	log  *logger.Logger
	spec string // cron spec, e.g. "@every 15m"
}

// New creates a Scheduler that fires on spec.
func New(svc snapshotter, log *logger.Logger, spec string) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cronLogger{log})),
		svc:  svc,
		log:  log,
		spec: spec,
	}
}

// Start registers the job and starts the scheduler. It also publishes one
// snapshot immediately so subscribers do not wait for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSnapshot(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("stats scheduler started")

	go s.runSnapshot(ctx)

	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("stats scheduler stopped")
}

func (s *Scheduler) runSnapshot(ctx context.Context) {
	st, err := s.svc.PublishStatsSnapshot(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("stats snapshot failed")
		return
	}
	s.log.Debug().
		Int("total", st.Total).
		Int("active", st.Active).
		Int("inInterview", st.InInterview).
		Msg("stats snapshot published")
}

// cronLogger adapts the service logger to cron.Logger.
type cronLogger struct{ log *logger.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
