package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/p3bustos/jobtracker/internal/logger"
)

// DefaultRecentLimit is how many records RecentApplications returns when the
// caller does not ask for a specific number.
const DefaultRecentLimit = 10

// ─── Service ─────────────────────────────────────────────────────────────────

// Service encapsulates all application business logic.
// It has no dependency on net/http or gRPC; every transport goes through it.
type Service struct {
	repo   Repository
	events EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

// NewService returns a configured Service. events may be nil.
func NewService(repo Repository, events EventPublisher, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, events: events, log: log, now: time.Now}
}

// ─── Reads ───────────────────────────────────────────────────────────────────

// ListApplications returns every application, most recently updated first.
func (s *Service) ListApplications(ctx context.Context) ([]Application, error) {
	apps, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listApplications: %w", err)
	}
	return apps, nil
}

// SearchApplications returns applications whose company name contains query,
// ignoring case. An empty query lists everything.
func (s *Service) SearchApplications(ctx context.Context, query string) ([]Application, error) {
	if query == "" {
		return s.ListApplications(ctx)
	}
	apps, err := s.repo.SearchByCompany(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searchApplications: %w", err)
	}
	return apps, nil
}

// RecentApplications returns the limit most recently updated applications.
func (s *Service) RecentApplications(ctx context.Context, limit int) ([]Application, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	apps, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recentApplications: %w", err)
	}
	return apps, nil
}

// GetApplication returns a single application by id.
func (s *Service) GetApplication(ctx context.Context, id int64) (*Application, error) {
	return s.repo.Get(ctx, id)
}

// ListByStatus parses raw and returns the applications in that status.
func (s *Service) ListByStatus(ctx context.Context, raw string) ([]Application, error) {
	status, err := ParseStatus(raw)
	if err != nil {
		return nil, err
	}
	apps, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("listByStatus: %w", err)
	}
	return apps, nil
}

// ListActive returns every application that is not in a terminal status.
func (s *Service) ListActive(ctx context.Context) ([]Application, error) {
	apps, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listActive: %w", err)
	}
	return apps, nil
}

// ListInInterview returns every application in an interview stage.
func (s *Service) ListInInterview(ctx context.Context) ([]Application, error) {
	apps, err := s.repo.ListInInterview(ctx)
	if err != nil {
		return nil, fmt.Errorf("listInInterview: %w", err)
	}
	return apps, nil
}

// Stats reads every application once and aggregates it.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	apps, err := s.repo.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return Aggregate(apps)
}

// Breakdown reads every application once and counts it per status.
func (s *Service) Breakdown(ctx context.Context) (Breakdown, error) {
	apps, err := s.repo.List(ctx)
	if err != nil {
		return Breakdown{}, fmt.Errorf("breakdown: %w", err)
	}
	return CountByStatus(apps)
}

// ─── Mutations ───────────────────────────────────────────────────────────────

// CreateApplication validates req and stores a new application.
func (s *Service) CreateApplication(ctx context.Context, req ApplicationRequest) (*Application, error) {
	app, err := s.build(req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("createApplication: %w", err)
	}

	s.log.Info().
		Int64("applicationId", created.ID).
		Str("status", string(created.Status)).
		Msg("application created")

	s.publish(ctx, Event{Type: EventApplicationCreated, ApplicationID: created.ID, Status: created.Status})
	return created, nil
}

// UpdateApplication replaces the descriptive fields of application id with
// those in req.
func (s *Service) UpdateApplication(ctx context.Context, id int64, req ApplicationRequest) (*Application, error) {
	app, err := s.build(req)
	if err != nil {
		return nil, err
	}

	// Fetch current state so a status change can be reported.
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, app)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{Type: EventApplicationUpdated, ApplicationID: id, Status: updated.Status})
	if current.Status != updated.Status {
		s.log.Info().
			Int64("applicationId", id).
			Str("from", string(current.Status)).
			Str("to", string(updated.Status)).
			Msg("application status changed")
		s.publish(ctx, Event{Type: EventStatusChanged, ApplicationID: id, From: current.Status, To: updated.Status})
	}

	return updated, nil
}

// DeleteApplication removes application id. Nothing else is touched.
func (s *Service) DeleteApplication(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("applicationId", id).Msg("application deleted")
	s.publish(ctx, Event{Type: EventApplicationDeleted, ApplicationID: id})
	return nil
}

// build validates req and fills in the applied date when none was given.
func (s *Service) build(req ApplicationRequest) (*Application, error) {
	app, err := NewApplication(req)
	if err != nil {
		return nil, err
	}
	if app.AppliedDate == nil {
		now := s.now().UTC()
		app.AppliedDate = &now
	}
	return app, nil
}

// publish sends event, logging instead of failing: the mutation already
// happened.
func (s *Service) publish(ctx context.Context, event Event) {
	if s.events == nil {
		return
	}
	if event.At.IsZero() {
		event.At = s.now().UTC()
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("type", event.Type).Msg("publish event failed")
	}
}

// PublishStatsSnapshot computes Stats and publishes it as an
// EVENT_STATS_SNAPSHOT.
func (s *Service) PublishStatsSnapshot(ctx context.Context) (Stats, error) {
	st, err := s.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	s.publish(ctx, Event{Type: EventStatsSnapshot, Stats: &st})
	return st, nil
}
