// Package store provides tracker.Repository implementations backed by
// PostgreSQL, SQLite and process memory.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/p3bustos/jobtracker/internal/tracker"
)

// Memory keeps applications in a map guarded by a RWMutex. Reads copy under
// the read lock, so every List sees one consistent view.
type Memory struct {
	mu     sync.RWMutex
	apps   map[int64]tracker.Application
	nextID int64
	now    func() time.Time
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{apps: make(map[int64]tracker.Application), now: time.Now}
}

var _ tracker.Repository = (*Memory)(nil)

func (m *Memory) List(_ context.Context) ([]tracker.Application, error) {
	return m.filter(func(tracker.Application) bool { return true }), nil
}

func (m *Memory) Get(_ context.Context, id int64) (*tracker.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	app, ok := m.apps[id]
	if !ok {
		return nil, tracker.NotFound(id)
	}
	out := clone(app)
	return &out, nil
}

func (m *Memory) ListByStatus(_ context.Context, status tracker.Status) ([]tracker.Application, error) {
	return m.filter(func(a tracker.Application) bool { return a.Status == status }), nil
}

func (m *Memory) ListActive(_ context.Context) ([]tracker.Application, error) {
	return m.filter(tracker.Application.Active), nil
}

func (m *Memory) ListInInterview(_ context.Context) ([]tracker.Application, error) {
	return m.filter(tracker.Application.InInterviewProcess), nil
}

func (m *Memory) SearchByCompany(_ context.Context, query string) ([]tracker.Application, error) {
	q := strings.ToLower(query)
	return m.filter(func(a tracker.Application) bool {
		return strings.Contains(strings.ToLower(a.CompanyName), q)
	}), nil
}

func (m *Memory) Recent(ctx context.Context, limit int) ([]tracker.Application, error) {
	apps, _ := m.List(ctx)
	if limit > 0 && len(apps) > limit {
		apps = apps[:limit]
	}
	return apps, nil
}

func (m *Memory) Create(_ context.Context, app *tracker.Application) (*tracker.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	stored := clone(*app)
	stored.ID = m.nextID
	stored.CreatedAt = m.now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	m.apps[stored.ID] = stored

	out := clone(stored)
	return &out, nil
}

func (m *Memory) Update(_ context.Context, id int64, app *tracker.Application) (*tracker.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.apps[id]
	if !ok {
		return nil, tracker.NotFound(id)
	}

	stored := clone(*app)
	stored.ID = id
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = m.now().UTC()
	if stored.UpdatedAt.Before(stored.CreatedAt) {
		stored.UpdatedAt = stored.CreatedAt
	}
	m.apps[id] = stored

	out := clone(stored)
	return &out, nil
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.apps[id]; !ok {
		return tracker.NotFound(id)
	}
	delete(m.apps, id)
	return nil
}

func (m *Memory) filter(keep func(tracker.Application) bool) []tracker.Application {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]tracker.Application, 0, len(m.apps))
	for _, a := range m.apps {
		if keep(a) {
			out = append(out, clone(a))
		}
	}
	sortRecent(out)
	return out
}

// sortRecent orders by UpdatedAt descending, then ID descending.
func sortRecent(apps []tracker.Application) {
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].UpdatedAt.Equal(apps[j].UpdatedAt) {
			return apps[i].UpdatedAt.After(apps[j].UpdatedAt)
		}
		return apps[i].ID > apps[j].ID
	})
}

// clone copies the pointer fields so callers cannot mutate stored state.
func clone(a tracker.Application) tracker.Application {
	if a.SalaryMin != nil {
		v := *a.SalaryMin
		a.SalaryMin = &v
	}
	if a.SalaryMax != nil {
		v := *a.SalaryMax
		a.SalaryMax = &v
	}
	if a.AppliedDate != nil {
		v := *a.AppliedDate
		a.AppliedDate = &v
	}
	return a
}
