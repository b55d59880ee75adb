package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p3bustos/jobtracker/internal/db"
	"github.com/p3bustos/jobtracker/internal/tracker"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "tracker.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CloseSQLite(gdb) })

	s := NewSQLite(gdb)
	s.now = newFakeClock().Now
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLite_Repository(t *testing.T) {
	testRepository(t, func(t *testing.T) tracker.Repository { return openTestSQLite(t) })
}

func TestSQLite_MigrateIsIdempotent(t *testing.T) {
	s := openTestSQLite(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

// A row whose status was written outside the service is reported, not
// coerced into a valid status.
func TestSQLite_CorruptStatus(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	created, err := s.Create(ctx, newApp("Acme", tracker.StatusApplied))
	require.NoError(t, err)
	require.NoError(t, s.db.Model(&applicationRow{}).
		Where("id = ?", created.ID).
		Update("status", "CLOSED").Error)

	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, tracker.ErrInvalidStatus)

	_, err = s.List(ctx)
	assert.ErrorIs(t, err, tracker.ErrInvalidStatus)
}
