package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p3bustos/jobtracker/internal/tracker"
)

// fakeClock returns a strictly increasing time, one second per call.
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func intPtr(v int) *int { return &v }

func newApp(company string, status tracker.Status) *tracker.Application {
	applied := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	return &tracker.Application{
		CompanyName: company,
		JobTitle:    "Backend Engineer",
		Status:      status,
		Location:    "Remote",
		SalaryMin:   intPtr(90000),
		SalaryMax:   intPtr(120000),
		AppliedDate: &applied,
	}
}

func ids(apps []tracker.Application) []int64 {
	out := make([]int64, len(apps))
	for i, a := range apps {
		out[i] = a.ID
	}
	return out
}

// testRepository runs the behaviour every tracker.Repository must share.
// newRepo must return an empty repository.
func testRepository(t *testing.T, newRepo func(t *testing.T) tracker.Repository) {
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Get(ctx, 12345)
		assert.ErrorIs(t, err, tracker.ErrNotFound)
	})

	t.Run("CreateAndGet", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, newApp("Acme", tracker.StatusApplied))
		require.NoError(t, err)

		assert.Positive(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", got.CompanyName)
		assert.Equal(t, tracker.StatusApplied, got.Status)
		assert.Equal(t, "Remote", got.Location)
		require.NotNil(t, got.SalaryMin)
		assert.Equal(t, 90000, *got.SalaryMin)
		require.NotNil(t, got.AppliedDate)
		assert.True(t, got.AppliedDate.Equal(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)))

		second, err := repo.Create(ctx, newApp("Globex", tracker.StatusApplied))
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, second.ID)
	})

	t.Run("OptionalFieldsStayEmpty", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, &tracker.Application{
			CompanyName: "Acme", JobTitle: "SRE", Status: tracker.StatusResearching,
		})
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.SalaryMin)
		assert.Nil(t, got.SalaryMax)
		assert.Nil(t, got.AppliedDate)
		assert.Empty(t, got.Notes)
	})

	t.Run("ListMostRecentFirst", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.Create(ctx, newApp("A", tracker.StatusApplied))
		require.NoError(t, err)
		b, err := repo.Create(ctx, newApp("B", tracker.StatusApplied))
		require.NoError(t, err)
		c, err := repo.Create(ctx, newApp("C", tracker.StatusApplied))
		require.NoError(t, err)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{c.ID, b.ID, a.ID}, ids(all))

		// Updating the oldest moves it to the front.
		_, err = repo.Update(ctx, a.ID, newApp("A", tracker.StatusPhoneScreen))
		require.NoError(t, err)

		all, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{a.ID, c.ID, b.ID}, ids(all))

		recent, err := repo.Recent(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{a.ID, c.ID}, ids(recent))

		recent, err = repo.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, recent, 3)
	})

	t.Run("Update", func(t *testing.T) {
		repo := newRepo(t)
		created, err := repo.Create(ctx, newApp("Acme", tracker.StatusApplied))
		require.NoError(t, err)

		next := newApp("Acme Inc", tracker.StatusOffer)
		next.Notes = "verbal offer"
		next.SalaryMin = nil
		updated, err := repo.Update(ctx, created.ID, next)
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Acme Inc", updated.CompanyName)
		assert.Equal(t, tracker.StatusOffer, updated.Status)
		assert.Nil(t, updated.SalaryMin)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt), "createdAt is preserved")
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "verbal offer", got.Notes)

		_, err = repo.Update(ctx, created.ID+1000, next)
		assert.ErrorIs(t, err, tracker.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newRepo(t)
		keep, err := repo.Create(ctx, newApp("Keep", tracker.StatusApplied))
		require.NoError(t, err)
		drop, err := repo.Create(ctx, newApp("Drop", tracker.StatusApplied))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, drop.ID))
		_, err = repo.Get(ctx, drop.ID)
		assert.ErrorIs(t, err, tracker.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, drop.ID), tracker.ErrNotFound)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{keep.ID}, ids(all))
	})

	t.Run("Filters", func(t *testing.T) {
		repo := newRepo(t)
		for _, s := range tracker.Statuses() {
			_, err := repo.Create(ctx, newApp("Co "+string(s), s))
			require.NoError(t, err)
		}

		active, err := repo.ListActive(ctx)
		require.NoError(t, err)
		assert.Len(t, active, 6)
		for _, a := range active {
			assert.True(t, a.Active(), a.Status)
		}

		interview, err := repo.ListInInterview(ctx)
		require.NoError(t, err)
		assert.Len(t, interview, 3)
		for _, a := range interview {
			assert.True(t, a.InInterviewProcess(), a.Status)
		}

		withdrawn, err := repo.ListByStatus(ctx, tracker.StatusWithdrawn)
		require.NoError(t, err)
		require.Len(t, withdrawn, 1)
		assert.Equal(t, tracker.StatusWithdrawn, withdrawn[0].Status)
	})

	t.Run("SearchByCompany", func(t *testing.T) {
		repo := newRepo(t)
		for _, name := range []string{"Acme Corp", "ACME Labs", "Globex", "100% Remote Co"} {
			_, err := repo.Create(ctx, newApp(name, tracker.StatusApplied))
			require.NoError(t, err)
		}

		found, err := repo.SearchByCompany(ctx, "acme")
		require.NoError(t, err)
		assert.Len(t, found, 2)

		found, err = repo.SearchByCompany(ctx, "%")
		require.NoError(t, err)
		require.Len(t, found, 1, "LIKE wildcards match literally")
		assert.Equal(t, "100% Remote Co", found[0].CompanyName)

		found, err = repo.SearchByCompany(ctx, "initech")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("StatsFromRepository", func(t *testing.T) {
		repo := newRepo(t)
		for _, s := range []tracker.Status{
			tracker.StatusApplied, tracker.StatusPhoneScreen, tracker.StatusRejected, tracker.StatusAccepted,
		} {
			_, err := repo.Create(ctx, newApp("Acme", s))
			require.NoError(t, err)
		}

		all, err := repo.List(ctx)
		require.NoError(t, err)
		st, err := tracker.Aggregate(all)
		require.NoError(t, err)
		assert.Equal(t, tracker.Stats{Total: 4, Active: 2, InInterview: 1, Rejected: 1, Accepted: 1}, st)
	})
}
