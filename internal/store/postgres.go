package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/p3bustos/jobtracker/internal/tracker"
)

// pgxQuerier is the subset of *pgxpool.Pool the repository uses.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres stores applications in the job_applications table.
type Postgres struct {
	db pgxQuerier
}

// NewPostgres returns a repository backed by db, usually a *pgxpool.Pool.
func NewPostgres(db pgxQuerier) *Postgres {
	return &Postgres{db: db}
}

var _ tracker.Repository = (*Postgres)(nil)

const selectColumns = `
	id, company_name, job_title, status, description, notes, location, job_url,
	salary_min, salary_max, applied_date, created_at, updated_at`

const orderRecent = ` ORDER BY updated_at DESC, id DESC`

// Migrate creates the job_applications table and its indexes.
func (p *Postgres) Migrate(ctx context.Context) error {
	quoted := make([]string, 0, len(tracker.Statuses()))
	for _, s := range tracker.Statuses() {
		quoted = append(quoted, "'"+string(s)+"'")
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS job_applications (
			id           BIGSERIAL   PRIMARY KEY,
			company_name TEXT        NOT NULL,
			job_title    TEXT        NOT NULL,
			status       TEXT        NOT NULL CHECK (status IN (%s)),
			description  TEXT        NOT NULL DEFAULT '',
			notes        TEXT        NOT NULL DEFAULT '',
			location     TEXT        NOT NULL DEFAULT '',
			job_url      TEXT        NOT NULL DEFAULT '',
			salary_min   INTEGER     CHECK (salary_min >= 0),
			salary_max   INTEGER     CHECK (salary_max >= 0),
			applied_date TIMESTAMPTZ,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, strings.Join(quoted, ", ")),
		`CREATE INDEX IF NOT EXISTS job_applications_status_idx ON job_applications (status)`,
		`CREATE INDEX IF NOT EXISTS job_applications_updated_at_idx ON job_applications (updated_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]tracker.Application, error) {
	return p.query(ctx, `SELECT`+selectColumns+` FROM job_applications`+orderRecent)
}

func (p *Postgres) Get(ctx context.Context, id int64) (*tracker.Application, error) {
	app, err := scanApplication(p.db.QueryRow(ctx,
		`SELECT`+selectColumns+` FROM job_applications WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, tracker.NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

func (p *Postgres) ListByStatus(ctx context.Context, status tracker.Status) ([]tracker.Application, error) {
	return p.query(ctx,
		`SELECT`+selectColumns+` FROM job_applications WHERE status = $1`+orderRecent,
		string(status))
}

func (p *Postgres) ListActive(ctx context.Context) ([]tracker.Application, error) {
	return p.query(ctx,
		`SELECT`+selectColumns+` FROM job_applications WHERE status <> ALL($1)`+orderRecent,
		statusStrings(tracker.TerminalStatuses()))
}

func (p *Postgres) ListInInterview(ctx context.Context) ([]tracker.Application, error) {
	return p.query(ctx,
		`SELECT`+selectColumns+` FROM job_applications WHERE status = ANY($1)`+orderRecent,
		statusStrings(tracker.InterviewStatuses()))
}

func (p *Postgres) SearchByCompany(ctx context.Context, query string) ([]tracker.Application, error) {
	return p.query(ctx,
		`SELECT`+selectColumns+` FROM job_applications
		 WHERE company_name ILIKE '%' || $1 || '%' ESCAPE '\'`+orderRecent,
		escapeLike(query))
}

func (p *Postgres) Recent(ctx context.Context, limit int) ([]tracker.Application, error) {
	if limit <= 0 {
		return p.List(ctx)
	}
	return p.query(ctx,
		`SELECT`+selectColumns+` FROM job_applications`+orderRecent+` LIMIT $1`,
		limit)
}

func (p *Postgres) Create(ctx context.Context, app *tracker.Application) (*tracker.Application, error) {
	created, err := scanApplication(p.db.QueryRow(ctx,
		`INSERT INTO job_applications (
		   company_name, job_title, status, description, notes, location, job_url,
		   salary_min, salary_max, applied_date
		 )
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING`+selectColumns,
		app.CompanyName, app.JobTitle, string(app.Status), app.Description, app.Notes,
		app.Location, app.JobURL, app.SalaryMin, app.SalaryMax, app.AppliedDate,
	))
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return &created, nil
}

func (p *Postgres) Update(ctx context.Context, id int64, app *tracker.Application) (*tracker.Application, error) {
	updated, err := scanApplication(p.db.QueryRow(ctx,
		`UPDATE job_applications
		 SET company_name = $1,
		     job_title    = $2,
		     status       = $3,
		     description  = $4,
		     notes        = $5,
		     location     = $6,
		     job_url      = $7,
		     salary_min   = $8,
		     salary_max   = $9,
		     applied_date = $10,
		     updated_at   = GREATEST(NOW(), created_at)
		 WHERE id = $11
		 RETURNING`+selectColumns,
		app.CompanyName, app.JobTitle, string(app.Status), app.Description, app.Notes,
		app.Location, app.JobURL, app.SalaryMin, app.SalaryMax, app.AppliedDate, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, tracker.NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return &updated, nil
}

func (p *Postgres) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tracker.NotFound(id)
	}
	return nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (p *Postgres) query(ctx context.Context, sql string, args ...any) ([]tracker.Application, error) {
	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	apps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (tracker.Application, error) {
		return scanApplication(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan applications: %w", err)
	}
	return apps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanApplication reads one row in selectColumns order. The status column
// goes through ParseStatus so a corrupt value is reported, not coerced.
func scanApplication(row rowScanner) (tracker.Application, error) {
	var (
		a      tracker.Application
		status string
	)
	err := row.Scan(
		&a.ID, &a.CompanyName, &a.JobTitle, &status, &a.Description, &a.Notes,
		&a.Location, &a.JobURL, &a.SalaryMin, &a.SalaryMax, &a.AppliedDate,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return tracker.Application{}, err
	}

	a.Status, err = tracker.ParseStatus(status)
	if err != nil {
		return tracker.Application{}, fmt.Errorf("application %d: %w", a.ID, err)
	}
	return a, nil
}

func statusStrings(statuses []tracker.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes query match literally inside a LIKE pattern.
func escapeLike(query string) string {
	return likeEscaper.Replace(query)
}
