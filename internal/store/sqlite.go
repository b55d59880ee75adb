package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/p3bustos/jobtracker/internal/tracker"
)

// applicationRow is the gorm model for job_applications. Timestamps are
// managed by SQLite.Create/Update, not by gorm hooks.
type applicationRow struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CompanyName string `gorm:"not null"`
	JobTitle    string `gorm:"not null"`
	Status      string `gorm:"not null;index"`
	Description string `gorm:"size:2000;not null;default:''"`
	Notes       string `gorm:"size:1000;not null;default:''"`
	Location    string `gorm:"not null;default:''"`
	JobURL      string `gorm:"column:job_url;not null;default:''"`
	SalaryMin   *int
	SalaryMax   *int
	AppliedDate *time.Time
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;index;autoUpdateTime:false"`
}

func (applicationRow) TableName() string { return "job_applications" }

// SQLite stores applications in a file through gorm.
type SQLite struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSQLite returns a repository backed by db, as opened by db.OpenSQLite.
func NewSQLite(db *gorm.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

var _ tracker.Repository = (*SQLite)(nil)

// Migrate creates or updates the job_applications table.
func (s *SQLite) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&applicationRow{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *SQLite) List(ctx context.Context) ([]tracker.Application, error) {
	return s.find(s.db.WithContext(ctx))
}

func (s *SQLite) Get(ctx context.Context, id int64) (*tracker.Application, error) {
	var row applicationRow
	err := s.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tracker.NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}

	app, err := row.toApplication()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *SQLite) ListByStatus(ctx context.Context, status tracker.Status) ([]tracker.Application, error) {
	return s.find(s.db.WithContext(ctx).Where("status = ?", string(status)))
}

func (s *SQLite) ListActive(ctx context.Context) ([]tracker.Application, error) {
	return s.find(s.db.WithContext(ctx).Where("status NOT IN ?", statusStrings(tracker.TerminalStatuses())))
}

func (s *SQLite) ListInInterview(ctx context.Context) ([]tracker.Application, error) {
	return s.find(s.db.WithContext(ctx).Where("status IN ?", statusStrings(tracker.InterviewStatuses())))
}

func (s *SQLite) SearchByCompany(ctx context.Context, query string) ([]tracker.Application, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	return s.find(s.db.WithContext(ctx).Where(`LOWER(company_name) LIKE ? ESCAPE '\'`, pattern))
}

func (s *SQLite) Recent(ctx context.Context, limit int) ([]tracker.Application, error) {
	if limit <= 0 {
		return s.List(ctx)
	}
	return s.find(s.db.WithContext(ctx).Limit(limit))
}

func (s *SQLite) Create(ctx context.Context, app *tracker.Application) (*tracker.Application, error) {
	row := fromApplication(app)
	row.ID = 0
	row.CreatedAt = s.now().UTC()
	row.UpdatedAt = row.CreatedAt

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	created, err := row.toApplication()
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *SQLite) Update(ctx context.Context, id int64, app *tracker.Application) (*tracker.Application, error) {
	var row applicationRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing applicationRow
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		row = fromApplication(app)
		row.ID = id
		row.CreatedAt = existing.CreatedAt
		row.UpdatedAt = s.now().UTC()
		if row.UpdatedAt.Before(row.CreatedAt) {
			row.UpdatedAt = row.CreatedAt
		}
		return tx.Save(&row).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tracker.NotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}

	updated, err := row.toApplication()
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *SQLite) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&applicationRow{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete application: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return tracker.NotFound(id)
	}
	return nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (s *SQLite) find(q *gorm.DB) ([]tracker.Application, error) {
	var rows []applicationRow
	if err := q.Order("updated_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}

	apps := make([]tracker.Application, 0, len(rows))
	for i := range rows {
		app, err := rows[i].toApplication()
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func fromApplication(app *tracker.Application) applicationRow {
	return applicationRow{
		ID:          app.ID,
		CompanyName: app.CompanyName,
		JobTitle:    app.JobTitle,
		Status:      string(app.Status),
		Description: app.Description,
		Notes:       app.Notes,
		Location:    app.Location,
		JobURL:      app.JobURL,
		SalaryMin:   app.SalaryMin,
		SalaryMax:   app.SalaryMax,
		AppliedDate: app.AppliedDate,
		CreatedAt:   app.CreatedAt,
		UpdatedAt:   app.UpdatedAt,
	}
}

func (r applicationRow) toApplication() (tracker.Application, error) {
	status, err := tracker.ParseStatus(r.Status)
	if err != nil {
		return tracker.Application{}, fmt.Errorf("application %d: %w", r.ID, err)
	}
	return tracker.Application{
		ID:          r.ID,
		CompanyName: r.CompanyName,
		JobTitle:    r.JobTitle,
		Status:      status,
		Description: r.Description,
		Notes:       r.Notes,
		Location:    r.Location,
		JobURL:      r.JobURL,
		SalaryMin:   r.SalaryMin,
		SalaryMax:   r.SalaryMax,
		AppliedDate: r.AppliedDate,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}
