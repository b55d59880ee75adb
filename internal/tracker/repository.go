package tracker

import "context"

// Repository owns persistence and id assignment for applications.
//
// List methods return records ordered by UpdatedAt descending, then ID
// descending. List must read a single point-in-time view. Get, Update and
// Delete return an error matching ErrNotFound when the id is unknown.
type Repository interface {
	List(ctx context.Context) ([]Application, error)
	Get(ctx context.Context, id int64) (*Application, error)
	ListByStatus(ctx context.Context, status Status) ([]Application, error)
	ListActive(ctx context.Context) ([]Application, error)
	ListInInterview(ctx context.Context) ([]Application, error)
	SearchByCompany(ctx context.Context, query string) ([]Application, error)
	Recent(ctx context.Context, limit int) ([]Application, error)

	// Create assigns ID, CreatedAt and UpdatedAt and returns the stored record.
	Create(ctx context.Context, app *Application) (*Application, error)
	// Update replaces every descriptive field of the record with app's,
	// keeps ID and CreatedAt, and refreshes UpdatedAt.
	Update(ctx context.Context, id int64, app *Application) (*Application, error)
	Delete(ctx context.Context, id int64) error
}

// EventPublisher fans out tracker events to other services.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
