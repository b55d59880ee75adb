package tracker

import (
	"errors"
	"fmt"
)

// ─── Sentinel errors ─────────────────────────────────────────────────────────

// ErrNotFound is returned when no application matches the requested id.
var ErrNotFound = errors.New("application not found")

// ErrInvalidStatus matches every *InvalidStatusError via errors.Is.
var ErrInvalidStatus = errors.New("invalid application status")

// InvalidStatusError reports a status value outside the enumeration.
type InvalidStatusError struct{ Value string }

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("unknown application status %q", e.Value)
}

func (e *InvalidStatusError) Is(target error) bool { return target == ErrInvalidStatus }

// ValidationError wraps a user-facing validation message and the field it
// concerns.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// NotFound wraps ErrNotFound with the id that was looked up. Repositories
// return it from Get, Update and Delete.
func NotFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}
