package assignment

import (
	"context"
	"time"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
)

// AssignmentRepository defines data access methods for shift assignments.
type AssignmentRepository interface {
	// Create inserts a new assignment. A unique index on (shift_id, user_id)
	// backstops the duplicate check under concurrency.
	Create(ctx context.Context, a Assignment) (Assignment, error)

	// GetByID retrieves an assignment with its ordered time entries
	GetByID(ctx context.Context, id string) (Assignment, error)

	// GetByShiftAndUser returns nil when the worker is not assigned
	GetByShiftAndUser(ctx context.Context, shiftID, userID string) (*Assignment, error)

	// ListByShift retrieves all assignments on a shift with time entries
	ListByShift(ctx context.Context, shiftID string) ([]Assignment, error)

	// ListByUserAndDate retrieves the worker's assignments on a working day,
	// joined with shift window and job/company names for conflict reporting
	ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]Assignment, error)

	UpdateStatus(ctx context.Context, id string, status Status) error

	Delete(ctx context.Context, id string) error

	// ConvertLegacyRole rewrites assignments from one role code to another.
	// Used by the administrative WR migration; idempotent.
	ConvertLegacyRole(ctx context.Context, from, to shift.RoleCode) (int64, error)
}

// TimeEntryRepository defines data access methods for clock segments.
type TimeEntryRepository interface {
	Create(ctx context.Context, e TimeEntry) (TimeEntry, error)

	// GetActive returns the open entry for an assignment, or nil
	GetActive(ctx context.Context, assignmentID string) (*TimeEntry, error)

	// Close stamps clock_out and clears is_active
	Close(ctx context.Context, id string, clockOut time.Time) error

	ListByAssignment(ctx context.Context, assignmentID string) ([]TimeEntry, error)
}
