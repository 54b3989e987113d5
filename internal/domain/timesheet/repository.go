package timesheet

import (
	"context"
	"time"
)

// TimesheetRepository defines data access methods for timesheets. A unique
// index on shift_id guarantees at most one timesheet per shift.
type TimesheetRepository interface {
	Create(ctx context.Context, t Timesheet) (Timesheet, error)

	GetByID(ctx context.Context, id string) (Timesheet, error)

	// GetByShiftID returns nil when no timesheet exists for the shift
	GetByShiftID(ctx context.Context, shiftID string) (*Timesheet, error)

	// SetCompanyApproval persists signature, notes, approver, and the move
	// to pending_manager_approval in one statement
	SetCompanyApproval(ctx context.Context, id, signature, notes, approvedBy string, approvedAt time.Time) error

	// SetManagerApproval persists approver and the move to completed
	SetManagerApproval(ctx context.Context, id, approvedBy string, approvedAt time.Time) error

	SetRejected(ctx context.Context, id, rejectedBy, reason string, rejectedAt time.Time) error

	SetSignedPDFURL(ctx context.Context, id, url string) error

	// Visibility-scoped listings
	ListAll(ctx context.Context, filter TimesheetFilter) ([]Timesheet, int64, error)
	ListForCompany(ctx context.Context, companyID string, filter TimesheetFilter) ([]Timesheet, int64, error)
	// ListForCrewChief returns timesheets for shifts where the user holds a
	// crew chief assignment
	ListForCrewChief(ctx context.Context, userID string, filter TimesheetFilter) ([]Timesheet, int64, error)
}
