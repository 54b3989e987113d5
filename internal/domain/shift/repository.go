package shift

import "context"

// ShiftRepository defines data access methods for shifts and their role
// requirements. Requirement counters live on the shift row.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)

	// GetByID retrieves a shift including job/company join fields
	GetByID(ctx context.Context, id string) (Shift, error)

	List(ctx context.Context, filter ShiftFilter) ([]Shift, int64, error)

	UpdateStatus(ctx context.Context, id string, status ShiftStatus) error

	// SetRequirements overwrites the six per-role counters
	SetRequirements(ctx context.Context, shiftID string, req ShiftRequirement) error

	// GetRequirements returns the stored counters (not normalized)
	GetRequirements(ctx context.Context, shiftID string) (ShiftRequirement, error)

	// ConvertLegacyRequirements folds legacy worker counts into stagehand
	// counts. Idempotent: rows without legacy counts are untouched.
	ConvertLegacyRequirements(ctx context.Context) (int64, error)
}
