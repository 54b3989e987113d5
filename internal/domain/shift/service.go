package shift

import "context"

// ShiftService defines business logic for shifts, role requirements, and
// staffing fulfillment.
type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	GetShift(ctx context.Context, id string) (ShiftResponse, error)

	ListShifts(ctx context.Context, filter ShiftFilter) (ListShiftsResponse, error)

	// SetRequirements overwrites the six per-role counters for a shift
	SetRequirements(ctx context.Context, req SetRequirementsRequest) (RequirementResponse, error)

	// GetRequirements returns all six counters, defaulting unset counters to
	// zero except crew chief, which defaults to max(stored, 1)
	GetRequirements(ctx context.Context, shiftID string) (RequirementResponse, error)

	// GetFulfillment classifies current staffing adequacy for a shift
	GetFulfillment(ctx context.Context, shiftID string) (FulfillmentResponse, error)

	// MigrateLegacyRoles converts retired WR role data into stagehand data.
	// Administrative, idempotent batch operation.
	MigrateLegacyRoles(ctx context.Context) (MigrationResult, error)
}
