package assignment

import "context"

// StaffingService owns the assignment registry, the conflict detector, the
// per-worker clock state machine, and the shift completion detector.
type StaffingService interface {
	// AssignWorker binds a worker to a shift in a role after duplicate,
	// eligibility, and time-conflict checks
	AssignWorker(ctx context.Context, req AssignWorkerRequest) (AssignmentResponse, error)

	// UnassignWorker removes an assignment that has no clock activity yet
	UnassignWorker(ctx context.Context, assignmentID string) error

	// MarkNoShow terminates an assignment that never clocked in
	MarkNoShow(ctx context.Context, assignmentID string) (AssignmentResponse, error)

	// ClockIn opens a new time entry for the assignment
	ClockIn(ctx context.Context, assignmentID string) (AssignmentResponse, error)

	// ClockOut closes the active time entry
	ClockOut(ctx context.Context, assignmentID string) (AssignmentResponse, error)

	// EndWorkerShift force-closes any open entry and terminates participation
	EndWorkerShift(ctx context.Context, assignmentID string) (AssignmentResponse, error)

	// ListShiftAssignments returns every assignment on a shift
	ListShiftAssignments(ctx context.Context, shiftID string) (ListAssignmentsResponse, error)

	// RecheckCompletion re-evaluates the completion detector for a shift.
	// Idempotent; administrative recovery path.
	RecheckCompletion(ctx context.Context, shiftID string) (bool, error)
}
