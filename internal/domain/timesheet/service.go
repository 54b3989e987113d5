package timesheet

import "context"

// TimesheetService owns the sequential two-party approval chain.
type TimesheetService interface {
	// Create explicitly opens a timesheet for a shift with no prior one
	Create(ctx context.Context, shiftID string) (TimesheetResponse, error)

	Get(ctx context.Context, id string) (TimesheetResponse, error)

	List(ctx context.Context, filter TimesheetFilter) (ListTimesheetsResponse, error)

	// ApproveAsCompany captures the company signature, advances to
	// pending_manager_approval, then requests the signed PDF. A failed PDF
	// call is reported in the response, never rolled back.
	ApproveAsCompany(ctx context.Context, req CompanyApprovalRequest) (CompanyApprovalResponse, error)

	// ApproveAsManager finishes the chain; completed is terminal
	ApproveAsManager(ctx context.Context, id string) (TimesheetResponse, error)

	// Reject terminates the chain from either pending state
	Reject(ctx context.Context, req RejectRequest) (TimesheetResponse, error)

	// RegeneratePDF retries document generation against the stored signature
	RegeneratePDF(ctx context.Context, id string) (TimesheetResponse, error)
}
