package timesheet

import "time"

type Status string

const (
	StatusDraft                  Status = "draft"
	StatusPendingCompanyApproval Status = "pending_company_approval"
	StatusPendingManagerApproval Status = "pending_manager_approval"
	StatusCompleted              Status = "completed"
	StatusRejected               Status = "rejected"
)

// IsTerminal reports whether the approval chain is finished.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// IsPending reports whether the timesheet awaits an approval decision.
func (s Status) IsPending() bool {
	return s == StatusPendingCompanyApproval || s == StatusPendingManagerApproval
}

// Timesheet is the single approval record for one shift's aggregated work
// time. One per shift; immutable once completed.
type Timesheet struct {
	ID      string
	ShiftID string
	Status  Status

	SubmittedBy string
	SubmittedAt time.Time

	CompanySignature  *string
	CompanyNotes      *string
	CompanyApprovedBy *string
	CompanyApprovedAt *time.Time

	ManagerApprovedBy *string
	ManagerApprovedAt *time.Time

	RejectedBy      *string
	RejectedAt      *time.Time
	RejectionReason *string

	SignedPDFURL *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO / Join
	JobName     *string
	CompanyID   *string
	CompanyName *string
	ShiftDate   *time.Time
}
