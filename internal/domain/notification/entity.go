package notification

import "time"

type Type string

const (
	TypeWorkerAssigned     Type = "worker_assigned"
	TypeWorkerUnassigned   Type = "worker_unassigned"
	TypeTimesheetSubmitted Type = "timesheet_submitted"
	TypeTimesheetApproved  Type = "timesheet_approved"
	TypeTimesheetRejected  Type = "timesheet_rejected"
)

type Notification struct {
	ID          string
	UserID      string
	Type        Type
	Title       string
	Message     string
	ReferenceID *string
	IsRead      bool
	CreatedAt   time.Time
}
