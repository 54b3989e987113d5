package job

import "time"

// Job is a client company engagement that owns shifts.
type Job struct {
	ID          string
	CompanyID   string
	Name        string
	Description *string
	Location    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	CompanyName *string
}
