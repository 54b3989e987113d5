package assignment

import (
	"errors"
	"fmt"
	"time"
)

// Assignment domain errors
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAlreadyAssigned    = errors.New("worker is already assigned to this shift")
	ErrNotEligible        = errors.New("worker is not eligible for this role")
	ErrAssignmentLocked   = errors.New("assignment has clock activity and cannot be removed")
	ErrInvalidTransition  = errors.New("operation not permitted from the current status")
	ErrAlreadyEnded       = errors.New("worker shift has already been ended")
	ErrTimeConflict       = errors.New("worker has an overlapping assignment")
)

// TimeConflictError carries the conflicting assignment's job, company, and
// time window so the caller can decide what to do.
type TimeConflictError struct {
	CompanyName string
	JobName     string
	StartTime   time.Time
	EndTime     time.Time
}

func (e *TimeConflictError) Error() string {
	return fmt.Sprintf("worker has an overlapping assignment on %q (%s) from %s to %s",
		e.JobName, e.CompanyName,
		e.StartTime.Format("15:04"), e.EndTime.Format("15:04"))
}

// Is makes the structured conflict match errors.Is(err, ErrTimeConflict).
func (e *TimeConflictError) Is(target error) bool {
	return target == ErrTimeConflict
}
