package assignment

import (
	"time"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
)

type Status string

const (
	StatusAssigned   Status = "assigned"
	StatusClockedIn  Status = "clocked_in"
	StatusClockedOut Status = "clocked_out"
	StatusShiftEnded Status = "shift_ended"
	StatusNoShow     Status = "no_show"

	// StatusOnBreak is a display label only. The engine stores clocked_out
	// between work segments; callers present clocked_out with prior entries
	// as "on break". A worker whose day is actually over looks the same
	// until end_shift is called.
	StatusOnBreak Status = "on_break"
)

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusShiftEnded || s == StatusNoShow
}

// TimeEntry is one work segment of an assignment. Segments are ordered by
// EntryNumber; breaks separate successive segments. At most one entry per
// assignment is active at any moment.
type TimeEntry struct {
	ID           string
	AssignmentID string
	EntryNumber  int
	ClockIn      *time.Time
	ClockOut     *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Minutes returns the closed segment length in whole minutes, zero while open.
func (e TimeEntry) Minutes() int {
	if e.ClockIn == nil || e.ClockOut == nil {
		return 0
	}
	return int(e.ClockOut.Sub(*e.ClockIn).Minutes())
}

// Assignment binds one worker to one shift in one role. At most one
// assignment exists per (shift, worker) pair.
type Assignment struct {
	ID          string
	ShiftID     string
	UserID      string
	RoleCode    shift.RoleCode
	Status      Status
	TimeEntries []TimeEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	WorkerName  *string
	ShiftDate   *time.Time
	ShiftStart  *time.Time
	ShiftEnd    *time.Time
	JobName     *string
	CompanyName *string
}

// ActiveEntry returns the open time entry, or nil if none.
func (a *Assignment) ActiveEntry() *TimeEntry {
	for i := range a.TimeEntries {
		if a.TimeEntries[i].IsActive {
			return &a.TimeEntries[i]
		}
	}
	return nil
}

// NextEntryNumber is the entry number a new segment would take.
func (a *Assignment) NextEntryNumber() int {
	max := 0
	for _, e := range a.TimeEntries {
		if e.EntryNumber > max {
			max = e.EntryNumber
		}
	}
	return max + 1
}

// WorkedMinutes sums the closed segments.
func (a *Assignment) WorkedMinutes() int {
	total := 0
	for _, e := range a.TimeEntries {
		total += e.Minutes()
	}
	return total
}

// DisplayStatus maps clocked_out with prior entries to the on-break label.
func (a *Assignment) DisplayStatus() Status {
	if a.Status == StatusClockedOut && len(a.TimeEntries) > 0 {
		return StatusOnBreak
	}
	return a.Status
}
