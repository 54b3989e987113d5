package shift

import "time"

type ShiftStatus string

const (
	ShiftStatusScheduled  ShiftStatus = "scheduled"
	ShiftStatusInProgress ShiftStatus = "in_progress"
	ShiftStatusCompleted  ShiftStatus = "completed"
	ShiftStatusCancelled  ShiftStatus = "cancelled"
)

// ShiftRequirement holds the six per-role worker counts a shift needs.
// A shift always nominally requires at least one crew chief; that is
// enforced by Normalized, not by a storage constraint.
type ShiftRequirement struct {
	CrewChiefs         int
	Stagehands         int
	ForkOperators      int
	ReachForkOperators int
	Riggers            int
	GeneralLaborers    int

	// LegacyWorkers carries pre-migration WR counts until the
	// administrative repair folds them into Stagehands.
	LegacyWorkers int
}

// Normalized returns the requirement with the crew chief floor applied.
func (r ShiftRequirement) Normalized() ShiftRequirement {
	if r.CrewChiefs < 1 {
		r.CrewChiefs = 1
	}
	return r
}

// Total is the sum of the six role counters after normalization.
func (r ShiftRequirement) Total() int {
	n := r.Normalized()
	return n.CrewChiefs + n.Stagehands + n.ForkOperators + n.ReachForkOperators + n.Riggers + n.GeneralLaborers
}

// ForRole returns the stored count for a role code.
func (r ShiftRequirement) ForRole(code RoleCode) int {
	switch code {
	case RoleCrewChief:
		return r.CrewChiefs
	case RoleStagehand:
		return r.Stagehands
	case RoleForkOperator:
		return r.ForkOperators
	case RoleReachForkOperator:
		return r.ReachForkOperators
	case RoleRigger:
		return r.Riggers
	case RoleGeneralLaborer:
		return r.GeneralLaborers
	}
	return 0
}

type Shift struct {
	ID           string
	JobID        string
	Date         time.Time // working day, truncated to midnight
	StartTime    time.Time
	EndTime      time.Time
	Status       ShiftStatus
	Requirements ShiftRequirement
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	JobName     *string
	CompanyID   *string
	CompanyName *string
}

// Overlaps reports whether two [start, end) windows intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
