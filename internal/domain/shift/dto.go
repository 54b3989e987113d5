package shift

import (
	"fmt"

	"github.com/shiftcrew/staffing-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type RoleCount struct {
	RoleCode      RoleCode `json:"role_code"`
	RequiredCount int      `json:"required_count"`
}

type SetRequirementsRequest struct {
	ShiftID string      `json:"-"`
	Counts  []RoleCount `json:"counts"`
}

func (r *SetRequirementsRequest) Validate() error {
	if validator.IsEmpty(r.ShiftID) {
		return fmt.Errorf("%w: shift id is required", ErrInvalidRequirement)
	}
	for _, c := range r.Counts {
		if !c.RoleCode.IsValid() {
			return fmt.Errorf("%w: unknown role code %q", ErrInvalidRequirement, c.RoleCode)
		}
		if c.RequiredCount < 0 {
			return fmt.Errorf("%w: %s count must not be negative", ErrInvalidRequirement, c.RoleCode)
		}
	}
	return nil
}

// Requirement turns the request into a ShiftRequirement, overwriting all six
// counters (unlisted roles reset to zero).
func (r *SetRequirementsRequest) Requirement() ShiftRequirement {
	return CountsToRequirement(r.Counts)
}

// CountsToRequirement folds a role count list into the six counters.
func CountsToRequirement(counts []RoleCount) ShiftRequirement {
	var req ShiftRequirement
	for _, c := range counts {
		switch c.RoleCode {
		case RoleCrewChief:
			req.CrewChiefs = c.RequiredCount
		case RoleStagehand:
			req.Stagehands = c.RequiredCount
		case RoleForkOperator:
			req.ForkOperators = c.RequiredCount
		case RoleReachForkOperator:
			req.ReachForkOperators = c.RequiredCount
		case RoleRigger:
			req.Riggers = c.RequiredCount
		case RoleGeneralLaborer:
			req.GeneralLaborers = c.RequiredCount
		}
	}
	return req
}

type CreateShiftRequest struct {
	JobID     string      `json:"job_id"`
	Date      string      `json:"date"`
	StartTime string      `json:"start_time"`
	EndTime   string      `json:"end_time"`
	Counts    []RoleCount `json:"counts"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{Field: "job_id", Message: "job_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	start, okStart := validator.IsValidDateTime(r.StartTime)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be an ISO8601 timestamp"})
	}
	end, okEnd := validator.IsValidDateTime(r.EndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be an ISO8601 timestamp"})
	}
	if okStart && okEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be after start_time"})
	}

	if len(errs) > 0 {
		return errs
	}

	for _, c := range r.Counts {
		if !c.RoleCode.IsValid() {
			return fmt.Errorf("%w: unknown role code %q", ErrInvalidRequirement, c.RoleCode)
		}
		if c.RequiredCount < 0 {
			return fmt.Errorf("%w: %s count must not be negative", ErrInvalidRequirement, c.RoleCode)
		}
	}

	return nil
}

type ShiftFilter struct {
	JobID     *string
	CompanyID *string
	Status    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

type RequirementResponse struct {
	ShiftID string      `json:"shift_id"`
	Counts  []RoleCount `json:"counts"`
	Total   int         `json:"total"`
}

type FulfillmentResponse struct {
	ShiftID     string      `json:"shift_id"`
	Required    int         `json:"required"`
	Assigned    int         `json:"assigned"`
	Fulfillment Fulfillment `json:"fulfillment"`
}

type ShiftResponse struct {
	ID          string       `json:"id"`
	JobID       string       `json:"job_id"`
	JobName     *string      `json:"job_name,omitempty"`
	CompanyName *string      `json:"company_name,omitempty"`
	Date        string       `json:"date"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	Status      ShiftStatus  `json:"status"`
	Counts      []RoleCount  `json:"counts"`
	Required    int          `json:"required"`
	Assigned    *int         `json:"assigned,omitempty"`
	Fulfillment *Fulfillment `json:"fulfillment,omitempty"`
}

type ListShiftsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Shifts     []ShiftResponse `json:"shifts"`
}

type MigrationResult struct {
	RequirementsConverted int64 `json:"requirements_converted"`
	AssignmentsConverted  int64 `json:"assignments_converted"`
}
