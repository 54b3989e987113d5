package assignment

import (
	"fmt"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/validator"
)

// ========================================
// STAFFING DTOs
// ========================================

type AssignWorkerRequest struct {
	ShiftID  string         `json:"shift_id"`
	UserID   string         `json:"user_id"`
	RoleCode shift.RoleCode `json:"role_code"`
}

func (r *AssignWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "shift_id is required"})
	}
	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if !r.RoleCode.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role_code",
			Message: fmt.Sprintf("role_code must be one of CC, SH, FO, RFO, RG, GL (got %q)", r.RoleCode),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimeEntryResponse struct {
	EntryNumber int     `json:"entry_number"`
	ClockIn     *string `json:"clock_in"`
	ClockOut    *string `json:"clock_out"`
	IsActive    bool    `json:"is_active"`
	Minutes     int     `json:"minutes"`
}

type AssignmentResponse struct {
	ID            string              `json:"id"`
	ShiftID       string              `json:"shift_id"`
	UserID        string              `json:"user_id"`
	WorkerName    *string             `json:"worker_name,omitempty"`
	RoleCode      shift.RoleCode      `json:"role_code"`
	RoleName      string              `json:"role_name"`
	Status        Status              `json:"status"`
	DisplayStatus Status              `json:"display_status"`
	TimeEntries   []TimeEntryResponse `json:"time_entries,omitempty"`
	WorkedMinutes int                 `json:"worked_minutes"`

	// ShiftCompleted reports whether this transition wound the shift down
	// and produced a timesheet.
	ShiftCompleted bool `json:"shift_completed,omitempty"`
}

type ConflictDetail struct {
	CompanyName string `json:"company_name"`
	JobName     string `json:"job_name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type ListAssignmentsResponse struct {
	ShiftID     string               `json:"shift_id"`
	Assignments []AssignmentResponse `json:"assignments"`
}
