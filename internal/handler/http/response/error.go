package response

import (
	"errors"
	"net/http"
	"time"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/auth"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/job"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/report"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/shift"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A time conflict carries the competing assignment's window
	var conflict *assignment.TimeConflictError
	if errors.As(err, &conflict) {
		Conflict(w, err.Error(), map[string]string{
			"company_name": conflict.CompanyName,
			"job_name":     conflict.JobName,
			"start_time":   conflict.StartTime.Format(time.RFC3339),
			"end_time":     conflict.EndTime.Format(time.RFC3339),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrOAuthExchangeFailed):
		Unauthorized(w, "OAuth exchange failed")

	// Actor / permission errors
	case errors.Is(err, user.ErrInvalidActor):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrAdminRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrStaffRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidRequirement):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, shift.ErrShiftCancelled):
		Conflict(w, "Shift is cancelled", nil)
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")

	// Staffing domain errors
	case errors.Is(err, assignment.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, assignment.ErrAlreadyAssigned):
		Conflict(w, "Worker is already assigned to this shift", nil)
	case errors.Is(err, assignment.ErrNotEligible):
		writeJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "NOT_ELIGIBLE",
				Message: err.Error(),
			},
		})
	case errors.Is(err, assignment.ErrAssignmentLocked):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, assignment.ErrInvalidTransition):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, assignment.ErrAlreadyEnded):
		Conflict(w, err.Error(), nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrTimesheetExists):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrInvalidState):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrMissingSignature):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrNoTimesheets):
		NotFound(w, "No timesheets match the export filter")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
