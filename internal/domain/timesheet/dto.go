package timesheet

import (
	"github.com/shiftcrew/staffing-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

type CompanyApprovalRequest struct {
	ID        string `json:"-"`
	Signature string `json:"signature"`
	Notes     string `json:"notes"`
}

func (r *CompanyApprovalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Signature) {
		errs = append(errs, validator.ValidationError{
			Field:   "signature",
			Message: "signature is required",
		})
	} else if !validator.IsValidSignaturePayload(r.Signature) {
		errs = append(errs, validator.ValidationError{
			Field:   "signature",
			Message: "signature must be a base64 png or jpeg data URL",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	if validator.IsEmpty(r.Reason) {
		return validator.ValidationErrors{{
			Field:   "reason",
			Message: "rejection reason is required",
		}}
	}
	return nil
}

type TimesheetFilter struct {
	Status    *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

type WorkerLine struct {
	UserID        string  `json:"user_id"`
	WorkerName    *string `json:"worker_name,omitempty"`
	RoleCode      string  `json:"role_code"`
	Status        string  `json:"status"`
	WorkedMinutes int     `json:"worked_minutes"`
}

type TimesheetResponse struct {
	ID                string       `json:"id"`
	ShiftID           string       `json:"shift_id"`
	JobName           *string      `json:"job_name,omitempty"`
	CompanyName       *string      `json:"company_name,omitempty"`
	ShiftDate         *string      `json:"shift_date,omitempty"`
	Status            Status       `json:"status"`
	SubmittedBy       string       `json:"submitted_by"`
	SubmittedAt       string       `json:"submitted_at"`
	CompanyApprovedBy *string      `json:"company_approved_by,omitempty"`
	CompanyApprovedAt *string      `json:"company_approved_at,omitempty"`
	CompanyNotes      *string      `json:"company_notes,omitempty"`
	ManagerApprovedBy *string      `json:"manager_approved_by,omitempty"`
	ManagerApprovedAt *string      `json:"manager_approved_at,omitempty"`
	RejectedBy        *string      `json:"rejected_by,omitempty"`
	RejectionReason   *string      `json:"rejection_reason,omitempty"`
	SignedPDFURL      *string      `json:"signed_pdf_url,omitempty"`
	Workers           []WorkerLine `json:"workers,omitempty"`
}

// CompanyApprovalResponse distinguishes "the approval happened, but the PDF
// did not" from "nothing happened".
type CompanyApprovalResponse struct {
	Timesheet    TimesheetResponse `json:"timesheet"`
	PDFGenerated bool              `json:"pdf_generated"`
	PDFError     *string           `json:"pdf_error,omitempty"`
}

type ListTimesheetsResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	Timesheets []TimesheetResponse `json:"timesheets"`
}
