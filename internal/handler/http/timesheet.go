package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ApproveAsCompany(w http.ResponseWriter, r *http.Request)
	ApproveAsManager(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	RegeneratePDF(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

type createTimesheetRequest struct {
	ShiftID string `json:"shift_id"`
}

// Create implements TimesheetHandler.
func (h *timesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req createTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.ShiftID == "" {
		response.BadRequest(w, "shift_id is required", nil)
		return
	}

	result, err := h.timesheetService.Create(r.Context(), req.ShiftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet opened", result)
}

// Get implements TimesheetHandler.
func (h *timesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.Get(r.Context(), chi.URLParam(r, "timesheetID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements TimesheetHandler.
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.TimesheetFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	result, err := h.timesheetService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveAsCompany implements TimesheetHandler. A failed PDF generation
// still returns 200; the outcome travels in the response body.
func (h *timesheetHandlerImpl) ApproveAsCompany(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CompanyApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "timesheetID")

	result, err := h.timesheetService.ApproveAsCompany(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet approved", result)
}

// ApproveAsManager implements TimesheetHandler.
func (h *timesheetHandlerImpl) ApproveAsManager(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.ApproveAsManager(r.Context(), chi.URLParam(r, "timesheetID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet completed", result)
}

// Reject implements TimesheetHandler.
func (h *timesheetHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req timesheet.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "timesheetID")

	result, err := h.timesheetService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet rejected", result)
}

// RegeneratePDF implements TimesheetHandler.
func (h *timesheetHandlerImpl) RegeneratePDF(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.RegeneratePDF(r.Context(), chi.URLParam(r, "timesheetID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Signed document regenerated", result)
}
