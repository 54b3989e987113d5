package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/handler/http/response"
)

type StaffingHandler interface {
	Assign(w http.ResponseWriter, r *http.Request)
	Unassign(w http.ResponseWriter, r *http.Request)
	ListByShift(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	EndShift(w http.ResponseWriter, r *http.Request)
	MarkNoShow(w http.ResponseWriter, r *http.Request)
	RecheckCompletion(w http.ResponseWriter, r *http.Request)
}

type staffingHandlerImpl struct {
	staffingService assignment.StaffingService
}

func NewStaffingHandler(staffingService assignment.StaffingService) StaffingHandler {
	return &staffingHandlerImpl{
		staffingService: staffingService,
	}
}

// Assign implements StaffingHandler.
func (h *staffingHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignment.AssignWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ShiftID = chi.URLParam(r, "shiftID")

	result, err := h.staffingService.AssignWorker(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Worker assigned", result)
}

// Unassign implements StaffingHandler.
func (h *staffingHandlerImpl) Unassign(w http.ResponseWriter, r *http.Request) {
	if err := h.staffingService.UnassignWorker(r.Context(), chi.URLParam(r, "assignmentID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker unassigned", nil)
}

// ListByShift implements StaffingHandler.
func (h *staffingHandlerImpl) ListByShift(w http.ResponseWriter, r *http.Request) {
	result, err := h.staffingService.ListShiftAssignments(r.Context(), chi.URLParam(r, "shiftID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockIn implements StaffingHandler.
func (h *staffingHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	result, err := h.staffingService.ClockIn(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked in", result)
}

// ClockOut implements StaffingHandler.
func (h *staffingHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	result, err := h.staffingService.ClockOut(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", result)
}

// EndShift implements StaffingHandler.
func (h *staffingHandlerImpl) EndShift(w http.ResponseWriter, r *http.Request) {
	result, err := h.staffingService.EndWorkerShift(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker shift ended", result)
}

// MarkNoShow implements StaffingHandler.
func (h *staffingHandlerImpl) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	result, err := h.staffingService.MarkNoShow(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Worker marked as no-show", result)
}

// RecheckCompletion implements StaffingHandler.
func (h *staffingHandlerImpl) RecheckCompletion(w http.ResponseWriter, r *http.Request) {
	completed, err := h.staffingService.RecheckCompletion(r.Context(), chi.URLParam(r, "shiftID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]bool{"completed": completed})
}
