package http

import (
	"fmt"
	"net/http"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/report"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	ExportTimesheets(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportTimesheets implements ReportHandler. Streams the workbook as an
// attachment rather than wrapping it in the JSON envelope.
func (h *reportHandlerImpl) ExportTimesheets(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.TimesheetFilter{}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	buf, filename, err := h.reportService.ExportTimesheets(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	_, _ = buf.WriteTo(w)
}
