package report

import (
	"bytes"
	"context"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
)

// ReportService exports timesheet data for offline review. Returns the
// workbook bytes and a suggested filename.
type ReportService interface {
	ExportTimesheets(ctx context.Context, filter timesheet.TimesheetFilter) (*bytes.Buffer, string, error)
}
