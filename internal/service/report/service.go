package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shiftcrew/staffing-backend-go/internal/domain/assignment"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/report"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/timesheet"
	"github.com/shiftcrew/staffing-backend-go/internal/domain/user"
	"github.com/xuri/excelize/v2"
)

const exportLimit = 1000

type ReportServiceImpl struct {
	timesheet.TimesheetRepository
	assignment.AssignmentRepository
}

func NewReportService(
	timesheetRepo timesheet.TimesheetRepository,
	assignmentRepo assignment.AssignmentRepository,
) report.ReportService {
	return &ReportServiceImpl{
		TimesheetRepository:  timesheetRepo,
		AssignmentRepository: assignmentRepo,
	}
}

// ExportTimesheets implements report.ReportService. One row per worker per
// timesheet, visibility scoped the same way as the timesheet listing.
func (s *ReportServiceImpl) ExportTimesheets(ctx context.Context, filter timesheet.TimesheetFilter) (*bytes.Buffer, string, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, "", err
	}
	if !user.HasPermission(actor.Role, user.PermissionReportsView) {
		return nil, "", user.ErrForbidden
	}

	filter.Page = 1
	filter.Limit = exportLimit

	var list []timesheet.Timesheet
	switch {
	case actor.IsStaff():
		list, _, err = s.TimesheetRepository.ListAll(ctx, filter)
	case actor.Role == user.RoleCompanyUser:
		if actor.CompanyID == nil {
			return nil, "", user.ErrInvalidActor
		}
		list, _, err = s.TimesheetRepository.ListForCompany(ctx, *actor.CompanyID, filter)
	case actor.Role == user.RoleCrewChief:
		list, _, err = s.TimesheetRepository.ListForCrewChief(ctx, actor.ID, filter)
	default:
		return nil, "", user.ErrForbidden
	}
	if err != nil {
		return nil, "", err
	}
	if len(list) == 0 {
		return nil, "", report.ErrNoTimesheets
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Timesheets"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}

	headers := []string{
		"Timesheet ID", "Job", "Company", "Shift Date", "Timesheet Status",
		"Worker", "Role", "Worker Status", "Worked Minutes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("%w: %v", report.ErrExportFailed, err)
		}
	}

	row := 2
	for i := range list {
		t := &list[i]

		jobName, companyName, shiftDate := "", "", ""
		if t.JobName != nil {
			jobName = *t.JobName
		}
		if t.CompanyName != nil {
			companyName = *t.CompanyName
		}
		if t.ShiftDate != nil {
			shiftDate = t.ShiftDate.Format("2006-01-02")
		}

		workers, err := s.AssignmentRepository.ListByShift(ctx, t.ShiftID)
		if err != nil {
			return nil, "", err
		}

		if len(workers) == 0 {
			writeRow(f, sheet, row, []interface{}{t.ID, jobName, companyName, shiftDate, string(t.Status), "", "", "", 0})
			row++
			continue
		}

		for j := range workers {
			a := &workers[j]
			workerName := a.UserID
			if a.WorkerName != nil {
				workerName = *a.WorkerName
			}
			writeRow(f, sheet, row, []interface{}{
				t.ID, jobName, companyName, shiftDate, string(t.Status),
				workerName, string(a.RoleCode), string(a.Status), a.WorkedMinutes(),
			})
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", report.ErrExportFailed, err)
	}

	filename := fmt.Sprintf("timesheets_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	return buf, filename, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
