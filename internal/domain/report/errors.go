package report

import "errors"

var (
	ErrNoTimesheets = errors.New("no timesheets match the export filter")
	ErrExportFailed = errors.New("failed to generate export workbook")
)
