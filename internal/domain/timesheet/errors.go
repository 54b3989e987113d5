package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrTimesheetExists   = errors.New("a timesheet already exists for this shift")
	ErrInvalidState      = errors.New("timesheet is not in a state that permits this transition")
	ErrMissingSignature  = errors.New("no captured signature to generate a document from")

	// ErrDocumentGeneration is reported alongside an already committed
	// transition; it never rolls the approval back.
	ErrDocumentGeneration = errors.New("signed document generation failed")
)
