package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrInvalidRequirement = errors.New("invalid role requirement")
	ErrShiftCancelled     = errors.New("shift is cancelled")
)
