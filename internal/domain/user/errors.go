package user

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrForbidden     = errors.New("you are not allowed to perform this action")
	ErrInvalidActor  = errors.New("actor claims are missing or invalid")
	ErrEmailExists   = errors.New("email already registered")
	ErrAdminRequired = errors.New("administrator access required")
	ErrStaffRequired = errors.New("staff access required")
)
