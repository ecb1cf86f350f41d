package services

import "errors"

// Service operations return one of these sentinels (possibly wrapped) so
// handlers can map them to HTTP status codes with errors.Is. Anything
// else is an upstream store/storage failure.
var (
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters with uppercase, lowercase and a digit")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPendingApproval    = errors.New("account is waiting for admin approval")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyResolved    = errors.New("report has already been resolved")
	ErrLocationRequired   = errors.New("report location is required")
	ErrUploadFailed       = errors.New("photo upload failed")
	ErrInvalidCode        = errors.New("invalid reset code")
	ErrCodeExpired        = errors.New("reset code has expired")
	ErrCodeUsed           = errors.New("reset code has already been used")
	ErrValidation         = errors.New("invalid input")
)
