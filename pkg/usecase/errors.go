package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Auth errors
	ErrUnauthenticated  = errors.New("authentication required")
	ErrPermissionDenied = errors.New("administrator privileges required")

	// Validation errors
	ErrInvalidArgument = errors.New("invalid argument")

	// Not found errors
	ErrSessionNotFound       = errors.New("session not found")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrLearningPointNotFound = errors.New("learning point not found")

	// Lifecycle errors
	ErrSessionExists    = errors.New("session already exists for that date")
	ErrSessionNotActive = errors.New("session is not active")
	ErrSessionNotEnded  = errors.New("session has not ended")
	ErrSessionEnded     = errors.New("session already ended")
	ErrPointLocked      = errors.New("learning point is locked")

	// Sync preconditions
	ErrSheetNotConfigured = errors.New("spreadsheet is not configured")
)
