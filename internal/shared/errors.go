package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStatus indicates a status transition not allowed by policy.
	ErrInvalidStatus = errors.New("invalid status transition")
	// ErrValidation indicates a request payload that failed validation.
	ErrValidation = errors.New("validation failed")
)
