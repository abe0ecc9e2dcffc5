package config

import "errors"

// Validation errors returned by [Component.validate] when the merged
// configuration is incomplete or inconsistent.
var (
	// ErrInvalidWorkerBounds indicates unusable worker-pool bounds
	// (non-positive, or min greater than max).
	ErrInvalidWorkerBounds = errors.New("invalid worker pool bounds")
	// ErrInvalidRequestTimeout indicates a non-positive outbound request
	// timeout.
	ErrInvalidRequestTimeout = errors.New("invalid request timeout")
)
