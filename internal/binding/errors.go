// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package binding

import "errors"

// Sentinel errors produced by FromWire when fail-on-error-status is active.
// Callers match them with [errors.Is] for transport-agnostic handling.
var (
	// ErrBadRequest corresponds to a 400-class validation failure.
	ErrBadRequest = errors.New("remote rejected request")
	// ErrUnauthorized corresponds to 401.
	ErrUnauthorized = errors.New("remote requires authorization")
	// ErrForbidden corresponds to 403.
	ErrForbidden = errors.New("remote denied access")
	// ErrNotFound corresponds to 404.
	ErrNotFound = errors.New("remote resource not found")
	// ErrServiceUnavailable corresponds to 503, including the consumer-side
	// continuation expiry response.
	ErrServiceUnavailable = errors.New("remote service unavailable")
	// ErrInternalServer corresponds to 500.
	ErrInternalServer = errors.New("remote internal error")

	// ErrRemoteHandler is returned instead of a bare status error when the
	// remote side transferred its handler failure detail across the wire.
	ErrRemoteHandler = errors.New("remote handler failed")
)
