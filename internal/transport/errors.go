package transport

import "errors"

var (
	// ErrTransport wraps connection failures, timeouts, and malformed wire
	// responses surfaced by an outbound call. Callers match it with
	// [errors.Is]; no retry happens at this layer.
	ErrTransport = errors.New("transport failure")

	// ErrClientNotStarted is returned by Do when the client has not been
	// started yet.
	ErrClientNotStarted = errors.New("transport client is not started")

	// ErrClientStopped is returned by Do after the client has been stopped.
	ErrClientStopped = errors.New("transport client is stopped")

	// ErrInvalidWorkerBounds indicates unusable pool bounds passed to
	// NewClient (non-positive, or min greater than max).
	ErrInvalidWorkerBounds = errors.New("invalid worker pool bounds")
)
