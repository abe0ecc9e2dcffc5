package consumer

import "errors"

var (
	// ErrHandler wraps a user handler failure reported to the fault channel.
	// The transport side sees an error response instead.
	ErrHandler = errors.New("handler failed")

	// ErrContinuationExpired wraps a request that exceeded the continuation
	// timeout before the handler produced a result.
	ErrContinuationExpired = errors.New("continuation timeout expired")

	// ErrAlreadyStarted is returned by Start when the consumer is running.
	ErrAlreadyStarted = errors.New("consumer already started")
)
