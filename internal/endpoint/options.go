package endpoint

import (
	"time"

	"github.com/MKhiriev/httpbridge/internal/transport"
)

// Options carries endpoint-level settings. Zero-valued pointer fields mean
// "unset"; resolution applies defaults and validates option pairs. Options
// are immutable once an endpoint is created.
type Options struct {
	// SessionSupport enables the session-cookie middleware on the consumer
	// side.
	SessionSupport bool

	// HTTPClientMinThreads and HTTPClientMaxThreads bound a dedicated
	// transport client's worker pool. Both-or-neither: setting exactly one
	// fails resolution. Endpoint values take precedence over component
	// defaults.
	HTTPClientMinThreads *int
	HTTPClientMaxThreads *int

	// EnableJMX logs client pool stats at debug level on each producer
	// creation. The key name is kept for address compatibility with earlier
	// bridge deployments.
	EnableJMX bool

	// EnableMultipartFilter collapses inbound multipart requests into their
	// first part before dispatch.
	EnableMultipartFilter bool

	// SendServerVersion controls the Server response header. Default true.
	SendServerVersion *bool

	// SendDateHeader controls the Date response header. Default false.
	SendDateHeader bool

	// ContinuationTimeout bounds how long a consumer holds an inbound call
	// open awaiting the handler. Values <= 0 never expire. Defaults to the
	// component-level continuation timeout.
	ContinuationTimeout *time.Duration

	// UseContinuation selects asynchronous dispatch with expiry on the
	// consumer side. Default true; false falls back to inline dispatch.
	UseContinuation *bool

	// Synchronous wraps producers in a blocking one-call-at-a-time
	// decorator.
	Synchronous bool

	// ThrowExceptionOnFailure makes producers fail on 4xx/5xx responses.
	// Default true.
	ThrowExceptionOnFailure *bool

	// TransferException carries handler failure detail across the wire and
	// reconstructs it on the producer side.
	TransferException bool

	// RequestTimeout bounds a single outbound call on dedicated clients.
	// Defaults to the component-level request timeout.
	RequestTimeout time.Duration

	// TLS configures dedicated clients for https endpoints.
	TLS *transport.TLSParams

	// SharedClient, when set, is reused by every producer of the endpoint.
	// It is started (idempotently) on first producer creation, and stopping
	// it remains the supplier's responsibility.
	SharedClient *transport.Client

	// HTTPClientParameters carries free-form client settings, also
	// reachable as httpClient.-prefixed address keys. Keys are validated
	// against the transport package's enumerated table at resolution time.
	HTTPClientParameters map[string]string
}

// clone returns a deep-enough copy so a resolved endpoint cannot be mutated
// through the caller's Options value.
func (o Options) clone() Options {
	out := o
	if o.HTTPClientParameters != nil {
		params := make(map[string]string, len(o.HTTPClientParameters))
		for k, v := range o.HTTPClientParameters {
			params[k] = v
		}
		out.HTTPClientParameters = params
	}
	return out
}

// sendServerVersion resolves the tri-state flag with its default.
func (o *Options) sendServerVersion() bool {
	if o.SendServerVersion == nil {
		return true
	}
	return *o.SendServerVersion
}

// useContinuation resolves the tri-state flag with its default.
func (o *Options) useContinuation() bool {
	if o.UseContinuation == nil {
		return true
	}
	return *o.UseContinuation
}

// throwExceptionOnFailure resolves the tri-state flag with its default.
func (o *Options) throwExceptionOnFailure() bool {
	if o.ThrowExceptionOnFailure == nil {
		return true
	}
	return *o.ThrowExceptionOnFailure
}
