package endpoint

import (
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/httpbridge/internal/binding"
	"github.com/MKhiriev/httpbridge/internal/config"
	"github.com/MKhiriev/httpbridge/internal/consumer"
	"github.com/MKhiriev/httpbridge/internal/logger"
	"github.com/MKhiriev/httpbridge/internal/producer"
	"github.com/MKhiriev/httpbridge/internal/transport"
)

// Endpoint is a resolved logical address plus its immutable option set. It
// is the factory for producers and consumers and the owner of the
// per-endpoint binding instance.
type Endpoint struct {
	address  string
	url      *url.URL
	opts     Options
	defaults config.Component
	log      *logger.Logger

	// bnd is created lazily on first use; the atomic load keeps repeat
	// callers off bindingMu, which only serializes the first creation.
	bindingMu sync.Mutex
	bnd       atomic.Pointer[binding.Binding]
}

func newEndpoint(address string, u *url.URL, opts Options, defaults config.Component, log *logger.Logger) *Endpoint {
	return &Endpoint{
		address:  address,
		url:      u,
		opts:     opts,
		defaults: defaults,
		log:      log,
	}
}

// Address returns the normalized endpoint address.
func (e *Endpoint) Address() string {
	return e.address
}

// Options returns a copy of the endpoint's option set.
func (e *Endpoint) Options() Options {
	return e.opts.clone()
}

// Binding returns the endpoint's translator, creating it on first use.
// Safe under concurrent first-use from any number of callers; after that
// the lock is never taken again.
func (e *Endpoint) Binding() *binding.Binding {
	if b := e.bnd.Load(); b != nil {
		return b
	}

	e.bindingMu.Lock()
	defer e.bindingMu.Unlock()

	if b := e.bnd.Load(); b != nil {
		return b
	}

	b := binding.New(
		binding.DefaultHeaderFilter(),
		e.opts.throwExceptionOnFailure(),
		e.opts.TransferException,
	)
	e.bnd.Store(b)
	return b
}

// CreateProducer returns a producer for outbound calls against the
// endpoint. With a pre-supplied shared client the producer references that
// client (started idempotently, never stopped here); otherwise every call
// creates and starts a dedicated client with the endpoint's effective
// worker bounds.
func (e *Endpoint) CreateProducer() (producer.Producer, error) {
	var client *transport.Client
	ownsClient := false

	if e.opts.SharedClient != nil {
		client = e.opts.SharedClient
		if err := client.Start(); err != nil {
			return nil, fmt.Errorf("start shared client: %w", err)
		}
	} else {
		dedicated, err := e.newDedicatedClient()
		if err != nil {
			return nil, err
		}
		if err := dedicated.Start(); err != nil {
			return nil, fmt.Errorf("start client: %w", err)
		}
		client = dedicated
		ownsClient = true
	}

	if e.opts.EnableJMX {
		stats := client.PoolStats()
		e.log.Debug().
			Str("endpoint", e.address).
			Int("workers", stats.Workers).
			Int("min_workers", stats.MinWorkers).
			Int("max_workers", stats.MaxWorkers).
			Msg("client pool stats")
	}

	p := producer.New(e.url, client, ownsClient, e.Binding(), e.log)
	if e.opts.Synchronous {
		return producer.NewSynchronous(p), nil
	}
	return p, nil
}

// newDedicatedClient builds a client with endpoint-level worker bounds
// taking precedence over the component defaults.
func (e *Endpoint) newDedicatedClient() (*transport.Client, error) {
	min := e.defaults.HTTPClientMinThreads
	max := e.defaults.HTTPClientMaxThreads
	if e.opts.HTTPClientMinThreads != nil {
		min = *e.opts.HTTPClientMinThreads
	}
	if e.opts.HTTPClientMaxThreads != nil {
		max = *e.opts.HTTPClientMaxThreads
	}

	timeout := e.defaults.RequestTimeout
	if e.opts.RequestTimeout > 0 {
		timeout = e.opts.RequestTimeout
	}

	client, err := transport.NewClient(transport.Config{
		MinWorkers: min,
		MaxWorkers: max,
		Timeout:    timeout,
		TLS:        e.opts.TLS,
		Params:     e.opts.HTTPClientParameters,
	}, e.log)
	if err != nil {
		return nil, fmt.Errorf("create client for %s: %w", e.address, err)
	}
	return client, nil
}

// CreateConsumer binds h at the endpoint's address and path. The returned
// consumer is not started; faults may be nil to log them.
func (e *Endpoint) CreateConsumer(h consumer.Handler, faults consumer.FaultReporter) (*consumer.Consumer, error) {
	continuation := e.defaults.ContinuationTimeout
	if e.opts.ContinuationTimeout != nil {
		continuation = *e.opts.ContinuationTimeout
	}

	return consumer.New(consumer.Config{
		Addr:                e.url.Host,
		PathPattern:         consumerPattern(e.url.Path),
		SessionSupport:      e.opts.SessionSupport,
		MultipartFilter:     e.opts.EnableMultipartFilter,
		SendServerVersion:   e.opts.sendServerVersion(),
		SendDateHeader:      e.opts.SendDateHeader,
		TransferException:   e.opts.TransferException,
		ContinuationTimeout: continuation,
		UseContinuation:     e.opts.useContinuation(),
	}, h, faults, e.log)
}

func consumerPattern(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
