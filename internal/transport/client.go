package transport

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/httpbridge/internal/logger"
	"github.com/go-resty/resty/v2"
)

// Request is the wire-level representation of an outbound call.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is the wire-level representation of a completed call.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Config parameterizes a single Client.
type Config struct {
	// MinWorkers and MaxWorkers bound the client's worker pool. Both must be
	// positive with min <= max; the endpoint layer supplies effective values
	// (endpoint settings over component defaults).
	MinWorkers int
	MaxWorkers int

	// Timeout bounds a single outbound request, connection setup included.
	Timeout time.Duration

	// TLS, when non-nil, configures the client for HTTPS endpoints.
	TLS *TLSParams

	// Params carries free-form client settings bound through the enumerated
	// key table in params.go. Keys must be validated with [ValidateParams]
	// before the client is built.
	Params map[string]string
}

// Stats is a point-in-time snapshot of a client's pool.
type Stats struct {
	Workers    int
	MinWorkers int
	MaxWorkers int
}

// Client is a pooled outbound HTTP client. The zero value is not usable;
// construct with [NewClient] and call [Client.Start] before [Client.Do].
//
// A Client may be exclusively owned by one producer or shared by many. In
// shared mode Start is called by every producer creation and only the first
// call performs the physical start; Stop remains the supplier's decision.
type Client struct {
	rc   *resty.Client
	pool *pool
	cfg  Config
	log  *logger.Logger

	startOnce sync.Once
	started   atomic.Bool
	stopOnce  sync.Once
	stopped   atomic.Bool
}

// NewClient builds an unstarted Client from cfg. Free-form params are bound
// through the key table; keys listed in legacyExcludedParams are skipped,
// any other unrecognized key fails construction.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.MinWorkers <= 0 || cfg.MaxWorkers <= 0 || cfg.MinWorkers > cfg.MaxWorkers {
		return nil, fmt.Errorf("%w: min=%d max=%d", ErrInvalidWorkerBounds, cfg.MinWorkers, cfg.MaxWorkers)
	}
	if log == nil {
		log = logger.Nop()
	}

	rc := resty.New()
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Config()
		if err != nil {
			return nil, fmt.Errorf("tls config: %w", err)
		}
		rc.SetTLSClientConfig(tlsCfg)
	}

	if err := applyParams(rc, cfg.Params); err != nil {
		return nil, err
	}

	return &Client{
		rc:   rc,
		pool: newPool(cfg.MinWorkers, cfg.MaxWorkers),
		cfg:  cfg,
		log:  log,
	}, nil
}

// Start allocates the worker pool. It is idempotent: concurrent and repeated
// calls perform exactly one physical start and then observe "already
// started". Returns ErrClientStopped when called after Stop.
func (c *Client) Start() error {
	if c.stopped.Load() {
		return ErrClientStopped
	}

	c.startOnce.Do(func() {
		c.pool.start()
		c.started.Store(true)
		c.log.Debug().
			Int("min_workers", c.cfg.MinWorkers).
			Int("max_workers", c.cfg.MaxWorkers).
			Msg("transport client started")
	})

	return nil
}

// Started reports whether the physical start has happened.
func (c *Client) Started() bool {
	return c.started.Load()
}

// Stop shuts the worker pool down and waits for in-flight calls. Idempotent.
// Callers that received a shared client must not call Stop; lifecycle of a
// shared client belongs to whoever supplied it.
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)
		if c.started.Load() {
			c.pool.stop()
		}
		c.log.Debug().Msg("transport client stopped")
	})
}

// Do executes req on one of the pool's workers and blocks until the response
// or an error arrives, or ctx is cancelled. Connection failures and timeouts
// come back wrapped in [ErrTransport].
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.stopped.Load() {
		return nil, ErrClientStopped
	}
	if !c.started.Load() {
		return nil, ErrClientNotStarted
	}

	type result struct {
		resp *Response
		err  error
	}
	done := make(chan result, 1)

	err := c.pool.submit(ctx, func() {
		resp, execErr := c.execute(ctx, req)
		done <- result{resp: resp, err: execErr}
	})
	if err != nil {
		if err == ErrClientStopped {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	select {
	case res := <-done:
		return res.resp, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	}
}

func (c *Client) execute(ctx context.Context, req *Request) (*Response, error) {
	r := c.rc.R().SetContext(ctx)
	if len(req.Header) > 0 {
		r.SetHeaderMultiValues(req.Header)
	}
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, req.URL, err)
	}

	return &Response{
		Status: resp.StatusCode(),
		Header: resp.Header(),
		Body:   resp.Body(),
	}, nil
}

// PoolStats reports the live worker count alongside the configured bounds.
func (c *Client) PoolStats() Stats {
	return Stats{
		Workers:    c.pool.size(),
		MinWorkers: c.cfg.MinWorkers,
		MaxWorkers: c.cfg.MaxWorkers,
	}
}
