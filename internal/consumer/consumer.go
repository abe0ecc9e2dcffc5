package consumer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/httpbridge/internal/logger"
	"github.com/MKhiriev/httpbridge/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// serverVersion is the Server response header value announced when the
// send-server-version policy is on.
const serverVersion = "httpbridge/1.0"

// Handler processes one inbound exchange. Implementations read the In
// message and fill Out; returning an error yields an error response on the
// wire and a fault report, never a transport-level failure.
type Handler interface {
	Handle(ctx context.Context, ex *models.Exchange) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, ex *models.Exchange) error

func (f HandlerFunc) Handle(ctx context.Context, ex *models.Exchange) error { return f(ctx, ex) }

// Config parameterizes a single Consumer; the endpoint layer fills it from
// the resolved endpoint options.
type Config struct {
	// Addr is the listen address in host:port form.
	Addr string

	// PathPattern is the chi route pattern served by this consumer,
	// e.g. "/TestResource/{id}". Placeholders become In headers.
	PathPattern string

	SessionSupport    bool
	MultipartFilter   bool
	SendServerVersion bool
	SendDateHeader    bool
	TransferException bool

	// ContinuationTimeout bounds how long an inbound call may await its
	// handler result. Values <= 0 never expire. Only honored when
	// UseContinuation is set; without continuations dispatch is inline.
	ContinuationTimeout time.Duration
	UseContinuation     bool
}

// Consumer binds an inbound HTTP listener at an endpoint's address and
// dispatches calls to a handler.
type Consumer struct {
	cfg     Config
	handler Handler
	faults  FaultReporter
	log     *logger.Logger

	router *chi.Mux
	server *http.Server
	ln     net.Listener
}

// New builds an unstarted Consumer. A nil reporter falls back to logging
// faults through log.
func New(cfg Config, h Handler, faults FaultReporter, log *logger.Logger) (*Consumer, error) {
	if h == nil {
		return nil, errors.New("handler is required")
	}
	if log == nil {
		log = logger.Nop()
	}
	if faults == nil {
		faults = &logFaultReporter{log: log}
	}
	if cfg.PathPattern == "" {
		cfg.PathPattern = "/"
	}

	c := &Consumer{
		cfg:     cfg,
		handler: h,
		faults:  faults,
		log:     log,
	}
	c.router = c.initRouter()
	c.server = &http.Server{Handler: c.router}

	return c, nil
}

func (c *Consumer) initRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(c.withTraceID)
	router.Use(c.withLogging)
	router.Use(c.withResponsePolicy)
	if c.cfg.SessionSupport {
		router.Use(c.withSession)
	}
	if c.cfg.MultipartFilter {
		router.Use(withMultipart)
	}

	for _, method := range []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodDelete, http.MethodPatch, http.MethodHead,
	} {
		router.MethodFunc(method, c.cfg.PathPattern, c.serve)
	}

	return router
}

// Start binds the listener and begins serving in the background. It returns
// once the listener is bound, so Addr reports the effective address even
// when the configured port was 0.
func (c *Consumer) Start() error {
	if c.ln != nil {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", c.cfg.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", c.cfg.Addr, err)
	}
	c.ln = ln

	go func() {
		if err := c.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.log.Error().Err(err).Msg("consumer serve")
		}
	}()

	c.log.Info().
		Str("addr", ln.Addr().String()).
		Str("pattern", c.cfg.PathPattern).
		Msg("consumer listening")

	return nil
}

// Addr returns the bound listen address, or the configured one before Start.
func (c *Consumer) Addr() string {
	if c.ln != nil {
		return c.ln.Addr().String()
	}
	return c.cfg.Addr
}

// Shutdown gracefully stops the listener, waiting for in-flight requests
// until ctx expires.
func (c *Consumer) Shutdown(ctx context.Context) error {
	if err := c.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("consumer shutdown: %w", err)
	}
	return nil
}

func (c *Consumer) serve(w http.ResponseWriter, r *http.Request) {
	ex, err := c.exchangeFromRequest(r)
	if err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}

	if c.cfg.UseContinuation && c.cfg.ContinuationTimeout > 0 {
		c.dispatchWithExpiry(w, r, ex)
		return
	}

	c.writeResult(w, ex, c.invoke(r.Context(), ex))
}

// dispatchWithExpiry runs the handler in its own goroutine and abandons it
// when the continuation timeout elapses. The abandoned result goes into a
// buffered channel nobody reads, so no partial response leaks after the 503.
func (c *Consumer) dispatchWithExpiry(w http.ResponseWriter, r *http.Request, ex *models.Exchange) {
	ctx, cancel := context.WithTimeout(r.Context(), c.cfg.ContinuationTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- c.invoke(ctx, ex)
	}()

	expire := func() {
		c.faults.Report(fmt.Errorf("%w: exchange %s after %s",
			ErrContinuationExpired, ex.ID, c.cfg.ContinuationTimeout))
		http.Error(w, "request expired", http.StatusServiceUnavailable)
	}

	select {
	case err := <-done:
		// a result racing the deadline still counts as expired
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			expire()
			return
		}
		c.writeResult(w, ex, err)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			expire()
		}
		// client went away: nothing useful to write
	}
}

// invoke shields the dispatch path from handler panics.
func (c *Consumer) invoke(ctx context.Context, ex *models.Exchange) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.FromContext(ctx).Error().
				Str("exchange_id", ex.ID).
				Msgf("handler panic: %v", rec)
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()
	return c.handler.Handle(ctx, ex)
}

func (c *Consumer) writeResult(w http.ResponseWriter, ex *models.Exchange, err error) {
	if err != nil {
		c.faults.Report(fmt.Errorf("%w: exchange %s: %v", ErrHandler, ex.ID, err))
		if c.cfg.TransferException {
			w.Header().Set(exceptionHeader, err.Error())
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	for name, values := range ex.Out.Headers {
		if strings.HasPrefix(http.CanonicalHeaderKey(name), "Bridge-") {
			continue
		}
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}

	status := http.StatusOK
	if s := ex.Out.Header(models.HeaderStatusCode); s != "" {
		if parsed, convErr := strconv.Atoi(s); convErr == nil {
			status = parsed
		}
	}

	w.WriteHeader(status)
	_, _ = w.Write(ex.Out.Body)
}

// exchangeFromRequest builds the inbound exchange: chi URL placeholders and
// query parameters become In headers, the body is read in full.
func (c *Consumer) exchangeFromRequest(r *http.Request) (*models.Exchange, error) {
	ex := models.NewExchange()

	for name, values := range r.Header {
		for _, v := range values {
			ex.In.Headers.Add(name, v)
		}
	}
	ex.In.SetHeader(models.HeaderMethod, r.Method)
	ex.In.SetHeader(models.HeaderPath, r.URL.Path)
	if r.URL.RawQuery != "" {
		ex.In.SetHeader(models.HeaderQuery, r.URL.RawQuery)
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			if key == "*" {
				continue
			}
			ex.In.SetHeader(key, rctx.URLParams.Values[i])
		}
	}
	for key, values := range r.URL.Query() {
		if len(values) > 0 && ex.In.Header(key) == "" {
			ex.In.SetHeader(key, values[0])
		}
	}

	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		ex.In.Body = body
	}

	return ex, nil
}
