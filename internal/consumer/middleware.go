package consumer

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/MKhiriev/httpbridge/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// exceptionHeader mirrors binding.ExceptionHeader; duplicated here to keep
// the consumer free of a producer-side dependency.
const exceptionHeader = "X-Bridge-Exception"

// sessionCookie names the cookie issued when session support is enabled.
const sessionCookie = "BRIDGESESSIONID"

const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a request-scoped logger carrying a trace ID to the
// request context and echoes the ID in the response. Downstream code picks
// the logger up via logger.FromRequest / logger.FromContext.
func (c *Consumer) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var traceID string
		if traceIDFromRequestHeader := r.Header.Get(traceIDHeader); traceIDFromRequestHeader != "" {
			traceID = traceIDFromRequestHeader
		} else {
			traceID = uuid.NewString()
		}

		l := c.log.GetChildLogger()
		l.UpdateContext(func(zc zerolog.Context) zerolog.Context {
			return zc.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(ctx))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}

func (c *Consumer) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()

		uri := r.RequestURI
		method := r.Method

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		duration := time.Since(start)

		log.Info().
			Str("uri", uri).
			Str("method", method).
			Int("status", lw.status).
			Dur("duration", duration).
			Int("size", lw.size).
			Send()
	})
}

// withResponsePolicy applies the endpoint's Server/Date header policy.
func (c *Consumer) withResponsePolicy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.cfg.SendServerVersion {
			w.Header().Set("Server", serverVersion)
		}
		if !c.cfg.SendDateHeader {
			// a nil Date entry tells net/http to suppress its automatic header
			w.Header()["Date"] = nil
		}
		next.ServeHTTP(w, r)
	})
}

// withSession issues a session cookie on first contact.
func (c *Consumer) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(sessionCookie); err != nil {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    uuid.NewString(),
				Path:     "/",
				HttpOnly: true,
			})
		}
		next.ServeHTTP(w, r)
	})
}

// withMultipart collapses a multipart request into its first part so the
// handler sees a plain body. Non-multipart requests pass through untouched.
func withMultipart(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reader, err := r.MultipartReader()
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		part, err := reader.NextPart()
		if err != nil {
			http.Error(w, "empty multipart request", http.StatusBadRequest)
			return
		}
		defer func() { _ = part.Close() }()

		data, err := io.ReadAll(part)
		if err != nil {
			http.Error(w, "malformed multipart request", http.StatusBadRequest)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(data))
		r.ContentLength = int64(len(data))
		if ct := part.Header.Get("Content-Type"); ct != "" {
			r.Header.Set("Content-Type", ct)
		} else {
			r.Header.Del("Content-Type")
		}

		next.ServeHTTP(w, r)
	})
}

// responseWriter is a thin decorator around [http.ResponseWriter] that
// captures the status code and body size for the logging middleware.
// WriteHeader is forwarded to the underlying writer exactly once.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
