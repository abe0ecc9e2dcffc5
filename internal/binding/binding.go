package binding

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/MKhiriev/httpbridge/internal/transport"
	"github.com/MKhiriev/httpbridge/models"
)

// ExceptionHeader carries a transferred handler failure from a consumer back
// to the calling producer when the transfer-exception policy is on.
const ExceptionHeader = "X-Bridge-Exception"

// Binding converts exchanges to wire requests and wire responses back into
// exchanges. Instances are immutable after construction and safe for
// concurrent use.
type Binding struct {
	filter            HeaderFilter
	failOnErrorStatus bool
	transferException bool
}

// New builds a Binding with the given policy. A nil filter falls back to
// [DefaultHeaderFilter].
func New(filter HeaderFilter, failOnErrorStatus, transferException bool) *Binding {
	if filter == nil {
		filter = DefaultHeaderFilter()
	}
	return &Binding{
		filter:            filter,
		failOnErrorStatus: failOnErrorStatus,
		transferException: transferException,
	}
}

// ToWire renders the exchange's In message as a wire request against target.
// The Bridge-Method header selects the HTTP method; without it, bodyless
// messages go out as GET and everything else as POST. Bridge-Path appends to
// the endpoint path, Bridge-Query replaces the query string.
func (b *Binding) ToWire(target *url.URL, ex *models.Exchange) (*transport.Request, error) {
	if target == nil {
		return nil, fmt.Errorf("endpoint target is nil")
	}

	u := *target
	if suffix := ex.In.Header(models.HeaderPath); suffix != "" {
		u.Path = path.Join(u.Path, suffix)
	}
	if q := ex.In.Header(models.HeaderQuery); q != "" {
		u.RawQuery = q
	}

	method := strings.ToUpper(ex.In.Header(models.HeaderMethod))
	if method == "" {
		if len(ex.In.Body) == 0 {
			method = http.MethodGet
		} else {
			method = http.MethodPost
		}
	}

	return &transport.Request{
		Method: method,
		URL:    u.String(),
		Header: copyFiltered(ex.In.Headers, b.filter),
		Body:   ex.In.Body,
	}, nil
}

// FromWire fills the exchange's Out message from a wire response. When the
// fail-on-error-status policy is active, 4xx/5xx statuses come back as an
// error after the Out message is populated, so callers still see the raw
// response.
func (b *Binding) FromWire(ex *models.Exchange, resp *transport.Response) error {
	out := models.NewMessage()
	out.Headers = copyFiltered(resp.Header, b.filter)
	out.SetHeader(models.HeaderStatusCode, strconv.Itoa(resp.Status))
	out.Body = resp.Body
	ex.Out = out

	if !b.failOnErrorStatus || resp.Status < http.StatusBadRequest {
		return nil
	}

	if b.transferException {
		if detail := resp.Header.Get(ExceptionHeader); detail != "" {
			return fmt.Errorf("%w: %s", ErrRemoteHandler, detail)
		}
	}

	return b.mapWireError(resp)
}

// mapWireError maps an error status to a sentinel, mirroring the status
// table used on the consumer side.
func (b *Binding) mapWireError(resp *transport.Response) error {
	body := strings.TrimSpace(string(resp.Body))
	if body == "" {
		body = http.StatusText(resp.Status)
	}

	switch resp.Status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServer, body)
	default:
		return fmt.Errorf("http %d: %s", resp.Status, body)
	}
}
