package binding

import (
	"net/http"
	"strings"
)

// HeaderFilter decides which headers cross the boundary between the exchange
// model and the wire in either direction.
type HeaderFilter interface {
	// Skip reports whether the named header must not be propagated.
	Skip(name string) bool
}

// HeaderFilterFunc adapts a plain function to the HeaderFilter interface.
type HeaderFilterFunc func(name string) bool

func (f HeaderFilterFunc) Skip(name string) bool { return f(name) }

// hopByHopHeaders are connection-scoped per RFC 7230 §6.1 and never cross
// the bridge.
var hopByHopHeaders = map[string]struct{}{
	"Connection":          {},
	"Keep-Alive":          {},
	"Proxy-Authenticate":  {},
	"Proxy-Authorization": {},
	"Proxy-Connection":    {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

// DefaultHeaderFilter skips the bridge's internal Bridge-* headers and
// hop-by-hop headers.
func DefaultHeaderFilter() HeaderFilter {
	return HeaderFilterFunc(func(name string) bool {
		canonical := http.CanonicalHeaderKey(name)
		if strings.HasPrefix(canonical, "Bridge-") {
			return true
		}
		_, hop := hopByHopHeaders[canonical]
		return hop
	})
}

// copyFiltered copies src into a new header map, dropping everything the
// filter skips.
func copyFiltered(src http.Header, filter HeaderFilter) http.Header {
	dst := http.Header{}
	for name, values := range src {
		if filter.Skip(name) {
			continue
		}
		for _, v := range values {
			dst.Add(name, v)
		}
	}
	return dst
}
