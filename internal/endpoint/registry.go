package endpoint

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/httpbridge/internal/config"
	"github.com/MKhiriev/httpbridge/internal/logger"
)

// Registry resolves logical addresses into endpoints and caches them.
// Endpoint identity is the normalized address (scheme, host, port, path);
// the query part configures the endpoint on first resolution only.
type Registry struct {
	mu        sync.Mutex
	endpoints map[string]*Endpoint

	defaults config.Component
	log      *logger.Logger
}

// NewRegistry returns an empty registry backed by the given component
// defaults.
func NewRegistry(defaults config.Component, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		endpoints: make(map[string]*Endpoint),
		defaults:  defaults,
		log:       log,
	}
}

// Resolve parses and validates address, merges its query parameters into
// opts (address keys win), and returns the endpoint for the normalized
// address. Configuration failures are fatal and leave the registry
// untouched; no network resource is allocated here.
func (r *Registry) Resolve(address string, opts Options) (*Endpoint, error) {
	u, err := parseAddress(address)
	if err != nil {
		return nil, err
	}

	opts = opts.clone()
	if err := bindParams(&opts, address, u.Query()); err != nil {
		return nil, err
	}
	if err := validateOptions(address, &opts); err != nil {
		return nil, err
	}

	key := normalizeAddress(u)

	r.mu.Lock()
	defer r.mu.Unlock()

	if ep, ok := r.endpoints[key]; ok {
		return ep, nil
	}

	target := *u
	target.RawQuery = ""
	ep := newEndpoint(key, &target, opts, r.defaults, r.log)
	r.endpoints[key] = ep

	r.log.Debug().Str("endpoint", key).Msg("endpoint resolved")
	return ep, nil
}

// Endpoints returns the resolved endpoints in no particular order.
func (r *Registry) Endpoints() []*Endpoint {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		out = append(out, ep)
	}
	return out
}

func parseAddress(address string) (*url.URL, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidAddress, address, err)
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: %q in %s", ErrUnsupportedScheme, u.Scheme, address)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %s", ErrInvalidAddress, address)
	}

	return u, nil
}

// normalizeAddress is the cache key: scheme, lowercased host, and path with
// the query stripped.
func normalizeAddress(u *url.URL) string {
	n := *u
	n.RawQuery = ""
	n.Fragment = ""
	n.Host = strings.ToLower(n.Host)
	return n.String()
}
