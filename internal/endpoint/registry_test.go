package endpoint

import (
	"testing"

	"github.com/MKhiriev/httpbridge/internal/config"
	"github.com/MKhiriev/httpbridge/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(config.Defaults(), logger.Nop())
}

func TestResolve_ValidAddress(t *testing.T) {
	r := newTestRegistry(t)

	ep, err := r.Resolve("http://localhost:8080/api/items", Options{})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/items", ep.Address())
}

func TestResolve_RejectsPartialThreadBounds(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Resolve("http://localhost:8080/api?httpClientMinThreads=4", Options{})
	assert.ErrorIs(t, err, ErrThreadBoundsPartiallySet)

	_, err = r.Resolve("http://localhost:8080/api?httpClientMaxThreads=16", Options{})
	assert.ErrorIs(t, err, ErrThreadBoundsPartiallySet)
}

func TestResolve_RejectsUnknownKeys(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Resolve("http://localhost:8080/api?sesionSupport=true", Options{})

	var unknownErr *UnknownParameterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, []string{"sesionSupport"}, unknownErr.Keys)
}

func TestResolve_RejectsBadScheme(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Resolve("ftp://localhost:21/files", Options{})
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestResolve_RejectsMissingHost(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Resolve("http:///nohost", Options{})
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestResolve_CachesByNormalizedAddress(t *testing.T) {
	r := newTestRegistry(t)

	first, err := r.Resolve("http://LOCALHOST:8080/api", Options{})
	require.NoError(t, err)

	second, err := r.Resolve("http://localhost:8080/api", Options{})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, r.Endpoints(), 1)
}

func TestResolve_DistinctPathsAreDistinctEndpoints(t *testing.T) {
	r := newTestRegistry(t)

	a, err := r.Resolve("http://localhost:8080/a", Options{})
	require.NoError(t, err)
	b, err := r.Resolve("http://localhost:8080/b", Options{})
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.Len(t, r.Endpoints(), 2)
}

func TestResolve_FailedResolutionLeavesRegistryEmpty(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Resolve("http://localhost:8080/api?bogus=1", Options{})
	require.Error(t, err)

	assert.Empty(t, r.Endpoints())
}

func TestResolve_CallerOptionsNotMutated(t *testing.T) {
	r := newTestRegistry(t)

	opts := Options{HTTPClientParameters: map[string]string{"retryCount": "1"}}
	_, err := r.Resolve("http://localhost:8080/api?httpClient.userAgent=bridge", opts)
	require.NoError(t, err)

	_, leaked := opts.HTTPClientParameters["userAgent"]
	assert.False(t, leaked, "address params must not leak into the caller's Options")
}
