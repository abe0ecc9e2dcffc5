// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package endpoint

import (
	"context"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/httpbridge/internal/consumer"
	"github.com/MKhiriev/httpbridge/internal/logger"
	"github.com/MKhiriev/httpbridge/internal/transport"
	"github.com/MKhiriev/httpbridge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProducer_SharedClientReusedAndStartedOnce(t *testing.T) {
	shared, err := transport.NewClient(transport.Config{MinWorkers: 2, MaxWorkers: 4}, logger.Nop())
	require.NoError(t, err)
	defer shared.Stop()

	r := newTestRegistry(t)
	ep, err := r.Resolve("http://localhost:8080/api", Options{SharedClient: shared})
	require.NoError(t, err)

	p1, err := ep.CreateProducer()
	require.NoError(t, err)
	p2, err := ep.CreateProducer()
	require.NoError(t, err)

	assert.Same(t, shared, p1.Client())
	assert.Same(t, shared, p2.Client())
	// one physical start across both creations: exactly min resident workers
	assert.Equal(t, 2, shared.PoolStats().Workers)
}

func TestCreateProducer_SharedClientNotStoppedByProducer(t *testing.T) {
	shared, err := transport.NewClient(transport.Config{MinWorkers: 1, MaxWorkers: 2}, logger.Nop())
	require.NoError(t, err)
	defer shared.Stop()

	r := newTestRegistry(t)
	ep, err := r.Resolve("http://localhost:8080/api", Options{SharedClient: shared})
	require.NoError(t, err)

	p, err := ep.CreateProducer()
	require.NoError(t, err)
	p.Stop()

	// lifecycle stays with the supplier
	assert.True(t, shared.Started())
	require.NoError(t, shared.Start())
}

func TestCreateProducer_DedicatedClientsAreDistinct(t *testing.T) {
	r := newTestRegistry(t)
	ep, err := r.Resolve("http://localhost:8080/api", Options{})
	require.NoError(t, err)

	p1, err := ep.CreateProducer()
	require.NoError(t, err)
	defer p1.Stop()
	p2, err := ep.CreateProducer()
	require.NoError(t, err)
	defer p2.Stop()

	assert.NotSame(t, p1.Client(), p2.Client())
	assert.True(t, p1.Client().Started())
	assert.True(t, p2.Client().Started())
}

func TestCreateProducer_EndpointBoundsOverrideComponentDefaults(t *testing.T) {
	r := newTestRegistry(t)
	ep, err := r.Resolve("http://localhost:8080/api?httpClientMinThreads=3&httpClientMaxThreads=5", Options{})
	require.NoError(t, err)

	p, err := ep.CreateProducer()
	require.NoError(t, err)
	defer p.Stop()

	stats := p.Client().PoolStats()
	assert.Equal(t, 3, stats.MinWorkers)
	assert.Equal(t, 5, stats.MaxWorkers)
}

func TestCreateProducer_ComponentDefaultsApplyWhenUnset(t *testing.T) {
	r := newTestRegistry(t)
	ep, err := r.Resolve("http://localhost:8080/api", Options{})
	require.NoError(t, err)

	p, err := ep.CreateProducer()
	require.NoError(t, err)
	defer p.Stop()

	stats := p.Client().PoolStats()
	assert.Equal(t, 8, stats.MinWorkers)
	assert.Equal(t, 254, stats.MaxWorkers)
}

func TestBinding_CreatedOncePerEndpoint(t *testing.T) {
	r := newTestRegistry(t)
	ep, err := r.Resolve("http://localhost:8080/api", Options{})
	require.NoError(t, err)

	const callers = 32
	bindings := make([]any, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			bindings[slot] = ep.Binding()
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, bindings[0], bindings[i], "caller %d observed a different binding", i)
	}

	// repeat calls after creation keep returning the same instance
	assert.Same(t, bindings[0], ep.Binding())
	assert.Same(t, bindings[0], ep.Binding())
}

func TestBinding_DistinctAcrossEndpoints(t *testing.T) {
	r := newTestRegistry(t)

	a, err := r.Resolve("http://localhost:8080/a", Options{})
	require.NoError(t, err)
	b, err := r.Resolve("http://localhost:8080/b", Options{})
	require.NoError(t, err)

	assert.NotSame(t, a.Binding(), b.Binding())
}

// TestBridge_EndToEnd wires a consumer and a producer through the registry
// and drives the canonical greeting route over a real socket.
func TestBridge_EndToEnd(t *testing.T) {
	r := newTestRegistry(t)

	// consumer side
	inEp, err := r.Resolve("http://127.0.0.1:0/TestResource/{id}", Options{})
	require.NoError(t, err)

	h := consumer.HandlerFunc(func(_ context.Context, ex *models.Exchange) error {
		id := ex.In.Header("id")
		if ex.In.Header(models.HeaderMethod) == http.MethodPost {
			ex.Out.SetBodyString("Hello " + id + ": " + ex.In.BodyString())
			return nil
		}
		ex.Out.SetBodyString("Hello " + id)
		return nil
	})

	cons, err := inEp.CreateConsumer(h, nil)
	require.NoError(t, err)
	require.NoError(t, cons.Start())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = cons.Shutdown(ctx)
	}()

	// producer side against the bound address
	outEp, err := r.Resolve("http://"+cons.Addr()+"/TestResource/Ducky", Options{})
	require.NoError(t, err)

	p, err := outEp.CreateProducer()
	require.NoError(t, err)
	defer p.Stop()

	ex := models.NewExchange()
	require.NoError(t, p.Process(context.Background(), ex))
	assert.Equal(t, "Hello Ducky", ex.Out.BodyString())

	ex = models.NewExchange()
	ex.In.SetBodyString("data")
	require.NoError(t, p.Process(context.Background(), ex))
	assert.Equal(t, "Hello Ducky: data", ex.Out.BodyString())
}

// TestCreateProducer_HTTPSWithCustomCA resolves an https endpoint whose CA
// bundle is the server's own self-signed certificate and verifies the
// dedicated client completes a verified TLS round trip.
func TestCreateProducer_HTTPSWithCustomCA(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Hello Ducky"))
	}))
	defer srv.Close()

	caFile := filepath.Join(t.TempDir(), "ca.pem")
	caPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	require.NoError(t, os.WriteFile(caFile, caPEM, 0o600))

	r := newTestRegistry(t)
	ep, err := r.Resolve(srv.URL+"/TestResource/Ducky", Options{
		TLS: &transport.TLSParams{CAFile: caFile},
	})
	require.NoError(t, err)

	p, err := ep.CreateProducer()
	require.NoError(t, err)
	defer p.Stop()

	ex := models.NewExchange()
	require.NoError(t, p.Process(context.Background(), ex))
	assert.Equal(t, "Hello Ducky", ex.Out.BodyString())
}

func TestCreateProducer_HTTPSWithBrokenTLSParamsFails(t *testing.T) {
	r := newTestRegistry(t)
	ep, err := r.Resolve("https://localhost:8443/api", Options{
		TLS: &transport.TLSParams{CAFile: filepath.Join(t.TempDir(), "absent.pem")},
	})
	require.NoError(t, err)

	_, err = ep.CreateProducer()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read CA bundle")
}

func TestCreateConsumer_SynchronousProducerConfigured(t *testing.T) {
	r := newTestRegistry(t)
	ep, err := r.Resolve("http://localhost:8080/api?synchronous=true", Options{})
	require.NoError(t, err)

	p, err := ep.CreateProducer()
	require.NoError(t, err)
	defer p.Stop()

	// the synchronous decorator still exposes the underlying client
	assert.NotNil(t, p.Client())
}
