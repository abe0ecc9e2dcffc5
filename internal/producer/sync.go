package producer

import (
	"context"
	"sync"

	"github.com/MKhiriev/httpbridge/internal/transport"
	"github.com/MKhiriev/httpbridge/models"
)

// synchronousProducer serializes calls through its delegate, presenting the
// strictly blocking one-call-at-a-time semantics an endpoint promises when
// it is configured as synchronous.
type synchronousProducer struct {
	mu       sync.Mutex
	delegate Producer
}

// NewSynchronous wraps delegate in a synchronous decorator.
func NewSynchronous(delegate Producer) Producer {
	return &synchronousProducer{delegate: delegate}
}

func (s *synchronousProducer) Process(ctx context.Context, ex *models.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delegate.Process(ctx, ex)
}

func (s *synchronousProducer) Client() *transport.Client {
	return s.delegate.Client()
}

func (s *synchronousProducer) Stop() {
	s.delegate.Stop()
}
