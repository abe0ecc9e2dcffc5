// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package producer issues outbound calls for an endpoint over a transport
// client, shared or dedicated.
package producer

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MKhiriev/httpbridge/internal/binding"
	"github.com/MKhiriev/httpbridge/internal/logger"
	"github.com/MKhiriev/httpbridge/internal/transport"
	"github.com/MKhiriev/httpbridge/models"
)

// Producer sends exchanges to a remote HTTP endpoint.
type Producer interface {
	// Process translates the exchange to a wire request, sends it, blocks
	// until the response or an error arrives, and translates the result back
	// into the exchange's Out message. Connection failures, timeouts, and
	// malformed responses are reported via transport.ErrTransport.
	Process(ctx context.Context, ex *models.Exchange) error

	// Client exposes the transport client backing this producer.
	Client() *transport.Client

	// Stop releases the producer's resources. A shared client supplied from
	// outside is left running; only a dedicated client is stopped.
	Stop()
}

type httpProducer struct {
	target     *url.URL
	client     *transport.Client
	ownsClient bool
	binding    *binding.Binding
	log        *logger.Logger
}

// New builds a producer bound to target. ownsClient marks the client as
// created for this producer; shared clients keep their external lifecycle.
func New(target *url.URL, client *transport.Client, ownsClient bool, b *binding.Binding, log *logger.Logger) Producer {
	if log == nil {
		log = logger.Nop()
	}
	return &httpProducer{
		target:     target,
		client:     client,
		ownsClient: ownsClient,
		binding:    b,
		log:        log,
	}
}

func (p *httpProducer) Process(ctx context.Context, ex *models.Exchange) error {
	req, err := p.binding.ToWire(p.target, ex)
	if err != nil {
		return fmt.Errorf("translate request: %w", err)
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		p.log.Debug().
			Str("exchange_id", ex.ID).
			Str("url", req.URL).
			Err(err).
			Msg("outbound call failed")
		return err
	}

	return p.binding.FromWire(ex, resp)
}

func (p *httpProducer) Client() *transport.Client {
	return p.client
}

func (p *httpProducer) Stop() {
	if p.ownsClient {
		p.client.Stop()
	}
}
