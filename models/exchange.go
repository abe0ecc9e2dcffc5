// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models defines the generic message-exchange model shared by
// producers, consumers, and the wire binding.
//
// An [Exchange] pairs an inbound request message with its eventual response.
// Transport-level metadata (HTTP method, path, status code) travels inside
// message headers under the Bridge-* names declared in this package; the
// binding strips those internal headers before anything reaches the wire.
package models

import (
	"net/http"

	"github.com/google/uuid"
)

// Internal header names used to carry transport metadata through an Exchange.
// They are never sent over the wire; the default header filter removes them.
const (
	// HeaderMethod holds the HTTP method of an outbound request. When unset
	// the producer defaults to GET for bodyless messages and POST otherwise.
	HeaderMethod = "Bridge-Method"

	// HeaderPath holds a path suffix appended to the endpoint path for a
	// single outbound call.
	HeaderPath = "Bridge-Path"

	// HeaderQuery holds a raw query string attached to an outbound request.
	HeaderQuery = "Bridge-Query"

	// HeaderStatusCode holds the HTTP status code of a response message, as
	// a decimal string. Consumers read it when writing the handler result
	// back; producers set it from the wire response.
	HeaderStatusCode = "Bridge-Status-Code"
)

// Message is one direction of an Exchange: either the inbound request or the
// outbound response. Headers use the canonical http.Header representation so
// multi-valued headers survive the round trip.
type Message struct {
	Headers http.Header
	Body    []byte
}

// NewMessage returns an empty Message with initialized headers.
func NewMessage() Message {
	return Message{Headers: http.Header{}}
}

// Header returns the first value of the named header, or "" when absent.
func (m *Message) Header(name string) string {
	if m.Headers == nil {
		return ""
	}
	return m.Headers.Get(name)
}

// SetHeader replaces the named header with a single value, allocating the
// header map if the message was zero-valued.
func (m *Message) SetHeader(name, value string) {
	if m.Headers == nil {
		m.Headers = http.Header{}
	}
	m.Headers.Set(name, value)
}

// BodyString returns the message body as a string.
func (m *Message) BodyString() string {
	return string(m.Body)
}

// SetBodyString replaces the message body with s.
func (m *Message) SetBodyString(s string) {
	m.Body = []byte(s)
}

// Exchange is a request paired with its eventual response. It is created per
// call and discarded when the call completes or fails; instances are not safe
// for concurrent use.
type Exchange struct {
	// ID uniquely identifies the exchange for logging and fault reports.
	ID string

	// In is the request message flowing towards the handler or the wire.
	In Message

	// Out is the response message. It stays empty until the handler (on the
	// consumer side) or the binding (on the producer side) fills it.
	Out Message
}

// NewExchange returns an Exchange with a fresh ID and initialized messages.
func NewExchange() *Exchange {
	return &Exchange{
		ID:  newExchangeID(),
		In:  NewMessage(),
		Out: NewMessage(),
	}
}

// newExchangeID prefers time-ordered UUIDv7 and falls back to v4 when the
// system clock source is unavailable.
func newExchangeID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
