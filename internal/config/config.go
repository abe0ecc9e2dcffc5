// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Default worker-pool bounds applied when neither the endpoint address nor
// the environment configures them.
const (
	DefaultMinWorkers = 8
	DefaultMaxWorkers = 254

	// DefaultContinuationTimeout bounds how long a consumer holds an inbound
	// call open awaiting a handler result. A value <= 0 means never expire.
	DefaultContinuationTimeout = 30 * time.Second

	// DefaultRequestTimeout bounds a single outbound producer call.
	DefaultRequestTimeout = 15 * time.Second
)

// Component holds component-level defaults shared by every endpoint resolved
// through a registry. Endpoint-level settings parsed from the address always
// take precedence over these values.
//
// Struct tags:
//   - env — environment variable name, resolved under the BRIDGE_ prefix
//     (caarlos0/env).
type Component struct {
	// HTTPClientMinThreads is the default minimum number of workers in a
	// transport client's pool.
	// Env: BRIDGE_HTTP_CLIENT_MIN_THREADS
	HTTPClientMinThreads int `env:"HTTP_CLIENT_MIN_THREADS"`

	// HTTPClientMaxThreads is the default maximum number of workers in a
	// transport client's pool.
	// Env: BRIDGE_HTTP_CLIENT_MAX_THREADS
	HTTPClientMaxThreads int `env:"HTTP_CLIENT_MAX_THREADS"`

	// ContinuationTimeout is the default consumer-side request expiry
	// (e.g. "30s"). Endpoints override it via the continuationTimeout key.
	// Env: BRIDGE_CONTINUATION_TIMEOUT
	ContinuationTimeout time.Duration `env:"CONTINUATION_TIMEOUT"`

	// RequestTimeout is the default outbound request timeout applied to
	// transport clients (e.g. "15s").
	// Env: BRIDGE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetComponentConfig loads and validates the component configuration by
// merging values from the following sources (earlier sources win for
// non-zero fields):
//  1. Environment variables
//  2. Built-in defaults
//
// Returns a fully populated *Component or an error if a source fails to
// load or the merged config fails validation.
func GetComponentConfig() (*Component, error) {
	return newConfigBuilder().
		withEnv().
		withDefaults().
		build()
}

// Defaults returns the built-in component configuration, used directly by
// callers that embed httpbridge without environment wiring.
func Defaults() Component {
	return Component{
		HTTPClientMinThreads: DefaultMinWorkers,
		HTTPClientMaxThreads: DefaultMaxWorkers,
		ContinuationTimeout:  DefaultContinuationTimeout,
		RequestTimeout:       DefaultRequestTimeout,
	}
}
