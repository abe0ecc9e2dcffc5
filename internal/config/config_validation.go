// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the merged [Component] satisfies the bridge's
// invariants before any endpoint is resolved against it.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *Component) validate() error {
	if cfg.HTTPClientMinThreads <= 0 || cfg.HTTPClientMaxThreads <= 0 {
		return ErrInvalidWorkerBounds
	}

	if cfg.HTTPClientMinThreads > cfg.HTTPClientMaxThreads {
		return ErrInvalidWorkerBounds
	}

	if cfg.RequestTimeout <= 0 {
		return ErrInvalidRequestTimeout
	}

	return nil
}
