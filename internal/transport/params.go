// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transport

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// legacyExcludedParams names free-form client keys that are accepted and
// ignored for address compatibility with earlier bridge versions, where the
// overall request timeout travelled as a client parameter. The timeout is
// now a first-class Config field, so the key cannot be bound here; dropping
// it silently would hide typos, hence this explicit policy list.
var legacyExcludedParams = map[string]struct{}{
	"timeout": {},
}

// paramSetter binds one free-form key onto the underlying client.
type paramSetter func(rc *resty.Client, value string) error

// clientParamSetters is the enumerated key-to-field table for free-form
// client parameters. Unknown keys are rejected at the endpoint boundary
// instead of being probed reflectively.
var clientParamSetters = map[string]paramSetter{
	"retryCount": func(rc *resty.Client, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		rc.SetRetryCount(n)
		return nil
	},
	"retryWaitTime": func(rc *resty.Client, v string) error {
		d, err := parseMillisOrDuration(v)
		if err != nil {
			return err
		}
		rc.SetRetryWaitTime(d)
		return nil
	},
	"userAgent": func(rc *resty.Client, v string) error {
		rc.SetHeader("User-Agent", v)
		return nil
	},
	"followRedirects": func(rc *resty.Client, v string) error {
		follow, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		if !follow {
			rc.SetRedirectPolicy(resty.NoRedirectPolicy())
		}
		return nil
	},
	"debug": func(rc *resty.Client, v string) error {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		rc.SetDebug(on)
		return nil
	},
	"idleConnTimeout": func(rc *resty.Client, v string) error {
		d, err := parseMillisOrDuration(v)
		if err != nil {
			return err
		}
		return setTransportField(rc, func(t *http.Transport) { t.IdleConnTimeout = d })
	},
	"maxIdleConns": func(rc *resty.Client, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		return setTransportField(rc, func(t *http.Transport) { t.MaxIdleConns = n })
	},
	"maxConnsPerHost": func(rc *resty.Client, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		return setTransportField(rc, func(t *http.Transport) { t.MaxConnsPerHost = n })
	},
}

// ValidateParams returns the sorted list of keys that neither the setter
// table nor the legacy exclusion list recognizes. An empty result means the
// whole map can be bound.
func ValidateParams(params map[string]string) []string {
	var unknown []string
	for key := range params {
		if _, excluded := legacyExcludedParams[key]; excluded {
			continue
		}
		if _, known := clientParamSetters[key]; known {
			continue
		}
		unknown = append(unknown, key)
	}
	sort.Strings(unknown)
	return unknown
}

// applyParams binds every recognized key onto rc. Callers are expected to
// have run ValidateParams first; a leftover unknown key still fails here so
// a client can never be built from an unvalidated map.
func applyParams(rc *resty.Client, params map[string]string) error {
	if unknown := ValidateParams(params); len(unknown) > 0 {
		return fmt.Errorf("unknown client parameters %v", unknown)
	}

	for key, value := range params {
		if _, excluded := legacyExcludedParams[key]; excluded {
			continue
		}
		if err := clientParamSetters[key](rc, value); err != nil {
			return fmt.Errorf("client parameter %q: %w", key, err)
		}
	}
	return nil
}

func setTransportField(rc *resty.Client, set func(*http.Transport)) error {
	t, ok := rc.GetClient().Transport.(*http.Transport)
	if !ok {
		return fmt.Errorf("underlying transport is %T, not *http.Transport", rc.GetClient().Transport)
	}
	set(t)
	return nil
}

// parseMillisOrDuration accepts either a bare integer (milliseconds, the
// historical address format) or a Go duration string.
func parseMillisOrDuration(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}
