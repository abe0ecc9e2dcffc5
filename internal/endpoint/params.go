// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package endpoint

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/httpbridge/internal/transport"
)

// httpClientParamPrefix marks address keys forwarded to the transport
// client's own parameter table, e.g. httpClient.retryCount=3.
const httpClientParamPrefix = "httpClient."

// bindParams maps address query parameters onto opts through the enumerated
// key table. Binding is all-or-nothing: every unmapped key is collected and
// reported in a single *UnknownParameterError. For repeated keys the last
// value wins, matching url.Values iteration of usual address strings.
func bindParams(opts *Options, address string, values url.Values) error {
	var unknown []string

	for key, vals := range values {
		value := vals[len(vals)-1]
		if err := bindParam(opts, key, value); err != nil {
			if err == errUnknownKey {
				unknown = append(unknown, key)
				continue
			}
			return fmt.Errorf("%w: key %q: %v", ErrInvalidParameterValue, key, err)
		}
	}

	if unknown != nil {
		sort.Strings(unknown)
		return &UnknownParameterError{Address: address, Keys: unknown}
	}

	return nil
}

// errUnknownKey is internal to the binding pass; it is translated into the
// collected UnknownParameterError by bindParams.
var errUnknownKey = fmt.Errorf("unknown parameter key")

func bindParam(opts *Options, key, value string) error {
	switch key {
	case "sessionSupport":
		return bindBool(value, &opts.SessionSupport)
	case "httpClientMinThreads":
		return bindIntPtr(value, &opts.HTTPClientMinThreads)
	case "httpClientMaxThreads":
		return bindIntPtr(value, &opts.HTTPClientMaxThreads)
	case "enableJmx":
		return bindBool(value, &opts.EnableJMX)
	case "enableMultipartFilter":
		return bindBool(value, &opts.EnableMultipartFilter)
	case "sendServerVersion":
		return bindBoolPtr(value, &opts.SendServerVersion)
	case "sendDateHeader":
		return bindBool(value, &opts.SendDateHeader)
	case "continuationTimeout":
		ms, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		d := time.Duration(ms) * time.Millisecond
		opts.ContinuationTimeout = &d
		return nil
	case "useContinuation":
		return bindBoolPtr(value, &opts.UseContinuation)
	case "synchronous":
		return bindBool(value, &opts.Synchronous)
	case "throwExceptionOnFailure":
		return bindBoolPtr(value, &opts.ThrowExceptionOnFailure)
	case "transferException":
		return bindBool(value, &opts.TransferException)
	case "requestTimeout":
		ms, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		opts.RequestTimeout = time.Duration(ms) * time.Millisecond
		return nil
	default:
		if name, ok := strings.CutPrefix(key, httpClientParamPrefix); ok && name != "" {
			if opts.HTTPClientParameters == nil {
				opts.HTTPClientParameters = map[string]string{}
			}
			opts.HTTPClientParameters[name] = value
			return nil
		}
		return errUnknownKey
	}
}

func bindBool(value string, dst *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func bindBoolPtr(value string, dst **bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*dst = &b
	return nil
}

func bindIntPtr(value string, dst **int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = &n
	return nil
}

// validateOptions enforces option invariants and checks the free-form
// client parameters against the transport key table, so misconfiguration
// fails before any client or listener exists.
func validateOptions(address string, opts *Options) error {
	minSet := opts.HTTPClientMinThreads != nil
	maxSet := opts.HTTPClientMaxThreads != nil
	if minSet != maxSet {
		return fmt.Errorf("%w: endpoint %s", ErrThreadBoundsPartiallySet, address)
	}

	if unknown := transport.ValidateParams(opts.HTTPClientParameters); len(unknown) > 0 {
		prefixed := make([]string, len(unknown))
		for i, key := range unknown {
			prefixed[i] = httpClientParamPrefix + key
		}
		return &UnknownParameterError{Address: address, Keys: prefixed}
	}

	return nil
}
