// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package endpoint

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindTestParams(t *testing.T, rawQuery string) (Options, error) {
	t.Helper()
	values, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)

	opts := Options{}
	err = bindParams(&opts, "http://localhost:8080/test?"+rawQuery, values)
	return opts, err
}

func TestBindParams_RecognizedKeys(t *testing.T) {
	opts, err := bindTestParams(t,
		"sessionSupport=true&httpClientMinThreads=4&httpClientMaxThreads=16"+
			"&sendServerVersion=false&continuationTimeout=5000&useContinuation=true"+
			"&synchronous=true&transferException=true&enableJmx=true")

	require.NoError(t, err)
	assert.True(t, opts.SessionSupport)
	require.NotNil(t, opts.HTTPClientMinThreads)
	assert.Equal(t, 4, *opts.HTTPClientMinThreads)
	require.NotNil(t, opts.HTTPClientMaxThreads)
	assert.Equal(t, 16, *opts.HTTPClientMaxThreads)
	require.NotNil(t, opts.SendServerVersion)
	assert.False(t, *opts.SendServerVersion)
	require.NotNil(t, opts.ContinuationTimeout)
	assert.Equal(t, 5*time.Second, *opts.ContinuationTimeout)
	assert.True(t, opts.Synchronous)
	assert.True(t, opts.TransferException)
	assert.True(t, opts.EnableJMX)
}

func TestBindParams_HTTPClientPrefixedKeys(t *testing.T) {
	opts, err := bindTestParams(t, "httpClient.retryCount=3&httpClient.userAgent=bridge")

	require.NoError(t, err)
	assert.Equal(t, "3", opts.HTTPClientParameters["retryCount"])
	assert.Equal(t, "bridge", opts.HTTPClientParameters["userAgent"])
}

func TestBindParams_UnknownKeysCollected(t *testing.T) {
	_, err := bindTestParams(t, "sessionSupport=true&bogus=1&alsoBogus=2")

	var unknownErr *UnknownParameterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, []string{"alsoBogus", "bogus"}, unknownErr.Keys)
}

func TestBindParams_BadValue(t *testing.T) {
	_, err := bindTestParams(t, "httpClientMinThreads=many")

	assert.ErrorIs(t, err, ErrInvalidParameterValue)
}

func TestValidateOptions_PartialThreadBounds(t *testing.T) {
	minThreads := 4

	err := validateOptions("http://localhost/", &Options{HTTPClientMinThreads: &minThreads})
	assert.ErrorIs(t, err, ErrThreadBoundsPartiallySet)

	err = validateOptions("http://localhost/", &Options{HTTPClientMaxThreads: &minThreads})
	assert.ErrorIs(t, err, ErrThreadBoundsPartiallySet)
}

func TestValidateOptions_BothOrNeitherAccepted(t *testing.T) {
	assert.NoError(t, validateOptions("http://localhost/", &Options{}))

	minThreads, maxThreads := 4, 16
	assert.NoError(t, validateOptions("http://localhost/", &Options{
		HTTPClientMinThreads: &minThreads,
		HTTPClientMaxThreads: &maxThreads,
	}))
}

func TestValidateOptions_UnknownClientParams(t *testing.T) {
	err := validateOptions("http://localhost/", &Options{
		HTTPClientParameters: map[string]string{"noSuchOption": "1", "retryCount": "2"},
	})

	var unknownErr *UnknownParameterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, []string{"httpClient.noSuchOption"}, unknownErr.Keys)
}

func TestValidateOptions_LegacyTimeoutParamTolerated(t *testing.T) {
	err := validateOptions("http://localhost/", &Options{
		HTTPClientParameters: map[string]string{"timeout": "30000"},
	})
	assert.NoError(t, err)
}
