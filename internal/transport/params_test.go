package transport

import (
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateParams_AllKnown(t *testing.T) {
	unknown := ValidateParams(map[string]string{
		"retryCount":      "3",
		"userAgent":       "bridge-test",
		"maxIdleConns":    "10",
		"followRedirects": "false",
	})
	assert.Empty(t, unknown)
}

func TestValidateParams_LegacyTimeoutIsTolerated(t *testing.T) {
	// the timeout key is excluded by policy, not unknown
	unknown := ValidateParams(map[string]string{"timeout": "30000"})
	assert.Empty(t, unknown)
}

func TestValidateParams_CollectsAllUnknownKeys(t *testing.T) {
	unknown := ValidateParams(map[string]string{
		"retryCount": "3",
		"bogusOne":   "x",
		"bogusTwo":   "y",
	})
	assert.Equal(t, []string{"bogusOne", "bogusTwo"}, unknown)
}

func TestApplyParams_SetsRetryCount(t *testing.T) {
	rc := resty.New()
	err := applyParams(rc, map[string]string{"retryCount": "4"})

	require.NoError(t, err)
	assert.Equal(t, 4, rc.RetryCount)
}

func TestApplyParams_BadValue(t *testing.T) {
	rc := resty.New()
	err := applyParams(rc, map[string]string{"retryCount": "many"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retryCount")
}

func TestApplyParams_RejectsUnknownKey(t *testing.T) {
	rc := resty.New()
	err := applyParams(rc, map[string]string{"noSuchOption": "1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "noSuchOption")
}

func TestApplyParams_SkipsLegacyTimeout(t *testing.T) {
	rc := resty.New()
	err := applyParams(rc, map[string]string{"timeout": "30000"})

	require.NoError(t, err)
	// excluded by policy: the overall timeout stays untouched
	assert.Zero(t, rc.GetClient().Timeout)
}

func TestParseMillisOrDuration(t *testing.T) {
	d, err := parseMillisOrDuration("1500")
	require.NoError(t, err)
	assert.Equal(t, "1.5s", d.String())

	d, err = parseMillisOrDuration("2s")
	require.NoError(t, err)
	assert.Equal(t, "2s", d.String())

	_, err = parseMillisOrDuration("soon")
	assert.Error(t, err)
}
