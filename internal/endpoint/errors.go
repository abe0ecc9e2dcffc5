package endpoint

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors surfaced at endpoint-resolution time. All of them are
// fatal to endpoint creation and fire before any network resource exists.
var (
	// ErrInvalidAddress indicates an address that cannot be parsed or lacks
	// a host.
	ErrInvalidAddress = errors.New("invalid endpoint address")

	// ErrUnsupportedScheme indicates an address scheme other than http or
	// https.
	ErrUnsupportedScheme = errors.New("unsupported address scheme")

	// ErrThreadBoundsPartiallySet indicates that exactly one of the
	// httpClientMinThreads / httpClientMaxThreads pair was configured.
	// The bounds are both-or-neither.
	ErrThreadBoundsPartiallySet = errors.New("httpClientMinThreads and httpClientMaxThreads must be configured together")

	// ErrInvalidParameterValue indicates a recognized key whose value could
	// not be converted to the target type.
	ErrInvalidParameterValue = errors.New("invalid parameter value")
)

// UnknownParameterError reports every free-form key that could not be mapped
// onto a recognized option, so the caller can fix the address in one pass.
type UnknownParameterError struct {
	Address string
	Keys    []string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("there are %d parameters that couldn't be set on endpoint %s."+
		" Check the address if the parameters are spelt correctly and that they are options of the endpoint."+
		" Unknown parameters=[%s]",
		len(e.Keys), e.Address, strings.Join(e.Keys, ", "))
}
