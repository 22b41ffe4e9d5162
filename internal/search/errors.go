package search

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/hanfr/internal/krdict"
)

// ValidationError means the query was rejected before any upstream call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConfigurationError means the deployment is missing required configuration.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// UpstreamError means KRDict failed to answer. Status is the HTTP status, or
// 0 when KRDict was unreachable or answered with an error document, in which
// case Code carries the KRDict error code.
type UpstreamError struct {
	Status int
	Code   string
	Err    error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("KRDict error: %d", e.Status)
	case e.Code != "":
		return fmt.Sprintf("KRDict error: %s", e.Code)
	default:
		return fmt.Sprintf("KRDict unreachable: %v", e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func newUpstreamError(err error) *UpstreamError {
	upstreamErr := &UpstreamError{Err: err}
	var statusErr *krdict.StatusError
	if errors.As(err, &statusErr) {
		upstreamErr.Status = statusErr.StatusCode
	}
	var apiErr *krdict.APIError
	if errors.As(err, &apiErr) {
		upstreamErr.Code = apiErr.Code
	}
	return upstreamErr
}
