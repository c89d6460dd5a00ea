package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstream matches every failure of a records API call.
	ErrUpstream    = errors.New("records api request failed")
	ErrUnavailable = errors.New("records api is not configured")
)

type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
