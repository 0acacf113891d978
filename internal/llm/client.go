// Package llm is the boundary to the hosted text-completion service.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client sends a prompt to the text-completion service and returns the
// generated text verbatim. Returned text is opaque to callers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StatusError is a non-retryable service failure reported by the completion
// service itself (rate limit, invalid request, server-side error).
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("completion service status %d: %s", e.Code, e.Message)
}

// ConnectivityError is a transport-level failure reaching the service.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("completion service unreachable: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// IsServiceError reports whether err is a classified service failure
// (status or connectivity).
func IsServiceError(err error) bool {
	var statusErr *StatusError
	var connErr *ConnectivityError
	return errors.As(err, &statusErr) || errors.As(err, &connErr)
}
