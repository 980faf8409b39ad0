package api

import (
	"errors"
	"fmt"

	applog "expensetracker/internal/log"
)

// The two failure kinds of a remote call. Both are non-fatal.
var (
	// ErrNetworkFailure: the request could not be sent or its response
	// could not be read.
	ErrNetworkFailure = errors.New("network failure")
	// ErrServerRejected: a response arrived with a non-success status.
	ErrServerRejected = errors.New("server rejected request")
)

// StatusError describes a non-success response. It matches ErrServerRejected
// with errors.Is.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: server responded %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: server responded %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrServerRejected
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// ErrorType maps err to one of the log error type categories.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrServerRejected):
		return applog.ErrorTypeServerRejected
	case errors.Is(err, ErrNetworkFailure):
		return applog.ErrorTypeNetwork
	default:
		return applog.ErrorTypeInternal
	}
}

func networkFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrNetworkFailure, err)
}
