package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")

	// ErrShuttingDown is returned to callers once the service has begun
	// tearing down its dependencies.
	ErrShuttingDown = errors.New("service is shutting down")

	// ErrNotReady is returned while dependencies are unhealthy or the
	// queue consumer is not yet mounted.
	ErrNotReady = errors.New("service is not ready")

	// ErrAlreadyMounted reports a second attempt to register the queue consumer.
	ErrAlreadyMounted = errors.New("queue consumer already mounted")

	// ErrClosed is returned by a dependency handle after Close.
	ErrClosed = errors.New("dependency closed")

	// ErrTimeout reports a request that outlived its deadline.
	ErrTimeout = errors.New("request deadline exceeded")
)

// MsgRequired is the field message used when a required value is missing.
const MsgRequired = "is required"

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
