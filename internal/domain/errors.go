package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Is lets errors.Is match the typed errors against the sentinels below.
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrUpstreamUnavailable means the circuit to a dependent service is open
	// and no call was attempted (503).
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")

	// ErrUpstreamFailed means a dependent service was called and did not
	// answer usefully after retries (502).
	ErrUpstreamFailed = errors.New("upstream service failed")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (course, assignment, submission)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// UpstreamError reports that a dependent service could not confirm a
// lookup. Its message names the service only; Err keeps the details for logs.
type UpstreamError struct {
	Service     string // e.g. "course service"
	CircuitOpen bool   // no call was attempted
	Err         error
}

func (e *UpstreamError) Error() string {
	return e.Service + " unavailable"
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StatusCode implements the HTTPError interface
func (e *UpstreamError) StatusCode() int {
	if e.CircuitOpen {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

// Is allows errors.Is() to match ErrUpstreamUnavailable or ErrUpstreamFailed
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstreamUnavailable:
		return e.CircuitOpen
	case ErrUpstreamFailed:
		return !e.CircuitOpen
	default:
		return false
	}
}
