package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCircuitOpen matches a ClientError returned without any network attempt.
	ErrCircuitOpen = errors.New("circuit open")

	// ErrUpstreamFailure matches a ClientError returned after the executor gave up.
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrUnknownDestination is returned for a destination not configured at startup.
	ErrUnknownDestination = errors.New("unknown destination")
)

// CallErrorKind classifies a failed attempt.
type CallErrorKind int

const (
	CallTimeout          CallErrorKind = iota + 1 // attempt exceeded a timeout
	CallConnectionFailed                          // refused, reset, DNS, TLS...
	CallNonSuccessStatus                          // destination answered with non-2xx
)

// String returns a human-readable kind name.
func (k CallErrorKind) String() string {
	switch k {
	case CallTimeout:
		return "timeout"
	case CallConnectionFailed:
		return "connection failed"
	case CallNonSuccessStatus:
		return "non-success status"
	default:
		return "unknown"
	}
}

// CallError is the outcome of the last failed attempt of an outbound call.
type CallError struct {
	Kind       CallErrorKind
	Method     string
	URL        string
	StatusCode int    // set for CallNonSuccessStatus
	Body       []byte // response body for CallNonSuccessStatus, possibly truncated
	Err        error  // transport error for CallTimeout and CallConnectionFailed
}

func (e *CallError) Error() string {
	if e.Kind == CallNonSuccessStatus {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// isClientError reports a 4xx the destination would answer again unchanged.
// 408 and 429 are transient and stay retryable.
func (e *CallError) isClientError() bool {
	return e.Kind == CallNonSuccessStatus &&
		e.StatusCode >= 400 && e.StatusCode < 500 &&
		e.StatusCode != http.StatusRequestTimeout &&
		e.StatusCode != http.StatusTooManyRequests
}

// ClientErrorKind distinguishes the two ways the resilient client fails.
type ClientErrorKind int

const (
	ClientCircuitOpen     ClientErrorKind = iota + 1
	ClientUpstreamFailure
)

// ClientError is returned by Client.Call and Client.Do.
//
// errors.Is(err, ErrCircuitOpen) or errors.Is(err, ErrUpstreamFailure) tells
// the kinds apart; errors.As(err, &callErr) reaches the last attempt's
// *CallError for upstream failures.
type ClientError struct {
	Kind        ClientErrorKind
	Destination string
	Err         error
}

func (e *ClientError) Error() string {
	switch e.Kind {
	case ClientCircuitOpen:
		return fmt.Sprintf("%s: circuit open", e.Destination)
	default:
		return fmt.Sprintf("%s: upstream failure: %v", e.Destination, e.Err)
	}
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is() to match the kind sentinels.
func (e *ClientError) Is(target error) bool {
	switch target {
	case ErrCircuitOpen:
		return e.Kind == ClientCircuitOpen
	case ErrUpstreamFailure:
		return e.Kind == ClientUpstreamFailure
	default:
		return false
	}
}

// UpstreamStatus returns the HTTP status the destination answered with on
// the last attempt, if it answered at all.
func UpstreamStatus(err error) (int, bool) {
	var callErr *CallError
	if errors.As(err, &callErr) && callErr.Kind == CallNonSuccessStatus {
		return callErr.StatusCode, true
	}
	return 0, false
}

// outcome is how a finished call affects the destination's breaker.
type outcome int

const (
	outcomeHealthy  outcome = iota // 2xx
	outcomeFailure                 // any failure after retries, 4xx included
	outcomeAbandoned               // caller went away; says nothing about the destination
)

// classify decides the breaker outcome of a call error. Only a 2xx counts
// as success; a non-retried 4xx still ends the call as a failure.
func classify(err error) outcome {
	if err == nil {
		return outcomeHealthy
	}

	var callErr *CallError
	if errors.As(err, &callErr) {
		return outcomeFailure
	}

	if errors.Is(err, context.Canceled) {
		return outcomeAbandoned
	}
	return outcomeFailure
}
