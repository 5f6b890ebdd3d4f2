package resilience

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// State is the circuit state derived from a breaker's failure count and
// last failure time. It is never stored.
type State int

const (
	StateClosed   State = iota // calls pass through
	StateOpen                  // calls rejected without a network attempt
	StateHalfOpen              // cool-down elapsed; the next caller probes
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker tracks consecutive failures for one destination.
//
// All methods are safe for concurrent use. The gate check (IsOpen) and the
// later RecordSuccess/RecordFailure are not one transaction: two callers may
// both observe the breaker as closed and both fail, which only pushes the
// failure count further past the threshold.
type CircuitBreaker struct {
	name      string
	threshold uint32
	openFor   time.Duration

	failures    atomic.Uint32
	lastFailure atomic.Int64 // unix nanos, 0 when no failure is recorded
	probeAt     atomic.Int64 // unix nanos of the last half-open probe grant

	now    func() time.Time
	logger *slog.Logger
}

// BreakerOption customizes a CircuitBreaker.
type BreakerOption func(*CircuitBreaker)

// WithBreakerClock overrides the clock used for cool-down arithmetic.
func WithBreakerClock(now func() time.Time) BreakerOption {
	return func(b *CircuitBreaker) { b.now = now }
}

// NewCircuitBreaker creates a closed breaker that opens after threshold
// consecutive failures and stays open for openFor after the latest one.
func NewCircuitBreaker(name string, threshold uint32, openFor time.Duration, logger *slog.Logger, opts ...BreakerOption) *CircuitBreaker {
	if threshold == 0 {
		threshold = DefaultFailureThreshold
	}
	if openFor <= 0 {
		openFor = DefaultOpenDuration
	}

	b := &CircuitBreaker{
		name:      name,
		threshold: threshold,
		openFor:   openFor,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(b)
	}

	recordBreakerState(name, StateClosed)
	return b
}

// Name returns the destination this breaker guards.
func (b *CircuitBreaker) Name() string {
	return b.name
}

// ConsecutiveFailures returns the current failure streak.
func (b *CircuitBreaker) ConsecutiveFailures() uint32 {
	return b.failures.Load()
}

// IsOpen reports whether a call must be rejected.
//
// Once the cool-down has elapsed, exactly one caller per window receives
// false and becomes the probe; everyone else keeps seeing true until the
// probe's outcome is recorded. A probe whose outcome is never recorded
// loses its grant after another cool-down.
func (b *CircuitBreaker) IsOpen() bool {
	if b.failures.Load() < b.threshold {
		return false
	}

	// A streak without a timestamp comes from a success racing a failure;
	// it is treated as cooled down so a probe can settle it.
	last := b.lastFailure.Load()
	now := b.now().UnixNano()
	if last != 0 && now-last < int64(b.openFor) {
		return true
	}

	granted := b.probeAt.Load()
	if granted > last && now-granted < int64(b.openFor) {
		return true
	}
	if !b.probeAt.CompareAndSwap(granted, now) {
		return true
	}

	b.logger.Info("circuit half-open, allowing probe",
		"destination", b.name,
		"failures", b.failures.Load(),
	)
	recordBreakerState(b.name, StateHalfOpen)
	return false
}

// State returns the derived state without consuming the half-open probe.
func (b *CircuitBreaker) State() State {
	if b.failures.Load() < b.threshold {
		return StateClosed
	}

	last := b.lastFailure.Load()
	if last != 0 && b.now().UnixNano()-last < int64(b.openFor) {
		return StateOpen
	}
	return StateHalfOpen
}

// RecordSuccess closes the circuit: one success is enough.
func (b *CircuitBreaker) RecordSuccess() {
	prev := b.failures.Swap(0)
	b.lastFailure.Store(0)
	b.probeAt.Store(0)

	if prev >= b.threshold {
		b.logger.Info("circuit closed",
			"destination", b.name,
			"previous_failures", prev,
		)
		recordBreakerState(b.name, StateClosed)
	}
}

// RecordFailure extends the failure streak and restarts the cool-down.
func (b *CircuitBreaker) RecordFailure() {
	// timestamp first: a streak reaching the threshold always has one
	// unless a concurrent success clears it
	b.lastFailure.Store(b.now().UnixNano())
	n := b.failures.Add(1)

	switch {
	case n == b.threshold:
		b.logger.Warn("circuit open",
			"destination", b.name,
			"failures", n,
			"open_for", b.openFor.String(),
		)
		recordBreakerState(b.name, StateOpen)
	case n > b.threshold:
		b.logger.Warn("circuit re-opened",
			"destination", b.name,
			"failures", n,
		)
		recordBreakerState(b.name, StateOpen)
	}
}
