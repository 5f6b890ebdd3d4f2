package resilience

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// route pairs the breaker and executor owned by one destination.
type route struct {
	breaker  *CircuitBreaker
	executor *Executor
}

// Client is the resilient inter-service client: one breaker and one
// executor per destination, fixed at construction. The route table is never
// written after NewClient returns, so lookups take no lock and an outage at
// one destination never slows calls to another.
type Client struct {
	routes map[string]*route
	logger *slog.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	breakerOpts []BreakerOption
}

// WithClock sets the clock used by every destination's breaker.
func WithClock(now func() time.Time) ClientOption {
	return func(o *clientOptions) {
		o.breakerOpts = append(o.breakerOpts, WithBreakerClock(now))
	}
}

// NewClient builds a client for the given destinations.
func NewClient(destinations []Destination, logger *slog.Logger, opts ...ClientOption) (*Client, error) {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	routes := make(map[string]*route, len(destinations))
	for _, dest := range destinations {
		if err := dest.Validate(); err != nil {
			return nil, err
		}
		if _, dup := routes[dest.Name]; dup {
			return nil, fmt.Errorf("destination %s configured twice", dest.Name)
		}

		executor := NewExecutor(dest, logger)
		policy := executor.Policy()
		routes[dest.Name] = &route{
			breaker:  NewCircuitBreaker(dest.Name, policy.FailureThreshold, policy.OpenDuration, logger, o.breakerOpts...),
			executor: executor,
		}

		logger.Info("outbound destination registered",
			"destination", dest.Name,
			"base_url", dest.BaseURL,
			"max_retries", policy.MaxRetries,
			"failure_threshold", policy.FailureThreshold,
			"open_duration", policy.OpenDuration.String(),
		)
	}

	return &Client{routes: routes, logger: logger}, nil
}

// Call performs an idempotent GET against destination, forwarding credential.
func (c *Client) Call(ctx context.Context, destination, path, credential string) (*Response, error) {
	return c.Do(ctx, destination, Request{
		Method:     http.MethodGet,
		Path:       path,
		Credential: credential,
	})
}

// Do performs req against destination.
//
// An open circuit fails fast with ErrCircuitOpen and makes no network
// attempt. Otherwise the executor runs (retrying idempotent calls) and its
// final outcome is recorded on the destination's breaker; failures come back
// as ErrUpstreamFailure wrapping the last *CallError.
func (c *Client) Do(ctx context.Context, destination string, req Request) (*Response, error) {
	r, ok := c.routes[destination]
	if !ok {
		return nil, fmt.Errorf("%s: %w", destination, ErrUnknownDestination)
	}

	if r.breaker.IsOpen() {
		recordRejected(destination)
		c.logger.Warn("outbound call rejected, circuit open",
			"destination", destination,
			"path", req.Path,
		)
		return nil, &ClientError{Kind: ClientCircuitOpen, Destination: destination, Err: ErrCircuitOpen}
	}

	start := time.Now()
	resp, err := r.executor.Execute(ctx, req)

	switch classify(err) {
	case outcomeHealthy:
		r.breaker.RecordSuccess()
	case outcomeFailure:
		r.breaker.RecordFailure()
	case outcomeAbandoned:
		// leave the breaker alone
	}

	if err != nil {
		OutboundCallDuration.WithLabelValues(destination, "failure").Observe(time.Since(start).Seconds())
		c.logger.Warn("outbound call failed",
			"destination", destination,
			"method", req.Method,
			"path", req.Path,
			"error", err,
			"consecutive_failures", r.breaker.ConsecutiveFailures(),
		)
		return nil, &ClientError{Kind: ClientUpstreamFailure, Destination: destination, Err: err}
	}

	OutboundCallDuration.WithLabelValues(destination, "success").Observe(time.Since(start).Seconds())
	return resp, nil
}

// Breaker returns the breaker guarding destination.
func (c *Client) Breaker(destination string) (*CircuitBreaker, bool) {
	r, ok := c.routes[destination]
	if !ok {
		return nil, false
	}
	return r.breaker, true
}

// Destinations lists the configured destination names in sorted order.
func (c *Client) Destinations() []string {
	names := make([]string, 0, len(c.routes))
	for name := range c.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
