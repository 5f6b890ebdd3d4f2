package resilience

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxResponseBody caps how much of a downstream response is buffered.
const maxResponseBody = 10 << 20

// Request describes one logical outbound call.
type Request struct {
	Method string
	Path   string

	// Credential is the caller's bearer token. It is sent as
	// "Authorization: Bearer <Credential>" on every attempt, byte for byte.
	Credential string

	Body   []byte
	Header http.Header
}

// Response is a fully buffered 2xx response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Executor performs outbound calls to one destination with per-attempt
// timeouts and bounded exponential backoff for idempotent methods.
type Executor struct {
	destination string
	baseURL     string
	client      *http.Client
	policy      Policy
	logger      *slog.Logger
}

// NewExecutor creates an executor for dest. Zero policy fields take defaults.
func NewExecutor(dest Destination, logger *slog.Logger) *Executor {
	policy := dest.Policy.WithDefaults()
	return &Executor{
		destination: dest.Name,
		baseURL:     strings.TrimRight(dest.BaseURL, "/"),
		client:      newHTTPClient(policy),
		policy:      policy,
		logger:      logger,
	}
}

// newHTTPClient applies the connect timeout at dial time and the request
// timeout to each attempt as a whole.
func newHTTPClient(p Policy) *http.Client {
	dialer := &net.Dialer{
		Timeout:   p.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.TLSHandshakeTimeout = p.ConnectTimeout

	return &http.Client{
		Timeout:   p.RequestTimeout,
		Transport: transport,
	}
}

// Policy returns the effective policy.
func (e *Executor) Policy() Policy {
	return e.policy
}

// IsIdempotent reports whether calls with this method may be retried.
// Only read-only methods qualify; a retried POST could create a row twice.
func IsIdempotent(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// BackoffDelay returns the wait before retry number retry (1-based):
// base * 2^(retry-1), saturating instead of overflowing.
func BackoffDelay(base time.Duration, retry int) time.Duration {
	if base <= 0 || retry <= 0 {
		return 0
	}

	shift := retry - 1
	if shift > 62 {
		shift = 62
	}
	multiplier := int64(1) << shift
	if int64(base) > math.MaxInt64/multiplier {
		return time.Duration(math.MaxInt64)
	}
	return base * time.Duration(multiplier)
}

// Execute runs the call. Idempotent methods are attempted up to
// 1+MaxRetries times; anything else exactly once. On failure the error of
// the last attempt is returned, normally a *CallError.
func (e *Executor) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	attempts := 1
	if IsIdempotent(req.Method) && e.policy.MaxRetries > 0 {
		attempts += e.policy.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := BackoffDelay(e.policy.BackoffBase, attempt)
			e.logger.Debug("retrying outbound call",
				"destination", e.destination,
				"method", req.Method,
				"path", req.Path,
				"retry", attempt,
				"backoff", delay.String(),
				"error", lastErr,
			)
			recordRetry(e.destination)

			if err := sleepWithContext(ctx, delay); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil, fmt.Errorf("%s %s: retry wait: %w", req.Method, req.Path, err)
				}
				// deadline hit while waiting: the previous attempt's failure stands
				return nil, lastErr
			}
		}

		resp, err := e.attempt(ctx, req)
		recordAttempt(e.destination, err)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !e.shouldRetry(err) {
			break
		}
	}

	return nil, lastErr
}

// shouldRetry decides whether a failed attempt is worth repeating.
func (e *Executor) shouldRetry(err error) bool {
	var callErr *CallError
	if !errors.As(err, &callErr) {
		// caller cancellation
		return false
	}
	if callErr.isClientError() {
		return e.policy.RetryClientErrors
	}
	return true
}

// attempt performs a single HTTP exchange.
func (e *Executor) attempt(ctx context.Context, req Request) (*Response, error) {
	url := e.baseURL + "/" + strings.TrimLeft(req.Path, "/")

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, &CallError{Kind: CallConnectionFailed, Method: req.Method, URL: url, Err: err}
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if req.Credential != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Credential)
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, req.Method, url, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, transportError(ctx, req.Method, url, fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &CallError{
			Kind:       CallNonSuccessStatus,
			Method:     req.Method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       payload,
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       payload,
	}, nil
}

// transportError classifies a failed exchange. Cancellation by the caller
// is returned as-is; it says nothing about the destination.
func transportError(ctx context.Context, method, url string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("%s %s: %w", method, url, ctx.Err())
	}

	kind := CallConnectionFailed
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = CallTimeout
	}
	return &CallError{Kind: kind, Method: method, URL: url, Err: err}
}

// sleepWithContext waits for d or until ctx is done. Only the calling
// goroutine is suspended.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
