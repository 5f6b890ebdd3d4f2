package resilience

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Default resilience settings.
const (
	// DefaultConnectTimeout bounds TCP connection setup for one attempt.
	DefaultConnectTimeout = 5 * time.Second

	// DefaultRequestTimeout bounds one attempt end to end.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of retries after the initial attempt
	// for idempotent calls.
	DefaultMaxRetries = 3

	// DefaultBackoffBase is the delay before the first retry; each later
	// retry doubles it.
	DefaultBackoffBase = 100 * time.Millisecond

	// DefaultFailureThreshold is the failure streak that opens a circuit.
	DefaultFailureThreshold = 5

	// DefaultOpenDuration is how long an open circuit rejects calls after
	// its latest failure.
	DefaultOpenDuration = 30 * time.Second
)

// Policy holds the timeout, retry and breaker settings for one destination.
// Zero fields take the defaults above. A negative MaxRetries disables retries.
type Policy struct {
	ConnectTimeout   time.Duration `yaml:"connect_timeout"`
	RequestTimeout   time.Duration `yaml:"request_timeout"`
	MaxRetries       int           `yaml:"max_retries"`
	BackoffBase      time.Duration `yaml:"backoff_base"`
	FailureThreshold uint32        `yaml:"failure_threshold"`
	OpenDuration     time.Duration `yaml:"open_duration"`

	// RetryClientErrors retries every non-2xx status, 4xx included. Off by
	// default: a 404 will not turn into a 200 by asking again. Either way a
	// call that ends in a non-2xx counts as a breaker failure.
	RetryClientErrors bool `yaml:"retry_client_errors"`
}

// DefaultPolicy returns the default policy.
func DefaultPolicy() Policy {
	return Policy{
		ConnectTimeout:   DefaultConnectTimeout,
		RequestTimeout:   DefaultRequestTimeout,
		MaxRetries:       DefaultMaxRetries,
		BackoffBase:      DefaultBackoffBase,
		FailureThreshold: DefaultFailureThreshold,
		OpenDuration:     DefaultOpenDuration,
	}
}

// WithDefaults returns a copy of p with zero fields filled in.
func (p Policy) WithDefaults() Policy {
	d := DefaultPolicy()
	if p.ConnectTimeout <= 0 {
		p.ConnectTimeout = d.ConnectTimeout
	}
	if p.RequestTimeout <= 0 {
		p.RequestTimeout = d.RequestTimeout
	}
	if p.MaxRetries == 0 {
		p.MaxRetries = d.MaxRetries
	}
	if p.BackoffBase <= 0 {
		p.BackoffBase = d.BackoffBase
	}
	if p.FailureThreshold == 0 {
		p.FailureThreshold = d.FailureThreshold
	}
	if p.OpenDuration <= 0 {
		p.OpenDuration = d.OpenDuration
	}
	return p
}

// Destination is a downstream service reachable by logical name.
type Destination struct {
	Name    string
	BaseURL string
	Policy  Policy
}

// Validate checks that the destination can be called.
func (d Destination) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("destination name is required")
	}
	u, err := url.Parse(d.BaseURL)
	if err != nil {
		return fmt.Errorf("destination %s: invalid base URL: %w", d.Name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("destination %s: base URL must be http or https, got %q", d.Name, d.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("destination %s: base URL has no host", d.Name)
	}
	return nil
}
