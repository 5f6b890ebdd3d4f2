package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"classroom/internal/resilience"
)

// Destination names used by the services for cross-service lookups.
const (
	CourseServiceDestination     = "course-service"
	AssignmentServiceDestination = "assignment-service"
)

type Config struct {
	ServiceName string
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	AutoMigrate bool // create the service's schema and tables at startup

	// Credential verification
	JWTSecret string
	JWTIssuer string // optional; pins the "iss" claim when set
	JWKSURL   string // optional; asymmetric verification instead of JWTSecret
	JWKSFile  string // optional; static JWKS document

	// Outbound destinations and their resilience policy
	AdminServiceURL   string
	TeacherServiceURL string
	DestinationsFile  string
	DefaultPolicy     resilience.Policy

	// Logging
	LogDir      string
	LogMaxFiles int
}

// Load reads configuration from the environment. serviceName is the
// default for SERVICE_NAME and selects the default table schema.
func Load(serviceName string) (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")
	name := getEnv("SERVICE_NAME", serviceName)

	policy, err := loadPolicy()
	if err != nil {
		return nil, err
	}

	logMaxFiles, err := getInt("LOG_MAX_FILES", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServiceName: name,
		Port:        getEnv("PORT", getEnv("HTTP_PORT", "8080")),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(serviceName),
		AutoMigrate: getEnv("AUTO_MIGRATE", strconv.FormatBool(env == "dev")) == "true",

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", ""),
		JWKSURL:   getEnv("JWKS_URL", ""),
		JWKSFile:  getEnv("JWKS_FILE", ""),

		AdminServiceURL:   getEnv("ADMIN_SERVICE_URL", "http://admin-service:8080"),
		TeacherServiceURL: getEnv("TEACHER_SERVICE_URL", "http://teacher-service:8080"),
		DestinationsFile:  getEnv("DESTINATIONS_FILE", ""),
		DefaultPolicy:     policy,

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: logMaxFiles,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings every service needs.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" && c.JWKSURL == "" && c.JWKSFile == "" {
		return fmt.Errorf("one of JWT_SECRET, JWKS_URL or JWKS_FILE is required")
	}
	if c.LogMaxFiles < 1 {
		return fmt.Errorf("LOG_MAX_FILES must be at least 1, got %d", c.LogMaxFiles)
	}
	return nil
}

// IsDev reports whether the service runs in the dev environment.
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// CORSOriginList splits CORS_ORIGINS on commas.
func (c *Config) CORSOriginList() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Destinations returns the registry of downstream services. Entries from
// DESTINATIONS_FILE replace or extend the environment-derived defaults.
func (c *Config) Destinations() ([]resilience.Destination, error) {
	dests := []resilience.Destination{
		{Name: CourseServiceDestination, BaseURL: c.AdminServiceURL, Policy: c.DefaultPolicy},
		{Name: AssignmentServiceDestination, BaseURL: c.TeacherServiceURL, Policy: c.DefaultPolicy},
	}

	if c.DestinationsFile == "" {
		return dests, nil
	}

	data, err := os.ReadFile(c.DestinationsFile)
	if err != nil {
		return nil, fmt.Errorf("read destinations file: %w", err)
	}
	overrides, err := ParseDestinations(data, c.DefaultPolicy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.DestinationsFile, err)
	}
	return mergeDestinations(dests, overrides), nil
}

// destinationsFile is the YAML layout of DESTINATIONS_FILE:
//
//	destinations:
//	  course-service:
//	    base_url: http://admin-service:8080
//	    policy:
//	      max_retries: 2
//	      open_duration: 10s
//
// Policy keys left out inherit from the environment policy. Keys that are
// present always apply, zero and false included; max_retries: 0 means a
// single attempt, like HTTP_RETRY_COUNT=0.
type destinationsFile struct {
	Destinations map[string]struct {
		BaseURL string          `yaml:"base_url"`
		Policy  *policyOverride `yaml:"policy"`
	} `yaml:"destinations"`
}

// policyOverride distinguishes an absent key (nil) from an explicit zero.
type policyOverride struct {
	ConnectTimeout    *time.Duration `yaml:"connect_timeout"`
	RequestTimeout    *time.Duration `yaml:"request_timeout"`
	MaxRetries        *int           `yaml:"max_retries"`
	BackoffBase       *time.Duration `yaml:"backoff_base"`
	FailureThreshold  *uint32        `yaml:"failure_threshold"`
	OpenDuration      *time.Duration `yaml:"open_duration"`
	RetryClientErrors *bool          `yaml:"retry_client_errors"`
}

// ParseDestinations decodes a destinations document. Policy fields left out
// of an entry inherit from base.
func ParseDestinations(data []byte, base resilience.Policy) ([]resilience.Destination, error) {
	var doc destinationsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse destinations: %w", err)
	}

	dests := make([]resilience.Destination, 0, len(doc.Destinations))
	for name, entry := range doc.Destinations {
		policy := base
		if entry.Policy != nil {
			var err error
			if policy, err = entry.Policy.apply(base); err != nil {
				return nil, fmt.Errorf("destination %s: %w", name, err)
			}
		}
		dest := resilience.Destination{Name: name, BaseURL: entry.BaseURL, Policy: policy}
		if err := dest.Validate(); err != nil {
			return nil, err
		}
		dests = append(dests, dest)
	}
	return dests, nil
}

func (o *policyOverride) apply(base resilience.Policy) (resilience.Policy, error) {
	if o.ConnectTimeout != nil {
		base.ConnectTimeout = *o.ConnectTimeout
	}
	if o.RequestTimeout != nil {
		base.RequestTimeout = *o.RequestTimeout
	}
	if o.MaxRetries != nil {
		base.MaxRetries = *o.MaxRetries
		if base.MaxRetries == 0 {
			base.MaxRetries = -1
		}
	}
	if o.BackoffBase != nil {
		base.BackoffBase = *o.BackoffBase
	}
	if o.FailureThreshold != nil {
		if *o.FailureThreshold < 1 {
			return base, fmt.Errorf("failure_threshold must be at least 1")
		}
		base.FailureThreshold = *o.FailureThreshold
	}
	if o.OpenDuration != nil {
		base.OpenDuration = *o.OpenDuration
	}
	if o.RetryClientErrors != nil {
		base.RetryClientErrors = *o.RetryClientErrors
	}
	return base, nil
}

func mergeDestinations(defaults, overrides []resilience.Destination) []resilience.Destination {
	byName := make(map[string]int, len(defaults))
	for i, d := range defaults {
		byName[d.Name] = i
	}
	for _, o := range overrides {
		if i, ok := byName[o.Name]; ok {
			defaults[i] = o
			continue
		}
		byName[o.Name] = len(defaults)
		defaults = append(defaults, o)
	}
	return defaults
}

// loadPolicy reads the default resilience policy from the environment.
func loadPolicy() (resilience.Policy, error) {
	p := resilience.DefaultPolicy()
	var err error

	if p.ConnectTimeout, err = getDuration("HTTP_CONNECT_TIMEOUT", p.ConnectTimeout); err != nil {
		return p, err
	}
	if p.RequestTimeout, err = getDuration("HTTP_REQUEST_TIMEOUT", p.RequestTimeout); err != nil {
		return p, err
	}
	if p.MaxRetries, err = getInt("HTTP_RETRY_COUNT", p.MaxRetries); err != nil {
		return p, err
	}
	if p.MaxRetries == 0 {
		// HTTP_RETRY_COUNT=0 means no retries
		p.MaxRetries = -1
	}
	if p.BackoffBase, err = getDuration("HTTP_BACKOFF_BASE", p.BackoffBase); err != nil {
		return p, err
	}
	threshold, err := getInt("CIRCUIT_FAILURE_THRESHOLD", int(p.FailureThreshold))
	if err != nil {
		return p, err
	}
	if threshold < 1 {
		return p, fmt.Errorf("CIRCUIT_FAILURE_THRESHOLD must be at least 1, got %d", threshold)
	}
	p.FailureThreshold = uint32(threshold)
	if p.OpenDuration, err = getDuration("CIRCUIT_OPEN_DURATION", p.OpenDuration); err != nil {
		return p, err
	}
	p.RetryClientErrors = getEnv("RETRY_CLIENT_ERRORS", "false") == "true"

	return p, nil
}

// getTablePrefix returns the schema-qualified prefix for this service's
// tables ("admin." for admin-service).
func getTablePrefix(serviceName string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	schema := strings.TrimSuffix(serviceName, "-service")
	if schema == "" {
		return ""
	}
	return schema + "."
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("250ms") or bare milliseconds ("250").
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}
