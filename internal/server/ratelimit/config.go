package ratelimit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

const envPrefix = "RATE_LIMIT_"

// LoadConfig builds a Config from RATE_LIMIT_* variables looked up through
// getenv. Unset variables keep their defaults; malformed ones are reported
// together in a single error.
func LoadConfig(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       ipSet(getenv(envPrefix + "WHITELIST")),
		Blacklist:       ipSet(getenv(envPrefix + "BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}

	var errs []error
	for _, f := range []struct {
		name string
		set  func(string) error
	}{
		{"ENABLED", func(v string) (err error) {
			cfg.Enabled, err = strconv.ParseBool(v)
			return err
		}},
		{"DEFAULT_LIMIT", setPositive(&cfg.DefaultLimit, strconv.Atoi)},
		{"DEFAULT_WINDOW", setPositive(&cfg.DefaultWindow, time.ParseDuration)},
		{"CLEANUP_INTERVAL", setPositive(&cfg.CleanupInterval, time.ParseDuration)},
		{"IDLE_TIMEOUT", setPositive(&cfg.IdleTimeout, time.ParseDuration)},
	} {
		v := strings.TrimSpace(getenv(envPrefix + f.name))
		if v == "" {
			continue
		}
		if err := f.set(v); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s%s %q: %w", envPrefix, f.name, v, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setPositive[T int | time.Duration](dst *T, parse func(string) (T, error)) func(string) error {
	return func(v string) error {
		n, err := parse(v)
		if err != nil {
			return err
		}
		if n <= 0 {
			return errors.New("must be positive")
		}
		*dst = n
		return nil
	}
}

// ipSet splits a comma-separated address list, ignoring blanks.
func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Batch ranking embeds every task once per worker
		{Path: "/recommend/batch", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		{Path: "/recommend", Method: "POST", Limit: 300, Window: time.Minute, Burst: 30},

		// Per-user recommendations hit the database
		{Path: "/users/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}
