package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(envFrom(nil))
	require.NoError(t, err)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 600, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
	assert.Equal(t, time.Hour, cfg.IdleTimeout)
	assert.Empty(t, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)
	assert.Equal(t, DefaultEndpointConfigs(), cfg.EndpointConfigs)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(envFrom(map[string]string{
		"RATE_LIMIT_ENABLED":          "false",
		"RATE_LIMIT_DEFAULT_LIMIT":    " 42 ",
		"RATE_LIMIT_DEFAULT_WINDOW":   "30s",
		"RATE_LIMIT_CLEANUP_INTERVAL": "1m",
		"RATE_LIMIT_IDLE_TIMEOUT":     "10m",
		"RATE_LIMIT_WHITELIST":        "10.0.0.1, ,10.0.0.2",
		"RATE_LIMIT_BLACKLIST":        "192.168.1.9",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, time.Minute, cfg.CleanupInterval)
	assert.Equal(t, 10*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Equal(t, map[string]bool{"192.168.1.9": true}, cfg.Blacklist)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	_, err := LoadConfig(envFrom(map[string]string{
		"RATE_LIMIT_ENABLED":        "maybe",
		"RATE_LIMIT_DEFAULT_LIMIT":  "0",
		"RATE_LIMIT_DEFAULT_WINDOW": "soon",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_ENABLED")
	assert.Contains(t, err.Error(), `RATE_LIMIT_DEFAULT_LIMIT "0": must be positive`)
	assert.Contains(t, err.Error(), "RATE_LIMIT_DEFAULT_WINDOW")
}

func TestLoadConfig_FeedsLimiter(t *testing.T) {
	cfg, err := LoadConfig(envFrom(map[string]string{
		"RATE_LIMIT_DEFAULT_LIMIT": "1",
		"RATE_LIMIT_BLACKLIST":     "6.6.6.6",
	}))
	require.NoError(t, err)

	l, _ := newTestLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("1.1.1.1", "/tasks", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("1.1.1.1", "/tasks", "GET")
	assert.False(t, allowed)
	allowed, _ = l.Allow("6.6.6.6", "/recommend", "POST")
	assert.False(t, allowed)
}
