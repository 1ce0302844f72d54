package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"redis_url": "redis://localhost:6379/0",
		"redis_prefix": "quests",
		"port": 9090,
		"threshold": 0,
		"limit": 5,
		"log_format": "json"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "quests", cfg.RedisPrefix)
	assert.Equal(t, 9090, cfg.Port)
	require.NotNil(t, cfg.Threshold)
	assert.Equal(t, 0.0, *cfg.Threshold)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "model.vec")
	require.NoError(t, os.WriteFile(modelPath, []byte("0 3\n"), 0644))

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "empty", cfg: Config{}},
		{name: "defaults", cfg: Defaults()},
		{name: "model file", cfg: Config{ModelPath: modelPath}},
		{name: "negative threshold in range", cfg: Config{Threshold: floatPtr(-1)}},
		{name: "both sources", cfg: Config{ModelPath: modelPath, RedisURL: "localhost:6379"}, wantErr: "mutually exclusive"},
		{name: "threshold too high", cfg: Config{Threshold: floatPtr(1.5)}, wantErr: "threshold"},
		{name: "negative weight", cfg: Config{TagWeight: -30}, wantErr: "tag_weight"},
		{name: "negative limit", cfg: Config{Limit: -1}, wantErr: "limit"},
		{name: "negative cache", cfg: Config{CacheSize: -1}, wantErr: "cache_size"},
		{name: "negative concurrency", cfg: Config{Concurrency: -2}, wantErr: "concurrency"},
		{name: "bad port", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "bad log format", cfg: Config{LogFormat: "xml"}, wantErr: "log_format"},
		{name: "missing model", cfg: Config{ModelPath: "/nonexistent/model.vec"}, wantErr: "model file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequireVectorSource(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.RequireVectorSource(), "is required")

	cfg.ModelPath = "model.vec"
	assert.NoError(t, cfg.RequireVectorSource())

	cfg.RedisURL = "localhost:6379"
	assert.ErrorContains(t, cfg.RequireVectorSource(), "mutually exclusive")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvRedisURL:    "redis://cache:6379",
		EnvDatabaseURL: "postgres://localhost/quests",
		EnvPort:        "9000",
		EnvLogLevel:    "debug",
	}
	cfg := &Config{RedisURL: "localhost:6379", LogFormat: "json"}

	err := cfg.ApplyEnv(func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, "redis://cache:6379", cfg.RedisURL)
	assert.Equal(t, "postgres://localhost/quests", cfg.DatabaseURL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat, "unset variables leave fields alone")
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyEnv(func(k string) string {
		if k == EnvPort {
			return "eighty"
		}
		return ""
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPort)
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{
		ModelPath: "model.vec",
		Limit:     3,
		Threshold: floatPtr(0),
	}

	merged := partial.MergeWithDefaults(Defaults())

	// Custom values should be preserved
	assert.Equal(t, "model.vec", merged.ModelPath)
	assert.Equal(t, 3, merged.Limit)
	assert.Equal(t, 0.0, merged.RankThreshold())

	// Default values should fill in empty fields
	assert.Equal(t, DefaultRedisPrefix, merged.RedisPrefix)
	assert.Equal(t, DefaultPort, merged.Port)
	assert.Equal(t, DefaultTagWeight, merged.TagWeight)
	assert.Equal(t, DefaultCacheSize, merged.CacheSize)
	assert.Equal(t, DefaultConcurrency, merged.Concurrency)
	assert.Equal(t, DefaultLogLevel, merged.LogLevel)
}

func TestMergeWithDefaults_ThresholdNotShared(t *testing.T) {
	defaults := Defaults()
	merged := (&Config{}).MergeWithDefaults(defaults)

	require.NotNil(t, merged.Threshold)
	*merged.Threshold = 0.9
	assert.Equal(t, DefaultThreshold, *defaults.Threshold)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{ModelPath: "model.vec"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "model.vec", merged.ModelPath)
	assert.Nil(t, merged.Threshold)
	assert.Equal(t, DefaultThreshold, merged.RankThreshold())
}
