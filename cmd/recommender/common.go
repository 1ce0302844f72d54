package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/task-recommender/internal/config"
	"github.com/jonathan/task-recommender/internal/embedding"
	"github.com/jonathan/task-recommender/internal/logx"
	"github.com/jonathan/task-recommender/internal/ranking"
	"github.com/jonathan/task-recommender/internal/similarity"
	"github.com/spf13/cobra"
)

const envModelPathHint = config.EnvModelPath

// resolveConfig layers defaults, the config file, the environment and the
// global flags, then configures logging. It does not validate.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Defaults()
	if globalConfigPath != "" {
		fileCfg, err := config.LoadConfig(globalConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	modelSet, redisSet := flags.Changed("model"), flags.Changed("redis")
	if modelSet {
		cfg.ModelPath = globalModelPath
		if !redisSet {
			cfg.RedisURL = ""
		}
	}
	if redisSet {
		cfg.RedisURL = globalRedisURL
		if !modelSet {
			cfg.ModelPath = ""
		}
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = globalLogLevel
	}
	if flags.Changed("threshold") {
		threshold := globalThreshold
		cfg.Threshold = &threshold
	}

	logx.Configure(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// loadRankingConfig resolves and validates the configuration of a command
// that ranks tasks.
func loadRankingConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if err := cfg.RequireVectorSource(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openProvider returns the configured vector source. The returned close
// function is never nil.
func openProvider(ctx context.Context, cfg config.Config) (embedding.Provider, func(), error) {
	if cfg.ModelPath != "" {
		start := time.Now()
		m, err := embedding.LoadModel(cfg.ModelPath)
		if err != nil {
			return nil, func() {}, err
		}
		logx.Log.Info().
			Str("path", cfg.ModelPath).
			Int("tags", m.Len()).
			Int("dim", m.Dimension()).
			Dur("took", time.Since(start)).
			Msg("vector model loaded")
		return m, func() {}, nil
	}

	store, err := embedding.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to connect to vector store: %w", err)
	}
	closeStore := func() { _ = store.Close() }
	if store.Dimension() == 0 {
		closeStore()
		return nil, func() {}, fmt.Errorf("redis prefix %q holds no vectors, run import-vectors first", cfg.RedisPrefix)
	}

	cached, err := embedding.NewCachedProvider(store, cfg.CacheSize)
	if err != nil {
		closeStore()
		return nil, func() {}, err
	}
	logx.Log.Info().
		Str("prefix", cfg.RedisPrefix).
		Int("dim", store.Dimension()).
		Int("cache_size", cfg.CacheSize).
		Msg("using redis vector store")
	return cached, closeStore, nil
}

// buildRanker opens the vector source and wraps it in a Ranker.
func buildRanker(ctx context.Context, cfg config.Config) (*ranking.Ranker, func(), error) {
	provider, closeFn, err := openProvider(ctx, cfg)
	if err != nil {
		return nil, closeFn, err
	}
	r := ranking.New(
		embedding.NewEmbedder(provider),
		ranking.WithThreshold(cfg.RankThreshold()),
		ranking.WithScorer(similarity.Scorer{TagWeight: cfg.TagWeight}),
	)
	return r, closeFn, nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(stdout io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := stdout.Write(data)
		return err
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
