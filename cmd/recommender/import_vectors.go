package main

import (
	"fmt"
	"time"

	"github.com/jonathan/task-recommender/internal/embedding"
	"github.com/jonathan/task-recommender/internal/logx"
	"github.com/spf13/cobra"
)

var importVectorsCmd = &cobra.Command{
	Use:   "import-vectors",
	Short: "Copy a text vector model into Redis",
	Long: "Loads a text vector model (--model) and replaces the vectors stored in Redis (--redis) " +
		"under --prefix, so that servers can share one table without loading the file.",
	RunE: runImportVectors,
}

var (
	importPrefix string
)

func init() {
	importVectorsCmd.Flags().StringVar(&importPrefix, "prefix", "", "Redis key prefix (default \"recommender\" or the config value)")
	rootCmd.AddCommand(importVectorsCmd)
}

func runImportVectors(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.ModelPath == "" {
		return fmt.Errorf("--model is required")
	}
	if cfg.RedisURL == "" {
		return fmt.Errorf("--redis is required")
	}
	if cmd.Flags().Changed("prefix") {
		cfg.RedisPrefix = importPrefix
	}

	start := time.Now()
	m, err := embedding.LoadModel(cfg.ModelPath)
	if err != nil {
		return err
	}
	logx.Log.Info().Str("path", cfg.ModelPath).Int("tags", m.Len()).Int("dim", m.Dimension()).
		Dur("took", time.Since(start)).Msg("vector model loaded")

	ctx := cmd.Context()
	store, err := embedding.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		return fmt.Errorf("failed to connect to vector store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Import(ctx, m); err != nil {
		return fmt.Errorf("failed to import vectors: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d vectors (dim %d) under prefix %q\n", m.Len(), m.Dimension(), cfg.RedisPrefix)
	return nil
}
