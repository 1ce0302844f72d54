package main

import (
	"fmt"
	"os"

	"github.com/jonathan/task-recommender/internal/db"
	"github.com/jonathan/task-recommender/internal/logx"
	"github.com/jonathan/task-recommender/internal/server"
	"github.com/jonathan/task-recommender/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server that ranks submitted tasks. When DATABASE_URL is set, " +
		"GET /users/{id}/recommendations ranks the open tasks stored there.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080 or PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRankingConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	ranker, closeFn, err := buildRanker(ctx, cfg)
	defer closeFn()
	if err != nil {
		return err
	}

	var store server.TaskStore
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		if err := database.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to prepare database schema: %w", err)
		}
		store = database
		logx.Log.Info().Msg("database connected, per-user recommendations enabled")
	}

	rlCfg, err := ratelimit.LoadConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("failed to load rate limit config: %w", err)
	}

	srv := server.New(server.Config{
		Port:        cfg.Port,
		Limit:       cfg.Limit,
		Concurrency: cfg.Concurrency,
		RateLimit:   rlCfg,
	}, ranker, store)

	return srv.Start()
}
