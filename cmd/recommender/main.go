// Package main provides the entry point for the task recommender CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	globalConfigPath string
	globalModelPath  string
	globalRedisURL   string
	globalLogLevel   string
	globalThreshold  float64
)

var rootCmd = &cobra.Command{
	Use:   "recommender",
	Short: "Task recommender",
	Long: "Ranks candidate tasks for a worker by the semantic similarity of their skill tags, " +
		"breaking ties with the similarity of complexity and expected time.",
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalConfigPath, "config", "", "Path to a JSON config file")
	flags.StringVar(&globalModelPath, "model", "", "Path to a text vector model (overrides "+envModelPathHint+")")
	flags.StringVar(&globalRedisURL, "redis", "", "Redis address or URL holding imported vectors (overrides REDIS_URL)")
	flags.StringVar(&globalLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error, none")
	flags.Float64Var(&globalThreshold, "threshold", 0, "Minimum tag similarity for a task to be recommended (default 0.45)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
