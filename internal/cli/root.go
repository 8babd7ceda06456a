package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath string
)

var rootCmd = &cobra.Command{
	Use:   "tg",
	Short: "Trend Goat - a self-hosted conversion-rate trend visualizer",
	Long: `🐐 Trend Goat tracks per-variant visit and conversion counts for A/B
experiments and charts the conversion-rate trend over time.
Single Go binary, embedded SQLite, no external dependencies.

Running without a subcommand starts the server (same as 'tg serve').`,
	RunE: runServe, // Default action is to start server
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", getEnvOrDefault("TG_DB_PATH", "./tg.db"), "database path")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
