package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/trend-goat/trend-goat/internal/server"
	"github.com/trend-goat/trend-goat/internal/store"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the trend-goat HTTP server.

The server provides:
  - Chart API for the processed series and axis domain
  - Count ingestion endpoint
  - Live websocket updates
  - Dashboard for interactive charts
  - Health check endpoint

Example:
  tg serve --port 8080`,
	RunE: runServe,
}

func init() {
	defaultPort := 8080
	if p := os.Getenv("TG_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			defaultPort = parsed
		}
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", defaultPort, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Open database
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	tokenFile := filepath.Join(os.TempDir(), "trend-goat-token")

	// Create and start server
	srv := server.New(s, port, tokenFile)
	return srv.Start()
}
