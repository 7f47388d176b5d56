package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/jonathan/rolecolor-agent/internal/config"
	"github.com/jonathan/rolecolor-agent/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for scoring, rendering, validation, and full pipeline runs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Database and API key are both optional: without a database the run
	// history endpoints return 503, without an API key pipeline runs skip
	// the generative steps.
	databaseURL := os.Getenv("DATABASE_URL")
	apiKey := os.Getenv("GEMINI_API_KEY")

	port := servePort
	if serveConfigPath != "" {
		cfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.DatabaseURL != "" {
			databaseURL = cfg.DatabaseURL
		}
		if cfg.APIKey != "" {
			apiKey = cfg.APIKey
		}
		// The --port flag wins over listen_addr from the config file
		if !cmd.Flags().Changed("port") && cfg.ListenAddr != "" {
			p, err := portFromAddr(cfg.ListenAddr)
			if err != nil {
				return fmt.Errorf("invalid listen_addr in config: %w", err)
			}
			port = p
		}
	}

	if apiKey == "" {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: GEMINI_API_KEY not set; pipeline runs will skip summary and field generation\n")
	}

	srv, err := server.New(server.Config{
		Port:        port,
		DatabaseURL: databaseURL,
		APIKey:      apiKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// portFromAddr extracts the port number from an address like ":8080".
func portFromAddr(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(portStr)
}
