package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/quillstack/notes-server/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	logLevel  string
	logFormat string

	rootCmd = &cobra.Command{
		Use:   "notes-server",
		Short: "Notes API server with an append-only audit trail",
		Long: `notes-server is a small web API managing notes (title, content, tags,
publish state) with an append-only audit trail of lifecycle events.

It runs against PostgreSQL when DATABASE_URL is set, or on an in-memory
store otherwise. Publishing, unpublishing, and deleting a note each leave
an immutable audit event behind.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand means serve.
			return serveCmd.RunE(cmd, args)
		},
	}
)

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		// Missing .env is fine; env vars win either way.
		_ = godotenv.Load()
	})

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, console)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	return cfg, nil
}
