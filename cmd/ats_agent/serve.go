package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-analyzer/internal/config"
	"github.com/jonathan/ats-analyzer/internal/logger"
	"github.com/jonathan/ats-analyzer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the REST API for resume ingestion, job management, scoring and
candidate rankings. Requires a PostgreSQL database.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runServe,
}

var (
	serveConfigPath  string
	servePort        int
	serveDatabaseURL string
	serveDictionary  string
	serveLogLevel    string
	serveLogFormat   string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP listen port (default 8080)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "Database URL (defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveDictionary, "dictionary", "", "Path to a custom skill dictionary JSON file")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "", "Log format: console or json")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		Port:        servePort,
		DatabaseURL: serveDatabaseURL,
		Dictionary:  serveDictionary,
		LogLevel:    serveLogLevel,
		LogFormat:   serveLogFormat,
	}

	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.Config{Port: 8080, LogLevel: "info", LogFormat: "json"})
	cfg.FromEnv()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL environment variable or use --db-url)")
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		DatabaseURL:    cfg.DatabaseURL,
		DictionaryPath: cfg.Dictionary,
	})
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return srv.Start()
}
