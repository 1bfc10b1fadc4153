package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-studio/internal/config"
	"github.com/jonathan/cv-studio/internal/server"
	"github.com/jonathan/cv-studio/pkg/logger"
)

var serveCommand = &cobra.Command{
	Use:   "serve",
	Short: "Start the CV Studio HTTP API server",
	Long: `Starts the REST API that backs the CV editor: document CRUD, imports,
ATS analysis, text enhancement, and HTML/PDF export.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: serveCmd,
}

var (
	serveConfigPath string
	servePort       int
	serveAPIKey     string
	serveDataPath   string
	serveDebounce   int
	serveVerbose    bool
)

func init() {
	serveCommand.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCommand.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP server port")
	serveCommand.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	serveCommand.Flags().StringVar(&serveDataPath, "data", "", "Path to the persisted CV JSON file")
	serveCommand.Flags().IntVar(&serveDebounce, "debounce-ms", 0, "Quiet interval in milliseconds before edits are written to disk")
	serveCommand.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(serveCommand)
}

func loadConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg.FromEnv()

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}
	if cmd.Flags().Changed("data") {
		cfg.DataPath = serveDataPath
	}
	if cmd.Flags().Changed("debounce-ms") {
		cfg.DebounceMillis = serveDebounce
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func serveCmd(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if serveVerbose {
		level = slog.LevelDebug
	}
	logger.Setup(level)

	cfg, err := loadConfig(cmd, serveConfigPath)
	if err != nil {
		return err
	}

	if cfg.APIKey == "" {
		slog.Warn("no API key configured; AI-backed endpoints are disabled")
	}

	srv, err := server.New(server.Config{
		Port:             cfg.Port,
		APIKey:           cfg.APIKey,
		DataPath:         cfg.DataPath,
		DebounceInterval: time.Duration(cfg.DebounceMillis) * time.Millisecond,
	})
	if err != nil {
		return err
	}

	return srv.Start()
}
