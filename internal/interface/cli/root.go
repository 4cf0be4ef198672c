package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/neilberkman/recrider/internal/core/config"
	"github.com/neilberkman/recrider/internal/core/db"
	"github.com/neilberkman/recrider/internal/core/logger"
	"github.com/spf13/cobra"
)

var (
	dbPath      string
	configPath  string
	debug       bool
	versionInfo string

	// cfg is resolved once per invocation in PersistentPreRunE
	cfg *config.Config
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "recrider",
	Short: "Local cache and analytics for Plaud recordings",
	Long: `recrider - sync, analyse, and organise your Plaud recordings

Keeps a local SQLite mirror of your Plaud recording inventory, derives
when each recording happened in your timezone, answers questions like
"how many recordings happened in working hours", and files recordings
into directories that are mirrored back to Plaud as tags.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to stats if no subcommand specified
		return statsCmd.RunE(cmd, args)
	},
}

func init() {
	defaultConfig, err := config.DefaultPath()
	if err != nil {
		defaultConfig = filepath.Join("~", ".config", "recrider", "config.toml")
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "Config file path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides db_path in the config file)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to stderr")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		loaded.DBPath = dbPath
	}
	cfg = loaded

	if err := logger.Init(logger.Config{Debug: debug, ConfigDir: configDir()}); err != nil {
		// Logging is best effort, commands still work without it
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	logger.Debug("config loaded", "config", configPath, "db", cfg.DBPath, "command", cmd.Name())
	return nil
}

// configDir holds the config file and the logs directory
func configDir() string {
	return filepath.Dir(configPath)
}

func openDB() (*db.DB, error) {
	database, err := db.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}
