package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jgoulah/ecomonitor/internal/config"
	"github.com/jgoulah/ecomonitor/internal/database"
	"github.com/jgoulah/ecomonitor/internal/energy"
	"github.com/jgoulah/ecomonitor/internal/monitor"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	dataPath string
	dbPath   string
	debug    bool

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "ecomonitor",
	Short: "Track simulated appliance energy usage and suggest savings",
	Long: `Eco-Monitor simulates per-appliance energy readings, stores them in a local JSON file,
and flags appliances whose cumulative usage exceeds a threshold.

Run without a subcommand to start the interactive menu.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "data file (default is ./energy_data.json)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "archive database file (default is ./data.db)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	m := newMonitor(cfg, nil)
	return m.RunMenu(cmd.InOrStdin(), cmd.OutOrStdout())
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getDataPath returns the JSON data file path, flag first then config
func getDataPath(cfg *config.Config) string {
	if dataPath != "" {
		return dataPath
	}
	return cfg.GetDataFile()
}

// getDBPath returns the archive database path, flag first then config
func getDBPath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.GetDBPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// newMonitor builds the session monitor from config, starting from store if given
func newMonitor(cfg *config.Config, store *energy.Store) *monitor.Monitor {
	return monitor.New(monitor.Options{
		DataPath:  getDataPath(cfg),
		Threshold: cfg.GetThreshold(),
		Generator: energy.NewGenerator(cfg.GetAppliances()),
		Logger:    logger,
		Store:     store,
	})
}

// openDB opens the archive database connection
func openDB(cfg *config.Config) (*database.DB, error) {
	path := getDBPath(cfg)

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}
