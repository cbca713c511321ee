package main

import (
	"errors"
	"fmt"

	"github.com/jgoulah/ecomonitor/internal/monitor"
	"github.com/jgoulah/ecomonitor/internal/storage"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the data file and show insights",
	Args:  cobra.NoArgs,
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	m := newMonitor(cfg, nil)
	if err := m.Load(); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no data file at %s, run 'ecomonitor generate' first", m.DataPath())
		}
		return fmt.Errorf("loading data: %w", err)
	}

	monitor.Report(cmd.OutOrStdout(), m.Analyze())
	return nil
}
