package main

import (
	"errors"
	"fmt"

	"github.com/jgoulah/ecomonitor/internal/storage"
	"github.com/spf13/cobra"
)

var generateCount int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Append simulated readings to the data file",
	Long:  `Loads the data file (if any), simulates one reading per appliance per round, and saves the result.`,
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateCount, "count", 1, "Number of rounds to simulate")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateCount < 1 {
		return errors.New("--count must be at least 1")
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.LoadOrEmpty(getDataPath(cfg))
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	m := newMonitor(cfg, store)

	out := cmd.OutOrStdout()
	for i := 0; i < generateCount; i++ {
		n := m.Generate()
		fmt.Fprintf(out, "[%d/%d] Generated readings for %d appliances\n", i+1, generateCount, n)
	}

	if err := m.Save(); err != nil {
		return fmt.Errorf("saving data: %w", err)
	}

	fmt.Fprintf(out, "✓ Saved %d readings to %s\n", m.Store().Len(), m.DataPath())
	return nil
}
