package main

import (
	"fmt"
	"os"

	"github.com/jgoulah/ecomonitor/internal/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Writes a config file with every default spelled out, ready for editing.
An existing file is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := getConfigPath()

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	logger.Debug("wrote config", "path", path)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote config to %s\n", path)
	return nil
}
