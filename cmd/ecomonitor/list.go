package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/ecomonitor/internal/energy"
	"github.com/jgoulah/ecomonitor/internal/storage"
	"github.com/spf13/cobra"
)

var listAppliance string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored usage data",
	Long:  `Displays all stored readings from the data file with per-appliance totals.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listAppliance, "appliance", "", "Filter by appliance name")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Load(getDataPath(cfg))
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	appliances := store.Appliances()
	if listAppliance != "" {
		appliances = []string{listAppliance}
	}

	printUsage(cmd.OutOrStdout(), store, appliances, time.Now())
	return nil
}

// printUsage writes a table of readings and totals for each appliance
func printUsage(w io.Writer, store *energy.Store, appliances []string, now time.Time) {
	for _, appliance := range appliances {
		readings := store.Readings(appliance)
		if len(readings) == 0 {
			fmt.Fprintf(w, "No data found for %s\n", appliance)
			continue
		}

		fmt.Fprintf(w, "\n%s Usage Data:\n", appliance)
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "%-20s  %10s  %s\n", "Timestamp", "kWh", "Age")
		fmt.Fprintln(w, "--------------------------------------------------")

		for _, r := range readings {
			age := "unknown"
			if t, err := r.Time(); err == nil {
				age = humanize.RelTime(t, now, "ago", "from now")
			}
			fmt.Fprintf(w, "%-20s  %10.2f  %s\n", r.Timestamp, r.Usage, age)
		}

		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "Total: %s kWh (%s records)\n",
			humanize.FormatFloat("#,###.##", store.Total(appliance)),
			humanize.Comma(int64(len(readings))))
	}
}
