package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/ecomonitor/internal/storage"
	"github.com/spf13/cobra"
)

var (
	archiveList      bool
	archiveAppliance string
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Copy readings from the data file into the SQLite archive",
	Long: `Inserts every reading from the data file into the local SQLite archive.
Readings already archived are skipped.`,
	Args: cobra.NoArgs,
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().BoolVar(&archiveList, "list", false, "Show archived totals instead of archiving")
	archiveCmd.Flags().StringVar(&archiveAppliance, "appliance", "", "With --list, show archived readings for one appliance")
	rootCmd.AddCommand(archiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()

	if archiveList && archiveAppliance != "" {
		readings, err := db.ListReadings(archiveAppliance)
		if err != nil {
			return fmt.Errorf("listing archive for %s: %w", archiveAppliance, err)
		}
		if len(readings) == 0 {
			fmt.Fprintf(out, "No archived data found for %s\n", archiveAppliance)
			return nil
		}
		fmt.Fprintf(out, "\n%s Archived Readings:\n", archiveAppliance)
		fmt.Fprintf(out, "%5s  %-20s  %10s  %s\n", "Seq", "Timestamp", "kWh", "Batch")
		fmt.Fprintln(out, "------------------------------------------------------------")
		for _, ar := range readings {
			fmt.Fprintf(out, "%5d  %-20s  %10.2f  %s\n", ar.Seq, ar.Reading.Timestamp, ar.Reading.Usage, ar.BatchID)
		}
		return nil
	}

	if archiveList {
		totals, err := db.Totals()
		if err != nil {
			return fmt.Errorf("listing archive: %w", err)
		}
		if len(totals) == 0 {
			fmt.Fprintln(out, "Archive is empty")
			return nil
		}
		fmt.Fprintf(out, "%-20s  %10s  %12s\n", "Appliance", "Readings", "kWh")
		fmt.Fprintln(out, "----------------------------------------------")
		for _, t := range totals {
			fmt.Fprintf(out, "%-20s  %10s  %12s\n", t.Appliance, humanize.Comma(int64(t.Readings)), humanize.FormatFloat("#,###.##", t.KWh))
		}
		return nil
	}

	store, err := storage.Load(getDataPath(cfg))
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	batchID, inserted, err := db.ArchiveStore(store)
	if err != nil {
		return fmt.Errorf("archiving: %w", err)
	}

	logger.Debug("archive batch complete", "batch_id", batchID, "inserted", inserted)
	fmt.Fprintf(out, "✓ Archived %d new readings (%d skipped as duplicates)\n", inserted, store.Len()-inserted)
	return nil
}
