package main

import (
	"fmt"
	"time"

	"github.com/jgoulah/ecomonitor/internal/publisher"
	"github.com/jgoulah/ecomonitor/internal/storage"
	"github.com/spf13/cobra"
)

var publishDryRun bool

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish usage totals and insights",
	Long:  `Reads the data file, analyzes it, and publishes per-appliance totals and insights to MQTT and/or Home Assistant.`,
	Args:  cobra.NoArgs,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "Print the MQTT messages instead of sending")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Load(getDataPath(cfg))
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}

	summary := publisher.NewSummary(store, cfg.GetThreshold(), time.Now())

	if publishDryRun {
		msgs, err := publisher.Messages(cfg.MQTT.GetTopicPrefix(), summary)
		if err != nil {
			return err
		}
		for _, msg := range msgs {
			fmt.Fprintf(out, "%s %s\n", msg.Topic, msg.Payload)
		}
		return nil
	}

	pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	fmt.Fprintf(out, "Publishing %d appliance totals and %d insights...\n", len(summary.Totals), len(summary.Insights))
	if err := pub.Publish(summary); err != nil {
		return fmt.Errorf("publishing: %w", err)
	}

	fmt.Fprintln(out, "✓ Published")
	return nil
}
