package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Trigger a manual library scan",
	Long: `Trigger a manual library scan.

Queues a ManualScan delivery for the given path. Media servers rescan
the matching library section; no instance syncing happens.

Examples:
  relayarr scan --path /data/tv/Severance --type series
  relayarr scan --path /data/movies/Heat --type movie`,
	Args: cobra.NoArgs,
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringP("path", "p", "", "Library path to scan")
	scanCmd.Flags().StringP("type", "t", "", "Content type (series or movie)")
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	contentType, _ := cmd.Flags().GetString("type")

	if path == "" {
		return fmt.Errorf("--path is required")
	}
	if contentType != "series" && contentType != "movie" {
		return fmt.Errorf("invalid type %q, must be series or movie", contentType)
	}

	client := NewClient(serverURL)
	ack, err := client.Scan(path, contentType)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if jsonOutput {
		printJSON(ack)
		return nil
	}

	fmt.Printf("Scan queued: %s\n", ack.WebhookID)
	fmt.Printf("Use 'relayarr deliveries %s' to check the result\n", ack.WebhookID)
	return nil
}
