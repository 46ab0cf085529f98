package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var deliveriesCmd = &cobra.Command{
	Use:   "deliveries [id]",
	Short: "Show webhook delivery history",
	Long: `Show webhook delivery history.

Without arguments, lists recent deliveries newest first. With a
delivery ID, shows the full per-instance and per-server results.

Examples:
  relayarr deliveries                   # List recent deliveries
  relayarr deliveries --limit 5         # Only the five newest
  relayarr deliveries k3j9x0qw7n4p2m8c  # Full result breakdown`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeliveriesCmd,
}

func init() {
	rootCmd.AddCommand(deliveriesCmd)
	deliveriesCmd.Flags().IntP("limit", "n", 20, "Maximum number of deliveries to list")
}

func runDeliveriesCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	if len(args) > 0 {
		return runDeliveryShow(client, args[0])
	}

	limit, _ := cmd.Flags().GetInt("limit")
	list, err := client.Deliveries(limit)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if jsonOutput {
		printJSON(list)
		return nil
	}

	printDeliveries(list)
	return nil
}

func runDeliveryShow(client *Client, id string) error {
	d, err := client.Delivery(id)
	if err != nil {
		return fmt.Errorf("failed to fetch delivery: %w", err)
	}

	if jsonOutput {
		printJSON(d)
		return nil
	}

	printDelivery(d)
	return nil
}

func printDeliveries(l *ListDeliveriesResponse) {
	if len(l.Items) == 0 {
		fmt.Println("No deliveries recorded")
		return
	}

	fmt.Printf("Deliveries (%d of %d):\n\n", len(l.Items), l.Total)
	fmt.Printf("  %-18s %-20s %-14s %-30s %s\n", "ID", "RECEIVED", "EVENT", "TITLE", "STATUS")
	fmt.Println("  " + strings.Repeat("-", 94))

	for i := range l.Items {
		d := &l.Items[i]
		title := d.Title
		if title == "" {
			title = d.ScanPath
		}
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		fmt.Printf("  %-18s %-20s %-14s %-30s %s\n",
			d.ID, formatReceived(d.ReceivedAt), d.EventType, title, d.Status)
	}
}

func formatReceived(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func printDelivery(d *DeliveryResponse) {
	fmt.Printf("Delivery %s\n\n", d.ID)
	fmt.Printf("  %-12s %s\n", "Received:", formatReceived(d.ReceivedAt))
	fmt.Printf("  %-12s %s\n", "Event:", d.EventType)
	if d.Product != "" {
		fmt.Printf("  %-12s %s\n", "Product:", d.Product)
	}
	if d.Title != "" {
		fmt.Printf("  %-12s %s\n", "Title:", d.Title)
	}
	if d.ScanPath != "" {
		fmt.Printf("  %-12s %s\n", "Scan path:", d.ScanPath)
	}
	fmt.Printf("  %-12s %s\n", "Status:", d.Status)

	var detail DeliveryDetail
	if err := json.Unmarshal(d.Results, &detail); err != nil {
		fmt.Printf("\n  Results: %s\n", string(d.Results))
		return
	}

	if detail.Reason != "" {
		fmt.Printf("  %-12s %s\n", "Reason:", detail.Reason)
	}

	if len(detail.SyncResults) > 0 {
		fmt.Println("\n  Instances:")
		for _, r := range detail.SyncResults {
			fmt.Printf("    %-16s %-8s %s\n", r.Instance, r.Status, syncDetailText(r))
		}
	}

	if len(detail.ScanResults) > 0 {
		fmt.Println("\n  Media servers:")
		for _, r := range detail.ScanResults {
			fmt.Printf("    %-16s %-8s %s\n", r.Server, r.Status, scanDetailText(r))
		}
	}

	if detail.ScannedPath != "" {
		fmt.Printf("\n  Scanned path: %s\n", detail.ScannedPath)
	}
}

func syncDetailText(r SyncDetail) string {
	switch {
	case r.Error != "":
		return r.Error
	case r.Action != "":
		return r.Action
	}
	return r.Detail
}

func scanDetailText(r ScanDetail) string {
	if r.Error != "" {
		return r.Error
	}
	return r.Message
}
