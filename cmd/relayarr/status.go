package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show relay status",
	Long: `Show relay status.

Prints version, uptime, sync timing, and the configured instances and
media servers as the running server sees them.

Examples:
  relayarr status            # Human-readable overview
  relayarr status --json     # Full status document`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	printStatus(serverURL, status)
	return nil
}

func printStatus(server string, s *StatusResponse) {
	uptime := (time.Duration(s.UptimeSeconds) * time.Second).String()
	fmt.Printf("relayarr v%s | Server: %s | Status: %s | Uptime: %s\n\n",
		s.Version, server, s.Status, uptime)

	fmt.Println("Sync")
	fmt.Printf("  Delay:     %s\n", s.Sync.Delay)
	fmt.Printf("  Interval:  %s\n", s.Sync.Interval)
	fmt.Println()

	fmt.Printf("Instances (%d)\n", len(s.Instances))
	for i := range s.Instances {
		inst := &s.Instances[i]
		events := "-"
		if len(inst.EnabledEvents) > 0 {
			events = strings.Join(inst.EnabledEvents, ", ")
		}
		fmt.Printf("  %-16s %-8s %-32s %s\n", inst.Name, inst.Type, inst.URL, events)
	}
	fmt.Println()

	fmt.Printf("Media Servers (%d)\n", len(s.MediaServers))
	for i := range s.MediaServers {
		srv := &s.MediaServers[i]
		state := "enabled"
		if !srv.Enabled {
			state = "disabled"
		}
		fmt.Printf("  %-16s %-8s %-32s %s\n", srv.Name, srv.Type, srv.URL, state)
	}
	fmt.Println()

	fmt.Printf("Deliveries:  %d recorded\n", s.Deliveries.Total)
}
