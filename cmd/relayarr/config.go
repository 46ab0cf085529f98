package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/relayarr/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter configuration file",
	Long:  "Writes the commented starter config to the given path (default ./config.toml). Refuses to overwrite an existing file.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without starting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Show effective configuration",
	Long:  "Loads the configuration file, applies defaults, and prints the effective settings with credentials masked.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "config.toml"
	if len(args) > 0 {
		path = args[0]
	}

	if err := config.WriteDefault(path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists", path)
		}
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println("Edit it to add instances and media servers, then run 'relayarr config validate'.")
	return nil
}

func configPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if path, err := config.Discover(); err == nil {
		return path
	}
	return "config.toml"
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := configPathArg(args)

	fmt.Printf("Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	for _, w := range cfg.Warnings() {
		fmt.Printf("Warning: %s\n", w)
	}

	printConfigSummary(cfg)
	fmt.Println("\nConfiguration valid!")
	return nil
}

func printConfigErrors(e *config.Error) {
	if len(e.Missing) > 0 {
		fmt.Println("Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Printf("  - %s\n", m)
		}
		fmt.Println()
	}

	if len(e.Invalid) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range e.Invalid {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
	}
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println("Configuration Summary:")
	fmt.Printf("  Server:        %s:%d (log: %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	fmt.Printf("  Database:      %s (keep %d)\n", cfg.Database.Path, cfg.Database.Keep)
	fmt.Printf("  Sync:          delay %s, interval %s\n", cfg.Sync.DelayDuration(), cfg.Sync.IntervalDuration())

	names := make([]string, 0, len(cfg.Instances))
	for i := range cfg.Instances {
		names = append(names, cfg.Instances[i].Name)
	}
	fmt.Printf("  Instances:     %s\n", strings.Join(names, ", "))

	servers := make([]string, 0, len(cfg.MediaServers))
	for i := range cfg.MediaServers {
		s := &cfg.MediaServers[i]
		if s.IsEnabled() {
			servers = append(servers, s.Name)
		} else {
			servers = append(servers, s.Name+" (disabled)")
		}
	}
	fmt.Printf("  Media servers: %s\n", strings.Join(servers, ", "))
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := configPathArg(args)

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("Configuration: %s\n\n", path)
	fmt.Printf("[server]\n")
	fmt.Printf("  listen:    %s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("  log_level: %s\n", cfg.Server.LogLevel)
	fmt.Printf("\n[database]\n")
	fmt.Printf("  path: %s\n", cfg.Database.Path)
	fmt.Printf("  keep: %d\n", cfg.Database.Keep)
	fmt.Printf("\n[sync]\n")
	fmt.Printf("  delay:    %s\n", cfg.Sync.DelayDuration())
	fmt.Printf("  interval: %s\n", cfg.Sync.IntervalDuration())

	for i := range cfg.Instances {
		inst := &cfg.Instances[i]
		fmt.Printf("\n[instance] %s\n", inst.Name)
		fmt.Printf("  type:    %s\n", inst.Type)
		fmt.Printf("  url:     %s\n", inst.URL)
		fmt.Printf("  api_key: %s\n", maskSecret(inst.APIKey))
		if len(inst.EnabledEvents) > 0 {
			fmt.Printf("  events:  %s\n", strings.Join(inst.EnabledEvents, ", "))
		}
		for _, r := range inst.RewriteRules {
			fmt.Printf("  rewrite: %s -> %s\n", r.From, r.To)
		}
	}

	for i := range cfg.MediaServers {
		srv := &cfg.MediaServers[i]
		fmt.Printf("\n[media_server] %s\n", srv.Name)
		fmt.Printf("  type:    %s\n", srv.Type)
		fmt.Printf("  url:     %s\n", srv.URL)
		fmt.Printf("  token:   %s\n", maskSecret(srv.Token))
		if !srv.IsEnabled() {
			fmt.Printf("  enabled: false\n")
		}
		for _, r := range srv.RewriteRules {
			fmt.Printf("  rewrite: %s -> %s\n", r.From, r.To)
		}
	}

	return nil
}

func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 8 {
		return "********"
	}
	return "********" + s[len(s)-4:]
}
