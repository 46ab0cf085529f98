// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure. A loaded Config is treated as
// an immutable snapshot: deliveries read it through a Store and a reload
// swaps the whole pointer, never individual fields.
type Config struct {
	Server       ServerConfig        `toml:"server"`
	Database     DatabaseConfig      `toml:"database"`
	Sync         SyncConfig          `toml:"sync"`
	Instances    []InstanceConfig    `toml:"instances"`
	MediaServers []MediaServerConfig `toml:"media_servers"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// DatabaseConfig locates the SQLite database and bounds the delivery
// history kept in it. Keep is the number of deliveries retained; older rows
// are pruned as new ones arrive.
type DatabaseConfig struct {
	Path string `toml:"path"`
	Keep int    `toml:"keep"`
}

// SyncConfig carries the webhook timing knobs in the compact duration
// grammar understood by ParseDuration ("500ms", "5s", "2m", bare "10" for
// seconds). Unparseable values act as zero.
type SyncConfig struct {
	Delay    string `toml:"delay"`
	Interval string `toml:"interval"`
}

// DelayDuration returns the parsed one-time delay applied before a
// delivery's instance processing starts.
func (s SyncConfig) DelayDuration() time.Duration {
	d, _ := ParseDuration(s.Delay)
	return d
}

// IntervalDuration returns the parsed pause between instance operations and
// before the scan phase.
func (s SyncConfig) IntervalDuration() time.Duration {
	d, _ := ParseDuration(s.Interval)
	return d
}

// RewriteRule maps a path prefix visible to one side onto the prefix the
// other side mounts it at. Rules are evaluated in declared order and the
// first matching from-prefix wins.
type RewriteRule struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// InstanceConfig describes one downstream Sonarr or Radarr deployment to
// keep in sync.
type InstanceConfig struct {
	Name              string        `toml:"name"`
	Type              string        `toml:"type"`
	URL               string        `toml:"url"`
	APIKey            string        `toml:"api_key"`
	RootFolder        string        `toml:"root_folder"`
	QualityProfileID  int           `toml:"quality_profile_id"`
	LanguageProfileID int           `toml:"language_profile_id"`
	SeasonFolder      bool          `toml:"season_folder"`
	SearchOnSync      bool          `toml:"search_on_sync"`
	EnabledEvents     []string      `toml:"enabled_events"`
	RewriteRules      []RewriteRule `toml:"rewrite"`
}

// EventEnabled reports whether the instance opted into the given event
// type. Matching is case-insensitive so "import" in the config catches
// "Import" on the wire.
func (i *InstanceConfig) EventEnabled(eventType string) bool {
	for _, e := range i.EnabledEvents {
		if strings.EqualFold(e, eventType) {
			return true
		}
	}
	return false
}

// MediaServerConfig describes one Plex, Jellyfin, or Emby server that
// should be rescanned after library changes.
type MediaServerConfig struct {
	Name         string        `toml:"name"`
	Type         string        `toml:"type"`
	URL          string        `toml:"url"`
	Token        string        `toml:"token"`
	Enabled      *bool         `toml:"enabled"`
	RewriteRules []RewriteRule `toml:"rewrite"`
}

// IsEnabled reports whether the server participates in scan dispatch.
// Servers are enabled unless explicitly switched off.
func (m *MediaServerConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// Load reads and parses the configuration file. It returns a *config.Error
// when environment substitution leaves variables unresolved or validation
// finds problems; the file-level read/parse failures come back wrapped.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cerr := &Error{Path: path, Missing: missing, Invalid: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file but skips
// validation. Used by tooling that wants to inspect a broken config.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3536
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/relayarr.db"
	}
	if cfg.Database.Keep == 0 {
		cfg.Database.Keep = 1000
	}

	return &cfg, missing, nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// ${VAR:-default} falls back to the default when VAR is unset or empty;
// ${VAR:?message} records a missing-variable error. Plain unresolved
// variables are left in place and reported so Load can surface them instead
// of shipping a literal "${SONARR_API_KEY}" to an instance.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	record := func(entry string) {
		if !seen[entry] {
			seen[entry] = true
			missing = append(missing, entry)
		}
	}

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // Strip ${ and }

		if name, fallback, ok := strings.Cut(expr, ":-"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			return fallback
		}

		if name, message, ok := strings.Cut(expr, ":?"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			record(name + ": " + message)
			return match
		}

		if value, ok := os.LookupEnv(expr); ok {
			return value
		}
		record(expr)
		return match
	})

	return result, missing
}
