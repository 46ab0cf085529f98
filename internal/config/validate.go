// internal/config/validate.go
package config

import (
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validInstanceTypes = []string{"sonarr", "radarr"}

var validServerTypes = []string{"plex", "jellyfin", "emby"}

// knownEvents is every event type an instance can opt into. "Download" is
// accepted as an alias since upstream webhooks carry it before it is
// normalized to "Import".
var knownEvents = []string{
	"Grab", "Download", "Import", "Rename",
	"SeriesAdd", "SeriesDelete", "EpisodeFileDelete",
	"MovieAdded", "MovieDelete", "MovieFileDelete",
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}
	if c.Database.Keep < 0 {
		errs = append(errs, fmt.Sprintf("database.keep: must not be negative, got %d", c.Database.Keep))
	}

	// Instance validation
	seenInstances := make(map[string]bool)
	for idx, inst := range c.Instances {
		prefix := fmt.Sprintf("instances[%d]", idx)
		if inst.Name == "" {
			errs = append(errs, prefix+".name: required")
		} else if seenInstances[inst.Name] {
			errs = append(errs, fmt.Sprintf("%s.name: duplicate instance name %q", prefix, inst.Name))
		} else {
			seenInstances[inst.Name] = true
		}

		if !contains(validInstanceTypes, strings.ToLower(inst.Type)) {
			errs = append(errs, unknownValue(prefix+".type", inst.Type, validInstanceTypes))
		}
		if inst.URL == "" {
			errs = append(errs, prefix+".url: required")
		}
		if inst.APIKey == "" {
			errs = append(errs, prefix+".api_key: required")
		}

		for _, event := range inst.EnabledEvents {
			if !containsFold(knownEvents, event) {
				errs = append(errs, unknownValue(prefix+".enabled_events", event, knownEvents))
			}
		}

		errs = append(errs, validateRules(prefix, inst.RewriteRules)...)
	}

	// Media server validation
	seenServers := make(map[string]bool)
	for idx, srv := range c.MediaServers {
		prefix := fmt.Sprintf("media_servers[%d]", idx)
		if srv.Name == "" {
			errs = append(errs, prefix+".name: required")
		} else if seenServers[srv.Name] {
			errs = append(errs, fmt.Sprintf("%s.name: duplicate server name %q", prefix, srv.Name))
		} else {
			seenServers[srv.Name] = true
		}

		if !contains(validServerTypes, strings.ToLower(srv.Type)) {
			errs = append(errs, unknownValue(prefix+".type", srv.Type, validServerTypes))
		}
		if srv.URL == "" {
			errs = append(errs, prefix+".url: required")
		}
		if srv.Token == "" {
			errs = append(errs, prefix+".token: required")
		}

		errs = append(errs, validateRules(prefix, srv.RewriteRules)...)
	}

	return errs
}

// Warnings returns non-fatal configuration notices. These never block
// startup; the daemon logs them and continues.
func (c *Config) Warnings() []string {
	var warns []string

	if _, err := ParseDuration(c.Sync.Delay); err != nil {
		warns = append(warns, fmt.Sprintf("sync.delay: %v, treated as 0", err))
	}
	if _, err := ParseDuration(c.Sync.Interval); err != nil {
		warns = append(warns, fmt.Sprintf("sync.interval: %v, treated as 0", err))
	}

	for idx, inst := range c.Instances {
		if len(inst.EnabledEvents) == 0 {
			warns = append(warns, fmt.Sprintf("instances[%d]: no enabled_events, instance %q will never be synced", idx, inst.Name))
		}
		if containsFold(inst.EnabledEvents, "Download") && !containsFold(inst.EnabledEvents, "Import") {
			warns = append(warns, fmt.Sprintf("instances[%d]: \"Download\" is normalized to \"Import\" before matching, use \"Import\"", idx))
		}
	}

	return warns
}

func validateRules(prefix string, rules []RewriteRule) []string {
	var errs []string
	for i, rule := range rules {
		if rule.From == "" {
			errs = append(errs, fmt.Sprintf("%s.rewrite[%d].from: required", prefix, i))
		}
	}
	return errs
}

// unknownValue formats an unknown-value error, appending a "did you mean"
// hint when one of the valid candidates is close enough.
func unknownValue(field, got string, valid []string) string {
	msg := fmt.Sprintf("%s: unknown value %q (must be one of %s)", field, got, strings.Join(valid, ", "))
	if hint := suggest(got, valid); hint != "" {
		msg = fmt.Sprintf("%s: unknown value %q (did you mean %q?)", field, got, hint)
	}
	return msg
}

// suggest returns the closest candidate by Jaro-Winkler similarity, or ""
// when nothing is plausibly close.
func suggest(input string, candidates []string) string {
	best := ""
	bestScore := float32(0)
	for _, candidate := range candidates {
		score := edlib.JaroWinklerSimilarity(strings.ToLower(input), strings.ToLower(candidate))
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}
	if bestScore < 0.80 {
		return ""
	}
	return best
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
