// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// Error aggregates everything wrong with a configuration file so a single
// load attempt reports all problems at once.
type Error struct {
	Path    string   // Config file path
	Missing []string // Unresolved environment variables
	Invalid []string // Validation errors
}

func (e *Error) Error() string {
	if len(e.Missing) == 0 && len(e.Invalid) == 0 {
		return ""
	}

	var parts []string

	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", ")))
	}

	if len(e.Invalid) > 0 {
		parts = append(parts, "validation failed:")
		for _, msg := range e.Invalid {
			parts = append(parts, fmt.Sprintf("  - %s", msg))
		}
	}

	return strings.Join(parts, "\n")
}

// HasErrors returns true if there are any errors.
func (e *Error) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Invalid) > 0
}
