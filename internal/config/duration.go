// internal/config/duration.go
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	bareSecondsPattern = regexp.MustCompile(`^\d+$`)
	suffixedPattern    = regexp.MustCompile(`^(\d+(?:\.\d+)?)(ms|s|m)$`)
)

// ParseDuration parses the compact duration grammar used by the sync timing
// fields: a bare integer means seconds, otherwise a number (decimals
// allowed) suffixed with ms, s, or m. The empty string is zero. Anything
// else returns zero with an error; callers log it and carry on with zero
// rather than failing the delivery.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	if bareSecondsPattern.MatchString(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}

	m := suffixedPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var unit time.Duration
	switch m[2] {
	case "ms":
		unit = time.Millisecond
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	}

	return time.Duration(value * float64(unit)), nil
}
