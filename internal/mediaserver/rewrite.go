// internal/mediaserver/rewrite.go
package mediaserver

import (
	"strings"

	"github.com/vmunix/relayarr/internal/config"
)

// Rewrite maps a path onto the prefix scheme another host mounts it at.
// Rules are tried in declared order and the first whose From is a literal
// prefix of the path wins; at most one substitution happens. The remainder
// of the path is preserved byte for byte, separators included. Rules with
// an empty From or To are skipped; an empty or nil rule list is a no-op.
func Rewrite(path string, rules []config.RewriteRule) string {
	for _, rule := range rules {
		if rule.From == "" || rule.To == "" {
			continue
		}
		if strings.HasPrefix(path, rule.From) {
			return rule.To + path[len(rule.From):]
		}
	}
	return path
}
