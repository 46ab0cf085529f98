// internal/mediaserver/dispatch.go
package mediaserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vmunix/relayarr/internal/config"
)

// Scan result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ScanResult records one server's outcome for a dispatch call. Synthetic
// entries for "nothing to dispatch to" carry only Status and Error.
type ScanResult struct {
	Server  string `json:"server,omitempty"`
	Type    string `json:"type,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Dispatcher fans one scan request out to every enabled media server in
// declared order, rewriting the path per server first.
type Dispatcher struct {
	entries    []dispatchEntry
	configured int // servers in config, disabled included
	log        *slog.Logger
}

type dispatchEntry struct {
	server Server
	typ    string
	rules  []config.RewriteRule
}

// NewDispatcher builds adapters for the enabled servers. Adapter selection
// happens here, once per configuration snapshot; disabled servers get no
// adapter and never appear in results.
func NewDispatcher(servers []config.MediaServerConfig, log *slog.Logger) (*Dispatcher, error) {
	d := &Dispatcher{configured: len(servers), log: log}
	for _, sc := range servers {
		if !sc.IsEnabled() {
			continue
		}
		client, err := New(sc, log)
		if err != nil {
			return nil, fmt.Errorf("media server %q: %w", sc.Name, err)
		}
		d.entries = append(d.entries, dispatchEntry{
			server: client,
			typ:    strings.ToLower(sc.Type),
			rules:  sc.RewriteRules,
		})
	}
	return d, nil
}

// Dispatch rewrites the path per server and scans each enabled server
// sequentially. One server's failure never stops the rest. When there is
// nothing to dispatch to, the result is a single synthetic error entry so
// callers can distinguish "ran, none matched" from "didn't run".
func (d *Dispatcher) Dispatch(ctx context.Context, path string, kind Kind) []ScanResult {
	if d.configured == 0 {
		d.log.Error("scan requested with no media servers configured", "path", path)
		return []ScanResult{{Status: StatusError, Error: "no media servers configured"}}
	}
	if len(d.entries) == 0 {
		d.log.Error("scan requested but all media servers are disabled", "path", path)
		return []ScanResult{{Status: StatusError, Error: "all media servers are disabled"}}
	}

	results := make([]ScanResult, 0, len(d.entries))
	for _, e := range d.entries {
		target := Rewrite(path, e.rules)
		if err := e.server.Scan(ctx, target, kind); err != nil {
			d.log.Error("scan failed",
				"server", e.server.Name(),
				"type", e.typ,
				"path", target,
				"error", err)
			results = append(results, ScanResult{
				Server: e.server.Name(),
				Type:   e.typ,
				Status: StatusError,
				Error:  err.Error(),
			})
			continue
		}
		d.log.Info("scan initiated", "server", e.server.Name(), "type", e.typ, "path", target)
		results = append(results, ScanResult{
			Server:  e.server.Name(),
			Type:    e.typ,
			Status:  StatusSuccess,
			Message: "scan initiated",
		})
	}
	return results
}
