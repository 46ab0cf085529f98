// Package mediaserver talks to the media library servers that get rescanned
// after content changes: Plex gets a targeted section refresh, Jellyfin and
// Emby only support a full library refresh.
package mediaserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vmunix/relayarr/internal/config"
)

// Kind selects which library sections qualify for a scan.
type Kind string

const (
	KindSeries Kind = "series"
	KindMovie  Kind = "movie"
)

// plexType returns the section type string Plex reports for this kind.
func (k Kind) plexType() string {
	if k == KindMovie {
		return "movie"
	}
	return "show"
}

// ErrNoMatchingSection marks a path that no library section on the server
// covers. It is an expected outcome of section matching, not a transport
// failure.
var ErrNoMatchingSection = errors.New("no matching library section")

// Server is the one capability every media server family exposes.
type Server interface {
	// Name returns the configured display name.
	Name() string
	// Scan asks the server to pick up changes under path. Refresh-only
	// families (Jellyfin, Emby) ignore the path and kind.
	Scan(ctx context.Context, path string, kind Kind) error
	// TestConnection probes the server API with the configured credentials.
	TestConnection(ctx context.Context) error
}

// Compile-time interface checks.
var (
	_ Server = (*PlexClient)(nil)
	_ Server = (*JellyfinClient)(nil)
	_ Server = (*EmbyClient)(nil)
)

// New selects the adapter for a configured server. The set of families is
// closed here, at configuration load; nothing downstream switches on type
// strings again.
func New(cfg config.MediaServerConfig, log *slog.Logger) (Server, error) {
	switch strings.ToLower(cfg.Type) {
	case "plex":
		return NewPlexClient(cfg.Name, cfg.URL, cfg.Token, log), nil
	case "jellyfin":
		return NewJellyfinClient(cfg.Name, cfg.URL, cfg.Token, log), nil
	case "emby":
		return NewEmbyClient(cfg.Name, cfg.URL, cfg.Token, log), nil
	default:
		return nil, fmt.Errorf("unknown media server type %q", cfg.Type)
	}
}
