// internal/mediaserver/jellyfin.go
package mediaserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// JellyfinClient triggers library refreshes on a Jellyfin server.
type JellyfinClient struct {
	name       string
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewJellyfinClient creates a new Jellyfin client.
func NewJellyfinClient(name, baseURL, token string, log *slog.Logger) *JellyfinClient {
	if log != nil {
		log = log.With("component", "jellyfin", "server", name)
	}
	return &JellyfinClient{
		name:    name,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		log:     log,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the configured display name.
func (c *JellyfinClient) Name() string {
	return c.name
}

// Scan kicks a full library refresh. Jellyfin's refresh endpoint takes no
// path, so the path and kind are accepted for interface parity and ignored.
func (c *JellyfinClient) Scan(ctx context.Context, path string, kind Kind) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Library/Refresh", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-MediaBrowser-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("refresh failed with status: %d", resp.StatusCode)
	}

	return nil
}

// TestConnection verifies the server is reachable and the token works.
func (c *JellyfinClient) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/Library/SelectableMediaFolders", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-MediaBrowser-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	return nil
}
