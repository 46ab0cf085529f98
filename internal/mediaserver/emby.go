// internal/mediaserver/emby.go
package mediaserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// EmbyClient triggers library refreshes on an Emby server. The protocol is
// Jellyfin's except for the token header name.
type EmbyClient struct {
	name       string
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewEmbyClient creates a new Emby client.
func NewEmbyClient(name, baseURL, token string, log *slog.Logger) *EmbyClient {
	if log != nil {
		log = log.With("component", "emby", "server", name)
	}
	return &EmbyClient{
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
func (c *EmbyClient) Name() string {
	return c.name
}

// Scan kicks a full library refresh; Emby's refresh endpoint takes no path.
func (c *EmbyClient) Scan(ctx context.Context, path string, kind Kind) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Library/Refresh", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.token)

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
func (c *EmbyClient) TestConnection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/Library/SelectableMediaFolders", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Emby-Token", c.token)

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
