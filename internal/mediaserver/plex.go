// internal/mediaserver/plex.go
package mediaserver

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// PlexClient triggers targeted section scans on a Plex Media Server.
type PlexClient struct {
	name       string
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewPlexClient creates a new Plex client.
func NewPlexClient(name, baseURL, token string, log *slog.Logger) *PlexClient {
	if log != nil {
		log = log.With("component", "plex", "server", name)
	}
	return &PlexClient{
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
func (c *PlexClient) Name() string {
	return c.name
}

// Section represents a Plex library section.
type Section struct {
	Key       string     `xml:"key,attr"`
	Title     string     `xml:"title,attr"`
	Type      string     `xml:"type,attr"`
	Locations []Location `xml:"Location"`
}

// Location represents a library section's filesystem location.
type Location struct {
	Path string `xml:"path,attr"`
}

// sectionsResponse is the XML response from /library/sections.
type sectionsResponse struct {
	XMLName  xml.Name  `xml:"MediaContainer"`
	Sections []Section `xml:"Directory"`
}

// GetSections returns all library sections in the server's declared order.
func (c *PlexClient) GetSections(ctx context.Context) ([]Section, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/library/sections", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result sectionsResponse
	if err := xml.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return result.Sections, nil
}

// Scan finds the section whose location covers path and triggers a partial
// scan of that section scoped to the path. A path outside every section of
// the requested kind fails with ErrNoMatchingSection.
func (c *PlexClient) Scan(ctx context.Context, path string, kind Kind) error {
	sections, err := c.GetSections(ctx)
	if err != nil {
		return fmt.Errorf("get sections: %w", err)
	}

	candidates := sectionLocations(sections, kind)
	if len(candidates) == 0 {
		return fmt.Errorf("%w: server has no %s sections", ErrNoMatchingSection, kind)
	}

	key, ok := matchLocation(candidates, path)
	if !ok {
		return fmt.Errorf("%w for path: %s", ErrNoMatchingSection, path)
	}

	if c.log != nil {
		c.log.Debug("matched section", "key", key, "path", path)
	}

	scanURL := fmt.Sprintf("%s/library/sections/%s/refresh?path=%s",
		c.baseURL, key, url.QueryEscape(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scanURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scan failed with status: %d", resp.StatusCode)
	}

	return nil
}

// TestConnection verifies the server is reachable and the token works.
func (c *PlexClient) TestConnection(ctx context.Context) error {
	_, err := c.GetSections(ctx)
	return err
}

// locationCandidate pairs one section location with its section key,
// flattened in the server's declared order.
type locationCandidate struct {
	key string
	loc string
}

// sectionLocations flattens the locations of every section matching kind,
// preserving declared order. Locations are NFC-normalized and stripped of
// trailing slashes for comparison.
func sectionLocations(sections []Section, kind Kind) []locationCandidate {
	var candidates []locationCandidate
	for _, sec := range sections {
		if sec.Type != kind.plexType() {
			continue
		}
		for _, loc := range sec.Locations {
			normalized := strings.TrimSuffix(norm.NFC.String(loc.Path), "/")
			candidates = append(candidates, locationCandidate{key: sec.Key, loc: normalized})
		}
	}
	return candidates
}

// matchLocation picks the section covering path. Two full tiers: first a
// directory-boundary prefix match across all candidates, so /data/movies
// never swallows /data/movies4k, then bare substring containment. Within a
// tier the first candidate in declared order wins.
func matchLocation(candidates []locationCandidate, path string) (string, bool) {
	path = norm.NFC.String(path)

	for _, c := range candidates {
		if path == c.loc || strings.HasPrefix(path, c.loc+"/") {
			return c.key, true
		}
	}

	for _, c := range candidates {
		if c.loc != "" && strings.Contains(path, c.loc) {
			return c.key, true
		}
	}

	return "", false
}
