package arr

import (
	"context"
	"encoding/json"
	"fmt"
)

// Series is the subset of Sonarr's series resource the relay needs.
type Series struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	TVDBID int64  `json:"tvdbId"`
	Path   string `json:"path,omitempty"`
}

// Episode is the subset of Sonarr's episode resource used for monitoring
// reconciliation after a grab.
type Episode struct {
	ID            int64 `json:"id"`
	SeasonNumber  int   `json:"seasonNumber"`
	EpisodeNumber int   `json:"episodeNumber"`
	Monitored     bool  `json:"monitored"`
}

// NewSeries describes a series to create on a mirror instance. Policy
// fields the relay always sets the same way (monitored, monitor mode,
// series type) are filled in by AddSeries.
type NewSeries struct {
	TVDBID            int64
	Title             string
	QualityProfileID  int64
	LanguageProfileID int64
	SeasonFolder      bool
	RootFolderPath    string
	SearchOnSync      bool
}

type addSeriesOptions struct {
	IgnoreEpisodesWithFiles      bool   `json:"ignoreEpisodesWithFiles"`
	Monitor                      string `json:"monitor"`
	SearchForMissingEpisodes     bool   `json:"searchForMissingEpisodes"`
	SearchForCutoffUnmetEpisodes bool   `json:"searchForCutoffUnmetEpisodes"`
}

type seriesSeason struct {
	SeasonNumber int  `json:"seasonNumber"`
	Monitored    bool `json:"monitored"`
}

type addSeriesRequest struct {
	TVDBID            int64            `json:"tvdbId"`
	Title             string           `json:"title"`
	QualityProfileID  int64            `json:"qualityProfileId"`
	LanguageProfileID int64            `json:"languageProfileId,omitempty"`
	SeasonFolder      bool             `json:"seasonFolder"`
	RootFolderPath    string           `json:"rootFolderPath"`
	Monitored         bool             `json:"monitored"`
	Seasons           []seriesSeason   `json:"seasons"`
	SeriesType        string           `json:"seriesType"`
	AddOptions        addSeriesOptions `json:"addOptions"`
}

// SonarrClient talks to one Sonarr instance over its v3 API.
type SonarrClient struct {
	api *client
}

// NewSonarrClient creates a Sonarr API client.
func NewSonarrClient(baseURL, apiKey string) *SonarrClient {
	return &SonarrClient{api: newClient(baseURL, apiKey)}
}

// LookupSeries finds a series by its TVDB id. Absence is a normal result,
// reported as (nil, nil).
func (c *SonarrClient) LookupSeries(ctx context.Context, tvdbID int64) (*Series, error) {
	var matches []Series
	if err := c.api.get(ctx, fmt.Sprintf("/api/v3/series?tvdbId=%d", tvdbID), &matches); err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// AddSeries creates a series. The new series is monitored from creation
// but existing files are left alone and no automatic search runs unless
// SearchOnSync asks for one.
func (c *SonarrClient) AddSeries(ctx context.Context, s NewSeries) (*Series, error) {
	req := addSeriesRequest{
		TVDBID:            s.TVDBID,
		Title:             s.Title,
		QualityProfileID:  s.QualityProfileID,
		LanguageProfileID: s.LanguageProfileID,
		SeasonFolder:      s.SeasonFolder,
		RootFolderPath:    s.RootFolderPath,
		Monitored:         true,
		Seasons:           []seriesSeason{},
		SeriesType:        "standard",
		AddOptions: addSeriesOptions{
			IgnoreEpisodesWithFiles:      true,
			Monitor:                      "future",
			SearchForMissingEpisodes:     s.SearchOnSync,
			SearchForCutoffUnmetEpisodes: s.SearchOnSync,
		},
	}

	var created Series
	if err := c.api.post(ctx, "/api/v3/series", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RefreshSeries asks the instance to re-read metadata for a series.
func (c *SonarrClient) RefreshSeries(ctx context.Context, seriesID int64) error {
	return c.api.command(ctx, commandRequest{Name: "RefreshSeries", SeriesID: seriesID})
}

// RescanSeries asks the instance to re-scan the series folder on disk.
func (c *SonarrClient) RescanSeries(ctx context.Context, seriesID int64) error {
	return c.api.command(ctx, commandRequest{Name: "RescanSeries", SeriesID: seriesID})
}

// SearchSeries triggers a search for everything missing in a series.
func (c *SonarrClient) SearchSeries(ctx context.Context, seriesID int64) error {
	return c.api.command(ctx, commandRequest{Name: "SeriesSearch", SeriesID: seriesID})
}

// SearchEpisodes triggers a search for specific episodes.
func (c *SonarrClient) SearchEpisodes(ctx context.Context, episodeIDs []int64) error {
	return c.api.command(ctx, commandRequest{Name: "EpisodeSearch", EpisodeIDs: episodeIDs})
}

// DeleteSeries removes a series by its internal id.
func (c *SonarrClient) DeleteSeries(ctx context.Context, seriesID int64) error {
	return c.api.delete(ctx, fmt.Sprintf("/api/v3/series/%d", seriesID))
}

// DeleteEpisodeFile removes a single episode file by its id.
func (c *SonarrClient) DeleteEpisodeFile(ctx context.Context, fileID int64) error {
	return c.api.delete(ctx, fmt.Sprintf("/api/v3/episodeFile/%d", fileID))
}

// SeasonEpisodes lists the episodes of one season of a series.
func (c *SonarrClient) SeasonEpisodes(ctx context.Context, seriesID int64, season int) ([]Episode, error) {
	var episodes []Episode
	path := fmt.Sprintf("/api/v3/episode?seriesId=%d&seasonNumber=%d", seriesID, season)
	if err := c.api.get(ctx, path, &episodes); err != nil {
		return nil, err
	}
	return episodes, nil
}

// MonitorEpisode flips one episode to monitored. The full resource is
// fetched and written back so fields the relay doesn't model survive the
// round trip.
func (c *SonarrClient) MonitorEpisode(ctx context.Context, episodeID int64) error {
	path := fmt.Sprintf("/api/v3/episode/%d", episodeID)

	var episode map[string]any
	if err := c.api.get(ctx, path, &episode); err != nil {
		return err
	}
	episode["monitored"] = true
	return c.api.put(ctx, path, episode, nil)
}

// SystemStatus reports the instance's version, doubling as a
// connectivity and API-key probe.
func (c *SonarrClient) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.api.get(ctx, "/api/v3/system/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RootFolders returns the instance's root folders verbatim.
func (c *SonarrClient) RootFolders(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.api.get(ctx, "/api/v3/rootFolder", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// QualityProfiles returns the instance's quality profiles verbatim.
func (c *SonarrClient) QualityProfiles(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.api.get(ctx, "/api/v3/qualityprofile", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// LanguageProfiles returns the instance's language profiles verbatim.
// Radarr has no equivalent endpoint.
func (c *SonarrClient) LanguageProfiles(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.api.get(ctx, "/api/v3/languageprofile", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
