package arr

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Movie is the subset of Radarr's movie resource the relay needs.
type Movie struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	TMDBID int64  `json:"tmdbId"`
	Year   int    `json:"year,omitempty"`
}

// NewMovie describes a movie to create on a mirror instance.
type NewMovie struct {
	TMDBID           int64
	Title            string
	Year             int
	QualityProfileID int64
	RootFolderPath   string
}

type addMovieOptions struct {
	SearchForMovie bool `json:"searchForMovie"`
}

type addMovieRequest struct {
	TMDBID           int64           `json:"tmdbId"`
	Title            string          `json:"title"`
	Year             int             `json:"year"`
	QualityProfileID int64           `json:"qualityProfileId"`
	TitleSlug        string          `json:"titleSlug"`
	RootFolderPath   string          `json:"rootFolderPath"`
	Monitored        bool            `json:"monitored"`
	AddOptions       addMovieOptions `json:"addOptions"`
}

// RadarrClient talks to one Radarr instance over its v3 API.
type RadarrClient struct {
	api *client
}

// NewRadarrClient creates a Radarr API client.
func NewRadarrClient(baseURL, apiKey string) *RadarrClient {
	return &RadarrClient{api: newClient(baseURL, apiKey)}
}

// LookupMovie finds a movie by its TMDB id. Absence is a normal result,
// reported as (nil, nil).
func (c *RadarrClient) LookupMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	var matches []Movie
	if err := c.api.get(ctx, fmt.Sprintf("/api/v3/movie?tmdbId=%d", tmdbID), &matches); err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// AddMovie creates a movie, monitored but without an automatic search.
// Callers that want a search issue SearchMovies separately.
func (c *RadarrClient) AddMovie(ctx context.Context, m NewMovie) (*Movie, error) {
	req := addMovieRequest{
		TMDBID:           m.TMDBID,
		Title:            m.Title,
		Year:             m.Year,
		QualityProfileID: m.QualityProfileID,
		TitleSlug:        strings.ToLower(strings.ReplaceAll(m.Title, " ", "-")),
		RootFolderPath:   m.RootFolderPath,
		Monitored:        true,
		AddOptions:       addMovieOptions{SearchForMovie: false},
	}

	var created Movie
	if err := c.api.post(ctx, "/api/v3/movie", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RefreshMovie asks the instance to re-read metadata for a movie.
func (c *RadarrClient) RefreshMovie(ctx context.Context, movieID int64) error {
	return c.api.command(ctx, commandRequest{Name: "RefreshMovie", MovieIDs: []int64{movieID}})
}

// RescanMovie asks the instance to re-scan the movie folder on disk.
func (c *RadarrClient) RescanMovie(ctx context.Context, movieID int64) error {
	return c.api.command(ctx, commandRequest{Name: "RescanMovie", MovieIDs: []int64{movieID}})
}

// SearchMovies triggers a search for the given movies.
func (c *RadarrClient) SearchMovies(ctx context.Context, movieIDs []int64) error {
	return c.api.command(ctx, commandRequest{Name: "MoviesSearch", MovieIDs: movieIDs})
}

// DeleteMovie removes a movie by its internal id.
func (c *RadarrClient) DeleteMovie(ctx context.Context, movieID int64) error {
	return c.api.delete(ctx, fmt.Sprintf("/api/v3/movie/%d", movieID))
}

// DeleteMovieFile removes a single movie file by its id.
func (c *RadarrClient) DeleteMovieFile(ctx context.Context, fileID int64) error {
	return c.api.delete(ctx, fmt.Sprintf("/api/v3/movieFile/%d", fileID))
}

// SystemStatus reports the instance's version, doubling as a
// connectivity and API-key probe.
func (c *RadarrClient) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.api.get(ctx, "/api/v3/system/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// RootFolders returns the instance's root folders verbatim.
func (c *RadarrClient) RootFolders(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.api.get(ctx, "/api/v3/rootFolder", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// QualityProfiles returns the instance's quality profiles verbatim.
func (c *RadarrClient) QualityProfiles(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.api.get(ctx, "/api/v3/qualityprofile", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
