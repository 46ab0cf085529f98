// Package relay routes inbound Sonarr and Radarr webhooks: validate the
// payload, wait out the configured sync delay, mirror the change onto every
// matching downstream instance, then kick library scans on the media
// servers for events that touched files on disk.
package relay

import (
	"context"

	"github.com/vmunix/relayarr/internal/arr"
	"github.com/vmunix/relayarr/internal/mediaserver"
)

// Product identifies which upstream family a webhook belongs to.
type Product string

const (
	ProductSonarr Product = "sonarr"
	ProductRadarr Product = "radarr"
)

// SonarrAPI is the slice of the Sonarr v3 API that instance sync drives.
// *arr.SonarrClient implements it.
type SonarrAPI interface {
	// LookupSeries fetches a series by TVDB id, nil when the instance
	// doesn't carry it.
	LookupSeries(ctx context.Context, tvdbID int64) (*arr.Series, error)
	// AddSeries creates a series with the instance's library policy.
	AddSeries(ctx context.Context, s arr.NewSeries) (*arr.Series, error)
	// RefreshSeries triggers a metadata refresh.
	RefreshSeries(ctx context.Context, seriesID int64) error
	// RescanSeries triggers a disk rescan of the series folder.
	RescanSeries(ctx context.Context, seriesID int64) error
	// SeasonEpisodes lists one season's episodes.
	SeasonEpisodes(ctx context.Context, seriesID int64, season int) ([]arr.Episode, error)
	// MonitorEpisode switches monitoring on for one episode.
	MonitorEpisode(ctx context.Context, episodeID int64) error
	// SearchEpisodes starts a search for the given episodes.
	SearchEpisodes(ctx context.Context, episodeIDs []int64) error
	// DeleteSeries removes a series from the instance.
	DeleteSeries(ctx context.Context, seriesID int64) error
	// DeleteEpisodeFile removes one episode file record.
	DeleteEpisodeFile(ctx context.Context, fileID int64) error
}

// RadarrAPI is the slice of the Radarr v3 API that instance sync drives.
// *arr.RadarrClient implements it.
type RadarrAPI interface {
	// LookupMovie fetches a movie by TMDB id, nil when the instance
	// doesn't carry it.
	LookupMovie(ctx context.Context, tmdbID int64) (*arr.Movie, error)
	// AddMovie creates a movie with the instance's library policy.
	AddMovie(ctx context.Context, movie arr.NewMovie) (*arr.Movie, error)
	// RefreshMovie triggers a metadata refresh.
	RefreshMovie(ctx context.Context, movieID int64) error
	// RescanMovie triggers a disk rescan of the movie folder.
	RescanMovie(ctx context.Context, movieID int64) error
	// SearchMovies starts a search for the given movies.
	SearchMovies(ctx context.Context, movieIDs []int64) error
	// DeleteMovie removes a movie from the instance.
	DeleteMovie(ctx context.Context, movieID int64) error
	// DeleteMovieFile removes one movie file record.
	DeleteMovieFile(ctx context.Context, fileID int64) error
}

// Scanner fans one scan request out to the configured media servers.
// *mediaserver.Dispatcher implements it.
type Scanner interface {
	Dispatch(ctx context.Context, path string, kind mediaserver.Kind) []mediaserver.ScanResult
}

// Compile-time interface checks.
var (
	_ SonarrAPI = (*arr.SonarrClient)(nil)
	_ RadarrAPI = (*arr.RadarrClient)(nil)
	_ Scanner   = (*mediaserver.Dispatcher)(nil)
)
