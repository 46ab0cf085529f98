package relay

import (
	"encoding/json"
	"path"

	"github.com/vmunix/relayarr/internal/mediaserver"
)

// Webhook event types. Sonarr and Radarr both send "Download" when an
// import completes; the relay normalizes it to Import before routing.
const (
	EventGrab              = "Grab"
	EventDownload          = "Download"
	EventImport            = "Import"
	EventRename            = "Rename"
	EventSeriesAdd         = "SeriesAdd"
	EventSeriesDelete      = "SeriesDelete"
	EventEpisodeFileDelete = "EpisodeFileDelete"
	EventMovieAdded        = "MovieAdded"
	EventMovieDelete       = "MovieDelete"
	EventMovieFileDelete   = "MovieFileDelete"
	EventManualScan        = "ManualScan"
)

// sonarrEvents and radarrEvents are the normalized event types the relay
// acts on. Anything else is acknowledged and recorded as ignored.
var sonarrEvents = map[string]bool{
	EventGrab:              true,
	EventImport:            true,
	EventRename:            true,
	EventSeriesAdd:         true,
	EventSeriesDelete:      true,
	EventEpisodeFileDelete: true,
}

var radarrEvents = map[string]bool{
	EventGrab:            true,
	EventImport:          true,
	EventRename:          true,
	EventMovieAdded:      true,
	EventMovieDelete:     true,
	EventMovieFileDelete: true,
}

// scanEvents are the normalized event types that change files on disk and
// therefore warrant a media server scan. Grab and the add events only
// change catalog state.
var scanEvents = map[string]bool{
	EventImport:            true,
	EventRename:            true,
	EventSeriesDelete:      true,
	EventEpisodeFileDelete: true,
	EventMovieDelete:       true,
	EventMovieFileDelete:   true,
	EventManualScan:        true,
}

// SeriesRef is the series block of a Sonarr webhook.
type SeriesRef struct {
	Title  string `json:"title"`
	TVDBID int64  `json:"tvdbId"`
	Path   string `json:"path"`
}

// EpisodeRef is one entry of a Sonarr webhook's episodes list.
type EpisodeRef struct {
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	Title         string `json:"title,omitempty"`
}

// MovieRef is the movie block of a Radarr webhook.
type MovieRef struct {
	Title      string `json:"title"`
	TMDBID     int64  `json:"tmdbId"`
	Year       int    `json:"year,omitempty"`
	FolderPath string `json:"folderPath,omitempty"`
}

// FileRef is an episodeFile or movieFile block. The id is local to the
// instance that sent the webhook.
type FileRef struct {
	ID   int64  `json:"id"`
	Path string `json:"path,omitempty"`
}

// Payload is an inbound webhook body. The series and movie blocks double
// as the product discriminant; ManualScan payloads carry neither and use
// Path and ContentType instead.
type Payload struct {
	EventType   string       `json:"eventType"`
	Series      *SeriesRef   `json:"series,omitempty"`
	Episodes    []EpisodeRef `json:"episodes,omitempty"`
	EpisodeFile *FileRef     `json:"episodeFile,omitempty"`
	Movie       *MovieRef    `json:"movie,omitempty"`
	MovieFile   *FileRef     `json:"movieFile,omitempty"`
	Path        string       `json:"path,omitempty"`
	ContentType string       `json:"contentType,omitempty"`
}

// ValidationError marks a webhook body the relay refuses to process. The
// API layer turns it into a 400 with the reason in the response body.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ParsePayload decodes and validates a raw webhook body. All rejections
// come back as *ValidationError; anything accepted here will produce a
// delivery result, however the processing goes.
func ParsePayload(body []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, &ValidationError{Reason: "body is not valid JSON"}
	}
	if p.EventType == "" {
		return nil, &ValidationError{Reason: "Webhook payload missing eventType"}
	}
	if p.EventType == EventManualScan {
		if p.Path == "" || p.ContentType == "" {
			return nil, &ValidationError{Reason: "Manual scan requires path and contentType"}
		}
		if p.ContentType != "series" && p.ContentType != "movie" {
			return nil, &ValidationError{Reason: "Content type must be either 'series' or 'movie'"}
		}
		return &p, nil
	}
	if p.Series == nil && p.Movie == nil {
		return nil, &ValidationError{Reason: "Webhook must contain either 'series' or 'movie' data"}
	}
	return &p, nil
}

// Product reports the webhook's product family. The series block wins if a
// payload carries both; ManualScan payloads have no product.
func (p *Payload) Product() Product {
	switch {
	case p.Series != nil:
		return ProductSonarr
	case p.Movie != nil:
		return ProductRadarr
	}
	return ""
}

// NormalizedEvent maps the wire event type onto the relay's canonical set.
func (p *Payload) NormalizedEvent() string {
	if p.EventType == EventDownload {
		return EventImport
	}
	return p.EventType
}

// Title names the media item for logs and history entries.
func (p *Payload) Title() string {
	switch {
	case p.Series != nil:
		return p.Series.Title
	case p.Movie != nil:
		return p.Movie.Title
	}
	return ""
}

// CatalogID returns the cross-instance identity of the item: tvdbId for
// series, tmdbId for movies, zero for manual scans.
func (p *Payload) CatalogID() int64 {
	switch {
	case p.Series != nil:
		return p.Series.TVDBID
	case p.Movie != nil:
		return p.Movie.TMDBID
	}
	return 0
}

// ScanPath returns the most specific library path the payload names, or ""
// when it names none. The file path is preferred over the container folder
// so section matching stays targeted; for movies the scannable unit is the
// file's parent directory, the movie folder itself.
func (p *Payload) ScanPath() string {
	switch {
	case p.EventType == EventManualScan:
		return p.Path
	case p.Series != nil:
		if p.EpisodeFile != nil && p.EpisodeFile.Path != "" {
			return p.EpisodeFile.Path
		}
		return p.Series.Path
	case p.Movie != nil:
		if p.MovieFile != nil && p.MovieFile.Path != "" {
			return path.Dir(p.MovieFile.Path)
		}
		return p.Movie.FolderPath
	}
	return ""
}

// ScanKind maps the payload onto the library kind a scan should target.
func (p *Payload) ScanKind() mediaserver.Kind {
	if p.Movie != nil || p.ContentType == "movie" {
		return mediaserver.KindMovie
	}
	return mediaserver.KindSeries
}
