package relay

import (
	"context"

	"github.com/vmunix/relayarr/internal/arr"
	"github.com/vmunix/relayarr/internal/config"
)

// syncRadarrInstance applies one normalized event to one Radarr instance.
// routeMovie has already filtered to handled events.
func (r *Router) syncRadarrInstance(ctx context.Context, eventType string, inst config.InstanceConfig, p *Payload) SyncResult {
	client := r.newRadarr(inst.URL, inst.APIKey)
	switch eventType {
	case EventGrab, EventMovieAdded:
		// Both only guarantee presence. Movies have no per-episode
		// monitoring to reconcile, so a grab carries nothing extra.
		return r.radarrEnsure(ctx, client, inst, p)
	case EventImport:
		return r.radarrImport(ctx, client, inst, p)
	case EventMovieDelete:
		return r.radarrDelete(ctx, client, inst, p)
	case EventMovieFileDelete:
		return r.radarrDeleteFile(ctx, client, inst, p)
	case EventRename:
		return r.radarrRename(ctx, client, inst, p)
	}
	return skippedResult(inst.Name, "unhandled event")
}

// radarrEnsure makes sure the movie exists on the instance, creating it
// with the instance's library policy when missing.
func (r *Router) radarrEnsure(ctx context.Context, client RadarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	movie, err := client.LookupMovie(ctx, p.Movie.TMDBID)
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if movie != nil {
		return successResult(inst.Name, "exists")
	}
	return r.radarrCreate(ctx, client, inst, p.Movie)
}

// radarrImport mirrors a completed import. A known movie gets a metadata
// refresh plus a disk rescan so the new file shows up; an unknown one is
// created and left to its own import pipeline.
func (r *Router) radarrImport(ctx context.Context, client RadarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	movie, err := client.LookupMovie(ctx, p.Movie.TMDBID)
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if movie == nil {
		return r.radarrCreate(ctx, client, inst, p.Movie)
	}
	if err := client.RefreshMovie(ctx, movie.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	if err := client.RescanMovie(ctx, movie.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	return successResult(inst.Name, "refreshed")
}

// radarrCreate adds the movie and, when the instance syncs with search,
// kicks off a release search for it.
func (r *Router) radarrCreate(ctx context.Context, client RadarrAPI, inst config.InstanceConfig, m *MovieRef) SyncResult {
	created, err := client.AddMovie(ctx, newMovie(inst, m))
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if inst.SearchOnSync {
		if err := client.SearchMovies(ctx, []int64{created.ID}); err != nil {
			return errorResult(inst.Name, err)
		}
	}
	return successResult(inst.Name, "added")
}

// radarrDelete mirrors a movie deletion by catalog id. Unlike Rename, a
// missing movie here is an error: the deletion was explicitly requested,
// so nothing to delete means the mirror had already diverged.
func (r *Router) radarrDelete(ctx context.Context, client RadarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	movie, err := client.LookupMovie(ctx, p.Movie.TMDBID)
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if movie == nil {
		return SyncResult{Instance: inst.Name, Status: SyncError, Error: "movie not found"}
	}
	if err := client.DeleteMovie(ctx, movie.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	return successResult(inst.Name, "deleted")
}

// radarrDeleteFile mirrors a movie file deletion using the file id from
// the payload.
func (r *Router) radarrDeleteFile(ctx context.Context, client RadarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	if p.MovieFile == nil || p.MovieFile.ID == 0 {
		return SyncResult{Instance: inst.Name, Status: SyncError, Error: "payload has no movieFile id"}
	}
	if err := client.DeleteMovieFile(ctx, p.MovieFile.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	return successResult(inst.Name, "deleted file")
}

// radarrRename refreshes the movie so the instance picks up the new file
// names from disk.
func (r *Router) radarrRename(ctx context.Context, client RadarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	movie, err := client.LookupMovie(ctx, p.Movie.TMDBID)
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if movie == nil {
		return skippedResult(inst.Name, "movie not found")
	}
	if err := client.RefreshMovie(ctx, movie.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	return successResult(inst.Name, "refreshed")
}

// newMovie maps the webhook movie onto a create request carrying the
// instance's library policy.
func newMovie(inst config.InstanceConfig, m *MovieRef) arr.NewMovie {
	return arr.NewMovie{
		TMDBID:           m.TMDBID,
		Title:            m.Title,
		Year:             m.Year,
		QualityProfileID: int64(inst.QualityProfileID),
		RootFolderPath:   inst.RootFolder,
	}
}
