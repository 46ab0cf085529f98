package relay

import (
	"context"
	"fmt"

	"github.com/vmunix/relayarr/internal/arr"
	"github.com/vmunix/relayarr/internal/config"
)

// syncSonarrInstance applies one normalized event to one Sonarr instance.
// routeSeries has already filtered to handled events.
func (r *Router) syncSonarrInstance(ctx context.Context, eventType string, inst config.InstanceConfig, p *Payload) SyncResult {
	client := r.newSonarr(inst.URL, inst.APIKey)
	switch eventType {
	case EventGrab:
		return r.sonarrGrab(ctx, client, inst, p)
	case EventImport:
		return r.sonarrImport(ctx, client, inst, p)
	case EventSeriesAdd:
		return r.sonarrAdd(ctx, client, inst, p)
	case EventSeriesDelete:
		return r.sonarrDelete(ctx, client, inst, p)
	case EventEpisodeFileDelete:
		return r.sonarrDeleteFile(ctx, client, inst, p)
	case EventRename:
		return r.sonarrRename(ctx, client, inst, p)
	}
	return skippedResult(inst.Name, "unhandled event")
}

// sonarrGrab mirrors a grab: make sure the series exists, then make sure
// the grabbed episodes are monitored so the instance grabs them itself.
func (r *Router) sonarrGrab(ctx context.Context, client SonarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	series, err := client.LookupSeries(ctx, p.Series.TVDBID)
	if err != nil {
		return errorResult(inst.Name, err)
	}

	res := successResult(inst.Name, "exists")
	if series == nil {
		created, err := client.AddSeries(ctx, newSeries(inst, p.Series))
		if err != nil {
			return errorResult(inst.Name, err)
		}
		series = created
		res.Action = "added"
		// Give the instance a moment to populate episodes before we
		// reconcile monitoring against them.
		sleepContext(ctx, r.settleDelay)
	}

	monitored, err := r.monitorGrabbedEpisodes(ctx, client, series.ID, p.Episodes)
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if monitored > 0 {
		res.Detail = fmt.Sprintf("monitored %d episodes", monitored)
	}
	return res
}

// monitorGrabbedEpisodes flips monitoring on for the grabbed episodes the
// instance has unmonitored, then kicks one search for exactly those.
// Episodes the instance doesn't know yet are left alone; a single episode
// failing to update skips that episode, not the rest.
func (r *Router) monitorGrabbedEpisodes(ctx context.Context, client SonarrAPI, seriesID int64, grabbed []EpisodeRef) (int, error) {
	if len(grabbed) == 0 {
		return 0, nil
	}

	// Grabs are release-scoped and a release lives in one season.
	season := grabbed[0].SeasonNumber
	episodes, err := client.SeasonEpisodes(ctx, seriesID, season)
	if err != nil {
		return 0, err
	}

	byNumber := make(map[int]arr.Episode, len(episodes))
	for _, ep := range episodes {
		byNumber[ep.EpisodeNumber] = ep
	}

	var flipped []int64
	for _, g := range grabbed {
		ep, ok := byNumber[g.EpisodeNumber]
		if !ok || ep.Monitored {
			continue
		}
		if err := client.MonitorEpisode(ctx, ep.ID); err != nil {
			r.log.Warn("monitor episode failed",
				"series_id", seriesID, "episode", g.EpisodeNumber, "error", err)
			continue
		}
		flipped = append(flipped, ep.ID)
	}

	if len(flipped) > 0 {
		if err := client.SearchEpisodes(ctx, flipped); err != nil {
			return len(flipped), err
		}
	}
	return len(flipped), nil
}

// sonarrImport mirrors a completed import. A known series gets a metadata
// refresh plus a disk rescan so the new file shows up; an unknown one is
// created and left to its own import pipeline.
func (r *Router) sonarrImport(ctx context.Context, client SonarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	series, err := client.LookupSeries(ctx, p.Series.TVDBID)
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if series == nil {
		if _, err := client.AddSeries(ctx, newSeries(inst, p.Series)); err != nil {
			return errorResult(inst.Name, err)
		}
		return successResult(inst.Name, "added")
	}
	if err := client.RefreshSeries(ctx, series.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	if err := client.RescanSeries(ctx, series.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	return successResult(inst.Name, "refreshed")
}

// sonarrAdd mirrors a series addition. Nothing to do when the instance
// already carries the series.
func (r *Router) sonarrAdd(ctx context.Context, client SonarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	series, err := client.LookupSeries(ctx, p.Series.TVDBID)
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if series != nil {
		return successResult(inst.Name, "exists")
	}
	if _, err := client.AddSeries(ctx, newSeries(inst, p.Series)); err != nil {
		return errorResult(inst.Name, err)
	}
	return successResult(inst.Name, "added")
}

// sonarrDelete mirrors a series deletion by catalog id. Unlike Rename, a
// missing series here is an error: the deletion was explicitly requested,
// so nothing to delete means the mirror had already diverged.
func (r *Router) sonarrDelete(ctx context.Context, client SonarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	series, err := client.LookupSeries(ctx, p.Series.TVDBID)
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if series == nil {
		return SyncResult{Instance: inst.Name, Status: SyncError, Error: "series not found"}
	}
	if err := client.DeleteSeries(ctx, series.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	return successResult(inst.Name, "deleted")
}

// sonarrDeleteFile mirrors an episode file deletion using the file id from
// the payload.
func (r *Router) sonarrDeleteFile(ctx context.Context, client SonarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	if p.EpisodeFile == nil || p.EpisodeFile.ID == 0 {
		return SyncResult{Instance: inst.Name, Status: SyncError, Error: "payload has no episodeFile id"}
	}
	if err := client.DeleteEpisodeFile(ctx, p.EpisodeFile.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	return successResult(inst.Name, "deleted file")
}

// sonarrRename refreshes the series so the instance picks up the new file
// names from disk.
func (r *Router) sonarrRename(ctx context.Context, client SonarrAPI, inst config.InstanceConfig, p *Payload) SyncResult {
	series, err := client.LookupSeries(ctx, p.Series.TVDBID)
	if err != nil {
		return errorResult(inst.Name, err)
	}
	if series == nil {
		return skippedResult(inst.Name, "series not found")
	}
	if err := client.RefreshSeries(ctx, series.ID); err != nil {
		return errorResult(inst.Name, err)
	}
	return successResult(inst.Name, "refreshed")
}

// newSeries maps the webhook series onto a create request carrying the
// instance's library policy.
func newSeries(inst config.InstanceConfig, s *SeriesRef) arr.NewSeries {
	return arr.NewSeries{
		TVDBID:            s.TVDBID,
		Title:             s.Title,
		QualityProfileID:  int64(inst.QualityProfileID),
		LanguageProfileID: int64(inst.LanguageProfileID),
		SeasonFolder:      inst.SeasonFolder,
		RootFolderPath:    inst.RootFolder,
		SearchOnSync:      inst.SearchOnSync,
	}
}
