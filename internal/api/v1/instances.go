// internal/api/v1/instances.go
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vmunix/relayarr/internal/arr"
	"github.com/vmunix/relayarr/internal/config"
	"github.com/vmunix/relayarr/internal/mediaserver"
)

// probeTimeout bounds each connection test and passthrough lookup.
const probeTimeout = 10 * time.Second

func (s *Server) testConnection(w http.ResponseWriter, r *http.Request) {
	var req testConnectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "MISSING_URL", "url is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	switch strings.ToLower(req.Type) {
	case "sonarr", "radarr":
		writeJSON(w, http.StatusOK, s.probeInstance(ctx, req))
	case "plex", "jellyfin", "emby":
		writeJSON(w, http.StatusOK, s.probeMediaServer(ctx, req))
	default:
		writeJSON(w, http.StatusOK, probeResult{
			Status:  "error",
			Message: fmt.Sprintf("Unsupported type: %s", req.Type),
		})
	}
}

func (s *Server) probeInstance(ctx context.Context, req testConnectionRequest) probeResult {
	var status *arr.SystemStatus
	var err error
	if strings.EqualFold(req.Type, "sonarr") {
		status, err = arr.NewSonarrClient(req.URL, req.APIKey).SystemStatus(ctx)
	} else {
		status, err = arr.NewRadarrClient(req.URL, req.APIKey).SystemStatus(ctx)
	}
	if err != nil {
		return probeFailure(req.Type, err)
	}
	return probeResult{
		Status:  "success",
		Message: fmt.Sprintf("Successfully connected to %s", req.Type),
		Version: status.Version,
	}
}

func (s *Server) probeMediaServer(ctx context.Context, req testConnectionRequest) probeResult {
	// Plex authenticates with token, the Emby family with api_key.
	token := req.Token
	if !strings.EqualFold(req.Type, "plex") {
		token = req.APIKey
	}

	target := req.URL
	if !strings.Contains(target, "://") {
		target = "http://" + target
	}

	srv, err := mediaserver.New(config.MediaServerConfig{
		Name:  "probe",
		Type:  req.Type,
		URL:   target,
		Token: token,
	}, s.logger)
	if err != nil {
		return probeResult{Status: "error", Message: fmt.Sprintf("Unsupported type: %s", req.Type)}
	}

	if err := srv.TestConnection(ctx); err != nil {
		return probeFailure(req.Type, err)
	}
	return probeResult{
		Status:  "success",
		Message: fmt.Sprintf("Successfully connected to %s", req.Type),
	}
}

// probeFailure splits transport failures from upstream rejections the way
// operators read them: "Connection error" means nothing answered, "Failed
// to connect" means something answered and said no.
func probeFailure(kind string, err error) probeResult {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return probeResult{Status: "error", Message: fmt.Sprintf("Connection error: %v", err)}
	}
	return probeResult{Status: "error", Message: fmt.Sprintf("Failed to connect to %s: %s", kind, upstreamText(err))}
}

// upstreamText prefers the message an instance sent over the transport
// error wrapping it.
func upstreamText(err error) string {
	var serr *arr.StatusError
	if errors.As(err, &serr) && serr.Message != "" {
		return serr.Message
	}
	return err.Error()
}

// instanceByName finds a configured instance, matching names exactly.
func (s *Server) instanceByName(name string) (config.InstanceConfig, bool) {
	for _, inst := range s.store.Snapshot().Instances {
		if inst.Name == name {
			return inst, true
		}
	}
	return config.InstanceConfig{}, false
}

func (s *Server) getRootFolders(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instanceByName(r.PathValue("name"))
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Instance not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	var folders json.RawMessage
	var err error
	if strings.EqualFold(inst.Type, "sonarr") {
		folders, err = arr.NewSonarrClient(inst.URL, inst.APIKey).RootFolders(ctx)
	} else {
		folders, err = arr.NewRadarrClient(inst.URL, inst.APIKey).RootFolders(ctx)
	}
	if err != nil {
		writeJSON(w, http.StatusOK, probeResult{
			Status:  "error",
			Message: fmt.Sprintf("Failed to get root folders: %s", upstreamText(err)),
		})
		return
	}

	writeJSON(w, http.StatusOK, rootFoldersResponse{Status: "success", Folders: folders})
}

func (s *Server) getQualityProfiles(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instanceByName(r.PathValue("name"))
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Instance not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	var profiles json.RawMessage
	var err error
	if strings.EqualFold(inst.Type, "sonarr") {
		profiles, err = arr.NewSonarrClient(inst.URL, inst.APIKey).QualityProfiles(ctx)
	} else {
		profiles, err = arr.NewRadarrClient(inst.URL, inst.APIKey).QualityProfiles(ctx)
	}
	if err != nil {
		writeJSON(w, http.StatusOK, probeResult{
			Status:  "error",
			Message: fmt.Sprintf("Failed to get quality profiles: %s", upstreamText(err)),
		})
		return
	}

	writeJSON(w, http.StatusOK, profilesResponse{Status: "success", Profiles: profiles})
}

func (s *Server) getLanguageProfiles(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instanceByName(r.PathValue("name"))
	if !ok {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Instance not found")
		return
	}
	if !strings.EqualFold(inst.Type, "sonarr") {
		writeError(w, http.StatusBadRequest, "SONARR_ONLY", "Language profiles are only available for Sonarr")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	profiles, err := arr.NewSonarrClient(inst.URL, inst.APIKey).LanguageProfiles(ctx)
	if err != nil {
		writeJSON(w, http.StatusOK, probeResult{
			Status:  "error",
			Message: fmt.Sprintf("Failed to get language profiles: %s", upstreamText(err)),
		})
		return
	}

	writeJSON(w, http.StatusOK, profilesResponse{Status: "success", Profiles: profiles})
}
