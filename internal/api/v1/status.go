// internal/api/v1/status.go
package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vmunix/relayarr/internal/history"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.version})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	cfg := s.store.Snapshot()

	total, err := s.history.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := statusResponse{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
		Sync: syncStatus{
			Delay:    cfg.Sync.Delay,
			Interval: cfg.Sync.Interval,
		},
		Instances:    make([]instanceStatus, 0, len(cfg.Instances)),
		MediaServers: make([]mediaServerStatus, 0, len(cfg.MediaServers)),
		Deliveries:   deliveryTotals{Total: total},
	}

	for _, inst := range cfg.Instances {
		resp.Instances = append(resp.Instances, instanceStatus{
			Name:          inst.Name,
			Type:          inst.Type,
			URL:           inst.URL,
			EnabledEvents: inst.EnabledEvents,
			RewriteRules:  len(inst.RewriteRules),
		})
	}
	for _, srv := range cfg.MediaServers {
		resp.MediaServers = append(resp.MediaServers, mediaServerStatus{
			Name:         srv.Name,
			Type:         srv.Type,
			URL:          srv.URL,
			Enabled:      srv.IsEnabled(),
			RewriteRules: len(srv.RewriteRules),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listDeliveries(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	records, err := s.history.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	total, err := s.history.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listDeliveriesResponse{
		Items: make([]deliveryResponse, len(records)),
		Total: total,
		Limit: limit,
	}
	for i, rec := range records {
		resp.Items[i] = deliveryToResponse(rec)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getDelivery(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := s.history.Get(id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Delivery not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, deliveryToResponse(*rec))
}

func deliveryToResponse(rec history.Record) deliveryResponse {
	return deliveryResponse{
		ID:         rec.ID,
		ReceivedAt: rec.ReceivedAt,
		EventType:  rec.EventType,
		Product:    rec.Product,
		Title:      rec.Title,
		ScanPath:   rec.ScanPath,
		Status:     rec.Status,
		Results:    json.RawMessage(rec.Results),
	}
}
