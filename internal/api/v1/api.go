// Package v1 implements the webhook endpoints and the management API.
package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/vmunix/relayarr/internal/config"
	"github.com/vmunix/relayarr/internal/history"
	"github.com/vmunix/relayarr/internal/relay"
)

// Dispatcher accepts a raw webhook body and starts its background delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, body []byte) (*relay.Delivery, error)
}

var _ Dispatcher = (*relay.Router)(nil)

// Server is the HTTP API server.
type Server struct {
	store   *config.Store
	relay   Dispatcher
	history *history.Store
	version string
	started time.Time
	logger  *slog.Logger
}

// New creates a new API server.
func New(store *config.Store, dispatcher Dispatcher, hist *history.Store, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:   store,
		relay:   dispatcher,
		history: hist,
		version: version,
		started: time.Now(),
		logger:  logger,
	}
}

// RegisterRoutes registers all routes on the given mux. The webhook
// endpoints live at the root, where Sonarr and Radarr expect them; the
// management API sits under /api/v1.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Webhooks
	mux.HandleFunc("POST /webhook", s.handleWebhook)
	mux.HandleFunc("POST /debug-webhook", s.handleDebugWebhook)

	// System
	mux.HandleFunc("GET /healthz", s.getHealth)
	mux.HandleFunc("GET /api/v1/status", s.getStatus)

	// Delivery history
	mux.HandleFunc("GET /api/v1/deliveries", s.listDeliveries)
	mux.HandleFunc("GET /api/v1/deliveries/{id}", s.getDelivery)

	// Instance tooling
	mux.HandleFunc("POST /api/v1/test-connection", s.testConnection)
	mux.HandleFunc("GET /api/v1/instances/{name}/rootfolders", s.getRootFolders)
	mux.HandleFunc("GET /api/v1/instances/{name}/qualityprofiles", s.getQualityProfiles)
	mux.HandleFunc("GET /api/v1/instances/{name}/languageprofiles", s.getLanguageProfiles)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
