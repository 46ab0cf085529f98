// internal/api/v1/types.go
package v1

import (
	"encoding/json"
	"time"
)

// webhookAck is returned to Sonarr/Radarr the moment a webhook is accepted.
// Processing happens in the background; the caller never waits for it.
type webhookAck struct {
	Status    string `json:"status"`
	WebhookID string `json:"webhook_id"`
	EventType string `json:"event_type"`
	Message   string `json:"message"`
}

// webhookError is the error envelope the webhook endpoints speak. It
// predates the management API and keeps the shape senders already parse.
type webhookError struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// debugEcho is the response of the debug endpoint. The eventType key is
// camel-cased like the inbound payload it echoes.
type debugEcho struct {
	Status    string          `json:"status"`
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload"`
}

// deliveryResponse is the API representation of one stored delivery.
type deliveryResponse struct {
	ID         string          `json:"id"`
	ReceivedAt time.Time       `json:"received_at"`
	EventType  string          `json:"event_type"`
	Product    string          `json:"product,omitempty"`
	Title      string          `json:"title,omitempty"`
	ScanPath   string          `json:"scan_path,omitempty"`
	Status     string          `json:"status"`
	Results    json.RawMessage `json:"results"`
}

// listDeliveriesResponse is the response for GET /api/v1/deliveries.
type listDeliveriesResponse struct {
	Items []deliveryResponse `json:"items"`
	Total int64              `json:"total"`
	Limit int                `json:"limit"`
}

// statusResponse summarizes the running relay. Credentials are never
// echoed.
type statusResponse struct {
	Status        string              `json:"status"`
	Version       string              `json:"version"`
	UptimeSeconds int64               `json:"uptime_seconds"`
	Sync          syncStatus          `json:"sync"`
	Instances     []instanceStatus    `json:"instances"`
	MediaServers  []mediaServerStatus `json:"media_servers"`
	Deliveries    deliveryTotals      `json:"deliveries"`
}

type syncStatus struct {
	Delay    string `json:"delay"`
	Interval string `json:"interval"`
}

type instanceStatus struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	URL           string   `json:"url"`
	EnabledEvents []string `json:"enabled_events"`
	RewriteRules  int      `json:"rewrite_rules"`
}

type mediaServerStatus struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	Enabled      bool   `json:"enabled"`
	RewriteRules int    `json:"rewrite_rules"`
}

type deliveryTotals struct {
	Total int64 `json:"total"`
}

// testConnectionRequest carries direct credentials for a probe. Sonarr,
// Radarr, Jellyfin, and Emby authenticate with api_key; Plex with token.
type testConnectionRequest struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	APIKey string `json:"api_key"`
	Token  string `json:"token"`
}

// probeResult is the body of every probe-style endpoint. The HTTP status
// stays 200; the probe's own outcome lives in Status.
type probeResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
}

// rootFoldersResponse is the passthrough response for instance root folders.
type rootFoldersResponse struct {
	Status  string          `json:"status"`
	Folders json.RawMessage `json:"folders"`
}

// profilesResponse is the passthrough response for instance profiles.
type profilesResponse struct {
	Status   string          `json:"status"`
	Profiles json.RawMessage `json:"profiles"`
}
