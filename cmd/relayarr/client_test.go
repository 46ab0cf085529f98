package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientStatus_Success(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/status").
		ExpectGET().
		RespondJSON(StatusResponse{
			Status:        "ok",
			Version:       "1.2.3",
			UptimeSeconds: 3600,
			Sync: SyncStatus{
				Delay:    "5s",
				Interval: "2s",
			},
			Instances: []InstanceStatus{
				{
					Name:          "sonarr-4k",
					Type:          "sonarr",
					URL:           "http://sonarr-4k:8989",
					EnabledEvents: []string{"Import", "SeriesDelete"},
					RewriteRules:  1,
				},
			},
			MediaServers: []MediaServerStatus{
				{Name: "plex-main", Type: "plex", URL: "http://plex:32400", Enabled: true},
			},
			Deliveries: DeliveryTotals{Total: 42},
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	status, err := client.Status()
	require.NoError(t, err)

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "1.2.3", status.Version)
	assert.Equal(t, int64(3600), status.UptimeSeconds)
	assert.Equal(t, "5s", status.Sync.Delay)
	assert.Equal(t, "2s", status.Sync.Interval)

	require.Len(t, status.Instances, 1)
	assert.Equal(t, "sonarr-4k", status.Instances[0].Name)
	assert.Equal(t, []string{"Import", "SeriesDelete"}, status.Instances[0].EnabledEvents)
	assert.Equal(t, 1, status.Instances[0].RewriteRules)

	require.Len(t, status.MediaServers, 1)
	assert.True(t, status.MediaServers[0].Enabled)

	assert.Equal(t, int64(42), status.Deliveries.Total)
}

func TestClientStatus_ServerError(t *testing.T) {
	srv := newMockServer(t).
		RespondError(http.StatusInternalServerError, "internal server error").
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Status()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "internal server error")
}

func TestClientStatus_ConnectionError(t *testing.T) {
	// Create a server and immediately close it to simulate connection error
	srv := newMockServer(t).Build()
	srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Status()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestClientDeliveries_Success(t *testing.T) {
	var receivedPath string

	srv := newMockServer(t).
		ExpectGET().
		Handler(func(w http.ResponseWriter, r *http.Request) {
			receivedPath = r.URL.String()
			respondJSON(t, w, ListDeliveriesResponse{
				Items: []DeliveryResponse{
					{
						ID:         "k3j9x0qw7n4p2m8c",
						ReceivedAt: "2025-06-01T12:00:00Z",
						EventType:  "Import",
						Product:    "sonarr",
						Title:      "Severance",
						Status:     "ok",
						Results:    json.RawMessage(`{"status":"ok","event_type":"Import"}`),
					},
				},
				Total: 1,
				Limit: 5,
			})
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	list, err := client.Deliveries(5)
	require.NoError(t, err)

	// Verify the limit was sent as query parameter
	assert.Equal(t, "/api/v1/deliveries?limit=5", receivedPath)

	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 5, list.Limit)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "k3j9x0qw7n4p2m8c", list.Items[0].ID)
	assert.Equal(t, "Import", list.Items[0].EventType)
	assert.Equal(t, "Severance", list.Items[0].Title)
}

func TestClientDelivery_Success(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/deliveries/k3j9x0qw7n4p2m8c").
		ExpectGET().
		RespondJSON(DeliveryResponse{
			ID:         "k3j9x0qw7n4p2m8c",
			ReceivedAt: "2025-06-01T12:00:00Z",
			EventType:  "Import",
			Product:    "sonarr",
			Title:      "Severance",
			ScanPath:   "/data/tv/Severance",
			Status:     "ok",
			Results: json.RawMessage(`{
				"status": "ok",
				"event_type": "Import",
				"sync_results": [{"instance": "sonarr-4k", "status": "success", "action": "rescan_series"}],
				"scan_results": [{"server": "plex-main", "status": "success", "message": "scanned section 2"}]
			}`),
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	d, err := client.Delivery("k3j9x0qw7n4p2m8c")
	require.NoError(t, err)

	assert.Equal(t, "k3j9x0qw7n4p2m8c", d.ID)
	assert.Equal(t, "ok", d.Status)

	var detail DeliveryDetail
	require.NoError(t, json.Unmarshal(d.Results, &detail))
	require.Len(t, detail.SyncResults, 1)
	assert.Equal(t, "sonarr-4k", detail.SyncResults[0].Instance)
	assert.Equal(t, "rescan_series", detail.SyncResults[0].Action)
	require.Len(t, detail.ScanResults, 1)
	assert.Equal(t, "plex-main", detail.ScanResults[0].Server)
}

func TestClientDelivery_NotFound(t *testing.T) {
	srv := newMockServer(t).
		RespondError(http.StatusNotFound, `{"error":"Delivery not found","code":"NOT_FOUND"}`).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Delivery("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestClientStatus_InvalidJSON(t *testing.T) {
	srv := newMockServer(t).
		Handler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("not valid json"))
		}).
		Build()
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Status()
	require.Error(t, err)
}
