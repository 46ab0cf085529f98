package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the relayarr server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new relayarr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// API response types (mirror server types)

type StatusResponse struct {
	Status        string              `json:"status"`
	Version       string              `json:"version"`
	UptimeSeconds int64               `json:"uptime_seconds"`
	Sync          SyncStatus          `json:"sync"`
	Instances     []InstanceStatus    `json:"instances"`
	MediaServers  []MediaServerStatus `json:"media_servers"`
	Deliveries    DeliveryTotals      `json:"deliveries"`
}

type SyncStatus struct {
	Delay    string `json:"delay"`
	Interval string `json:"interval"`
}

type InstanceStatus struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	URL           string   `json:"url"`
	EnabledEvents []string `json:"enabled_events"`
	RewriteRules  int      `json:"rewrite_rules"`
}

type MediaServerStatus struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	Enabled      bool   `json:"enabled"`
	RewriteRules int    `json:"rewrite_rules"`
}

type DeliveryTotals struct {
	Total int64 `json:"total"`
}

type DeliveryResponse struct {
	ID         string          `json:"id"`
	ReceivedAt string          `json:"received_at"`
	EventType  string          `json:"event_type"`
	Product    string          `json:"product,omitempty"`
	Title      string          `json:"title,omitempty"`
	ScanPath   string          `json:"scan_path,omitempty"`
	Status     string          `json:"status"`
	Results    json.RawMessage `json:"results"`
}

type ListDeliveriesResponse struct {
	Items []DeliveryResponse `json:"items"`
	Total int64              `json:"total"`
	Limit int                `json:"limit"`
}

// DeliveryDetail is the decoded form of DeliveryResponse.Results.
type DeliveryDetail struct {
	Status      string       `json:"status"`
	Reason      string       `json:"reason,omitempty"`
	Product     string       `json:"product,omitempty"`
	EventType   string       `json:"event_type"`
	Title       string       `json:"title,omitempty"`
	CatalogID   int64        `json:"catalog_id,omitempty"`
	SyncResults []SyncDetail `json:"sync_results,omitempty"`
	ScanResults []ScanDetail `json:"scan_results,omitempty"`
	ScannedPath string       `json:"scanned_path,omitempty"`
}

type SyncDetail struct {
	Instance string `json:"instance"`
	Status   string `json:"status"`
	Action   string `json:"action,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ScanDetail struct {
	Server  string `json:"server,omitempty"`
	Type    string `json:"type,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type WebhookAck struct {
	Status    string `json:"status"`
	WebhookID string `json:"webhook_id"`
	EventType string `json:"event_type"`
	Message   string `json:"message"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Deliveries(limit int) (*ListDeliveriesResponse, error) {
	path := fmt.Sprintf("/api/v1/deliveries?limit=%d", limit)
	var resp ListDeliveriesResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Delivery(id string) (*DeliveryResponse, error) {
	var resp DeliveryResponse
	if err := c.get("/api/v1/deliveries/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Scan queues a manual scan delivery. The server acknowledges immediately
// and processes in the background.
func (c *Client) Scan(path, contentType string) (*WebhookAck, error) {
	req := map[string]any{
		"eventType":   "ManualScan",
		"path":        path,
		"contentType": contentType,
	}

	var resp WebhookAck
	if err := c.post("/webhook", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
