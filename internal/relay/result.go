package relay

import (
	"errors"

	"github.com/vmunix/relayarr/internal/arr"
	"github.com/vmunix/relayarr/internal/mediaserver"
)

// Delivery statuses.
const (
	StatusOK      = "ok"
	StatusIgnored = "ignored"
	StatusError   = "error"
)

// Instance sync statuses.
const (
	SyncSuccess = "success"
	SyncSkipped = "skipped"
	SyncError   = "error"
)

// SyncResult records the outcome of one instance operation. Errors from an
// instance never abort the delivery; they land here and the loop moves on.
type SyncResult struct {
	Instance string `json:"instance"`
	Status   string `json:"status"`
	Action   string `json:"action,omitempty"`
	Detail   string `json:"detail,omitempty"`
	Error    string `json:"error,omitempty"`
}

// DeliveryResult is the terminal record of one webhook delivery: what the
// event was, what every instance did about it, and how the scans went.
type DeliveryResult struct {
	Status      string                   `json:"status"`
	Reason      string                   `json:"reason,omitempty"`
	Product     Product                  `json:"product,omitempty"`
	EventType   string                   `json:"event_type"`
	Title       string                   `json:"title,omitempty"`
	CatalogID   int64                    `json:"catalog_id,omitempty"`
	Sync        []SyncResult             `json:"sync_results,omitempty"`
	Scans       []mediaserver.ScanResult `json:"scan_results,omitempty"`
	ScannedPath string                   `json:"scanned_path,omitempty"`
}

func successResult(instance, action string) SyncResult {
	return SyncResult{Instance: instance, Status: SyncSuccess, Action: action}
}

func skippedResult(instance, detail string) SyncResult {
	return SyncResult{Instance: instance, Status: SyncSkipped, Detail: detail}
}

func errorResult(instance string, err error) SyncResult {
	return SyncResult{Instance: instance, Status: SyncError, Error: errorText(err)}
}

// errorText prefers the upstream API's own message over the transport
// wrapping, so results read "Series not found" rather than a status line.
func errorText(err error) string {
	var statusErr *arr.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return err.Error()
}
