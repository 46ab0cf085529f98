// internal/api/v1/webhook.go
package v1

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vmunix/relayarr/internal/relay"
)

// maxWebhookBody bounds inbound payloads. Real Sonarr/Radarr webhooks are
// a few KB; a megabyte is already absurd.
const maxWebhookBody = 1 << 20

const ackMessage = "Webhook received, processing will begin after sync delay"

func writeWebhookError(w http.ResponseWriter, code int, reason string) {
	writeJSON(w, code, webhookError{Status: "error", Reason: reason})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeWebhookError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	d, err := s.relay.Dispatch(r.Context(), body)
	if err != nil {
		var verr *relay.ValidationError
		if errors.As(err, &verr) {
			s.logger.Warn("invalid webhook format", "reason", verr.Reason)
			writeWebhookError(w, http.StatusBadRequest, "Invalid webhook format: "+verr.Reason)
			return
		}
		s.logger.Error("failed to process webhook", "error", err)
		writeWebhookError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, webhookAck{
		Status:    "received",
		WebhookID: d.ID,
		EventType: d.EventType,
		Message:   ackMessage,
	})
}

// handleDebugWebhook logs and echoes the payload without processing it.
// Pointing an instance here shows exactly what it sends.
func (s *Server) handleDebugWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeWebhookError(w, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		writeWebhookError(w, http.StatusBadRequest, "Invalid webhook format: body is not valid JSON")
		return
	}

	eventType := "unknown"
	if raw, ok := payload["eventType"]; ok {
		_ = json.Unmarshal(raw, &eventType)
	}

	s.logger.Info("received webhook on debug endpoint",
		"event", eventType,
		"content_type", r.Header.Get("Content-Type"),
		"user_agent", r.Header.Get("User-Agent"),
		"payload", string(body),
	)

	writeJSON(w, http.StatusOK, debugEcho{
		Status:    "received",
		EventType: eventType,
		Payload:   body,
	})
}
