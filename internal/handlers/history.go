// internal/handlers/history.go
package handlers

import (
	"context"
	"log/slog"

	"github.com/vmunix/relayarr/internal/events"
	"github.com/vmunix/relayarr/internal/history"
)

// HistoryConfig configures the history handler.
type HistoryConfig struct {
	// Keep bounds the deliveries table. Zero keeps the store's default of
	// 1000 rows.
	Keep int
}

const defaultKeep = 1000

// HistoryHandler records delivery lifecycle events so the API can answer
// "what happened to webhook X" after the fact. Acceptance writes a
// processing row; completion replaces it with the terminal result and
// prunes rows beyond the retention bound.
type HistoryHandler struct {
	*BaseHandler
	store *history.Store
	keep  int
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(bus *events.Bus, store *history.Store, config HistoryConfig, logger *slog.Logger) *HistoryHandler {
	keep := config.Keep
	if keep <= 0 {
		keep = defaultKeep
	}
	return &HistoryHandler{
		BaseHandler: NewBaseHandler(bus, logger),
		store:       store,
		keep:        keep,
	}
}

// Name returns the handler name.
func (h *HistoryHandler) Name() string {
	return "history"
}

// Start begins processing events.
func (h *HistoryHandler) Start(ctx context.Context) error {
	received := h.Bus().Subscribe(events.EventDeliveryReceived, 100)
	completed := h.Bus().Subscribe(events.EventDeliveryCompleted, 100)

	for {
		select {
		case e := <-received:
			if e == nil {
				return nil // Channel closed
			}
			h.handleReceived(e.(events.DeliveryReceived))
		case e := <-completed:
			if e == nil {
				return nil
			}
			h.handleCompleted(e.(events.DeliveryCompleted))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (h *HistoryHandler) handleReceived(e events.DeliveryReceived) {
	err := h.store.Accept(history.Record{
		ID:         e.DeliveryID(),
		ReceivedAt: e.OccurredAt(),
		EventType:  e.WebhookEvent,
		Product:    e.Product,
		Title:      e.Title,
		Status:     history.StatusProcessing,
	})
	if err != nil {
		h.Logger().Error("failed to record delivery", "webhook_id", e.DeliveryID(), "error", err)
	}
}

func (h *HistoryHandler) handleCompleted(e events.DeliveryCompleted) {
	// ReceivedAt only lands when acceptance was never recorded; the upsert
	// keeps the existing receipt time otherwise.
	err := h.store.Put(history.Record{
		ID:         e.DeliveryID(),
		ReceivedAt: e.OccurredAt(),
		EventType:  e.WebhookEvent,
		Product:    e.Product,
		Title:      e.Title,
		ScanPath:   e.ScanPath,
		Status:     e.Status,
		Results:    string(e.Results),
	})
	if err != nil {
		h.Logger().Error("failed to record delivery result", "webhook_id", e.DeliveryID(), "error", err)
		return
	}

	pruned, err := h.store.Prune(h.keep)
	if err != nil {
		h.Logger().Error("failed to prune delivery history", "error", err)
		return
	}
	if pruned > 0 {
		h.Logger().Debug("pruned delivery history", "removed", pruned, "keep", h.keep)
	}
}
