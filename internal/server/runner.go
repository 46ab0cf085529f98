// Package server runs the relay's background components.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/relayarr/internal/handlers"
)

// Runner supervises event handlers.
type Runner struct {
	handlers []handlers.Handler
	logger   *slog.Logger
}

// NewRunner creates a runner for the given handlers.
func NewRunner(logger *slog.Logger, hs ...handlers.Handler) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		handlers: hs,
		logger:   logger,
	}
}

// Run starts every handler and blocks until the context is canceled or one
// of them fails. Cancellation counts as a clean shutdown.
func (r *Runner) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, h := range r.handlers {
		g.Go(func() error {
			r.logger.Info("handler started", "handler", h.Name())
			err := h.Start(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Error("handler stopped", "handler", h.Name(), "error", err)
				return fmt.Errorf("handler %s: %w", h.Name(), err)
			}
			r.logger.Info("handler stopped", "handler", h.Name())
			return nil
		})
	}

	return g.Wait()
}
