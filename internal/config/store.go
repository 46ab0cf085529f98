// internal/config/store.go
package config

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Store holds the active configuration snapshot. Every delivery loads the
// pointer once at the start and works against that snapshot for its whole
// lifetime, so a reload mid-delivery is never observed.
type Store struct {
	path    string
	logger  *slog.Logger
	current atomic.Pointer[Config]
}

// NewStore creates a store seeded with an already-loaded configuration.
func NewStore(path string, cfg *Config, logger *slog.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.current.Store(cfg)
	return s
}

// Snapshot returns the current configuration. The returned value is shared
// and must be treated as read-only.
func (s *Store) Snapshot() *Config {
	return s.current.Load()
}

// Reload re-reads the config file and swaps the snapshot. On failure the
// previous snapshot stays active.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	s.current.Store(cfg)
	return nil
}

// WatchSignals reloads the configuration on SIGHUP until the context is
// cancelled. Intended to run as its own goroutine under the daemon's run
// group.
func (s *Store) WatchSignals(ctx context.Context) error {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-hup:
			if err := s.Reload(); err != nil {
				s.logger.Error("config reload failed, keeping previous snapshot", "path", s.path, "error", err)
				continue
			}
			cfg := s.Snapshot()
			s.logger.Info("configuration reloaded",
				"path", s.path,
				"instances", len(cfg.Instances),
				"media_servers", len(cfg.MediaServers))
			for _, warn := range cfg.Warnings() {
				s.logger.Warn("config warning", "warning", warn)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
