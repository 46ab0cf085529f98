package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/vmunix/relayarr/internal/arr"
	"github.com/vmunix/relayarr/internal/config"
	"github.com/vmunix/relayarr/internal/events"
	"github.com/vmunix/relayarr/internal/mediaserver"
)

// addSettleDelay is how long a freshly created series gets to finish its
// initial metadata refresh before the relay touches its episodes.
const addSettleDelay = 2 * time.Second

// Router owns the lifecycle of webhook deliveries from acceptance to the
// terminal result. Dispatch validates synchronously and hands back a
// Delivery handle; everything slow runs on the delivery's own goroutine
// against the configuration snapshot taken at acceptance.
type Router struct {
	store *config.Store
	bus   *events.Bus
	log   *slog.Logger

	newSonarr   func(baseURL, apiKey string) SonarrAPI
	newRadarr   func(baseURL, apiKey string) RadarrAPI
	newScanner  func(servers []config.MediaServerConfig) (Scanner, error)
	settleDelay time.Duration
}

// Option configures a Router.
type Option func(*Router)

// WithSonarrFactory sets how per-instance Sonarr clients are built (for testing).
func WithSonarrFactory(f func(baseURL, apiKey string) SonarrAPI) Option {
	return func(r *Router) { r.newSonarr = f }
}

// WithRadarrFactory sets how per-instance Radarr clients are built (for testing).
func WithRadarrFactory(f func(baseURL, apiKey string) RadarrAPI) Option {
	return func(r *Router) { r.newRadarr = f }
}

// WithScannerFactory sets how the media server scanner is built (for testing).
func WithScannerFactory(f func(servers []config.MediaServerConfig) (Scanner, error)) Option {
	return func(r *Router) { r.newScanner = f }
}

// WithSettleDelay overrides the pause after creating a series (for testing).
func WithSettleDelay(d time.Duration) Option {
	return func(r *Router) { r.settleDelay = d }
}

// NewRouter creates a webhook router reading configuration from store and
// publishing delivery lifecycle events on bus. A nil bus disables events.
func NewRouter(store *config.Store, bus *events.Bus, log *slog.Logger, opts ...Option) *Router {
	r := &Router{
		store: store,
		bus:   bus,
		log:   log,
		newSonarr: func(baseURL, apiKey string) SonarrAPI {
			return arr.NewSonarrClient(baseURL, apiKey)
		},
		newRadarr: func(baseURL, apiKey string) RadarrAPI {
			return arr.NewRadarrClient(baseURL, apiKey)
		},
		settleDelay: addSettleDelay,
	}
	r.newScanner = func(servers []config.MediaServerConfig) (Scanner, error) {
		return mediaserver.NewDispatcher(servers, r.log)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Delivery is the handle for one accepted webhook. Processing runs in the
// background; Done is closed once the terminal result is in.
type Delivery struct {
	ID        string
	EventType string // raw wire event type, before normalization
	Received  time.Time

	done   chan struct{}
	result DeliveryResult
}

// Done returns a channel closed when processing has finished.
func (d *Delivery) Done() <-chan struct{} { return d.done }

// Result returns the terminal result. Callers must wait on Done first.
func (d *Delivery) Result() DeliveryResult { return d.result }

// Dispatch validates a raw webhook body and schedules its processing. A
// *ValidationError return means the body was rejected and nothing was
// scheduled; any other acceptance outcome, including every instance or
// scan failure, surfaces in the Delivery's result instead.
func (r *Router) Dispatch(ctx context.Context, body []byte) (*Delivery, error) {
	payload, err := ParsePayload(body)
	if err != nil {
		return nil, err
	}

	d := &Delivery{
		ID:        newWebhookID(),
		EventType: payload.EventType,
		Received:  time.Now().UTC(),
		done:      make(chan struct{}),
	}
	cfg := r.store.Snapshot()

	r.log.Info("webhook received",
		"webhook_id", d.ID,
		"event_type", payload.EventType,
		"title", payload.Title())

	r.publishReceived(ctx, d, payload)

	// The request context dies with the HTTP handler; processing must not.
	go r.process(context.WithoutCancel(ctx), d, payload, cfg)
	return d, nil
}

func (r *Router) process(ctx context.Context, d *Delivery, p *Payload, cfg *config.Config) {
	defer close(d.done)
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("delivery processing panicked",
				"webhook_id", d.ID, "panic", rec)
			d.result = DeliveryResult{
				Status:    StatusError,
				Reason:    fmt.Sprintf("internal error: %v", rec),
				EventType: p.NormalizedEvent(),
				Product:   p.Product(),
				Title:     p.Title(),
			}
		}
		r.publishCompleted(ctx, d)
	}()

	if delay := cfg.Sync.DelayDuration(); delay > 0 {
		r.log.Debug("applying sync delay", "webhook_id", d.ID, "delay", delay)
		sleepContext(ctx, delay)
	}

	switch {
	case p.EventType == EventManualScan:
		d.result = r.manualScan(ctx, p, cfg)
	case p.Series != nil:
		d.result = r.routeSeries(ctx, p, cfg)
	default:
		d.result = r.routeMovie(ctx, p, cfg)
	}

	r.log.Info("delivery processed",
		"webhook_id", d.ID,
		"event_type", d.result.EventType,
		"status", d.result.Status,
		"instances", len(d.result.Sync),
		"scans", len(d.result.Scans))
}

func (r *Router) routeSeries(ctx context.Context, p *Payload, cfg *config.Config) DeliveryResult {
	eventType := p.NormalizedEvent()
	result := DeliveryResult{
		Status:    StatusOK,
		Product:   ProductSonarr,
		EventType: eventType,
		Title:     p.Series.Title,
		CatalogID: p.Series.TVDBID,
	}

	if !sonarrEvents[eventType] {
		result.Status = StatusIgnored
		result.Reason = fmt.Sprintf("Unhandled event type: %s", eventType)
		return result
	}

	instances := matchInstances(cfg.Instances, ProductSonarr, eventType)
	if len(instances) == 0 {
		// Import still scans the media servers: the file landed upstream
		// whether or not anyone mirrors it.
		if eventType != EventImport || p.ScanPath() == "" {
			result.Status = StatusIgnored
			result.Reason = fmt.Sprintf("No instances configured for %s", eventType)
			return result
		}
		result.Reason = "No Sonarr instances configured, but media servers were scanned"
	}

	r.syncInstances(ctx, &result, instances, cfg, func(inst config.InstanceConfig) SyncResult {
		return r.syncSonarrInstance(ctx, eventType, inst, p)
	})
	r.runScan(ctx, &result, p, cfg)
	return result
}

func (r *Router) routeMovie(ctx context.Context, p *Payload, cfg *config.Config) DeliveryResult {
	eventType := p.NormalizedEvent()
	result := DeliveryResult{
		Status:    StatusOK,
		Product:   ProductRadarr,
		EventType: eventType,
		Title:     p.Movie.Title,
		CatalogID: p.Movie.TMDBID,
	}

	if !radarrEvents[eventType] {
		result.Status = StatusIgnored
		result.Reason = fmt.Sprintf("Unhandled event type: %s", eventType)
		return result
	}

	instances := matchInstances(cfg.Instances, ProductRadarr, eventType)
	if len(instances) == 0 {
		if eventType != EventImport || p.ScanPath() == "" {
			result.Status = StatusIgnored
			result.Reason = fmt.Sprintf("No instances configured for %s", eventType)
			return result
		}
		result.Reason = "No Radarr instances configured, but media servers were scanned"
	}

	r.syncInstances(ctx, &result, instances, cfg, func(inst config.InstanceConfig) SyncResult {
		return r.syncRadarrInstance(ctx, eventType, inst, p)
	})
	r.runScan(ctx, &result, p, cfg)
	return result
}

// syncInstances runs op against each instance in configuration order with
// the sync interval between consecutive operations, never before the first.
func (r *Router) syncInstances(ctx context.Context, result *DeliveryResult, instances []config.InstanceConfig, cfg *config.Config, op func(config.InstanceConfig) SyncResult) {
	interval := cfg.Sync.IntervalDuration()
	for i, inst := range instances {
		if i > 0 {
			sleepContext(ctx, interval)
		}
		res := op(inst)
		result.Sync = append(result.Sync, res)

		if res.Status == SyncError {
			r.log.Warn("instance sync failed",
				"instance", inst.Name, "event_type", result.EventType, "error", res.Error)
		} else {
			r.log.Info("instance synced",
				"instance", inst.Name, "event_type", result.EventType,
				"status", res.Status, "action", res.Action)
		}
	}
}

// runScan appends media server scan results for events that changed files
// on disk. The sync interval applies once more before the scan phase, but
// only when instance operations actually ran ahead of it.
func (r *Router) runScan(ctx context.Context, result *DeliveryResult, p *Payload, cfg *config.Config) {
	if !scanEvents[result.EventType] {
		return
	}
	scanPath := p.ScanPath()
	if scanPath == "" {
		r.log.Warn("no scannable path in payload",
			"event_type", result.EventType, "title", result.Title)
		return
	}
	if len(result.Sync) > 0 {
		sleepContext(ctx, cfg.Sync.IntervalDuration())
	}

	result.ScannedPath = scanPath
	scanner, err := r.newScanner(cfg.MediaServers)
	if err != nil {
		result.Scans = []mediaserver.ScanResult{{Status: mediaserver.StatusError, Error: err.Error()}}
		return
	}
	result.Scans = scanner.Dispatch(ctx, scanPath, p.ScanKind())
}

// manualScan bypasses instance sync entirely and scans the requested path.
func (r *Router) manualScan(ctx context.Context, p *Payload, cfg *config.Config) DeliveryResult {
	result := DeliveryResult{
		Status:      StatusOK,
		EventType:   EventManualScan,
		ScannedPath: p.Path,
	}
	scanner, err := r.newScanner(cfg.MediaServers)
	if err != nil {
		result.Scans = []mediaserver.ScanResult{{Status: mediaserver.StatusError, Error: err.Error()}}
		return result
	}
	result.Scans = scanner.Dispatch(ctx, p.Path, p.ScanKind())
	return result
}

func (r *Router) publishReceived(ctx context.Context, d *Delivery, p *Payload) {
	if r.bus == nil {
		return
	}
	_ = r.bus.Publish(ctx, events.DeliveryReceived{
		BaseEvent:    events.NewBaseEvent(events.EventDeliveryReceived, d.ID),
		WebhookEvent: p.EventType,
		Product:      string(p.Product()),
		Title:        p.Title(),
	})
}

func (r *Router) publishCompleted(ctx context.Context, d *Delivery) {
	if r.bus == nil {
		return
	}
	raw, err := json.Marshal(d.result)
	if err != nil {
		r.log.Error("marshal delivery result", "webhook_id", d.ID, "error", err)
		return
	}
	_ = r.bus.Publish(ctx, events.DeliveryCompleted{
		BaseEvent:    events.NewBaseEvent(events.EventDeliveryCompleted, d.ID),
		WebhookEvent: d.result.EventType,
		Product:      string(d.result.Product),
		Title:        d.result.Title,
		ScanPath:     d.result.ScannedPath,
		Status:       d.result.Status,
		Results:      raw,
	})
}

// matchInstances returns the instances of the given product that opted
// into the event type, preserving configuration order. Matching runs after
// Download normalization, so enabled_events entries use "Import".
func matchInstances(instances []config.InstanceConfig, product Product, eventType string) []config.InstanceConfig {
	var matched []config.InstanceConfig
	for i := range instances {
		if !strings.EqualFold(instances[i].Type, string(product)) {
			continue
		}
		if instances[i].EventEnabled(eventType) {
			matched = append(matched, instances[i])
		}
	}
	return matched
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

const webhookIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// newWebhookID returns the 16-character lowercase alphanumeric id that
// tags a delivery in the acknowledgment, the logs, and history.
func newWebhookID() string {
	b := make([]byte, 16)
	for i := range b {
		b[i] = webhookIDAlphabet[rand.IntN(len(webhookIDAlphabet))]
	}
	return string(b)
}
