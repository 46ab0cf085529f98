package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/relayarr/internal/arr"
	"github.com/vmunix/relayarr/internal/config"
	"github.com/vmunix/relayarr/internal/events"
	"github.com/vmunix/relayarr/internal/mediaserver"
	"github.com/vmunix/relayarr/internal/relay"
	"github.com/vmunix/relayarr/internal/relay/mocks"
)

// existingSeries is the mirror instance's copy of the webhook series. Its
// local id never matches the sender's.
func existingSeries(id int64) *arr.Series {
	return &arr.Series{ID: id, Title: "Severance", TVDBID: 371980, Path: "/tv/Severance"}
}

func existingMovie(id int64) *arr.Movie {
	return &arr.Movie{ID: id, Title: "Heat", TMDBID: 949, Year: 1995}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStore(cfg *config.Config) *config.Store {
	return config.NewStore("", cfg, testLogger())
}

// sonarrInstance returns a single-instance config subscribed to the given
// events.
func sonarrInstance(enabled ...string) *config.Config {
	return &config.Config{
		Instances: []config.InstanceConfig{{
			Name:             "sonarr-b",
			Type:             "sonarr",
			URL:              "http://sonarr-b:8989",
			APIKey:           "key-b",
			RootFolder:       "/tv",
			QualityProfileID: 1,
			EnabledEvents:    enabled,
		}},
	}
}

func radarrInstance(enabled ...string) *config.Config {
	return &config.Config{
		Instances: []config.InstanceConfig{{
			Name:             "radarr-b",
			Type:             "radarr",
			URL:              "http://radarr-b:7878",
			APIKey:           "key-b",
			RootFolder:       "/movies",
			QualityProfileID: 4,
			EnabledEvents:    enabled,
		}},
	}
}

type routerOpts struct {
	sonarr  relay.SonarrAPI
	radarr  relay.RadarrAPI
	scanner relay.Scanner
	bus     *events.Bus
}

func newTestRouter(cfg *config.Config, o routerOpts) *relay.Router {
	opts := []relay.Option{relay.WithSettleDelay(0)}
	if o.sonarr != nil {
		opts = append(opts, relay.WithSonarrFactory(func(_, _ string) relay.SonarrAPI { return o.sonarr }))
	}
	if o.radarr != nil {
		opts = append(opts, relay.WithRadarrFactory(func(_, _ string) relay.RadarrAPI { return o.radarr }))
	}
	scanner := o.scanner
	opts = append(opts, relay.WithScannerFactory(func([]config.MediaServerConfig) (relay.Scanner, error) {
		if scanner == nil {
			return noScans{}, nil
		}
		return scanner, nil
	}))
	return relay.NewRouter(testStore(cfg), o.bus, testLogger(), opts...)
}

// noScans stands in when a test doesn't care about the scan phase.
type noScans struct{}

func (noScans) Dispatch(context.Context, string, mediaserver.Kind) []mediaserver.ScanResult {
	return nil
}

func dispatchWait(t *testing.T, r *relay.Router, body string) relay.DeliveryResult {
	t.Helper()
	d, err := r.Dispatch(context.Background(), []byte(body))
	require.NoError(t, err)
	select {
	case <-d.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("delivery did not finish")
	}
	return d.Result()
}

const sonarrImportBody = `{
	"eventType": "Download",
	"series": {"id": 5, "title": "Severance", "tvdbId": 371980, "path": "/tv/Severance"},
	"episodes": [{"id": 100, "seasonNumber": 2, "episodeNumber": 3}],
	"episodeFile": {"id": 88, "path": "/tv/Severance/Season 02/S02E03.mkv"}
}`

func TestDispatch_RejectsInvalidPayload(t *testing.T) {
	r := newTestRouter(&config.Config{}, routerOpts{})

	d, err := r.Dispatch(context.Background(), []byte(`{"eventType": ""}`))
	assert.Nil(t, d)

	var verr *relay.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Webhook payload missing eventType", verr.Reason)
}

func TestDispatch_DeliveryHandle(t *testing.T) {
	r := newTestRouter(&config.Config{}, routerOpts{})

	d, err := r.Dispatch(context.Background(), []byte(sonarrImportBody))
	require.NoError(t, err)

	assert.Len(t, d.ID, 16)
	for _, c := range d.ID {
		assert.Contains(t, "abcdefghijklmnopqrstuvwxyz0123456789", string(c))
	}
	// The handle reports the wire event type, not the normalized one.
	assert.Equal(t, "Download", d.EventType)
	assert.False(t, d.Received.IsZero())

	d2, err := r.Dispatch(context.Background(), []byte(sonarrImportBody))
	require.NoError(t, err)
	assert.NotEqual(t, d.ID, d2.ID)

	<-d.Done()
	<-d2.Done()
}

func TestDispatch_DownloadRoutesAsImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	sonarr := mocks.NewMockSonarrAPI(ctrl)

	sonarr.EXPECT().LookupSeries(gomock.Any(), int64(371980)).
		Return(existingSeries(42), nil)
	sonarr.EXPECT().RefreshSeries(gomock.Any(), int64(42)).Return(nil)
	sonarr.EXPECT().RescanSeries(gomock.Any(), int64(42)).Return(nil)

	r := newTestRouter(sonarrInstance("Import"), routerOpts{sonarr: sonarr})
	result := dispatchWait(t, r, sonarrImportBody)

	assert.Equal(t, relay.StatusOK, result.Status)
	assert.Equal(t, relay.EventImport, result.EventType)
	require.Len(t, result.Sync, 1)
	assert.Equal(t, relay.SyncSuccess, result.Sync[0].Status)
}

func TestDispatch_UnhandledEventIgnored(t *testing.T) {
	r := newTestRouter(sonarrInstance("Import"), routerOpts{})

	result := dispatchWait(t, r, `{"eventType": "Test", "series": {"tvdbId": 1, "title": "x"}}`)

	assert.Equal(t, relay.StatusIgnored, result.Status)
	assert.Equal(t, "Unhandled event type: Test", result.Reason)
	assert.Empty(t, result.Sync)
	assert.Empty(t, result.Scans)
}

func TestDispatch_NoInstancesForEvent(t *testing.T) {
	r := newTestRouter(&config.Config{}, routerOpts{})

	result := dispatchWait(t, r, `{"eventType": "SeriesDelete", "series": {"tvdbId": 1, "title": "x", "path": "/tv/x"}}`)

	assert.Equal(t, relay.StatusIgnored, result.Status)
	assert.Equal(t, "No instances configured for SeriesDelete", result.Reason)
}

func TestDispatch_EventFilterIsCaseInsensitive(t *testing.T) {
	ctrl := gomock.NewController(t)
	sonarr := mocks.NewMockSonarrAPI(ctrl)
	sonarr.EXPECT().LookupSeries(gomock.Any(), gomock.Any()).Return(existingSeries(42), nil)
	sonarr.EXPECT().RefreshSeries(gomock.Any(), gomock.Any()).Return(nil)
	sonarr.EXPECT().RescanSeries(gomock.Any(), gomock.Any()).Return(nil)

	r := newTestRouter(sonarrInstance("import"), routerOpts{sonarr: sonarr})
	result := dispatchWait(t, r, sonarrImportBody)

	require.Len(t, result.Sync, 1)
	assert.Equal(t, relay.SyncSuccess, result.Sync[0].Status)
}

func TestDispatch_ImportWithoutInstancesStillScans(t *testing.T) {
	ctrl := gomock.NewController(t)
	scanner := mocks.NewMockScanner(ctrl)
	scanner.EXPECT().
		Dispatch(gomock.Any(), "/tv/Severance/Season 02/S02E03.mkv", mediaserver.KindSeries).
		Return([]mediaserver.ScanResult{{Server: "plex", Status: mediaserver.StatusSuccess}})

	r := newTestRouter(&config.Config{}, routerOpts{scanner: scanner})
	result := dispatchWait(t, r, sonarrImportBody)

	assert.Equal(t, relay.StatusOK, result.Status)
	assert.Equal(t, "No Sonarr instances configured, but media servers were scanned", result.Reason)
	assert.Empty(t, result.Sync)
	require.Len(t, result.Scans, 1)
	assert.Equal(t, "/tv/Severance/Season 02/S02E03.mkv", result.ScannedPath)
}

func TestDispatch_ImportWithoutInstancesOrPathIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	scanner := mocks.NewMockScanner(ctrl) // no expectations: must not be called

	r := newTestRouter(&config.Config{}, routerOpts{scanner: scanner})
	result := dispatchWait(t, r, `{"eventType": "Import", "series": {"tvdbId": 1, "title": "x"}}`)

	assert.Equal(t, relay.StatusIgnored, result.Status)
	assert.Equal(t, "No instances configured for Import", result.Reason)
}

func TestDispatch_GrabNeverScans(t *testing.T) {
	ctrl := gomock.NewController(t)
	sonarr := mocks.NewMockSonarrAPI(ctrl)
	sonarr.EXPECT().LookupSeries(gomock.Any(), gomock.Any()).Return(existingSeries(42), nil)
	scanner := mocks.NewMockScanner(ctrl) // no expectations: must not be called

	r := newTestRouter(sonarrInstance("Grab"), routerOpts{sonarr: sonarr, scanner: scanner})
	result := dispatchWait(t, r, `{
		"eventType": "Grab",
		"series": {"id": 5, "title": "Severance", "tvdbId": 371980, "path": "/tv/Severance"}
	}`)

	assert.Equal(t, relay.StatusOK, result.Status)
	assert.Empty(t, result.Scans)
	assert.Empty(t, result.ScannedPath)
}

func TestDispatch_PartialFailureIsolation(t *testing.T) {
	ctrl := gomock.NewController(t)

	healthy := func() *mocks.MockSonarrAPI {
		m := mocks.NewMockSonarrAPI(ctrl)
		m.EXPECT().LookupSeries(gomock.Any(), gomock.Any()).Return(existingSeries(42), nil)
		m.EXPECT().RefreshSeries(gomock.Any(), int64(42)).Return(nil)
		m.EXPECT().RescanSeries(gomock.Any(), int64(42)).Return(nil)
		return m
	}
	broken := mocks.NewMockSonarrAPI(ctrl)
	broken.EXPECT().LookupSeries(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	byURL := map[string]relay.SonarrAPI{
		"http://a:8989": healthy(),
		"http://b:8989": broken,
		"http://c:8989": healthy(),
	}

	cfg := &config.Config{Instances: []config.InstanceConfig{
		{Name: "a", Type: "sonarr", URL: "http://a:8989", EnabledEvents: []string{"Import"}},
		{Name: "b", Type: "sonarr", URL: "http://b:8989", EnabledEvents: []string{"Import"}},
		{Name: "c", Type: "sonarr", URL: "http://c:8989", EnabledEvents: []string{"Import"}},
	}}

	r := relay.NewRouter(testStore(cfg), nil, testLogger(),
		relay.WithSettleDelay(0),
		relay.WithSonarrFactory(func(url, _ string) relay.SonarrAPI { return byURL[url] }),
		relay.WithScannerFactory(func([]config.MediaServerConfig) (relay.Scanner, error) {
			return noScans{}, nil
		}))

	result := dispatchWait(t, r, sonarrImportBody)

	require.Len(t, result.Sync, 3, "one instance failing must not stop the others")
	assert.Equal(t, []string{"a", "b", "c"}, []string{
		result.Sync[0].Instance, result.Sync[1].Instance, result.Sync[2].Instance,
	})
	assert.Equal(t, relay.SyncSuccess, result.Sync[0].Status)
	assert.Equal(t, relay.SyncError, result.Sync[1].Status)
	assert.Equal(t, "connection refused", result.Sync[1].Error)
	assert.Equal(t, relay.SyncSuccess, result.Sync[2].Status)
	assert.Equal(t, relay.StatusOK, result.Status)
}

func TestDispatch_ManualScan(t *testing.T) {
	ctrl := gomock.NewController(t)
	scanner := mocks.NewMockScanner(ctrl)
	scanner.EXPECT().
		Dispatch(gomock.Any(), "/data/tv/Severance", mediaserver.KindSeries).
		Return([]mediaserver.ScanResult{
			{Server: "plex", Type: "plex", Status: mediaserver.StatusSuccess},
			{Server: "jf", Type: "jellyfin", Status: mediaserver.StatusError, Error: "request failed"},
		})

	r := newTestRouter(&config.Config{}, routerOpts{scanner: scanner})
	result := dispatchWait(t, r, `{"eventType": "ManualScan", "path": "/data/tv/Severance", "contentType": "series"}`)

	assert.Equal(t, relay.StatusOK, result.Status)
	assert.Equal(t, relay.EventManualScan, result.EventType)
	assert.Equal(t, "/data/tv/Severance", result.ScannedPath)
	require.Len(t, result.Scans, 2)
	assert.Empty(t, result.Sync)
}

func TestDispatch_AppliesSyncTiming(t *testing.T) {
	ctrl := gomock.NewController(t)
	sonarr := mocks.NewMockSonarrAPI(ctrl)
	sonarr.EXPECT().LookupSeries(gomock.Any(), gomock.Any()).Return(existingSeries(42), nil).Times(2)
	sonarr.EXPECT().RefreshSeries(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	sonarr.EXPECT().RescanSeries(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	scanner := mocks.NewMockScanner(ctrl)
	scanner.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	cfg := &config.Config{
		Sync: config.SyncConfig{Delay: "50ms", Interval: "30ms"},
		Instances: []config.InstanceConfig{
			{Name: "a", Type: "sonarr", URL: "http://a:8989", EnabledEvents: []string{"Import"}},
			{Name: "b", Type: "sonarr", URL: "http://b:8989", EnabledEvents: []string{"Import"}},
		},
	}
	r := newTestRouter(cfg, routerOpts{sonarr: sonarr, scanner: scanner})

	start := time.Now()
	result := dispatchWait(t, r, sonarrImportBody)
	elapsed := time.Since(start)

	require.Len(t, result.Sync, 2)
	// delay + inter-instance interval + pre-scan interval
	assert.GreaterOrEqual(t, elapsed, 110*time.Millisecond)
}

func TestDispatch_PublishesLifecycleEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	sonarr := mocks.NewMockSonarrAPI(ctrl)
	sonarr.EXPECT().LookupSeries(gomock.Any(), gomock.Any()).Return(existingSeries(42), nil)
	sonarr.EXPECT().RefreshSeries(gomock.Any(), gomock.Any()).Return(nil)
	sonarr.EXPECT().RescanSeries(gomock.Any(), gomock.Any()).Return(nil)

	bus := events.NewBus(testLogger())
	defer func() { _ = bus.Close() }()
	ch := bus.SubscribeAll(4)

	r := newTestRouter(sonarrInstance("Import"), routerOpts{sonarr: sonarr, bus: bus})
	d, err := r.Dispatch(context.Background(), []byte(sonarrImportBody))
	require.NoError(t, err)
	<-d.Done()

	received := waitEvent(t, ch)
	require.IsType(t, events.DeliveryReceived{}, received)
	assert.Equal(t, d.ID, received.DeliveryID())
	assert.Equal(t, "Download", received.(events.DeliveryReceived).WebhookEvent)

	completed := waitEvent(t, ch)
	require.IsType(t, events.DeliveryCompleted{}, completed)
	done := completed.(events.DeliveryCompleted)
	assert.Equal(t, d.ID, done.DeliveryID())
	assert.Equal(t, relay.EventImport, done.WebhookEvent)
	assert.Equal(t, "ok", done.Status)

	var result relay.DeliveryResult
	require.NoError(t, json.Unmarshal(done.Results, &result))
	require.Len(t, result.Sync, 1)
	assert.Equal(t, relay.SyncSuccess, result.Sync[0].Status)
}

func waitEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("no event published")
		return nil
	}
}
