package mediaserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJellyfinClient_Scan(t *testing.T) {
	refreshed := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshed = true
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Library/Refresh", r.URL.Path)
		assert.Equal(t, "jf-token", r.Header.Get("X-MediaBrowser-Token"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewJellyfinClient("jellyfin", server.URL, "jf-token", nil)
	err := client.Scan(context.Background(), "/data/tv/Show", KindSeries)
	require.NoError(t, err)
	assert.True(t, refreshed, "refresh endpoint was not called")
}

func TestJellyfinClient_Scan_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewJellyfinClient("jellyfin", server.URL, "bad-token", nil)
	err := client.Scan(context.Background(), "/data/tv/Show", KindSeries)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh failed with status: 401")
}

func TestJellyfinClient_TestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Library/SelectableMediaFolders", r.URL.Path)
		assert.Equal(t, "jf-token", r.Header.Get("X-MediaBrowser-Token"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewJellyfinClient("jellyfin", server.URL, "jf-token", nil)
	assert.NoError(t, client.TestConnection(context.Background()))
}

func TestEmbyClient_Scan(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Library/Refresh", r.URL.Path)
		gotToken = r.Header.Get("X-Emby-Token")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewEmbyClient("emby", server.URL, "emby-token", nil)
	err := client.Scan(context.Background(), "/data/movies/Foo (2020)", KindMovie)
	require.NoError(t, err)
	assert.Equal(t, "emby-token", gotToken)
}

func TestEmbyClient_TestConnection_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewEmbyClient("emby", server.URL, "bad", nil)
	err := client.TestConnection(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status: 401")
}
