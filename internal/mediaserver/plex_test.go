// internal/mediaserver/plex_test.go
package mediaserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSectionsXML = `<?xml version="1.0" encoding="UTF-8"?>
<MediaContainer>
  <Directory key="1" title="Movies" type="movie">
    <Location path="/data/movies"/>
  </Directory>
  <Directory key="2" title="Movies 4K" type="movie">
    <Location path="/data/movies4k"/>
  </Directory>
  <Directory key="3" title="TV Shows" type="show">
    <Location path="/data/tv"/>
  </Directory>
</MediaContainer>`

func TestPlexClient_GetSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Plex-Token"))

		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(twoSectionsXML))
	}))
	defer server.Close()

	client := NewPlexClient("plex", server.URL, "test-token", nil)
	sections, err := client.GetSections(context.Background())
	require.NoError(t, err, "GetSections")

	require.Len(t, sections, 3)
	assert.Equal(t, "1", sections[0].Key)
	assert.Equal(t, "Movies", sections[0].Title)
	assert.Equal(t, "/data/movies", sections[0].Locations[0].Path)
	assert.Equal(t, "show", sections[2].Type)
}

func TestPlexClient_Scan(t *testing.T) {
	scanCalled := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/library/sections" {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(twoSectionsXML))
			return
		}

		if r.URL.Path == "/library/sections/3/refresh" {
			scanCalled = true
			assert.Equal(t, "test-token", r.Header.Get("X-Plex-Token"))
			assert.Equal(t, "/data/tv/Show Name (2020)", r.URL.Query().Get("path"))
			w.WriteHeader(http.StatusOK)
			return
		}

		t.Errorf("unexpected path: %s", r.URL.Path)
	}))
	defer server.Close()

	client := NewPlexClient("plex", server.URL, "test-token", nil)
	err := client.Scan(context.Background(), "/data/tv/Show Name (2020)", KindSeries)
	require.NoError(t, err, "Scan")

	assert.True(t, scanCalled, "refresh endpoint was not called")
}

func TestPlexClient_Scan_SiblingPrefixPrecedence(t *testing.T) {
	// /data/movies is declared before /data/movies4k, but the 4k path must
	// land on the 4k section: boundary-respecting prefix matching beats
	// declared order across sibling directories sharing a name prefix.
	var refreshed string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/library/sections" {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(twoSectionsXML))
			return
		}
		refreshed = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewPlexClient("plex", server.URL, "test-token", nil)
	err := client.Scan(context.Background(), "/data/movies4k/Foo (2020)", KindMovie)
	require.NoError(t, err)

	assert.Equal(t, "/library/sections/2/refresh", refreshed)
}

func TestPlexClient_Scan_NoMatchingSection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(twoSectionsXML))
	}))
	defer server.Close()

	client := NewPlexClient("plex", server.URL, "test-token", nil)
	err := client.Scan(context.Background(), "/srv/other/movie.mkv", KindMovie)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMatchingSection)
}

func TestPlexClient_Scan_NoSectionsOfKind(t *testing.T) {
	// Server only has movie sections; a series scan is a typed no-match,
	// not a transport error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<?xml version="1.0"?>
<MediaContainer>
  <Directory key="1" title="Movies" type="movie">
    <Location path="/data/movies"/>
  </Directory>
</MediaContainer>`))
	}))
	defer server.Close()

	client := NewPlexClient("plex", server.URL, "test-token", nil)
	err := client.Scan(context.Background(), "/data/movies/Foo (2020)", KindSeries)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoMatchingSection)
	assert.Contains(t, err.Error(), "no series sections")
}

func TestPlexClient_Scan_RefreshFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/library/sections" {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(twoSectionsXML))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewPlexClient("plex", server.URL, "test-token", nil)
	err := client.Scan(context.Background(), "/data/tv/Show", KindSeries)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoMatchingSection)
	assert.Contains(t, err.Error(), "scan failed with status: 401")
}

func TestPlexClient_ConnectionError(t *testing.T) {
	client := NewPlexClient("plex", "http://127.0.0.1:1", "token", nil)
	_, err := client.GetSections(context.Background())
	assert.Error(t, err, "expected connection error")
}

func TestMatchLocation_BoundaryTierAcrossAllCandidates(t *testing.T) {
	// Both tiers run across the whole candidate list: a boundary match on
	// a later candidate beats a substring match on an earlier one.
	candidates := []locationCandidate{
		{key: "1", loc: "/movies"},
		{key: "2", loc: "/data/movies"},
	}

	// "/movies" is a substring of the path but not a boundary prefix;
	// "/data/movies" is a boundary prefix and must win despite coming second.
	key, ok := matchLocation(candidates, "/data/movies/Foo (2020)")
	require.True(t, ok)
	assert.Equal(t, "2", key)
}

func TestMatchLocation_SubstringFallback(t *testing.T) {
	candidates := []locationCandidate{
		{key: "1", loc: "movies"},
	}

	key, ok := matchLocation(candidates, "/data/movies/Foo (2020)")
	require.True(t, ok)
	assert.Equal(t, "1", key)
}

func TestMatchLocation_ExactPathEqualsLocation(t *testing.T) {
	candidates := []locationCandidate{
		{key: "7", loc: "/data/tv"},
	}

	key, ok := matchLocation(candidates, "/data/tv")
	require.True(t, ok)
	assert.Equal(t, "7", key)
}

func TestMatchLocation_DeclaredOrderWithinTier(t *testing.T) {
	// Two sections both boundary-cover the path; the first declared wins.
	candidates := []locationCandidate{
		{key: "1", loc: "/data"},
		{key: "2", loc: "/data/movies"},
	}

	key, ok := matchLocation(candidates, "/data/movies/Foo (2020)")
	require.True(t, ok)
	assert.Equal(t, "1", key)
}

func TestMatchLocation_UnicodeNormalization(t *testing.T) {
	// Location in decomposed form (e + combining acute), path precomposed.
	// NFC folding on both sides makes them compare equal.
	sections := []Section{
		{Key: "1", Type: "movie", Locations: []Location{{Path: "/data/pelé"}}},
	}
	candidates := sectionLocations(sections, KindMovie)

	key, ok := matchLocation(candidates, "/data/pelé/Match (2019)")
	require.True(t, ok)
	assert.Equal(t, "1", key)
}

func TestSectionLocations_FiltersKindAndTrimsSlash(t *testing.T) {
	sections := []Section{
		{Key: "1", Type: "movie", Locations: []Location{{Path: "/data/movies/"}}},
		{Key: "2", Type: "show", Locations: []Location{{Path: "/data/tv"}}},
	}

	candidates := sectionLocations(sections, KindMovie)
	require.Len(t, candidates, 1)
	assert.Equal(t, "1", candidates[0].key)
	assert.Equal(t, "/data/movies", candidates[0].loc)
}

func TestMatchLocation_NoMatch(t *testing.T) {
	candidates := []locationCandidate{
		{key: "1", loc: "/data/movies"},
	}

	_, ok := matchLocation(candidates, "/srv/other")
	assert.False(t, ok)
}
