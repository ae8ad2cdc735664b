package music

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	momentum "github.com/momentumhq/momentum"
	"github.com/momentumhq/momentum/mood"
)

func newUpstream(t *testing.T, tokenCalls *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		if r.FormValue("grant_type") != "client_credentials" {
			http.Error(w, "bad grant", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v1/recommendations", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("seed_genres") == "" {
			http.Error(w, "missing seeds", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"tracks": []map[string]any{
				{"id": "t1", "title": "First", "artist": "A", "duration_ms": 180000},
				{"id": "t2", "title": "Second", "artist": "B", "duration_ms": 210000},
			},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSuggestionsForMood(t *testing.T) {
	var tokenCalls atomic.Int64
	srv := newUpstream(t, &tokenCalls)

	c := NewClient(Config{
		BaseURL:      srv.URL,
		TokenURL:     srv.URL + "/token",
		ClientID:     "id",
		ClientSecret: "secret",
	})

	tracks, err := c.SuggestionsForMood(context.Background(), mood.MoodFocused, 2)
	if err != nil {
		t.Fatalf("SuggestionsForMood: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(tracks))
	}
	if tracks[0].ID != "t1" {
		t.Errorf("first track = %s, want t1", tracks[0].ID)
	}

	// a second call must reuse the cached token
	if _, err := c.SuggestionsForMood(context.Background(), mood.MoodHappy, 2); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if got := tokenCalls.Load(); got != 1 {
		t.Errorf("token requests = %d, want 1 (cached)", got)
	}
}

func TestSuggestionsUnknownMood(t *testing.T) {
	c := NewClient(Config{})
	_, err := c.SuggestionsForMood(context.Background(), mood.Mood("ecstatic"), 5)
	if !errors.Is(err, momentum.ErrUnknownMood) {
		t.Errorf("expected ErrUnknownMood, got %v", err)
	}
}

func TestSuggestionsUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{BaseURL: srv.URL, TokenURL: srv.URL + "/token"})
	_, err := c.SuggestionsForMood(context.Background(), mood.MoodCalm, 5)
	if !errors.Is(err, momentum.ErrMusicUnavailable) {
		t.Errorf("expected ErrMusicUnavailable, got %v", err)
	}
}
