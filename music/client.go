// Package music proxies a streaming-service recommendation API, mapping
// moods from the mood log to genre seeds. It holds no state beyond a
// cached access token; the upstream service is the source of truth.
package music

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	momentum "github.com/momentumhq/momentum"
	"github.com/momentumhq/momentum/mood"
)

// Track is one suggested track from the upstream service.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	URL        string `json:"url"`
	DurationMS int64  `json:"duration_ms"`
}

// Config holds upstream connection settings.
type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client talks to the streaming service with a client-credentials token.
// Safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewClient creates a music client. A zero Timeout defaults to 10s.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// genreSeeds maps the mood vocabulary to upstream genre seeds.
var genreSeeds = map[mood.Mood]string{
	mood.MoodHappy:     "pop",
	mood.MoodCalm:      "ambient",
	mood.MoodFocused:   "lo-fi",
	mood.MoodEnergized: "dance",
	mood.MoodTired:     "chill",
	mood.MoodStressed:  "classical",
	mood.MoodSad:       "acoustic",
}

// SuggestionsForMood returns up to limit tracks matching the mood.
func (c *Client) SuggestionsForMood(ctx context.Context, m mood.Mood, limit int) ([]Track, error) {
	if !m.Valid() {
		return nil, momentum.ErrUnknownMood
	}
	if limit <= 0 {
		limit = 10
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("seed_genres", genreSeeds[m])
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+"/v1/recommendations?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("music: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("music: recommendations: %w: %w", momentum.ErrMusicUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("music: recommendations: %w: upstream status %d", momentum.ErrMusicUnavailable, resp.StatusCode)
	}

	var body struct {
		Tracks []Track `json:"tracks"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("music: decode recommendations: %w", err)
	}
	return body.Tracks, nil
}

// accessToken returns a cached token, refreshing it via the
// client-credentials grant when it is near expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiry.Add(-30*time.Second)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("music: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("music: token: %w: %w", momentum.ErrMusicUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("music: token: %w: upstream status %d", momentum.ErrMusicUnavailable, resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("music: decode token: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("music: token: %w: empty access token", momentum.ErrMusicUnavailable)
	}

	c.token = body.AccessToken
	c.expiry = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)
	return c.token, nil
}
