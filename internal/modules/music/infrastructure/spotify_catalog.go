package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

const (
	spotifyAPIBaseURL = "https://api.spotify.com/v1"
	spotifyTokenURL   = "https://accounts.spotify.com/api/token"

	// retryAuthInterval is used when a token grant fails and no previous
	// token lifetime is known.
	retryAuthInterval = time.Minute
)

// SpotifyCatalog implements the MusicCatalog port against the Spotify Web
// API using the client-credentials grant. The access token is refreshed
// proactively on a background timer at 90% of its stated lifetime,
// independent of catalog traffic; a failed grant is logged and retried on
// the same schedule.
type SpotifyCatalog struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string

	baseURL  string
	tokenURL string

	mu          sync.RWMutex
	accessToken string

	done     chan struct{}
	stopOnce sync.Once
}

// NewSpotifyCatalog creates a new SpotifyCatalog.
func NewSpotifyCatalog(clientID, clientSecret string) *SpotifyCatalog {
	return &SpotifyCatalog{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      spotifyAPIBaseURL,
		tokenURL:     spotifyTokenURL,
		done:         make(chan struct{}),
	}
}

// Start acquires the initial access token and launches the refresh loop.
// The initial grant failing is not fatal; the loop keeps retrying.
func (c *SpotifyCatalog) Start(ctx context.Context) {
	interval, err := c.authenticate(ctx)
	if err != nil {
		slog.Error("spotify authentication failed", "error", err)
		interval = retryAuthInterval
	}

	go c.refreshLoop(ctx, interval)
}

// Close stops the token refresh loop.
func (c *SpotifyCatalog) Close() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}

func (c *SpotifyCatalog) refreshLoop(ctx context.Context, interval time.Duration) {
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-timer.C:
			next, err := c.authenticate(ctx)
			if err != nil {
				slog.Error("spotify token refresh failed", "error", err)
				next = interval
			}
			interval = next
			timer.Reset(interval)
		}
	}
}

// authenticate performs a client-credentials grant and returns the interval
// until the next refresh: 90% of the token's stated lifetime.
func (c *SpotifyCatalog) authenticate(ctx context.Context) (time.Duration, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("token request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("token grant failed: status %d, body: %s", resp.StatusCode, body)
	}

	var grant struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &grant); err != nil {
		return 0, fmt.Errorf("failed to parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = grant.AccessToken
	c.mu.Unlock()

	slog.Debug("spotify token acquired", "expires_in", grant.ExpiresIn)

	return time.Duration(grant.ExpiresIn) * time.Second * 9 / 10, nil
}

// Search returns up to limit tracks matching the query, in Spotify's
// relevance order.
func (c *SpotifyCatalog) Search(
	ctx context.Context,
	query string,
	limit int,
) ([]domain.Track, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var result struct {
		Tracks struct {
			Items []spotifyTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := c.get(ctx, "/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(result.Tracks.Items))
	for _, item := range result.Tracks.Items {
		tracks = append(tracks, item.toDomain())
	}
	return tracks, nil
}

// TrackByID returns metadata for the track with the given Spotify ID.
func (c *SpotifyCatalog) TrackByID(ctx context.Context, id string) (*domain.Track, error) {
	var item spotifyTrack
	if err := c.get(ctx, "/tracks/"+url.PathEscape(id), &item); err != nil {
		return nil, err
	}

	track := item.toDomain()
	return &track, nil
}

func (c *SpotifyCatalog) get(ctx context.Context, path string, result any) error {
	c.mu.RLock()
	token := c.accessToken
	c.mu.RUnlock()

	if token == "" {
		return fmt.Errorf("not authenticated with spotify")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("spotify API error: status %d, body: %s", resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// spotifyTrack mirrors the track object of the Spotify Web API.
type spotifyTrack struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DurationMS   int    `json:"duration_ms"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
}

func (t spotifyTrack) toDomain() domain.Track {
	artist := domain.UnknownArtist
	if len(t.Artists) > 0 {
		artist = t.Artists[0].Name
	}

	thumbnail := ""
	if len(t.Album.Images) > 0 {
		thumbnail = t.Album.Images[0].URL
	}

	return domain.Track{
		Title:        t.Name,
		PlaybackURI:  t.ExternalURLs.Spotify,
		Duration:     domain.FormatDuration(t.DurationMS / 1000),
		Source:       domain.SourceSpotify,
		Artist:       artist,
		CatalogID:    t.ID,
		AlbumName:    t.Album.Name,
		ThumbnailURL: thumbnail,
	}
}

// Ensure SpotifyCatalog implements MusicCatalog.
var _ ports.MusicCatalog = (*SpotifyCatalog)(nil)
