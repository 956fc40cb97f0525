package infrastructure

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ppalone/ytsearch"
	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// YouTubeCatalog implements the VideoCatalog port with YouTube keyword search.
type YouTubeCatalog struct {
	client *ytsearch.Client
}

// NewYouTubeCatalog creates a new YouTubeCatalog.
func NewYouTubeCatalog() *YouTubeCatalog {
	return &YouTubeCatalog{
		client: ytsearch.NewClient(nil),
	}
}

// Search returns up to limit tracks matching the query, in YouTube's
// relevance order.
func (c *YouTubeCatalog) Search(
	ctx context.Context,
	query string,
	limit int,
) ([]domain.Track, error) {
	res, err := c.client.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("youtube search failed: %w", err)
	}

	tracks := make([]domain.Track, 0, limit)
	for _, item := range res.Results {
		if item.VideoID == "" {
			continue
		}
		tracks = append(tracks, videoTrack(
			item.Title, item.VideoID, item.Duration, watchURLPrefix+item.VideoID,
		))
		if limit > 0 && len(tracks) >= limit {
			break
		}
	}
	return tracks, nil
}

// InfoByURL returns track metadata for a watch URL. YouTube's search endpoint
// doubles as the ID lookup: searching for a video ID surfaces that video, and
// the result whose ID matches is the one we want. The returned track keeps
// the original URL verbatim as its playback URI.
func (c *YouTubeCatalog) InfoByURL(ctx context.Context, rawURL string) (*domain.Track, error) {
	id := ExtractVideoID(rawURL)
	if id == "" {
		return nil, fmt.Errorf("no video ID in URL %q", rawURL)
	}

	res, err := c.client.Search(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("youtube lookup failed: %w", err)
	}

	for _, item := range res.Results {
		if item.VideoID == id {
			track := videoTrack(item.Title, item.VideoID, item.Duration, rawURL)
			return &track, nil
		}
	}
	return nil, fmt.Errorf("video %s not found", id)
}

// ExtractVideoID pulls the video ID out of a watch or short-form URL.
// Returns an empty string if none is present.
func ExtractVideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	if strings.Contains(u.Host, "youtu.be") {
		return strings.TrimPrefix(u.Path, "/")
	}
	return u.Query().Get("v")
}

func videoTrack(title, videoID, duration, playbackURI string) domain.Track {
	if duration == "" {
		duration = domain.UnknownDuration
	}

	return domain.Track{
		Title:        title,
		PlaybackURI:  playbackURI,
		Duration:     duration,
		Source:       domain.SourceYouTube,
		Artist:       domain.ArtistFromTitle(title),
		CatalogID:    videoID,
		ThumbnailURL: "https://i.ytimg.com/vi/" + videoID + "/hqdefault.jpg",
	}
}

// Ensure YouTubeCatalog implements VideoCatalog.
var _ ports.VideoCatalog = (*YouTubeCatalog)(nil)
