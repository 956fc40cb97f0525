package ports

import (
	"context"

	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

// VideoCatalog is the video platform boundary: keyword search plus metadata
// lookup for platform URLs. Results come back in catalog relevance order.
type VideoCatalog interface {
	// Search returns up to limit tracks matching the query.
	Search(ctx context.Context, query string, limit int) ([]domain.Track, error)

	// InfoByURL returns track metadata for a platform watch URL. The returned
	// track's PlaybackURI is the original URL verbatim.
	InfoByURL(ctx context.Context, url string) (*domain.Track, error)
}

// MusicCatalog is the music-metadata platform boundary. Its results describe
// tracks but do not reference playable streams; resolution re-searches the
// video catalog for those.
type MusicCatalog interface {
	// Search returns up to limit tracks matching the query.
	Search(ctx context.Context, query string, limit int) ([]domain.Track, error)

	// TrackByID returns metadata for the track with the given catalog ID.
	TrackByID(ctx context.Context, id string) (*domain.Track, error)
}
