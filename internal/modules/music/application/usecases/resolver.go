package usecases

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

var spotifyTrackIDPattern = regexp.MustCompile(`track/([a-zA-Z0-9]+)`)

// IsVideoURL reports whether the query is a video platform URL.
func IsVideoURL(query string) bool {
	return strings.Contains(query, "youtube.com") || strings.Contains(query, "youtu.be")
}

// IsMusicURL reports whether the query is a music platform URL.
func IsMusicURL(query string) bool {
	return strings.Contains(query, "spotify.com")
}

// ExtractMusicTrackID extracts the track ID from a music platform URL.
// Returns an empty string if no ID is present.
func ExtractMusicTrackID(url string) string {
	match := spotifyTrackIDPattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}

// Resolver normalizes a free-text or URL query into a single playable track.
// Resolution never fails with an error: every failure mode, including
// malformed URLs and catalog errors, yields nil, which callers report as
// "track not found".
type Resolver struct {
	video  ports.VideoCatalog
	music  ports.MusicCatalog
	search *SearchService
}

// NewResolver creates a new Resolver.
func NewResolver(
	video ports.VideoCatalog,
	music ports.MusicCatalog,
	search *SearchService,
) *Resolver {
	return &Resolver{
		video:  video,
		music:  music,
		search: search,
	}
}

// Resolve picks a track for the query. Decision order, first match wins:
//
//  1. Music platform URL: fetch metadata by the extracted track ID, then
//     re-search the video catalog for "<artist> <title>". The playable stream
//     always comes from the video catalog.
//  2. Video platform URL: fetch metadata directly; the result keeps the
//     original URL as its playback URI.
//  3. Anything else: single-result free-text search against the video catalog.
func (r *Resolver) Resolve(ctx context.Context, query string) *domain.Track {
	switch {
	case IsMusicURL(query):
		return r.resolveMusicURL(ctx, query)
	case IsVideoURL(query):
		return r.resolveVideoURL(ctx, query)
	default:
		return r.search.SearchVideoSingle(ctx, query)
	}
}

// ResolveFromSource resolves the query against an explicitly chosen catalog
// instead of inferring one from the query shape. Music-catalog picks are
// re-searched against the video catalog for a playable stream, same as
// music URLs.
func (r *Resolver) ResolveFromSource(
	ctx context.Context,
	query string,
	source domain.TrackSource,
) *domain.Track {
	if source == domain.SourceSpotify {
		meta := r.search.SearchMusicSingle(ctx, query)
		if meta == nil {
			return nil
		}
		return r.search.SearchVideoSingle(ctx, meta.Artist+" "+meta.Title)
	}
	return r.search.SearchVideoSingle(ctx, query)
}

func (r *Resolver) resolveMusicURL(ctx context.Context, url string) *domain.Track {
	id := ExtractMusicTrackID(url)
	if id == "" {
		slog.Warn("music URL has no extractable track ID", "url", url)
		return nil
	}

	meta, err := r.music.TrackByID(ctx, id)
	if err != nil {
		slog.Warn("music catalog lookup failed", "id", id, "error", err)
		return nil
	}

	return r.search.SearchVideoSingle(ctx, meta.Artist+" "+meta.Title)
}

func (r *Resolver) resolveVideoURL(ctx context.Context, url string) *domain.Track {
	track, err := r.video.InfoByURL(ctx, url)
	if err != nil {
		slog.Warn("video metadata lookup failed", "url", url, "error", err)
		return nil
	}
	return track
}
