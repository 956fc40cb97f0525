package usecases

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

// DefaultSearchLimit is the per-catalog result limit for plain searches.
const DefaultSearchLimit = 5

// DefaultFanOutLimit is the per-catalog result limit for multi-catalog searches.
const DefaultFanOutLimit = 3

// SearchAllOutput contains the result of a multi-catalog search.
type SearchAllOutput struct {
	VideoResults []domain.Track
	MusicResults []domain.Track
	Total        int
}

// SearchService queries the external catalogs. Transport and catalog errors
// are absorbed at this boundary and surface as empty results plus a logged
// diagnostic; callers cannot distinguish "no results" from a failed lookup.
type SearchService struct {
	video ports.VideoCatalog
	music ports.MusicCatalog
}

// NewSearchService creates a new SearchService.
func NewSearchService(video ports.VideoCatalog, music ports.MusicCatalog) *SearchService {
	return &SearchService{
		video: video,
		music: music,
	}
}

// SearchVideo searches the video catalog, returning results in catalog
// relevance order. Never returns an error; failures yield an empty slice.
func (s *SearchService) SearchVideo(ctx context.Context, query string, limit int) []domain.Track {
	if limit < 1 {
		limit = DefaultSearchLimit
	}

	tracks, err := s.video.Search(ctx, query, limit)
	if err != nil {
		slog.Warn("video catalog search failed", "query", query, "error", err)
		return []domain.Track{}
	}
	return tracks
}

// SearchMusic searches the music-metadata catalog, returning results in
// catalog relevance order. Never returns an error; failures yield an empty
// slice.
func (s *SearchService) SearchMusic(ctx context.Context, query string, limit int) []domain.Track {
	if limit < 1 {
		limit = DefaultSearchLimit
	}

	tracks, err := s.music.Search(ctx, query, limit)
	if err != nil {
		slog.Warn("music catalog search failed", "query", query, "error", err)
		return []domain.Track{}
	}
	return tracks
}

// SearchVideoSingle returns the sole candidate of a limit-1 video search, or
// nil if the catalog returned nothing or the lookup failed.
func (s *SearchService) SearchVideoSingle(ctx context.Context, query string) *domain.Track {
	tracks := s.SearchVideo(ctx, query, 1)
	if len(tracks) == 0 {
		return nil
	}
	return &tracks[0]
}

// SearchMusicSingle returns the sole candidate of a limit-1 music-catalog
// search, or nil if the catalog returned nothing or the lookup failed.
func (s *SearchService) SearchMusicSingle(ctx context.Context, query string) *domain.Track {
	tracks := s.SearchMusic(ctx, query, 1)
	if len(tracks) == 0 {
		return nil
	}
	return &tracks[0]
}

// SearchAll queries both catalogs concurrently with an equal per-catalog
// limit. A failure in one catalog does not suppress the other's results.
func (s *SearchService) SearchAll(ctx context.Context, query string, limit int) SearchAllOutput {
	if limit < 1 {
		limit = DefaultFanOutLimit
	}

	var (
		wg           sync.WaitGroup
		videoResults []domain.Track
		musicResults []domain.Track
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		videoResults = s.SearchVideo(ctx, query, limit)
	}()
	go func() {
		defer wg.Done()
		musicResults = s.SearchMusic(ctx, query, limit)
	}()
	wg.Wait()

	return SearchAllOutput{
		VideoResults: videoResults,
		MusicResults: musicResults,
		Total:        len(videoResults) + len(musicResults),
	}
}
