package usecases

import (
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

func mockTrack(title string) domain.Track {
	return domain.Track{
		Title:       title,
		PlaybackURI: "https://example.com/" + title,
		Duration:    "3:00",
		Source:      domain.SourceYouTube,
		Artist:      "Artist",
	}
}

type mockRepository struct {
	states  map[snowflake.ID]*domain.GuildState
	deleted []snowflake.ID
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		states: make(map[snowflake.ID]*domain.GuildState),
	}
}

func (m *mockRepository) Get(guildID snowflake.ID) *domain.GuildState {
	return m.states[guildID]
}

func (m *mockRepository) GetOrCreate(guildID snowflake.ID) *domain.GuildState {
	state, ok := m.states[guildID]
	if !ok {
		state = domain.NewGuildState(guildID)
		m.states[guildID] = state
	}
	return state
}

func (m *mockRepository) Delete(guildID snowflake.ID) {
	m.deleted = append(m.deleted, guildID)
	delete(m.states, guildID)
}

// createConnectedState creates a connected GuildState and saves it.
func (m *mockRepository) createConnectedState(guildID snowflake.ID) *domain.GuildState {
	state := domain.NewGuildState(guildID)
	state.SetConnected(true)
	m.states[guildID] = state
	return state
}

type mockVoiceSession struct {
	joinErr   error
	leaveErr  error
	stopErr   error
	pauseErr  error
	resumeErr error

	// failURIs lists playback URIs whose streams fail to open.
	failURIs map[string]error

	joined  []snowflake.ID
	left    []snowflake.ID
	played  []string
	stopped int
	paused  int
	resumed int
}

func newMockVoiceSession() *mockVoiceSession {
	return &mockVoiceSession{failURIs: make(map[string]error)}
}

func (m *mockVoiceSession) Join(_ context.Context, guildID, _ snowflake.ID) error {
	if m.joinErr != nil {
		return m.joinErr
	}
	m.joined = append(m.joined, guildID)
	return nil
}

func (m *mockVoiceSession) Leave(_ context.Context, guildID snowflake.ID) error {
	if m.leaveErr != nil {
		return m.leaveErr
	}
	m.left = append(m.left, guildID)
	return nil
}

func (m *mockVoiceSession) Play(_ context.Context, _ snowflake.ID, uri string) error {
	if err, ok := m.failURIs[uri]; ok {
		return err
	}
	m.played = append(m.played, uri)
	return nil
}

func (m *mockVoiceSession) Stop(_ context.Context, _ snowflake.ID) error {
	if m.stopErr != nil {
		return m.stopErr
	}
	m.stopped++
	return nil
}

func (m *mockVoiceSession) Pause(_ context.Context, _ snowflake.ID) error {
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.paused++
	return nil
}

func (m *mockVoiceSession) Resume(_ context.Context, _ snowflake.ID) error {
	if m.resumeErr != nil {
		return m.resumeErr
	}
	m.resumed++
	return nil
}

type mockVideoCatalog struct {
	searchResults map[string][]domain.Track
	searchErr     error
	infoResults   map[string]*domain.Track
	infoErr       error
}

func newMockVideoCatalog() *mockVideoCatalog {
	return &mockVideoCatalog{
		searchResults: make(map[string][]domain.Track),
		infoResults:   make(map[string]*domain.Track),
	}
}

func (m *mockVideoCatalog) Search(
	_ context.Context,
	query string,
	limit int,
) ([]domain.Track, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	results := m.searchResults[query]
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *mockVideoCatalog) InfoByURL(_ context.Context, url string) (*domain.Track, error) {
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	track, ok := m.infoResults[url]
	if !ok {
		return nil, errors.New("video not found")
	}
	return track, nil
}

type mockMusicCatalog struct {
	searchResults map[string][]domain.Track
	searchErr     error
	tracks        map[string]*domain.Track
	trackErr      error
}

func newMockMusicCatalog() *mockMusicCatalog {
	return &mockMusicCatalog{
		searchResults: make(map[string][]domain.Track),
		tracks:        make(map[string]*domain.Track),
	}
}

func (m *mockMusicCatalog) Search(
	_ context.Context,
	query string,
	limit int,
) ([]domain.Track, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	results := m.searchResults[query]
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *mockMusicCatalog) TrackByID(_ context.Context, id string) (*domain.Track, error) {
	if m.trackErr != nil {
		return nil, m.trackErr
	}
	track, ok := m.tracks[id]
	if !ok {
		return nil, errors.New("track not found")
	}
	return track, nil
}

// newTestPlayerService wires a PlayerService over the given mocks.
func newTestPlayerService(
	repo *mockRepository,
	voice *mockVoiceSession,
	video *mockVideoCatalog,
	music *mockMusicCatalog,
) *PlayerService {
	search := NewSearchService(video, music)
	resolver := NewResolver(video, music, search)
	return NewPlayerService(repo, voice, resolver, search)
}
