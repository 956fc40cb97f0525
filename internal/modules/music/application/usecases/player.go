package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

// Play actions reported to the caller.
const (
	ActionNowPlaying   = "Now playing"
	ActionAddedToQueue = "Added to queue"
)

// PlayInput contains the input for the Play use case.
type PlayInput struct {
	GuildID        snowflake.ID
	VoiceChannelID snowflake.ID      // 0 when the caller is not in a voice channel
	Query          string
	Source         domain.TrackSource // optional explicit catalog; empty to infer
}

// PlayOutput contains the result of the Play use case.
type PlayOutput struct {
	Action string // ActionNowPlaying or ActionAddedToQueue
	Track  domain.Track
}

// SkipOutput contains the result of the Skip use case. NextTitle reflects the
// queue front at call time; the actual advance happens when the stop's
// track-end event arrives.
type SkipOutput struct {
	NextTitle  string
	QueueEmpty bool
}

// PreviousOutput contains the result of the Previous use case.
type PreviousOutput struct {
	Title string
}

// QueueOutput is a snapshot of a guild's playback state.
type QueueOutput struct {
	Current  *domain.Track
	Upcoming []domain.Track
}

// PlayerService is the playback controller: it owns all mutation of
// per-guild playback state and drives the voice transport. User commands and
// the transport's asynchronous track-end events funnel into the same
// per-guild lock, so each guild sees a single writer.
type PlayerService struct {
	repo     domain.GuildStateRepository
	voice    ports.VoiceSession
	resolver *Resolver
	search   *SearchService
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(
	repo domain.GuildStateRepository,
	voice ports.VoiceSession,
	resolver *Resolver,
	search *SearchService,
) *PlayerService {
	return &PlayerService{
		repo:     repo,
		voice:    voice,
		resolver: resolver,
		search:   search,
	}
}

// Play resolves the query to a track and enqueues it. If the queue was empty
// and nothing is playing, playback starts immediately and the output reports
// ActionNowPlaying; otherwise the track waits its turn and the output reports
// ActionAddedToQueue.
func (p *PlayerService) Play(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	if input.VoiceChannelID == 0 {
		return nil, ErrNotInVoiceChannel
	}

	// Remember which state, if any, existed before the resolve so a stop that
	// races with the catalog round-trip doesn't get its teardown undone.
	before := p.repo.Get(input.GuildID)

	var track *domain.Track
	if input.Source != "" {
		track = p.resolver.ResolveFromSource(ctx, input.Query, input.Source)
	} else {
		track = p.resolver.Resolve(ctx, input.Query)
	}
	if track == nil {
		return nil, ErrTrackNotFound
	}

	if before != nil && p.repo.Get(input.GuildID) != before {
		slog.Info("guild torn down during resolve, dropping result",
			"guild", input.GuildID, "track", track.Title)
		return nil, ErrTrackNotFound
	}

	state := p.lockState(input.GuildID)
	defer state.Unlock()

	state.Queue.Push(*track)

	if !state.IsConnected() {
		if err := p.connect(ctx, state, input.VoiceChannelID); err != nil {
			return nil, err
		}
	}

	action := ActionAddedToQueue
	if state.Queue.Len() == 1 && state.Current() == nil {
		p.advance(ctx, state)
		action = ActionNowPlaying
	}

	return &PlayOutput{
		Action: action,
		Track:  *track,
	}, nil
}

// Pause pauses the current playback.
func (p *PlayerService) Pause(ctx context.Context, guildID snowflake.ID) error {
	state, err := p.lockExisting(guildID)
	if err != nil {
		return err
	}
	defer state.Unlock()

	return p.voice.Pause(ctx, guildID)
}

// Resume resumes the paused playback.
func (p *PlayerService) Resume(ctx context.Context, guildID snowflake.ID) error {
	state, err := p.lockExisting(guildID)
	if err != nil {
		return err
	}
	defer state.Unlock()

	return p.voice.Resume(ctx, guildID)
}

// Skip stops the current track. The stop surfaces as a track-end event,
// which advances the queue. The returned title is the queue front at call
// time, i.e. what will become current once the advance lands.
func (p *PlayerService) Skip(ctx context.Context, guildID snowflake.ID) (*SkipOutput, error) {
	state, err := p.lockExisting(guildID)
	if err != nil {
		return nil, err
	}
	defer state.Unlock()

	next := state.Queue.Front()

	if err := p.voice.Stop(ctx, guildID); err != nil {
		return nil, err
	}

	if next == nil {
		return &SkipOutput{QueueEmpty: true}, nil
	}
	return &SkipOutput{NextTitle: next.Title}, nil
}

// Previous steps back to the most recently played track. It removes the
// current track and its predecessor from history, pushes the interrupted
// current track back onto the queue front, pushes the predecessor ahead of
// it, and stops the player so the advance picks the predecessor up.
//
// History is consumed destructively: repeated calls without new playback in
// between drain it two entries at a time.
func (p *PlayerService) Previous(
	ctx context.Context,
	guildID snowflake.ID,
) (*PreviousOutput, error) {
	state := p.repo.Get(guildID)
	if state == nil {
		return nil, ErrNoPreviousTrack
	}

	state.Lock()
	defer state.Unlock()

	if state.IsClosed() || state.History.Len() < 2 {
		return nil, ErrNoPreviousTrack
	}

	state.History.PopLast() // the track currently playing
	previous := state.History.PopLast()

	if current := state.Current(); current != nil {
		state.Queue.PushFront(*current)
	}
	state.Queue.PushFront(*previous)

	if err := p.voice.Stop(ctx, guildID); err != nil {
		return nil, err
	}

	return &PreviousOutput{Title: previous.Title}, nil
}

// Stop clears the queue, stops the player, and tears down all playback state
// for the guild.
func (p *PlayerService) Stop(ctx context.Context, guildID snowflake.ID) error {
	state, err := p.lockExisting(guildID)
	if err != nil {
		return err
	}
	defer state.Unlock()

	state.Queue.Clear()

	if err := p.voice.Stop(ctx, guildID); err != nil {
		slog.Warn("failed to stop player during teardown", "guild", guildID, "error", err)
	}

	p.teardown(ctx, state, true)
	return nil
}

// GetQueue returns a snapshot of the guild's current track and pending queue.
func (p *PlayerService) GetQueue(guildID snowflake.ID) QueueOutput {
	state := p.repo.Get(guildID)
	if state == nil {
		return QueueOutput{Upcoming: []domain.Track{}}
	}

	state.Lock()
	defer state.Unlock()

	return QueueOutput{
		Current:  state.Current(),
		Upcoming: state.Queue.List(),
	}
}

// HandleTrackEnded reacts to the transport's player-idle notification by
// advancing the queue. Replaced and cleanup ends are ignored: a replace means
// new playback already started, and cleanup means the player is being
// destroyed.
func (p *PlayerService) HandleTrackEnded(ctx context.Context, event ports.TrackEndedEvent) {
	switch event.Reason {
	case ports.TrackEndReplaced, ports.TrackEndCleanup:
		return
	}

	state := p.repo.Get(event.GuildID)
	if state == nil {
		return
	}

	state.Lock()
	defer state.Unlock()

	if state.IsClosed() {
		return
	}

	p.advance(ctx, state)
}

// HandleVoiceDisconnected tears down all playback state for a guild whose
// voice connection was lost.
func (p *PlayerService) HandleVoiceDisconnected(
	ctx context.Context,
	event ports.VoiceDisconnectedEvent,
) {
	state := p.repo.Get(event.GuildID)
	if state == nil {
		return
	}

	state.Lock()
	defer state.Unlock()

	if state.IsClosed() {
		return
	}

	slog.Info("voice disconnected, discarding playback state", "guild", event.GuildID)
	p.teardown(ctx, state, false)
}

// advance pops the queue front into current, records it in history, and
// starts playback. A track whose stream cannot be opened is logged and
// skipped; each failure drains one queue entry, so the loop is bounded by the
// queue length and can legitimately exhaust it. Must be called with the state
// lock held.
func (p *PlayerService) advance(ctx context.Context, state *domain.GuildState) {
	for {
		next := state.Queue.PopFront()
		if next == nil {
			state.ClearCurrent()
			return
		}

		state.SetCurrent(*next)
		state.History.Append(*next)

		err := p.voice.Play(ctx, state.GuildID(), next.PlaybackURI)
		if err == nil {
			return
		}

		slog.Warn("failed to open audio stream, skipping track",
			"guild", state.GuildID(),
			"track", next.Title,
			"error", fmt.Errorf("%w: %w", ErrStreamOpenFailed, err),
		)
	}
}

// connect establishes the guild's voice session. Must be called with the
// state lock held.
func (p *PlayerService) connect(
	ctx context.Context,
	state *domain.GuildState,
	channelID snowflake.ID,
) error {
	if err := p.voice.Join(ctx, state.GuildID(), channelID); err != nil {
		return fmt.Errorf("failed to establish voice session: %w", err)
	}
	state.SetConnected(true)
	return nil
}

// teardown discards the guild's playback state. When leave is true the voice
// session is disconnected as well; event-driven teardown skips that since the
// connection is already gone. Must be called with the state lock held.
func (p *PlayerService) teardown(ctx context.Context, state *domain.GuildState, leave bool) {
	guildID := state.GuildID()

	state.Close()
	p.repo.Delete(guildID)

	if leave {
		if err := p.voice.Leave(ctx, guildID); err != nil {
			slog.Warn("failed to leave voice channel", "guild", guildID, "error", err)
		}
	}
}

// lockState returns the guild's state, creating it if absent, with its lock
// held. A state torn down between lookup and lock is retried so callers never
// mutate a closed aggregate.
func (p *PlayerService) lockState(guildID snowflake.ID) *domain.GuildState {
	for {
		state := p.repo.GetOrCreate(guildID)
		state.Lock()
		if !state.IsClosed() {
			return state
		}
		state.Unlock()
	}
}

// lockExisting returns the guild's state with its lock held, or
// ErrNoActivePlayback if no live state exists.
func (p *PlayerService) lockExisting(guildID snowflake.ID) (*domain.GuildState, error) {
	state := p.repo.Get(guildID)
	if state == nil {
		return nil, ErrNoActivePlayback
	}

	state.Lock()
	if state.IsClosed() {
		state.Unlock()
		return nil, ErrNoActivePlayback
	}
	return state, nil
}
