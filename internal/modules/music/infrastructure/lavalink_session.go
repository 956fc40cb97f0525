package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/disgolink/v3/disgolink"
	"github.com/disgoorg/disgolink/v3/lavalink"
	"github.com/disgoorg/snowflake/v2"
	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
)

// voiceConnectionTimeout is the maximum time to wait for voice connection to be established.
const voiceConnectionTimeout = 10 * time.Second

// pendingVoiceConnection tracks the state of a pending voice connection.
type pendingVoiceConnection struct {
	mu             sync.Mutex
	hasVoiceState  bool
	hasVoiceServer bool
	ready          chan struct{}
}

// onEvent marks an event as received and signals ready if both events are present.
func (p *pendingVoiceConnection) onEvent(isVoiceState bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if isVoiceState {
		p.hasVoiceState = true
	} else {
		p.hasVoiceServer = true
	}

	if p.hasVoiceState && p.hasVoiceServer {
		select {
		case <-p.ready:
			// Already closed
		default:
			close(p.ready)
		}
	}
}

// voiceEventBuffer buffers voice events to ensure both VoiceStateUpdate and
// VoiceServerUpdate are received before forwarding to Lavalink.
// This prevents "Partial Lavalink voice state" errors when events arrive out of order.
type voiceEventBuffer struct {
	mu sync.Mutex

	// From VoiceStateUpdate
	hasVoiceState bool
	channelID     *snowflake.ID
	sessionID     string

	// From VoiceServerUpdate
	hasVoiceServer bool
	token          string
	endpoint       string
}

// setVoiceState stores voice state data and returns true if both events are now ready.
func (b *voiceEventBuffer) setVoiceState(channelID *snowflake.ID, sessionID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hasVoiceState = true
	b.channelID = channelID
	b.sessionID = sessionID

	return b.hasVoiceState && b.hasVoiceServer
}

// setVoiceServer stores voice server data and returns true if both events are now ready.
func (b *voiceEventBuffer) setVoiceServer(token, endpoint string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hasVoiceServer = true
	b.token = token
	b.endpoint = endpoint

	return b.hasVoiceState && b.hasVoiceServer
}

// getData returns the buffered data and resets the buffer.
func (b *voiceEventBuffer) getData() (channelID *snowflake.ID, sessionID, token, endpoint string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	channelID = b.channelID
	sessionID = b.sessionID
	token = b.token
	endpoint = b.endpoint

	// Reset buffer
	b.hasVoiceState = false
	b.hasVoiceServer = false
	b.channelID = nil
	b.sessionID = ""
	b.token = ""
	b.endpoint = ""

	return
}

// LavalinkSession implements the VoiceSession port on top of DisGoLink. The
// guild's "connection" and "player" pair lives inside the Lavalink client
// and is created and destroyed together, which is what the controller's
// connection-iff-player invariant leans on.
type LavalinkSession struct {
	link    disgolink.Client
	session *discordgo.Session
	botID   snowflake.ID

	pendingMu sync.Mutex
	pending   map[snowflake.ID]*pendingVoiceConnection

	// voiceBuffers holds buffered voice events per guild to handle out-of-order events
	voiceBufferMu sync.Mutex
	voiceBuffers  map[snowflake.ID]*voiceEventBuffer

	publisher ports.EventPublisher
}

// LavalinkConfig contains Lavalink connection configuration.
type LavalinkConfig struct {
	Address  string
	Password string
}

// NewLavalinkSession creates a new LavalinkSession.
func NewLavalinkSession(
	session *discordgo.Session,
	publisher ports.EventPublisher,
	config LavalinkConfig,
) (*LavalinkSession, error) {
	botID, err := snowflake.Parse(session.State.User.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bot ID: %w", err)
	}

	s := &LavalinkSession{
		session:      session,
		botID:        botID,
		pending:      make(map[snowflake.ID]*pendingVoiceConnection),
		voiceBuffers: make(map[snowflake.ID]*voiceEventBuffer),
		publisher:    publisher,
	}

	link := disgolink.New(botID,
		disgolink.WithListenerFunc(s.onTrackStart),
		disgolink.WithListenerFunc(s.onTrackEnd),
		disgolink.WithListenerFunc(s.onTrackException),
		disgolink.WithListenerFunc(s.onTrackStuck),
	)
	s.link = link

	node, err := link.AddNode(context.Background(), disgolink.NodeConfig{
		Name:     "main",
		Address:  config.Address,
		Password: config.Password,
		Secure:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add Lavalink node: %w", err)
	}

	slog.Info("connected to Lavalink", "node", node.Config().Name, "address", config.Address)

	return s, nil
}

// Link returns the underlying DisGoLink client.
func (s *LavalinkSession) Link() disgolink.Client {
	return s.link
}

// Join connects to a voice channel and prepares the guild's player.
// It waits for both VoiceStateUpdate and VoiceServerUpdate events before returning.
func (s *LavalinkSession) Join(ctx context.Context, guildID, channelID snowflake.ID) error {
	pending := &pendingVoiceConnection{
		ready: make(chan struct{}),
	}

	s.pendingMu.Lock()
	s.pending[guildID] = pending
	s.pendingMu.Unlock()

	defer func() {
		s.pendingMu.Lock()
		delete(s.pending, guildID)
		s.pendingMu.Unlock()
	}()

	err := s.session.ChannelVoiceJoinManual(guildID.String(), channelID.String(), false, false)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	select {
	case <-pending.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for voice connection: %w", ctx.Err())
	case <-time.After(voiceConnectionTimeout):
		return fmt.Errorf("timeout waiting for voice connection")
	}
}

// Leave destroys the guild's player and disconnects from the voice channel.
func (s *LavalinkSession) Leave(ctx context.Context, guildID snowflake.ID) error {
	player := s.link.ExistingPlayer(guildID)
	if player != nil {
		if err := player.Destroy(ctx); err != nil {
			slog.Warn("failed to destroy player", "guild", guildID, "error", err)
		}
	}

	err := s.session.ChannelVoiceJoinManual(guildID.String(), "", false, false)
	if err != nil {
		return fmt.Errorf("failed to leave voice channel: %w", err)
	}
	return nil
}

// Play loads the given URL through Lavalink and starts playback. An empty or
// errored load means the audio stream could not be opened.
func (s *LavalinkSession) Play(ctx context.Context, guildID snowflake.ID, uri string) error {
	node := s.link.BestNode()
	if node == nil {
		return fmt.Errorf("no available Lavalink node")
	}

	result, err := node.LoadTracks(ctx, uri)
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", uri, err)
	}

	var track *lavalink.Track
	switch data := result.Data.(type) {
	case lavalink.Track:
		track = &data
	case lavalink.Playlist:
		if len(data.Tracks) > 0 {
			track = &data.Tracks[0]
		}
	case lavalink.Search:
		if len(data) > 0 {
			track = &data[0]
		}
	case lavalink.Exception:
		return fmt.Errorf("failed to load %q: %s", uri, data.Message)
	}
	if track == nil {
		return fmt.Errorf("no playable stream for %q", uri)
	}

	player := s.link.Player(guildID)
	if err := player.Update(ctx, lavalink.WithEncodedTrack(track.Encoded)); err != nil {
		return fmt.Errorf("failed to play track: %w", err)
	}

	return nil
}

// Stop stops the current playback.
func (s *LavalinkSession) Stop(ctx context.Context, guildID snowflake.ID) error {
	player := s.link.Player(guildID)

	if err := player.Update(ctx, lavalink.WithNullTrack()); err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}

	return nil
}

// Pause pauses the current playback.
func (s *LavalinkSession) Pause(ctx context.Context, guildID snowflake.ID) error {
	player := s.link.Player(guildID)

	if err := player.Update(ctx, lavalink.WithPaused(true)); err != nil {
		return fmt.Errorf("failed to pause playback: %w", err)
	}

	return nil
}

// Resume resumes the current playback.
func (s *LavalinkSession) Resume(ctx context.Context, guildID snowflake.ID) error {
	player := s.link.Player(guildID)

	if err := player.Update(ctx, lavalink.WithPaused(false)); err != nil {
		return fmt.Errorf("failed to resume playback: %w", err)
	}

	return nil
}

// OnVoiceServerUpdate handles Discord voice server updates.
// This must be called from the Discord event handler.
func (s *LavalinkSession) OnVoiceServerUpdate(event *discordgo.VoiceServerUpdate) {
	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice server update", "error", err)
		return
	}

	buffer := s.getOrCreateVoiceBuffer(guildID)

	if buffer.setVoiceServer(event.Token, event.Endpoint) {
		s.forwardBufferedVoiceEvents(guildID, buffer)
	}

	s.pendingMu.Lock()
	pending := s.pending[guildID]
	s.pendingMu.Unlock()

	if pending != nil {
		pending.onEvent(false)
	}
}

// OnVoiceStateUpdate handles Discord voice state updates.
// This must be called from the Discord event handler.
func (s *LavalinkSession) OnVoiceStateUpdate(event *discordgo.VoiceStateUpdate) {
	// Only handle updates for the bot itself
	if event.UserID != s.botID.String() {
		return
	}

	guildID, err := snowflake.Parse(event.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in voice state update", "error", err)
		return
	}

	sessionID := event.SessionID

	// Parse the channel ID - if empty, the bot is disconnecting
	var channelID *snowflake.ID
	if event.ChannelID != "" {
		id, err := snowflake.Parse(event.ChannelID)
		if err != nil {
			slog.Error("failed to parse channel ID in voice state update", "error", err)
			return
		}
		channelID = &id
	}

	// A disconnect needs no VoiceServerUpdate pairing; forward it and notify
	// the controller so guild playback state is discarded.
	if channelID == nil {
		s.link.OnVoiceStateUpdate(context.Background(), guildID, nil, sessionID)
		s.clearVoiceBuffer(guildID)
		s.publisher.PublishVoiceDisconnected(ports.VoiceDisconnectedEvent{GuildID: guildID})
		return
	}

	buffer := s.getOrCreateVoiceBuffer(guildID)

	if buffer.setVoiceState(channelID, sessionID) {
		s.forwardBufferedVoiceEvents(guildID, buffer)
	}

	s.pendingMu.Lock()
	pending := s.pending[guildID]
	s.pendingMu.Unlock()

	if pending != nil {
		pending.onEvent(true)
	}
}

// getOrCreateVoiceBuffer returns the voice buffer for a guild, creating one if needed.
func (s *LavalinkSession) getOrCreateVoiceBuffer(guildID snowflake.ID) *voiceEventBuffer {
	s.voiceBufferMu.Lock()
	defer s.voiceBufferMu.Unlock()

	buffer, exists := s.voiceBuffers[guildID]
	if !exists {
		buffer = &voiceEventBuffer{}
		s.voiceBuffers[guildID] = buffer
	}
	return buffer
}

// clearVoiceBuffer removes the voice buffer for a guild.
func (s *LavalinkSession) clearVoiceBuffer(guildID snowflake.ID) {
	s.voiceBufferMu.Lock()
	defer s.voiceBufferMu.Unlock()
	delete(s.voiceBuffers, guildID)
}

// forwardBufferedVoiceEvents sends the buffered voice events to Lavalink.
func (s *LavalinkSession) forwardBufferedVoiceEvents(
	guildID snowflake.ID,
	buffer *voiceEventBuffer,
) {
	channelID, sessionID, token, endpoint := buffer.getData()

	slog.Debug("forwarding buffered voice events to Lavalink",
		"guild", guildID,
		"channel", channelID,
		"hasSessionID", sessionID != "",
	)

	// Forward to Lavalink in the correct order
	s.link.OnVoiceStateUpdate(context.Background(), guildID, channelID, sessionID)
	s.link.OnVoiceServerUpdate(context.Background(), guildID, token, endpoint)
}

func (s *LavalinkSession) onTrackStart(player disgolink.Player, event lavalink.TrackStartEvent) {
	slog.Debug("track started", "guild", player.GuildID(), "track", event.Track.Info.Title)
}

func (s *LavalinkSession) onTrackEnd(player disgolink.Player, event lavalink.TrackEndEvent) {
	slog.Debug("track ended", "guild", player.GuildID(), "reason", event.Reason)

	s.publisher.PublishTrackEnded(ports.TrackEndedEvent{
		GuildID: player.GuildID(),
		Reason:  convertEndReason(event.Reason),
	})
}

func (s *LavalinkSession) onTrackException(
	player disgolink.Player,
	event lavalink.TrackExceptionEvent,
) {
	slog.Warn("track exception", "guild", player.GuildID(), "error", event.Exception.Message)
}

func (s *LavalinkSession) onTrackStuck(player disgolink.Player, event lavalink.TrackStuckEvent) {
	slog.Warn("track stuck", "guild", player.GuildID(), "threshold", event.Threshold)
}

func convertEndReason(reason lavalink.TrackEndReason) ports.TrackEndReason {
	switch reason {
	case lavalink.TrackEndReasonFinished:
		return ports.TrackEndFinished
	case lavalink.TrackEndReasonLoadFailed:
		return ports.TrackEndLoadFailed
	case lavalink.TrackEndReasonStopped:
		return ports.TrackEndStopped
	case lavalink.TrackEndReasonReplaced:
		return ports.TrackEndReplaced
	case lavalink.TrackEndReasonCleanup:
		return ports.TrackEndCleanup
	default:
		return ports.TrackEndStopped
	}
}

// Ensure LavalinkSession implements the VoiceSession port.
var _ ports.VoiceSession = (*LavalinkSession)(nil)
