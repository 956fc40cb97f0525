package domain

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

// GuildState is the per-guild playback aggregate: queue, history, current
// track, and the connection flag for the guild's voice session. One instance
// exists per guild with active playback; it is created on the first
// play-intent and discarded on stop or voice disconnect.
//
// All mutation must happen under Lock/Unlock. Commands and player events for
// the same guild contend on this lock, which enforces the single-writer
// serialization the playback state machine assumes.
type GuildState struct {
	mu sync.Mutex

	guildID snowflake.ID

	Queue   Queue
	History History

	current   *Track
	connected bool
	closed    bool
}

// NewGuildState creates a new GuildState for the given guild.
func NewGuildState(guildID snowflake.ID) *GuildState {
	return &GuildState{
		guildID: guildID,
		Queue:   NewQueue(),
		History: NewHistory(),
	}
}

// Lock acquires the guild's serialization lock.
func (s *GuildState) Lock() {
	s.mu.Lock()
}

// Unlock releases the guild's serialization lock.
func (s *GuildState) Unlock() {
	s.mu.Unlock()
}

// GuildID returns the guild ID. Immutable after creation, safe without the lock.
func (s *GuildState) GuildID() snowflake.ID {
	return s.guildID
}

// Current returns the track currently (or most recently) handed to the
// player, or nil when idle with an empty queue.
func (s *GuildState) Current() *Track {
	if s.current == nil {
		return nil
	}

	track := *s.current
	return &track
}

// SetCurrent records the track being handed to the player.
func (s *GuildState) SetCurrent(track Track) {
	s.current = &track
}

// ClearCurrent clears the current track.
func (s *GuildState) ClearCurrent() {
	s.current = nil
}

// IsConnected returns true once a voice session has been established for the
// guild. The voice transport creates the connection and player together, so
// this flag stands for both.
func (s *GuildState) IsConnected() bool {
	return s.connected
}

// SetConnected records whether a voice session exists for the guild.
func (s *GuildState) SetConnected(connected bool) {
	s.connected = connected
}

// Close marks the state as torn down. Operations that raced with the
// teardown observe the flag and drop their results instead of resurrecting
// the guild's playback state.
func (s *GuildState) Close() {
	s.closed = true
	s.connected = false
}

// IsClosed returns true once the state has been torn down.
func (s *GuildState) IsClosed() bool {
	return s.closed
}

// GuildStateRepository stores GuildState aggregates keyed by guild ID.
type GuildStateRepository interface {
	// Get returns the state for the guild, or nil if none exists.
	Get(guildID snowflake.ID) *GuildState

	// GetOrCreate returns the state for the guild, creating it if absent.
	GetOrCreate(guildID snowflake.ID) *GuildState

	// Delete removes the state for the guild.
	Delete(guildID snowflake.ID)
}
