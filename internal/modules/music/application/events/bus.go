package events

import (
	"log/slog"
	"sync"

	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
)

// DefaultEventBufferSize is the default buffer size for event channels.
const DefaultEventBufferSize = 100

// Compile-time check that Bus implements ports.EventPublisher.
var _ ports.EventPublisher = (*Bus)(nil)

// Bus is a channel-based event bus carrying transport events back into the
// playback controller. Events for a guild are applied under that guild's
// state lock, so the bus is the serialization point between user commands
// and asynchronous player notifications.
type Bus struct {
	trackEnded        chan TrackEndedEvent
	voiceDisconnected chan VoiceDisconnectedEvent

	closed bool
	mu     sync.RWMutex
}

// NewBus creates a new Bus with the given buffer size.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultEventBufferSize
	}

	return &Bus{
		trackEnded:        make(chan TrackEndedEvent, bufferSize),
		voiceDisconnected: make(chan VoiceDisconnectedEvent, bufferSize),
	}
}

// PublishTrackEnded publishes a TrackEndedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *Bus) PublishTrackEnded(event TrackEndedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "TrackEnded")
		return
	}

	select {
	case b.trackEnded <- event:
		slog.Debug("published event", "type", "TrackEnded", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "TrackEnded")
	}
}

// PublishVoiceDisconnected publishes a VoiceDisconnectedEvent.
// Non-blocking: if the channel buffer is full, the event is dropped with a warning.
func (b *Bus) PublishVoiceDisconnected(event VoiceDisconnectedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", "VoiceDisconnected")
		return
	}

	select {
	case b.voiceDisconnected <- event:
		slog.Debug("published event", "type", "VoiceDisconnected", "guild", event.GuildID)
	default:
		slog.Warn("event buffer full, dropping event", "type", "VoiceDisconnected")
	}
}

// TrackEnded returns the channel for TrackEndedEvent.
func (b *Bus) TrackEnded() <-chan TrackEndedEvent {
	return b.trackEnded
}

// VoiceDisconnected returns the channel for VoiceDisconnectedEvent.
func (b *Bus) VoiceDisconnected() <-chan VoiceDisconnectedEvent {
	return b.voiceDisconnected
}

// Close closes all event channels.
// After calling Close, publishing will no longer send events.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.trackEnded)
	close(b.voiceDisconnected)

	slog.Debug("event bus closed")
}
