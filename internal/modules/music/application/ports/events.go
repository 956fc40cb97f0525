package ports

import (
	"github.com/disgoorg/snowflake/v2"
)

// TrackEndReason describes why the player stopped outputting a track.
type TrackEndReason string

const (
	TrackEndFinished   TrackEndReason = "finished"
	TrackEndLoadFailed TrackEndReason = "load_failed"
	TrackEndStopped    TrackEndReason = "stopped"
	TrackEndReplaced   TrackEndReason = "replaced"
	TrackEndCleanup    TrackEndReason = "cleanup"
)

// TrackEndedEvent is emitted by the voice transport when the player goes idle.
type TrackEndedEvent struct {
	GuildID snowflake.ID
	Reason  TrackEndReason
}

// VoiceDisconnectedEvent is emitted when the bot loses its voice connection
// for a guild, e.g. a forced removal from the channel.
type VoiceDisconnectedEvent struct {
	GuildID snowflake.ID
}

// EventPublisher publishes transport events onto the event bus.
type EventPublisher interface {
	PublishTrackEnded(event TrackEndedEvent)
	PublishVoiceDisconnected(event VoiceDisconnectedEvent)
}
