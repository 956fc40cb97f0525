package events

import (
	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
)

// Re-export event types from ports for use by event handlers.
type (
	TrackEndedEvent        = ports.TrackEndedEvent
	TrackEndReason         = ports.TrackEndReason
	VoiceDisconnectedEvent = ports.VoiceDisconnectedEvent
)

// Re-export TrackEndReason constants.
const (
	TrackEndFinished   = ports.TrackEndFinished
	TrackEndLoadFailed = ports.TrackEndLoadFailed
	TrackEndStopped    = ports.TrackEndStopped
	TrackEndReplaced   = ports.TrackEndReplaced
	TrackEndCleanup    = ports.TrackEndCleanup
)
