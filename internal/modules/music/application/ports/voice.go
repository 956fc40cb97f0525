package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// VoiceSession is the voice transport boundary: an opaque connection and
// player pair per guild. The transport creates and destroys the pair
// together; playback completion and disconnects come back asynchronously
// through the event bus.
type VoiceSession interface {
	// Join connects to the given voice channel and prepares a player for the
	// guild. Blocks until the connection is established or ctx expires.
	Join(ctx context.Context, guildID, channelID snowflake.ID) error

	// Leave destroys the guild's player and disconnects from voice.
	Leave(ctx context.Context, guildID snowflake.ID) error

	// Play starts playback of the given URL or stream identifier.
	// Returns an error if the underlying audio stream cannot be opened.
	Play(ctx context.Context, guildID snowflake.ID, uri string) error

	// Pause pauses the current playback.
	Pause(ctx context.Context, guildID snowflake.ID) error

	// Resume resumes the paused playback.
	Resume(ctx context.Context, guildID snowflake.ID) error

	// Stop stops the current playback. The transport reports the stop as a
	// track-end event, which drives queue advancement.
	Stop(ctx context.Context, guildID snowflake.ID) error
}
