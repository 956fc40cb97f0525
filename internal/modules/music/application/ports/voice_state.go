package ports

import (
	"github.com/disgoorg/snowflake/v2"
)

// VoiceStateProvider reports which voice channel a user currently occupies.
type VoiceStateProvider interface {
	// GetUserVoiceChannel returns the voice channel ID the user is in, or 0
	// if the user is not in a voice channel.
	GetUserVoiceChannel(guildID, userID snowflake.ID) (snowflake.ID, error)
}
