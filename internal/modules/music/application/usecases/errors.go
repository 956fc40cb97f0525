package usecases

import "errors"

// Domain errors for the music module.
var (
	// ErrNotInVoiceChannel is returned when an operation needs the caller to
	// be in a voice channel.
	ErrNotInVoiceChannel = errors.New("you must be in a voice channel")

	// ErrTrackNotFound is returned when no track could be resolved for a query.
	ErrTrackNotFound = errors.New("could not find the song")

	// ErrNoActivePlayback is returned when no player exists for the guild.
	ErrNoActivePlayback = errors.New("no music is playing")

	// ErrNoPreviousTrack is returned when the play history is too short to
	// step back.
	ErrNoPreviousTrack = errors.New("no previous song available")

	// ErrPlaylistNotFound is returned for an unknown playlist name.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrStationNotFound is returned for an unknown radio station name.
	ErrStationNotFound = errors.New("radio station not found")

	// ErrStreamOpenFailed is returned when the audio stream for an already
	// resolved track could not be opened.
	ErrStreamOpenFailed = errors.New("failed to open audio stream")
)
