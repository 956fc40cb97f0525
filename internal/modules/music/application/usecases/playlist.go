package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

// PlayPlaylistInput contains the input for the PlayPlaylist use case.
type PlayPlaylistInput struct {
	GuildID        snowflake.ID
	VoiceChannelID snowflake.ID // 0 when the caller is not in a voice channel
	Name           string
}

// PlayPlaylistOutput contains the result of the PlayPlaylist use case.
type PlayPlaylistOutput struct {
	SongsAdded int
}

// PlayRadioInput contains the input for the PlayRadio use case.
type PlayRadioInput struct {
	GuildID        snowflake.ID
	VoiceChannelID snowflake.ID
	Station        string
}

// PlayRadioOutput contains the result of the PlayRadio use case.
type PlayRadioOutput struct {
	Track domain.Track
}

// PlayPlaylist resolves the named playlist's song queries against the video
// catalog in order and appends each hit to the guild's queue. The lookups run
// serialized, not fanned out, to stay inside catalog rate limits. Individual
// misses are logged and skipped. If anything was added and nothing is
// playing, playback starts.
func (p *PlayerService) PlayPlaylist(
	ctx context.Context,
	input PlayPlaylistInput,
) (*PlayPlaylistOutput, error) {
	songs, ok := domain.LookupPlaylist(input.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlaylistNotFound, input.Name)
	}

	if input.VoiceChannelID == 0 {
		return nil, ErrNotInVoiceChannel
	}

	added := 0
	for _, query := range songs {
		track := p.search.SearchVideoSingle(ctx, query)
		if track == nil {
			slog.Warn("playlist entry not found, skipping",
				"playlist", input.Name, "query", query)
			continue
		}

		// Lock per entry so player events keep flowing between the
		// serialized catalog round-trips.
		state := p.lockState(input.GuildID)
		state.Queue.Push(*track)
		state.Unlock()
		added++
	}

	if added > 0 {
		state := p.lockState(input.GuildID)
		if !state.IsConnected() {
			if err := p.connect(ctx, state, input.VoiceChannelID); err != nil {
				state.Unlock()
				return nil, err
			}
		}
		if state.Current() == nil {
			p.advance(ctx, state)
		}
		state.Unlock()
	}

	return &PlayPlaylistOutput{SongsAdded: added}, nil
}

// PlayRadio plays the named station's live stream. Radio bypasses the queue
// and resolver entirely: it replaces whatever is playing, clears the queue,
// and installs a synthetic current track carrying only the station name and
// stream URL.
func (p *PlayerService) PlayRadio(
	ctx context.Context,
	input PlayRadioInput,
) (*PlayRadioOutput, error) {
	url, ok := domain.LookupStation(input.Station)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStationNotFound, input.Station)
	}

	state := p.lockState(input.GuildID)
	defer state.Unlock()

	if !state.IsConnected() {
		if input.VoiceChannelID == 0 {
			return nil, ErrNotInVoiceChannel
		}
		if err := p.connect(ctx, state, input.VoiceChannelID); err != nil {
			return nil, err
		}
	}

	if err := p.voice.Play(ctx, input.GuildID, url); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStreamOpenFailed, err)
	}

	track := domain.RadioTrack(input.Station, url)
	state.Queue.Clear()
	state.SetCurrent(track)

	return &PlayRadioOutput{Track: track}, nil
}
