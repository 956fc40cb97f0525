package presentation

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/rvallejo/salsabot/internal/bot"
	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
	"github.com/rvallejo/salsabot/internal/modules/music/application/usecases"
	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

// Embed colors.
const (
	colorSuccess = 0x08c404
	colorError   = 0xE74C3C
)

// maxQueueLines caps how many upcoming tracks the /queue embed lists.
const maxQueueLines = 15

// Handlers holds all the command handlers.
type Handlers struct {
	player     *usecases.PlayerService
	search     *usecases.SearchService
	voiceState ports.VoiceStateProvider
}

// NewHandlers creates new Handlers.
func NewHandlers(
	player *usecases.PlayerService,
	search *usecases.SearchService,
	voiceState ports.VoiceStateProvider,
) *Handlers {
	return &Handlers{
		player:     player,
		search:     search,
		voiceState: voiceState,
	}
}

// HandlePlay handles the /play command.
func (h *Handlers) HandlePlay(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	var query string
	var source domain.TrackSource
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "query":
			query = opt.StringValue()
		case "source":
			source = domain.TrackSource(opt.StringValue())
		}
	}

	voiceChannelID := h.callerVoiceChannel(guildID, i)

	output, err := h.player.Play(context.Background(), usecases.PlayInput{
		GuildID:        guildID,
		VoiceChannelID: voiceChannelID,
		Query:          query,
		Source:         source,
	})
	if err != nil {
		return respondError(r, err.Error())
	}

	return respondTrackAction(r, output.Action, output.Track)
}

// HandlePause handles the /pause command.
func (h *Handlers) HandlePause(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.player.Pause(context.Background(), guildID); err != nil {
		return respondError(r, err.Error())
	}

	return respondSimple(r, "Paused playback.")
}

// HandleResume handles the /resume command.
func (h *Handlers) HandleResume(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.player.Resume(context.Background(), guildID); err != nil {
		return respondError(r, err.Error())
	}

	return respondSimple(r, "Resumed playback.")
}

// HandleSkip handles the /skip command.
func (h *Handlers) HandleSkip(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	output, err := h.player.Skip(context.Background(), guildID)
	if err != nil {
		return respondError(r, err.Error())
	}

	if output.QueueEmpty {
		return respondSimple(r, "Skipped. The queue is empty.")
	}
	return respondSimple(r, fmt.Sprintf("Skipped. Up next: **%s**.", output.NextTitle))
}

// HandlePrevious handles the /previous command.
func (h *Handlers) HandlePrevious(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	output, err := h.player.Previous(context.Background(), guildID)
	if err != nil {
		return respondError(r, err.Error())
	}

	return respondSimple(r, fmt.Sprintf("Going back to **%s**.", output.Title))
}

// HandleStop handles the /stop command.
func (h *Handlers) HandleStop(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.player.Stop(context.Background(), guildID); err != nil {
		return respondError(r, err.Error())
	}

	return respondSimple(r, "Stopped playback and cleared the queue.")
}

// HandleQueue handles the /queue command.
func (h *Handlers) HandleQueue(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	output := h.player.GetQueue(guildID)
	return respondQueue(r, output)
}

// HandleSearch handles the /search command.
func (h *Handlers) HandleSearch(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	var query string
	source := domain.SourceYouTube
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "query":
			query = opt.StringValue()
		case "source":
			source = domain.TrackSource(opt.StringValue())
		}
	}

	ctx := context.Background()

	var tracks []domain.Track
	if source == domain.SourceSpotify {
		tracks = h.search.SearchMusic(ctx, query, usecases.DefaultSearchLimit)
	} else {
		tracks = h.search.SearchVideo(ctx, query, usecases.DefaultSearchLimit)
	}

	if len(tracks) == 0 {
		return respondError(r, "No results found.")
	}
	return respondSearchResults(r, fmt.Sprintf("%s results", source), tracks)
}

// HandleSearchAll handles the /searchall command.
func (h *Handlers) HandleSearchAll(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "query" {
			query = opt.StringValue()
		}
	}

	output := h.search.SearchAll(context.Background(), query, usecases.DefaultFanOutLimit)
	if output.Total == 0 {
		return respondError(r, "No results found.")
	}
	return respondSearchAll(r, output)
}

// HandlePlaylist handles the /playlist command.
func (h *Handlers) HandlePlaylist(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	var name string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "name" {
			name = opt.StringValue()
		}
	}

	output, err := h.player.PlayPlaylist(context.Background(), usecases.PlayPlaylistInput{
		GuildID:        guildID,
		VoiceChannelID: h.callerVoiceChannel(guildID, i),
		Name:           name,
	})
	if err != nil {
		return respondError(r, err.Error())
	}

	return respondSimple(
		r,
		fmt.Sprintf("Added %d songs from the **%s** playlist.", output.SongsAdded, name),
	)
}

// HandleRadio handles the /radio command.
func (h *Handlers) HandleRadio(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	var station string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "station" {
			station = opt.StringValue()
		}
	}

	output, err := h.player.PlayRadio(context.Background(), usecases.PlayRadioInput{
		GuildID:        guildID,
		VoiceChannelID: h.callerVoiceChannel(guildID, i),
		Station:        station,
	})
	if err != nil {
		return respondError(r, err.Error())
	}

	return respondSimple(r, fmt.Sprintf("Tuned in to **%s**.", output.Track.Title))
}

// HandleHelp handles the /help command.
func (h *Handlers) HandleHelp(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	var sb strings.Builder
	sb.WriteString("**/play** — play a song from URL or search\n")
	sb.WriteString("**/pause**, **/resume** — pause and resume playback\n")
	sb.WriteString("**/skip**, **/previous** — move through the queue\n")
	sb.WriteString("**/stop** — stop playback and clear the queue\n")
	sb.WriteString("**/queue** — show what's playing and what's next\n")
	sb.WriteString("**/search**, **/searchall** — look up songs without playing them\n")
	fmt.Fprintf(&sb, "**/playlist** — queue a built-in playlist (%s)\n",
		strings.Join(domain.PlaylistNames(), ", "))
	fmt.Fprintf(&sb, "**/radio** — tune in to a station (%s)\n",
		strings.Join(domain.StationNames(), ", "))

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Commands",
					Description: sb.String(),
					Color:       colorSuccess,
				},
			},
		},
	})
}

// callerVoiceChannel returns the invoking member's voice channel, or 0 if they
// are not in one or the lookup failed.
func (h *Handlers) callerVoiceChannel(
	guildID snowflake.ID,
	i *discordgo.InteractionCreate,
) snowflake.ID {
	if i.Member == nil {
		return 0
	}

	userID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return 0
	}

	channelID, err := h.voiceState.GetUserVoiceChannel(guildID, userID)
	if err != nil {
		return 0
	}
	return channelID
}

// Response helpers.

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
		},
	})
}

func respondSimple(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: message,
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondTrackAction(r bot.Responder, action string, track domain.Track) error {
	embed := &discordgo.MessageEmbed{
		Title:       action,
		Description: trackLine(track),
		Color:       colorSuccess,
	}
	if track.Duration != "" && track.Duration != domain.UnknownDuration {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: track.Duration}
	}
	if track.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: track.ThumbnailURL}
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func respondQueue(r bot.Responder, output usecases.QueueOutput) error {
	var sb strings.Builder

	if output.Current != nil {
		sb.WriteString("### Now Playing\n")
		sb.WriteString(trackLine(*output.Current))
		sb.WriteString("\n")
	}

	if len(output.Upcoming) > 0 {
		sb.WriteString("### Up Next\n")
		for idx, track := range output.Upcoming {
			if idx >= maxQueueLines {
				fmt.Fprintf(&sb, "...and %d more\n", len(output.Upcoming)-idx)
				break
			}
			// Escape the period so Discord doesn't render a markdown list.
			fmt.Fprintf(&sb, "%d\\. %s\n", idx+1, trackLine(track))
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("Nothing is playing and the queue is empty.")
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Queue",
					Description: sb.String(),
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondSearchResults(r bot.Responder, title string, tracks []domain.Track) error {
	var sb strings.Builder
	for idx, track := range tracks {
		fmt.Fprintf(&sb, "%d\\. %s (%s)\n", idx+1, trackLine(track), track.Duration)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       title,
					Description: sb.String(),
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondSearchAll(r bot.Responder, output usecases.SearchAllOutput) error {
	var sb strings.Builder

	if len(output.VideoResults) > 0 {
		sb.WriteString("### YouTube\n")
		for idx, track := range output.VideoResults {
			fmt.Fprintf(&sb, "%d\\. %s (%s)\n", idx+1, trackLine(track), track.Duration)
		}
	}
	if len(output.MusicResults) > 0 {
		sb.WriteString("### Spotify\n")
		for idx, track := range output.MusicResults {
			fmt.Fprintf(&sb, "%d\\. %s (%s)\n", idx+1, trackLine(track), track.Duration)
		}
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Search results",
					Description: sb.String(),
					Color:       colorSuccess,
				},
			},
		},
	})
}

func trackLine(track domain.Track) string {
	if track.PlaybackURI != "" && strings.HasPrefix(track.PlaybackURI, "http") {
		return fmt.Sprintf("[%s](%s)", track.Title, track.PlaybackURI)
	}
	return fmt.Sprintf("**%s**", track.Title)
}
