package presentation

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rvallejo/salsabot/internal/modules/music/domain"
)

// Commands returns all slash commands for the music module.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "play",
			Description: "Play a song from URL or search",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "URL or search term",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "source",
					Description: "Catalog to search (defaults to YouTube)",
					Required:    false,
					Choices:     sourceChoices(),
				},
			},
		},
		{
			Name:        "pause",
			Description: "Pause playback",
		},
		{
			Name:        "resume",
			Description: "Resume playback",
		},
		{
			Name:        "skip",
			Description: "Skip the current song",
		},
		{
			Name:        "previous",
			Description: "Play the previous song",
		},
		{
			Name:        "stop",
			Description: "Stop playback and clear the queue",
		},
		{
			Name:        "queue",
			Description: "Show the current queue",
		},
		{
			Name:        "search",
			Description: "Search for songs without playing them",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Search term",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "source",
					Description: "Catalog to search (defaults to YouTube)",
					Required:    false,
					Choices:     sourceChoices(),
				},
			},
		},
		{
			Name:        "searchall",
			Description: "Search every catalog at once",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "Search term",
					Required:    true,
				},
			},
		},
		{
			Name:        "playlist",
			Description: "Queue a built-in playlist",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Playlist to queue",
					Required:    true,
					Choices:     playlistChoices(),
				},
			},
		},
		{
			Name:        "help",
			Description: "Show what the bot can do",
		},
		{
			Name:        "radio",
			Description: "Tune in to a radio station",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "station",
					Description: "Station to play",
					Required:    true,
					Choices:     stationChoices(),
				},
			},
		},
	}
}

func sourceChoices() []*discordgo.ApplicationCommandOptionChoice {
	return []*discordgo.ApplicationCommandOptionChoice{
		{Name: "YouTube", Value: string(domain.SourceYouTube)},
		{Name: "Spotify", Value: string(domain.SourceSpotify)},
	}
}

func playlistChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := domain.PlaylistNames()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}
	return choices
}

func stationChoices() []*discordgo.ApplicationCommandOptionChoice {
	names := domain.StationNames()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}
	return choices
}
