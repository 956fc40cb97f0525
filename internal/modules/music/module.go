package music

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/rvallejo/salsabot/internal/bot"
	"github.com/rvallejo/salsabot/internal/modules/music/application/events"
	"github.com/rvallejo/salsabot/internal/modules/music/application/usecases"
	"github.com/rvallejo/salsabot/internal/modules/music/infrastructure"
	"github.com/rvallejo/salsabot/internal/modules/music/presentation"
)

func init() {
	bot.Register(&Module{})
}

// Compile-time interface checks.
var _ bot.ConfigurableModule = (*Module)(nil)

// Module provides music playback commands.
type Module struct {
	config   *Config
	handlers *presentation.Handlers

	lavalink *infrastructure.LavalinkSession
	spotify  *infrastructure.SpotifyCatalog

	eventBus     *events.Bus
	eventHandler *events.Handler

	ctx    context.Context
	cancel context.CancelFunc
}

// Name returns the module name.
func (m *Module) Name() string {
	return "music"
}

// Commands returns the slash commands for this module.
func (m *Module) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *Module) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"play":      m.handlers.HandlePlay,
		"pause":     m.handlers.HandlePause,
		"resume":    m.handlers.HandleResume,
		"skip":      m.handlers.HandleSkip,
		"previous":  m.handlers.HandlePrevious,
		"stop":      m.handlers.HandleStop,
		"queue":     m.handlers.HandleQueue,
		"search":    m.handlers.HandleSearch,
		"searchall": m.handlers.HandleSearchAll,
		"playlist":  m.handlers.HandlePlaylist,
		"radio":     m.handlers.HandleRadio,
		"help":      m.handlers.HandleHelp,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *Module) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			m.handleVoiceServerUpdate(s, event)
		},
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			m.handleVoiceStateUpdate(s, event)
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *Module) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init initializes the module.
func (m *Module) Init(deps bot.ModuleDependencies) error {
	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.eventBus = events.NewBus(events.DefaultEventBufferSize)

	lavalink, err := infrastructure.NewLavalinkSession(
		deps.Session,
		m.eventBus,
		infrastructure.LavalinkConfig{
			Address:  m.config.LavalinkAddress,
			Password: m.config.LavalinkPassword,
		},
	)
	if err != nil {
		return err
	}
	m.lavalink = lavalink

	repo := infrastructure.NewMemoryRepository()
	youtube := infrastructure.NewYouTubeCatalog()
	m.spotify = infrastructure.NewSpotifyCatalog(
		m.config.SpotifyClientID,
		m.config.SpotifyClientSecret,
	)
	m.spotify.Start(m.ctx)
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)

	search := usecases.NewSearchService(youtube, m.spotify)
	resolver := usecases.NewResolver(youtube, m.spotify, search)
	player := usecases.NewPlayerService(repo, lavalink, resolver, search)

	m.eventHandler = events.NewHandler(
		m.eventBus,
		player.HandleTrackEnded,
		player.HandleVoiceDisconnected,
	)
	m.eventHandler.Start(m.ctx)

	m.handlers = presentation.NewHandlers(player, search, voiceState)

	slog.Info("music module initialized")

	return nil
}

// Shutdown cleans up module resources.
func (m *Module) Shutdown() error {
	if m.cancel != nil {
		m.cancel()
	}

	if m.eventHandler != nil {
		m.eventHandler.Stop()
	}

	if m.eventBus != nil {
		m.eventBus.Close()
	}

	if m.spotify != nil {
		m.spotify.Close()
	}

	if m.lavalink != nil {
		m.lavalink.Link().Close()
	}

	return nil
}

func (m *Module) handleVoiceServerUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceServerUpdate,
) {
	if m.lavalink != nil {
		m.lavalink.OnVoiceServerUpdate(event)
	}
}

func (m *Module) handleVoiceStateUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	if m.lavalink != nil {
		m.lavalink.OnVoiceStateUpdate(event)
	}
}
