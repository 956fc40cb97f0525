package music

// Config holds the music module configuration.
type Config struct {
	LavalinkAddress     string `env:"LAVALINK_ADDRESS,notEmpty"`
	LavalinkPassword    string `env:"LAVALINK_PASSWORD,notEmpty"`
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID,notEmpty"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET,notEmpty"`
}
