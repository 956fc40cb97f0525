package domain

import "sort"

// Playlists maps playlist names to ordered free-text song queries. Each query
// is resolved against the video catalog when the playlist is played.
// Read-only for the process lifetime.
var Playlists = map[string][]string{
	"salsa": {
		"Marc Anthony - Vivir Mi Vida",
		"La Santa Cecilia - La Negra",
		"Grupo Niche - Cali Aji",
		"Willie Colon - El Gran Varón",
		"Hector Lavoe - Periódico de Ayer",
	},
}

// LookupPlaylist returns the song queries for the named playlist.
func LookupPlaylist(name string) ([]string, bool) {
	songs, ok := Playlists[name]
	return songs, ok
}

// PlaylistNames returns the available playlist names, sorted.
func PlaylistNames() []string {
	names := make([]string, 0, len(Playlists))
	for name := range Playlists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
