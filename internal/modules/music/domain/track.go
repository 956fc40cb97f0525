package domain

import (
	"strconv"
	"strings"
)

// TrackSource identifies the catalog a track was resolved from.
type TrackSource string

const (
	SourceYouTube TrackSource = "YouTube"
	SourceSpotify TrackSource = "Spotify"
	SourceRadio   TrackSource = "Radio"
)

// UnknownArtist is the artist placeholder when no artist could be determined.
const UnknownArtist = "Unknown Artist"

// UnknownDuration is the duration label used when a catalog reports no length.
const UnknownDuration = "Unknown"

// Track is a playable media reference with display metadata.
// Tracks are created by catalog adapters (or the radio catalog) and never
// mutated afterwards.
type Track struct {
	Title        string
	PlaybackURI  string      // direct stream URL or platform watch URL
	Duration     string      // pre-formatted "m:ss", UnknownDuration, or empty for live streams
	Source       TrackSource
	Artist       string
	CatalogID    string // opaque per-source identifier
	AlbumName    string
	ThumbnailURL string
}

// IsStream reports whether the track is an unbounded live stream rather than
// a track with an end.
func (t *Track) IsStream() bool {
	return t.Source == SourceRadio
}

// FormatDuration renders a length in seconds as "m:ss".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	mins := seconds / 60
	secs := seconds % 60

	s := strconv.Itoa(secs)
	if secs < 10 {
		s = "0" + s
	}
	return strconv.Itoa(mins) + ":" + s
}

// ArtistFromTitle guesses the artist from a "Artist - Song" style video title.
// Video catalogs carry no structured artist field, so this splits on the first
// hyphen surrounded by whitespace and takes the left segment. Titles that use
// hyphens for other reasons are misclassified; callers get UnknownArtist when
// no such hyphen exists.
func ArtistFromTitle(title string) string {
	idx := strings.Index(title, " - ")
	if idx <= 0 {
		return UnknownArtist
	}

	artist := strings.TrimSpace(title[:idx])
	if artist == "" {
		return UnknownArtist
	}
	return artist
}
