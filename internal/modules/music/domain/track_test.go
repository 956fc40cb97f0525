package domain

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    string
	}{
		{"zero", 0, "0:00"},
		{"under a minute", 42, "0:42"},
		{"exact minute", 60, "1:00"},
		{"typical song", 215, "3:35"},
		{"single digit seconds", 125, "2:05"},
		{"over an hour", 3723, "62:03"},
		{"negative clamps to zero", -5, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestArtistFromTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"artist and song", "Marc Anthony - Vivir Mi Vida", "Marc Anthony"},
		{"multiple separators take the first", "A - B - C", "A"},
		{"no separator", "Vivir Mi Vida", UnknownArtist},
		{"hyphen without spaces", "Re-Mix Session", UnknownArtist},
		{"empty title", "", UnknownArtist},
		{"separator at start", " - Song", UnknownArtist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtistFromTitle(tt.title); got != tt.want {
				t.Errorf("ArtistFromTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestTrack_IsStream(t *testing.T) {
	song := Track{Title: "Song", Source: SourceYouTube}
	if song.IsStream() {
		t.Error("expected YouTube track not to be a stream")
	}

	radio := RadioTrack("elsol", "https://example.com/stream")
	if !radio.IsStream() {
		t.Error("expected radio track to be a stream")
	}
}

func TestRadioTrack(t *testing.T) {
	track := RadioTrack("elsol", "https://example.com/stream")

	if track.Title != "ELSOL Radio" {
		t.Errorf("expected title %q, got %q", "ELSOL Radio", track.Title)
	}
	if track.PlaybackURI != "https://example.com/stream" {
		t.Errorf("unexpected playback URI %q", track.PlaybackURI)
	}
	if track.Duration != "" {
		t.Errorf("expected no duration for a live stream, got %q", track.Duration)
	}
	if track.Source != SourceRadio {
		t.Errorf("expected source %q, got %q", SourceRadio, track.Source)
	}
}
