package domain

import (
	"sort"
	"strings"
)

// RadioStations maps station names to direct stream URLs.
// Read-only for the process lifetime.
var RadioStations = map[string]string{
	"elsol": "https://us-b4-p-e-qg12-audio.cdn.mdstrm.com/live-audio-aw/632cb6ecaa9ace684913bf19",
}

// LookupStation returns the stream URL for the named station.
func LookupStation(name string) (string, bool) {
	url, ok := RadioStations[name]
	return url, ok
}

// StationNames returns the available station names, sorted.
func StationNames() []string {
	names := make([]string, 0, len(RadioStations))
	for name := range RadioStations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RadioTrack builds the synthetic current-track record for a radio station.
// Radio is an unbounded stream, so the track carries no duration or artist.
func RadioTrack(name, url string) Track {
	return Track{
		Title:       strings.ToUpper(name) + " Radio",
		PlaybackURI: url,
		Source:      SourceRadio,
	}
}
