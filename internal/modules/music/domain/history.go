package domain

// HistoryLimit is the maximum number of tracks retained in play history.
const HistoryLimit = 50

// History records the tracks a guild has played, newest last. It holds at
// most HistoryLimit entries; appending beyond that evicts the oldest entry.
// History is not safe for concurrent use; callers must hold the owning
// GuildState's lock.
type History struct {
	tracks []Track
}

// NewHistory creates a new empty History.
func NewHistory() History {
	return History{tracks: make([]Track, 0)}
}

// Len returns the number of recorded tracks.
func (h *History) Len() int {
	return len(h.tracks)
}

// Append records a played track, evicting the oldest entry if the history
// is full.
func (h *History) Append(track Track) {
	h.tracks = append(h.tracks, track)
	if len(h.tracks) > HistoryLimit {
		h.tracks = h.tracks[1:]
	}
}

// PopLast removes and returns the most recently recorded track, or nil if
// the history is empty.
func (h *History) PopLast() *Track {
	if len(h.tracks) == 0 {
		return nil
	}

	track := h.tracks[len(h.tracks)-1]
	h.tracks = h.tracks[:len(h.tracks)-1]
	return &track
}

// List returns a copy of the history, oldest first.
func (h *History) List() []Track {
	result := make([]Track, len(h.tracks))
	copy(result, h.tracks)
	return result
}
