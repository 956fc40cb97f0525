package domain

// Queue is an ordered FIFO play queue. The front is the next track to play.
// Queue is not safe for concurrent use; callers must hold the owning
// GuildState's lock.
type Queue struct {
	tracks []Track
}

// NewQueue creates a new empty Queue.
func NewQueue() Queue {
	return Queue{tracks: make([]Track, 0)}
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// IsEmpty returns true if no tracks are queued.
func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}

// Push appends a track to the back of the queue.
func (q *Queue) Push(track Track) {
	q.tracks = append(q.tracks, track)
}

// PushFront inserts a track at the front of the queue, ahead of everything else.
func (q *Queue) PushFront(track Track) {
	q.tracks = append([]Track{track}, q.tracks...)
}

// PopFront removes and returns the front track, or nil if the queue is empty.
func (q *Queue) PopFront() *Track {
	if len(q.tracks) == 0 {
		return nil
	}

	track := q.tracks[0]
	q.tracks = q.tracks[1:]
	return &track
}

// Front returns a copy of the front track without removing it, or nil if the
// queue is empty.
func (q *Queue) Front() *Track {
	if len(q.tracks) == 0 {
		return nil
	}

	track := q.tracks[0]
	return &track
}

// List returns a copy of all queued tracks in play order.
func (q *Queue) List() []Track {
	result := make([]Track, len(q.tracks))
	copy(result, q.tracks)
	return result
}

// Clear removes all tracks from the queue.
func (q *Queue) Clear() {
	q.tracks = q.tracks[:0]
}
