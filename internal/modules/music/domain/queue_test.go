package domain

import "testing"

func track(title string) Track {
	return Track{Title: title, PlaybackURI: "https://example.com/" + title}
}

func TestQueue_PushPopOrder(t *testing.T) {
	q := NewQueue()

	q.Push(track("a"))
	q.Push(track("b"))
	q.Push(track("c"))

	if q.Len() != 3 {
		t.Fatalf("expected 3 tracks, got %d", q.Len())
	}

	for _, want := range []string{"a", "b", "c"} {
		got := q.PopFront()
		if got == nil {
			t.Fatalf("expected track %q, got nil", want)
		}
		if got.Title != want {
			t.Errorf("expected %q, got %q", want, got.Title)
		}
	}

	if !q.IsEmpty() {
		t.Error("expected queue to be empty after draining")
	}
}

func TestQueue_PopFrontEmpty(t *testing.T) {
	q := NewQueue()
	if got := q.PopFront(); got != nil {
		t.Errorf("expected nil from empty queue, got %v", got)
	}
}

func TestQueue_PushFront(t *testing.T) {
	q := NewQueue()
	q.Push(track("b"))
	q.Push(track("c"))
	q.PushFront(track("a"))

	front := q.Front()
	if front == nil || front.Title != "a" {
		t.Fatalf("expected front %q, got %v", "a", front)
	}
	if q.Len() != 3 {
		t.Errorf("expected 3 tracks, got %d", q.Len())
	}
}

func TestQueue_FrontDoesNotRemove(t *testing.T) {
	q := NewQueue()
	q.Push(track("a"))

	q.Front()
	if q.Len() != 1 {
		t.Errorf("expected Front to leave the queue intact, got len %d", q.Len())
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.Push(track("a"))
	q.Push(track("b"))

	q.Clear()

	if !q.IsEmpty() {
		t.Error("expected queue to be empty after Clear")
	}
}

func TestQueue_ListReturnsCopy(t *testing.T) {
	q := NewQueue()
	q.Push(track("a"))

	list := q.List()
	list[0].Title = "mutated"

	if q.Front().Title != "a" {
		t.Error("expected List to return a copy, queue was mutated")
	}
}
