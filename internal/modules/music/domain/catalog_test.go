package domain

import "testing"

func TestLookupPlaylist(t *testing.T) {
	songs, ok := LookupPlaylist("salsa")
	if !ok {
		t.Fatal("expected salsa playlist to exist")
	}
	if len(songs) == 0 {
		t.Error("expected salsa playlist to have songs")
	}

	if _, ok := LookupPlaylist("nonexistent"); ok {
		t.Error("expected lookup of unknown playlist to fail")
	}
}

func TestLookupStation(t *testing.T) {
	url, ok := LookupStation("elsol")
	if !ok {
		t.Fatal("expected elsol station to exist")
	}
	if url == "" {
		t.Error("expected elsol station to have a stream URL")
	}

	if _, ok := LookupStation("nonexistent"); ok {
		t.Error("expected lookup of unknown station to fail")
	}
}

func TestPlaylistNamesSorted(t *testing.T) {
	names := PlaylistNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("expected sorted names, got %v", names)
		}
	}
}
