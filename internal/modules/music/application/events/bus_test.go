package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/rvallejo/salsabot/internal/modules/music/application/ports"
)

func TestBus_PublishTrackEnded(t *testing.T) {
	bus := NewBus(10)
	defer bus.Close()

	event := TrackEndedEvent{
		GuildID: snowflake.ID(1),
		Reason:  ports.TrackEndFinished,
	}
	bus.PublishTrackEnded(event)

	select {
	case got := <-bus.TrackEnded():
		if got.GuildID != event.GuildID || got.Reason != event.Reason {
			t.Errorf("expected %+v, got %+v", event, got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_PublishAfterCloseIsDropped(t *testing.T) {
	bus := NewBus(10)
	bus.Close()

	// Must not panic on a closed channel.
	bus.PublishTrackEnded(TrackEndedEvent{GuildID: snowflake.ID(1)})
	bus.PublishVoiceDisconnected(VoiceDisconnectedEvent{GuildID: snowflake.ID(1)})
}

func TestBus_FullBufferDropsEvents(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	// Second publish must not block even though nothing is draining.
	bus.PublishTrackEnded(TrackEndedEvent{GuildID: snowflake.ID(1)})
	bus.PublishTrackEnded(TrackEndedEvent{GuildID: snowflake.ID(2)})

	got := <-bus.TrackEnded()
	if got.GuildID != snowflake.ID(1) {
		t.Errorf("expected first event to survive, got guild %d", got.GuildID)
	}
}

func TestBus_CloseIsIdempotent(t *testing.T) {
	bus := NewBus(10)
	bus.Close()
	bus.Close()
}

func TestHandler_DispatchesEvents(t *testing.T) {
	bus := NewBus(10)

	var (
		mu           sync.Mutex
		ended        []TrackEndedEvent
		disconnected []VoiceDisconnectedEvent
	)

	handler := NewHandler(
		bus,
		func(_ context.Context, event TrackEndedEvent) {
			mu.Lock()
			ended = append(ended, event)
			mu.Unlock()
		},
		func(_ context.Context, event VoiceDisconnectedEvent) {
			mu.Lock()
			disconnected = append(disconnected, event)
			mu.Unlock()
		},
	)
	handler.Start(context.Background())

	bus.PublishTrackEnded(TrackEndedEvent{
		GuildID: snowflake.ID(1),
		Reason:  ports.TrackEndFinished,
	})
	bus.PublishVoiceDisconnected(VoiceDisconnectedEvent{GuildID: snowflake.ID(2)})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		done := len(ended) == 1 && len(disconnected) == 1
		mu.Unlock()
		if done {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	handler.Stop()
	bus.Close()

	mu.Lock()
	defer mu.Unlock()

	if len(ended) != 1 || ended[0].GuildID != snowflake.ID(1) {
		t.Errorf("expected 1 track-end dispatch for guild 1, got %v", ended)
	}
	if len(disconnected) != 1 || disconnected[0].GuildID != snowflake.ID(2) {
		t.Errorf("expected 1 disconnect dispatch for guild 2, got %v", disconnected)
	}
}
