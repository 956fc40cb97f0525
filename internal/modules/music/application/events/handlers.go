package events

import (
	"context"
	"log/slog"
	"sync"
)

// TrackEndedFunc handles a track-end notification from the voice transport.
type TrackEndedFunc func(ctx context.Context, event TrackEndedEvent)

// VoiceDisconnectedFunc handles a voice disconnect notification.
type VoiceDisconnectedFunc func(ctx context.Context, event VoiceDisconnectedEvent)

// Handler drains the event bus and feeds transport events back into the
// playback controller.
type Handler struct {
	bus            *Bus
	onTrackEnded   TrackEndedFunc
	onDisconnected VoiceDisconnectedFunc

	wg   sync.WaitGroup
	done chan struct{}
}

// NewHandler creates a new Handler.
func NewHandler(
	bus *Bus,
	onTrackEnded TrackEndedFunc,
	onDisconnected VoiceDisconnectedFunc,
) *Handler {
	return &Handler{
		bus:            bus,
		onTrackEnded:   onTrackEnded,
		onDisconnected: onDisconnected,
		done:           make(chan struct{}),
	}
}

// Start begins listening for events in background goroutines.
func (h *Handler) Start(ctx context.Context) {
	h.wg.Add(2)

	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-h.done:
				return
			case event, ok := <-h.bus.TrackEnded():
				if !ok {
					return
				}
				h.onTrackEnded(ctx, event)
			}
		}
	}()

	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-h.done:
				return
			case event, ok := <-h.bus.VoiceDisconnected():
				if !ok {
					return
				}
				h.onDisconnected(ctx, event)
			}
		}
	}()

	slog.Debug("playback event handler started")
}

// Stop stops the event handler and waits for goroutines to finish.
func (h *Handler) Stop() {
	close(h.done)
	h.wg.Wait()
	slog.Debug("playback event handler stopped")
}
