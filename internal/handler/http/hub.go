package http

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/models"
)

// subscriberBuffer bounds the per-connection send queue. A subscriber that
// cannot keep up is dropped; the realtime feed is advisory and the periodic
// pull recovers anything it missed.
const subscriberBuffer = 16

// subscriber is one websocket connection on the change feed.
type subscriber struct {
	deviceID string
	conn     *websocket.Conn
	send     chan models.RemoteNote
}

// hub fans accepted note revisions out to subscribed devices. Connections
// register on upgrade and unregister when their writer loop exits.
type hub struct {
	mu          sync.Mutex
	subscribers map[*subscriber]struct{}

	logger *logger.Logger
}

func newHub(logger *logger.Logger) *hub {
	return &hub{
		subscribers: make(map[*subscriber]struct{}),
		logger:      logger,
	}
}

func (h *hub) register(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub] = struct{}{}
}

func (h *hub) unregister(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[sub]; !ok {
		return
	}
	delete(h.subscribers, sub)
	close(sub.send)
}

// broadcast queues the revision for every subscriber except the device that
// pushed it. Slow subscribers are disconnected rather than blocking the
// request path.
func (h *hub) broadcast(note models.RemoteNote, originDeviceID string) {
	h.mu.Lock()
	var stalled []*subscriber
	for sub := range h.subscribers {
		if sub.deviceID == originDeviceID {
			continue
		}
		select {
		case sub.send <- note:
		default:
			stalled = append(stalled, sub)
		}
	}
	for _, sub := range stalled {
		delete(h.subscribers, sub)
		close(sub.send)
	}
	h.mu.Unlock()

	for _, sub := range stalled {
		h.logger.Warn().
			Str("device_id", sub.deviceID).
			Msg("dropping stalled feed subscriber")
	}
}

// count reports the number of connected subscribers.
func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// writeLoop drains the subscriber's queue onto its connection. It owns all
// writes to conn and closes it on exit, which also unblocks the read loop.
func (h *hub) writeLoop(sub *subscriber) {
	defer sub.conn.Close()

	for note := range sub.send {
		if err := sub.conn.WriteJSON(note); err != nil {
			h.logger.Debug().
				Err(err).
				Str("device_id", sub.deviceID).
				Msg("feed write failed")
			h.unregister(sub)
			return
		}
	}
}

// readLoop discards inbound frames, using read errors to detect a closed
// connection. The feed is one-way; clients push notes over HTTP.
func (h *hub) readLoop(sub *subscriber) {
	defer h.unregister(sub)

	for {
		if _, _, err := sub.conn.NextReader(); err != nil {
			return
		}
	}
}
