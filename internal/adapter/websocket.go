package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/oyugijr/EchoTask/models"
)

const subscribePath = "/api/notes/subscribe"

// Subscribe implements [RemoteStore]. It dials the WebSocket change feed and
// decodes remote revisions onto the returned channel until ctx is cancelled
// or the connection drops. The channel is closed on exit; the realtime
// listener re-subscribes to resume.
func (h *httpRemoteStore) Subscribe(ctx context.Context) (<-chan models.RemoteNote, error) {
	wsURL := h.subscribeURL()

	header := http.Header{}
	if h.token != "" {
		header.Set("Authorization", "Bearer "+h.token)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("subscribe: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("subscribe dial: %w", err)
	}

	changes := make(chan models.RemoteNote, 16)

	// The watcher lives exactly as long as this connection: the reader
	// cancels connCtx on exit, so a server-side drop releases the watcher
	// even while the caller's ctx stays open across reconnects.
	connCtx, cancel := context.WithCancel(ctx)

	// Closing the connection on cancellation unblocks ReadJSON.
	go func() {
		<-connCtx.Done()
		conn.Close()
	}()

	go func() {
		defer close(changes)
		defer cancel()

		for {
			var note models.RemoteNote
			if readErr := conn.ReadJSON(&note); readErr != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					h.logger.Warn().
						Err(readErr).
						Str("func", "httpRemoteStore.Subscribe").
						Msg("change feed read failed")
				}
				return
			}

			select {
			case changes <- note:
			case <-connCtx.Done():
				return
			}
		}
	}()

	return changes, nil
}

func (h *httpRemoteStore) subscribeURL() string {
	if h.wsAddress != "" {
		return h.wsAddress
	}

	wsURL := h.baseURL
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)

	return wsURL + subscribePath
}
