package http

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/utils"
	"github.com/oyugijr/EchoTask/models"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Devices connect from native agents, not browsers; origin checks do
	// not apply.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// subscribe upgrades the request to a websocket and attaches it to the
// change feed. Authentication already happened in the auth middleware; the
// device ID names the subscriber so its own pushes are not echoed back.
func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	deviceID, found := utils.GetDeviceIDFromContext(r.Context())
	if !found {
		log.Error().Str("func", "*Handler.subscribe").Msg("no device ID in request context")
		http.Error(w, "no device ID was given", http.StatusBadRequest)
		return
	}

	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		log.Err(err).Str("func", "*Handler.subscribe").Msg("websocket upgrade failed")
		return
	}

	sub := &subscriber{
		deviceID: deviceID,
		conn:     conn,
		send:     make(chan models.RemoteNote, subscriberBuffer),
	}
	h.hub.register(sub)

	log.Info().
		Str("device_id", deviceID).
		Msg("device subscribed to change feed")

	go h.hub.writeLoop(sub)
	go h.hub.readLoop(sub)
}
