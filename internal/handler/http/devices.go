package http

import (
	"encoding/json"
	"net/http"

	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/utils"
	"github.com/oyugijr/EchoTask/models"
)

func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var registration models.DeviceRegistration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	deviceToken, err := h.services.DeviceService.Register(ctx, registration.DeviceID)
	if err != nil {
		log.Err(err).Str("device_id", registration.DeviceID).Msg("device registration failed")
		http.Error(w, "device registration failed", statusFromError(err))
		return
	}

	utils.WriteJSON(w, deviceToken, http.StatusOK)
}
