package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/utils"
	"github.com/oyugijr/EchoTask/models"
)

func (h *Handler) upsertNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	deviceID, found := utils.GetDeviceIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.upsertNote").Msg("no device ID in request context")
		http.Error(w, "no device ID was given", http.StatusBadRequest)
		return
	}

	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		log.Err(err).Str("func", "*Handler.upsertNote").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	stored, err := h.services.NoteService.UpsertNote(ctx, note)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upsertNote").Msg("error upserting note")
		http.Error(w, "error upserting note", statusFromError(err))
		return
	}

	// Fan the accepted revision out to every other subscribed device.
	h.hub.broadcast(stored, deviceID)

	utils.WriteJSON(w, stored, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	noteID := chi.URLParam(r, "noteID")

	note, err := h.services.NoteService.GetNote(ctx, noteID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getNote").Str("note_id", noteID).Msg("error getting note")
		http.Error(w, "error getting note", statusFromError(err))
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) getChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	since := r.URL.Query().Get("since")

	var limit int
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			log.Err(err).Str("func", "*Handler.getChanges").Str("limit", rawLimit).Msg("invalid limit")
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	changes, err := h.services.NoteService.ChangedSince(ctx, since, limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getChanges").Msg("error getting changes")
		http.Error(w, "error getting changes", statusFromError(err))
		return
	}

	utils.WriteJSON(w, changes, http.StatusOK)
}
