package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/devices/register", h.registerDevice)
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes requiring a device token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Put("/api/notes", h.upsertNote)
		r.Get("/api/notes/changes", h.getChanges)
		r.Get("/api/notes/subscribe", h.subscribe)
		r.Get("/api/notes/{noteID}", h.getNote)
	})

	return router
}
