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

	router.Route("/api", func(r chi.Router) {
		r.Route("/sync", func(r chi.Router) {
			r.Post("/start", h.startSync)
			r.Get("/status", h.syncStatus)
			r.Post("/cancel", h.cancelSync)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", h.listGames)
			r.Get("/{token}", h.getGame)
		})
	})

	return router
}
