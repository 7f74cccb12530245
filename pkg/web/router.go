package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the panel routes
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(h.log))
	r.Use(accessLogMiddleware(h.log))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", h.index)
	r.Post("/select", h.selectEndpoint)
	r.Post("/fetch", h.fetch)

	r.Route("/api", func(r chi.Router) {
		r.Get("/fetch", h.apiFetch)
	})
	return r
}
