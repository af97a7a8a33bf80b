package calculator

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the calculator endpoints onto r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/calculate", h.Calculate)
	r.Get("/history", h.History)
	r.Post("/clear-history", h.ClearHistory)
	r.Get("/info", h.Info)
}
