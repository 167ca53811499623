package offering

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns offering router. Paths mirror the public marketplace API:
// /createSkills and /getSkills are mounted at the API root, detail routes
// under /offerings.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/getSkills", h.List)
		r.Get("/slots", h.SuggestSlots)
		r.Get("/offerings/{id}", h.Get)
		r.Get("/offerings/{id}/availability", h.GetAvailability)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/createSkills", h.Create)
			r.Delete("/offerings/{id}", h.Deactivate)
		})
	}
}
