package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking routes. /createBooking is mounted at the API root
// to mirror the public marketplace API, management routes under /bookings.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) func(r chi.Router) {
	return func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/createBooking", h.Create)
			r.Get("/bookings/my", h.ListMine)
			r.Post("/bookings/{id}/cancel", h.Cancel)
		})
	}
}
