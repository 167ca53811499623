package credit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns credit ledger router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/balance", h.GetBalance)
		r.Get("/transactions", h.ListTransactions)
	})

	return r
}
