package payments

import "github.com/go-chi/chi/v5"

// MountRoutes registers payment routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/payments", h.list)
	r.Get("/payments/{id}/mark-paid", h.markPaidForm)
	r.Post("/payments/{id}/mark-paid", h.markPaid)
	r.Get("/payments/{id}/receipt", h.showReceipt)
	r.Post("/payments/{id}/receipt/print", h.printReceipt)
}
