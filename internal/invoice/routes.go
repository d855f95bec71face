package invoice

import "github.com/go-chi/chi/v5"

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoice", h.newForm)
	r.Post("/invoice", h.submit)
	r.Get("/invoice/preview", h.preview)
	r.Get("/invoice/print", h.printDocument)
	r.Get("/invoice/receipt", h.showReceipt)
	r.Post("/invoice/receipt/print", h.printReceipt)
	r.Get("/invoice/share", h.share)
	r.Get("/invoice/pdf", h.downloadPDF)
}
