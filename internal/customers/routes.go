package customers

import "github.com/go-chi/chi/v5"

// MountRoutes registers customer routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/customers", h.list)
	r.Get("/customers/new", h.newForm)
	r.Post("/customers/new", h.create)
	r.Post("/customers/validate", h.validateField)
	r.Get("/customers/{id}", h.show)
	r.Get("/customers/{id}/edit", h.editForm)
	r.Post("/customers/{id}/edit", h.update)
	r.Get("/customers/{id}/status", h.confirmStatus)
	r.Post("/customers/{id}/status", h.setStatus)
}
