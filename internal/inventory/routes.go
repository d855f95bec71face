package inventory

import "github.com/go-chi/chi/v5"

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/inventory", h.list)
	r.Get("/inventory/new", h.newForm)
	r.Post("/inventory/new", h.create)
	r.Get("/inventory/{id}", h.show)
	r.Get("/inventory/{id}/edit", h.editForm)
	r.Post("/inventory/{id}/edit", h.update)
	r.Get("/inventory/{id}/delete", h.confirmDelete)
	r.Post("/inventory/{id}/delete", h.delete)
}
