package packages

import "github.com/go-chi/chi/v5"

// MountRoutes registers the package screens.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/packages", h.list)
	r.Get("/packages/new", h.newForm)
	r.Post("/packages/new", h.create)
	r.Get("/packages/{id}", h.show)
	r.Get("/packages/{id}/edit", h.editForm)
	r.Post("/packages/{id}/edit", h.update)
	r.Get("/packages/{id}/delete", h.confirmDelete)
	r.Post("/packages/{id}/delete", h.delete)
}
