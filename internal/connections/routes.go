package connections

import "github.com/go-chi/chi/v5"

// MountRoutes registers connection type routes. Editing and deleting are
// admin only.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/connections", h.list)
	r.Get("/connections/new", h.newForm)
	r.Post("/connections/new", h.create)
	r.Get("/connections/{id}", h.show)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAdmin())
		r.Get("/connections/{id}/edit", h.editForm)
		r.Post("/connections/{id}/edit", h.update)
		r.Get("/connections/{id}/delete", h.confirmDelete)
		r.Post("/connections/{id}/delete", h.delete)
	})
}
