package employees

import "github.com/go-chi/chi/v5"

// MountRoutes registers the admin-only employee routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAdmin())
		r.Get("/employees", h.list)
		r.Get("/employees/new", h.newForm)
		r.Post("/employees/new", h.create)
		r.Get("/employees/{id}/edit", h.editForm)
		r.Post("/employees/{id}/edit", h.update)
		r.Get("/employees/{id}/status", h.confirmStatus)
		r.Post("/employees/{id}/status", h.toggleStatus)
	})
}
