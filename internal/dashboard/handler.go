package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
)

// Handler serves the landing dashboard.
type Handler struct {
	logger  *slog.Logger
	service *Service
	view    view.Responder
}

// NewHandler builds the handler.
func NewHandler(logger *slog.Logger, service *Service, responder view.Responder) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, view: responder}
}

// MountRoutes registers the dashboard route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.show)
}

// ChangeHook drops cached figures after a write elsewhere in the console.
func (h *Handler) ChangeHook(r *http.Request) {
	h.service.Invalidate(r.Context())
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	user := shared.CurrentUserFromContext(r.Context())
	userID := ""
	if user != nil {
		userID = user.ID
	}
	overview, err := h.service.Load(r.Context(), userID, r.URL.Query().Get("refresh") == "1")
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "load dashboard failed") {
			return
		}
		h.view.Flash(r, "error", "Failed to load dashboard data")
		h.view.Render(w, r, "pages/dashboard/index", "Dashboard", Page{Actions: QuickActions, Failed: true}, http.StatusOK)
		return
	}
	h.view.Render(w, r, "pages/dashboard/index", "Dashboard", BuildPage(overview, h.logger), http.StatusOK)
}
