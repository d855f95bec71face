package connections

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/rbac"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
)

const basePath = "/connections"

// Handler serves the connection type screens.
type Handler struct {
	logger    *slog.Logger
	repo      Repository
	view      view.Responder
	validator *shared.Validator
	rbac      rbac.Middleware
}

// NewHandler builds the handler.
func NewHandler(logger *slog.Logger, repo Repository, responder view.Responder, validator *shared.Validator, rbac rbac.Middleware) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, repo: repo, view: responder, validator: validator, rbac: rbac}
}

type listPage struct {
	List        view.ListState
	Connections []ConnectionType
	Total       int
}

type formPage struct {
	Connection *ConnectionType
	Form       Form
	Errors     shared.FormErrors
	Action     string
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	state := view.NewListState(r, SortKeys)
	items, err := h.repo.List(r.Context())
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "list connection types failed") {
			return
		}
		h.view.Flash(r, "error", "Failed to fetch connection types")
	}
	visible := Search(items, state.Query.Search, state.Query.Sort)
	page := state.Paginate(len(visible))
	h.view.Render(w, r, "pages/connections/list", "Connections", listPage{
		List:        state,
		Connections: shared.Paginate(visible, page),
		Total:       len(items),
	}, http.StatusOK)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	conn, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, "pages/connections/detail", conn.Name, conn, http.StatusOK)
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "pages/connections/form", "Add Connection Type", formPage{Errors: shared.FormErrors{}, Action: basePath + "/new"}, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form := Form{Name: r.PostFormValue("name"), Description: r.PostFormValue("description")}
	page := formPage{Form: form, Action: basePath + "/new"}
	input, errs := form.Validate(h.validator)
	page.Errors = errs
	if errs.Any() {
		errs.Add("general", "Please fix all errors before submitting")
		h.view.Render(w, r, "pages/connections/form", "Add Connection Type", page, http.StatusUnprocessableEntity)
		return
	}
	created, err := h.repo.Create(r.Context(), input)
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "create connection type failed") {
			return
		}
		errs.Add("general", backend.Message(err, "Failed to add connection type"))
		h.view.Render(w, r, "pages/connections/form", "Add Connection Type", page, http.StatusBadGateway)
		return
	}
	location := basePath
	if created != nil && created.ID != "" {
		location = basePath + "/" + created.ID
	}
	h.view.RedirectWithFlash(w, r, location, "success", "Connection type added successfully")
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	conn, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, "pages/connections/form", "Edit Connection Type", formPage{
		Connection: conn,
		Form:       Form{Name: conn.Name, Description: conn.Description},
		Errors:     shared.FormErrors{},
		Action:     basePath + "/" + conn.ID + "/edit",
	}, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := Form{Name: r.PostFormValue("name"), Description: r.PostFormValue("description")}
	page := formPage{Connection: &ConnectionType{ID: id}, Form: form, Action: basePath + "/" + id + "/edit"}
	input, errs := form.Validate(h.validator)
	page.Errors = errs
	if errs.Any() {
		errs.Add("general", "Please fix all errors before submitting")
		h.view.Render(w, r, "pages/connections/form", "Edit Connection Type", page, http.StatusUnprocessableEntity)
		return
	}
	if _, err := h.repo.Update(r.Context(), id, input); err != nil {
		if h.view.HandleBackendError(w, r, err, "update connection type failed", slog.String("id", id)) {
			return
		}
		errs.Add("general", backend.Message(err, "Failed to update connection type"))
		h.view.Render(w, r, "pages/connections/form", "Edit Connection Type", page, http.StatusBadGateway)
		return
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", "Connection type updated successfully")
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	conn, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Confirm(w, r, view.ConfirmPage{
		Title:       "Delete Connection Type",
		Message:     fmt.Sprintf("Are you sure you want to delete %q?", conn.Name),
		Action:      basePath + "/" + conn.ID + "/delete",
		ActionLabel: "Delete",
		CancelHref:  basePath + "/" + conn.ID,
		Danger:      true,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, basePath+"/"+id, http.StatusSeeOther)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if h.view.HandleBackendError(w, r, err, "delete connection type failed", slog.String("id", id)) {
			return
		}
		h.view.RedirectWithFlash(w, r, basePath+"/"+id, "error", "Failed to delete connection")
		return
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", "Connection type deleted successfully")
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*ConnectionType, bool) {
	id := chi.URLParam(r, "id")
	conn, err := h.repo.Get(r.Context(), id)
	if err == nil {
		return conn, true
	}
	if errors.Is(err, shared.ErrNotFound) {
		h.view.NotFound(w, r, view.NotFoundPage{Resource: "Connection", BackHref: basePath, BackLabel: "Back to connections"})
		return nil, false
	}
	if h.view.HandleBackendError(w, r, err, "get connection type failed", slog.String("id", id)) {
		return nil, false
	}
	h.view.RedirectWithFlash(w, r, basePath, "error", "Failed to load connection data")
	return nil, false
}
