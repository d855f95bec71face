package packages

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
)

const basePath = "/packages"

// Handler serves the package screens.
type Handler struct {
	logger    *slog.Logger
	repo      Repository
	view      view.Responder
	validator *shared.Validator
}

// NewHandler builds a package handler.
func NewHandler(logger *slog.Logger, repo Repository, responder view.Responder, validator *shared.Validator) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, repo: repo, view: responder, validator: validator}
}

type listPage struct {
	List     view.ListState
	Packages []Package
	Stats    Stats
	Failed   bool
}

type formPage struct {
	Package *Package
	Form    Form
	Errors  shared.FormErrors
	Action  string
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	state := view.NewListState(r, SortKeys)
	pkgs, err := h.repo.List(r.Context())
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "list packages failed") {
			return
		}
		h.view.Flash(r, "error", "Failed to load packages data")
		h.view.Render(w, r, "pages/packages/list", "Packages", listPage{List: state, Failed: true}, http.StatusOK)
		return
	}
	visible := Search(pkgs, state.Query.Search, state.Query.Sort)
	page := state.Paginate(len(visible))
	h.view.Render(w, r, "pages/packages/list", "Packages", listPage{
		List:     state,
		Packages: shared.Paginate(visible, page),
		Stats:    ComputeStats(pkgs),
	}, http.StatusOK)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	pkg, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, "pages/packages/detail", pkg.Name, pkg, http.StatusOK)
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "pages/packages/form", "Add Package", formPage{Errors: shared.FormErrors{}, Action: basePath + "/new"}, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	input, errs := form.Validate(h.validator)
	if errs.Any() {
		h.view.Render(w, r, "pages/packages/form", "Add Package", formPage{Form: form, Errors: errs, Action: basePath + "/new"}, http.StatusUnprocessableEntity)
		return
	}
	if _, err := h.repo.Create(r.Context(), input); err != nil {
		if h.view.HandleBackendError(w, r, err, "create package failed") {
			return
		}
		errs.Add("general", backend.Message(err, "Failed to add package"))
		h.view.Render(w, r, "pages/packages/form", "Add Package", formPage{Form: form, Errors: errs, Action: basePath + "/new"}, http.StatusBadGateway)
		return
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", fmt.Sprintf("Package %q added successfully", input.Name))
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	pkg, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, "pages/packages/form", "Edit Package", formPage{
		Package: pkg,
		Form:    FormFromPackage(pkg),
		Errors:  shared.FormErrors{},
		Action:  basePath + "/" + pkg.ID + "/edit",
	}, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	page := formPage{Package: &Package{ID: id, Name: form.Name}, Form: form, Action: basePath + "/" + id + "/edit"}
	input, errs := form.Validate(h.validator)
	page.Errors = errs
	if errs.Any() {
		h.view.Render(w, r, "pages/packages/form", "Edit Package", page, http.StatusUnprocessableEntity)
		return
	}
	if _, err := h.repo.Update(r.Context(), id, input); err != nil {
		if h.view.HandleBackendError(w, r, err, "update package failed", slog.String("id", id)) {
			return
		}
		errs.Add("general", backend.Message(err, "Failed to update package"))
		h.view.Render(w, r, "pages/packages/form", "Edit Package", page, http.StatusBadGateway)
		return
	}
	h.view.RedirectWithFlash(w, r, basePath+"/"+id, "success", "Package updated successfully")
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	pkg, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Confirm(w, r, view.ConfirmPage{
		Title:       "Delete Package",
		Message:     fmt.Sprintf("Are you sure you want to delete %q package?", pkg.Name),
		Action:      basePath + "/" + pkg.ID + "/delete",
		ActionLabel: "Delete",
		CancelHref:  basePath,
		Danger:      true,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, basePath, http.StatusSeeOther)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if h.view.HandleBackendError(w, r, err, "delete package failed", slog.String("id", id)) {
			return
		}
		h.view.RedirectWithFlash(w, r, basePath, "error", "Failed to delete package")
		return
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", "Package deleted successfully")
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Package, bool) {
	id := chi.URLParam(r, "id")
	pkg, err := h.repo.Get(r.Context(), id)
	if err == nil {
		return pkg, true
	}
	if errors.Is(err, shared.ErrNotFound) {
		h.view.NotFound(w, r, view.NotFoundPage{Resource: "Package", BackHref: basePath, BackLabel: "Back to packages"})
		return nil, false
	}
	if h.view.HandleBackendError(w, r, err, "get package failed", slog.String("id", id)) {
		return nil, false
	}
	h.view.RedirectWithFlash(w, r, basePath, "error", "Failed to load package")
	return nil, false
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) (Form, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return Form{}, false
	}
	return Form{
		Name:        r.PostFormValue("name"),
		Price:       r.PostFormValue("price"),
		Speed:       r.PostFormValue("speed"),
		Description: r.PostFormValue("description"),
	}, true
}
