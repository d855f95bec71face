package employees

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

const basePath = "/employees"

// Handler serves the employee screens. Every route is admin only.
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
	List      view.ListState
	Employees []Employee
	Stats     Stats
}

type formPage struct {
	Employee *Employee
	Form     Form
	Errors   shared.FormErrors
	Action   string
	Roles    []string
	Creating bool
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	state := view.NewListState(r, SortKeys)
	all, err := h.repo.List(r.Context())
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "list employees failed") {
			return
		}
		h.view.Flash(r, "error", "Failed to load employee data")
	}
	visible := Search(all, state.Query.Search, state.Query.Sort)
	page := state.Paginate(len(visible))
	h.view.Render(w, r, "pages/employees/list", "Employees", listPage{
		List:      state,
		Employees: shared.Paginate(visible, page),
		Stats:     ComputeStats(all),
	}, http.StatusOK)
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "pages/employees/form", "Add Employee", formPage{
		Form:     Form{Role: "employee"},
		Errors:   shared.FormErrors{},
		Action:   basePath + "/new",
		Roles:    Roles,
		Creating: true,
	}, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form := parseForm(r)
	page := formPage{Form: form, Action: basePath + "/new", Roles: Roles, Creating: true}
	input, errs := form.Validate(h.validator, true)
	page.Errors = errs
	if errs.Any() {
		h.view.Render(w, r, "pages/employees/form", "Add Employee", page, http.StatusUnprocessableEntity)
		return
	}
	if _, err := h.repo.Create(r.Context(), input); err != nil {
		if h.view.HandleBackendError(w, r, err, "create employee failed") {
			return
		}
		errs.Add("general", backend.Message(err, "Failed to add employee"))
		page.Form.Password = ""
		h.view.Render(w, r, "pages/employees/form", "Add Employee", page, http.StatusBadGateway)
		return
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", "Employee added successfully")
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, "pages/employees/form", "Edit Employee", formPage{
		Employee: emp,
		Form:     FormFromEmployee(emp),
		Errors:   shared.FormErrors{},
		Action:   basePath + "/" + emp.ID + "/edit",
		Roles:    Roles,
	}, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := parseForm(r)
	page := formPage{Employee: &Employee{ID: id}, Form: form, Action: basePath + "/" + id + "/edit", Roles: Roles}
	input, errs := form.Validate(h.validator, false)
	page.Errors = errs
	page.Form.Password = ""
	if errs.Any() {
		h.view.Render(w, r, "pages/employees/form", "Edit Employee", page, http.StatusUnprocessableEntity)
		return
	}
	if _, err := h.repo.Update(r.Context(), id, input); err != nil {
		if h.view.HandleBackendError(w, r, err, "update employee failed", slog.String("id", id)) {
			return
		}
		errs.Add("general", backend.Message(err, "Failed to update employee"))
		h.view.Render(w, r, "pages/employees/form", "Edit Employee", page, http.StatusBadGateway)
		return
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", "Employee updated successfully")
}

func (h *Handler) confirmStatus(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.load(w, r)
	if !ok {
		return
	}
	action := ToggleAction(*emp)
	h.view.Confirm(w, r, view.ConfirmPage{
		Title:       "Confirm",
		Message:     fmt.Sprintf("Are you sure you want to %s %s %s?", action, emp.FirstName, emp.LastName),
		Action:      basePath + "/" + emp.ID + "/status",
		ActionLabel: view.Label(action),
		CancelHref:  basePath,
		Danger:      emp.IsActive,
	})
}

// toggleStatus re-reads the account so the action follows the current
// backend state, not whatever the confirm page showed.
func (h *Handler) toggleStatus(w http.ResponseWriter, r *http.Request) {
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, basePath, http.StatusSeeOther)
		return
	}
	emp, ok := h.load(w, r)
	if !ok {
		return
	}
	action := ToggleAction(*emp)
	var err error
	if emp.IsActive {
		err = h.repo.Delete(r.Context(), emp.ID)
	} else {
		err = h.repo.Restore(r.Context(), emp.ID)
	}
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "toggle employee failed", slog.String("id", emp.ID), slog.String("action", action)) {
			return
		}
		h.view.RedirectWithFlash(w, r, basePath, "error", backend.Message(err, fmt.Sprintf("Failed to %s employee", action)))
		return
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", fmt.Sprintf("Employee %sd successfully", action))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Employee, bool) {
	id := chi.URLParam(r, "id")
	emp, err := h.repo.Get(r.Context(), id)
	if err == nil {
		return emp, true
	}
	if errors.Is(err, shared.ErrNotFound) {
		h.view.NotFound(w, r, view.NotFoundPage{Resource: "Employee", BackHref: basePath, BackLabel: "Back to employees"})
		return nil, false
	}
	if h.view.HandleBackendError(w, r, err, "get employee failed", slog.String("id", id)) {
		return nil, false
	}
	h.view.RedirectWithFlash(w, r, basePath, "error", backend.Message(err, "Failed to fetch employee"))
	return nil, false
}

func parseForm(r *http.Request) Form {
	return Form{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		Role:      r.PostFormValue("role"),
		Password:  r.PostFormValue("password"),
	}
}
