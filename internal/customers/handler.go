package customers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/platform/httpx"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
)

const basePath = "/customers"

// Handler serves the customer screens.
type Handler struct {
	logger    *slog.Logger
	repo      Repository
	view      view.Responder
	validator *shared.Validator
	now       func() time.Time
	onChange  func(r *http.Request)
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides the time source used for the default activation date.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithChangeHook runs after every successful write, e.g. to drop cached
// dashboard figures.
func WithChangeHook(fn func(r *http.Request)) Option {
	return func(h *Handler) { h.onChange = fn }
}

// NewHandler builds the handler.
func NewHandler(logger *slog.Logger, repo Repository, responder view.Responder, validator *shared.Validator, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger, repo: repo, view: responder, validator: validator, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type listPage struct {
	List      view.ListState
	Stats     []StatCard
	Customers []Customer
	Statuses  []string
	Failed    bool
}

type wizardPage struct {
	Mode     Mode
	Action   string
	Cancel   string
	Steps    []Step
	Step     int
	Form     Form
	Errors   shared.FormErrors
	Catalog  *Catalog
	Customer *Customer
}

// Last reports whether the wizard is on its final step.
func (p wizardPage) Last() bool { return p.Step == len(p.Steps)-1 }

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	state := view.NewListState(r, SortKeys, "status")
	data := listPage{List: state, Statuses: StatusFilters}
	page, err := h.repo.List(r.Context(), ListParams{
		Page:   state.Query.Page,
		Limit:  shared.DefaultPerPage,
		Search: state.Query.Search,
		Status: state.Filter("status"),
	})
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "list customers failed") {
			return
		}
		h.view.Flash(r, "error", "Failed to fetch customers")
		data.Failed = true
		data.List.Paginate(0)
		h.view.Render(w, r, "pages/customers/list", "Customers", data, http.StatusOK)
		return
	}
	data.List.Pagination = page.Pagination.Pagination()
	data.List.Query.Page = data.List.Pagination.Page
	data.Stats = Summarize(page.Data, page.Pagination.TotalCount, h.now())
	data.Customers = Refine(page.Data, state.Query.Search, state.Query.Sort)
	h.view.Render(w, r, "pages/customers/list", "Customers", data, http.StatusOK)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, "pages/customers/detail", c.Name, c, http.StatusOK)
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	page := wizardPage{Mode: ModeCreate, Action: basePath + "/new", Cancel: basePath, Steps: Steps, Errors: shared.FormErrors{}}
	page.Catalog = h.catalog(r)
	h.view.Render(w, r, "pages/customers/wizard", "Add Customer", page, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	page := wizardPage{Mode: ModeCreate, Action: basePath + "/new", Cancel: basePath, Steps: Steps}
	if !h.advance(w, r, &page, "Add Customer") {
		return
	}
	created, err := h.repo.Create(r.Context(), page.Form.CreateInput())
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "create customer failed") {
			return
		}
		page.Errors.Add("general", backend.Message(err, "Failed to add customer"))
		page.Catalog = h.catalog(r)
		h.view.Render(w, r, "pages/customers/wizard", "Add Customer", page, http.StatusBadGateway)
		return
	}
	h.changed(r)
	name := page.Form.Normalize().Name
	if created != nil && created.Name != "" {
		name = created.Name
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", fmt.Sprintf("Customer %s added successfully", name))
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	form := FormFromCustomer(c)
	if form.ConnectionStartDate == "" {
		form.ConnectionStartDate = h.now().In(shared.DateLocation).Format(shared.DateInputLayout)
	}
	page := wizardPage{
		Mode:     ModeEdit,
		Action:   basePath + "/" + c.ID + "/edit",
		Cancel:   basePath + "/" + c.ID,
		Steps:    Steps,
		Form:     form,
		Errors:   shared.FormErrors{},
		Customer: c,
	}
	page.Catalog = h.catalog(r)
	h.view.Render(w, r, "pages/customers/wizard", "Edit Customer", page, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page := wizardPage{
		Mode:     ModeEdit,
		Action:   basePath + "/" + id + "/edit",
		Cancel:   basePath + "/" + id,
		Steps:    Steps,
		Customer: &Customer{ID: id},
	}
	if !h.advance(w, r, &page, "Edit Customer") {
		return
	}
	input, err := page.Form.UpdateInput()
	if err == nil {
		_, err = h.repo.Update(r.Context(), id, input)
	}
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "update customer failed", slog.String("id", id)) {
			return
		}
		page.Errors.Add("general", backend.Message(err, "Failed to update customer"))
		page.Catalog = h.catalog(r)
		h.view.Render(w, r, "pages/customers/wizard", "Edit Customer", page, http.StatusBadGateway)
		return
	}
	h.changed(r)
	h.view.RedirectWithFlash(w, r, basePath+"/"+id, "success", "Customer updated successfully")
}

// advance moves the wizard one step. It reports true only when the final
// step was submitted and every step validates; otherwise it has already
// rendered the next page.
func (h *Handler) advance(w http.ResponseWriter, r *http.Request, page *wizardPage, title string) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return false
	}
	page.Form = parseForm(r)
	page.Step = StepIndex(r.PostFormValue("step"))
	page.Errors = shared.FormErrors{}
	status := http.StatusOK

	switch r.PostFormValue("nav") {
	case "prev":
		page.Step = max(page.Step-1, 0)
	case "next":
		if errs := page.Form.CheckStep(h.validator, page.Mode, page.Step); errs.Any() {
			page.Errors = errs
			status = http.StatusUnprocessableEntity
		} else {
			page.Step = min(page.Step+1, len(Steps)-1)
		}
	default:
		errs, first := page.Form.CheckThrough(h.validator, page.Mode, len(Steps)-1)
		if first < 0 {
			page.Errors = errs
			return true
		}
		errs.Add("general", SubmitError)
		page.Errors = errs
		page.Step = first
		status = http.StatusUnprocessableEntity
	}
	page.Catalog = h.catalog(r)
	h.view.Render(w, r, "pages/customers/wizard", title, page, status)
	return false
}

type fieldCheck struct {
	Field string `json:"field"`
	Value string `json:"value"`
	Mode  Mode   `json:"mode"`
}

type fieldResult struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// validateField answers the on-change checks the wizard script sends.
func (h *Handler) validateField(w http.ResponseWriter, r *http.Request) {
	var req fieldCheck
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if req.Mode != ModeEdit {
		req.Mode = ModeCreate
	}
	msg := CheckField(h.validator, req.Mode, req.Field, req.Value)
	httpx.JSON(w, http.StatusOK, fieldResult{Field: req.Field, Valid: msg == "", Message: msg})
}

func (h *Handler) confirmStatus(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	action := ToggleAction(*c)
	h.view.Confirm(w, r, view.ConfirmPage{
		Title:       view.Label(action) + " Customer",
		Message:     fmt.Sprintf("Are you sure you want to %s %s?", action, c.Name),
		Action:      basePath + "/" + c.ID + "/status",
		ActionLabel: view.Label(action),
		CancelHref:  basePath,
		Danger:      c.IsActive,
		Hidden:      map[string]string{"active": strconv.FormatBool(!c.IsActive)},
	})
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if r.PostFormValue("confirm") != "yes" {
		http.Redirect(w, r, basePath, http.StatusSeeOther)
		return
	}
	active, err := strconv.ParseBool(r.PostFormValue("active"))
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	action := "deactivate"
	if active {
		action = "activate"
	}
	if err := h.repo.SetActive(r.Context(), id, active); err != nil {
		if h.view.HandleBackendError(w, r, err, "set customer status failed", slog.String("id", id), slog.Bool("active", active)) {
			return
		}
		h.view.RedirectWithFlash(w, r, basePath, "error", fmt.Sprintf("Failed to %s customer", action))
		return
	}
	h.changed(r)
	h.view.RedirectWithFlash(w, r, basePath, "success", fmt.Sprintf("Customer %sd successfully", action))
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Customer, bool) {
	id := chi.URLParam(r, "id")
	c, err := h.repo.Get(r.Context(), id)
	if err == nil {
		return c, true
	}
	if errors.Is(err, shared.ErrNotFound) {
		h.view.NotFound(w, r, view.NotFoundPage{Resource: "Customer", BackHref: basePath, BackLabel: "Back to customers"})
		return nil, false
	}
	if h.view.HandleBackendError(w, r, err, "get customer failed", slog.String("id", id)) {
		return nil, false
	}
	h.view.RedirectWithFlash(w, r, basePath, "error", "Failed to load customer")
	return nil, false
}

// catalog loads the picker options; on failure the wizard still renders
// with empty pickers.
func (h *Handler) catalog(r *http.Request) *Catalog {
	cat, err := h.repo.Catalog(r.Context())
	if err != nil {
		h.logger.Error("load customer form options failed", slog.Any("error", err))
		h.view.Flash(r, "error", "Failed to load form data")
		return &Catalog{}
	}
	return cat
}

func (h *Handler) changed(r *http.Request) {
	if h.onChange != nil {
		h.onChange(r)
	}
}

func parseForm(r *http.Request) Form {
	active, _ := strconv.ParseBool(r.PostFormValue("isActive"))
	return Form{
		Name:                r.PostFormValue("name"),
		Username:            r.PostFormValue("username"),
		Password:            r.PostFormValue("password"),
		NationalID:          r.PostFormValue("nationalId"),
		Mobile:              r.PostFormValue("mobile"),
		Phone:               r.PostFormValue("phone"),
		Email:               r.PostFormValue("email"),
		Address:             r.PostFormValue("address"),
		Plan:                r.PostFormValue("plan"),
		ConnectionType:      r.PostFormValue("connectionType"),
		ConnectionStartDate: r.PostFormValue("connectionStartDate"),
		IsActive:            active,
		OriginalPlan:        r.PostFormValue("originalPlan"),
	}
}
