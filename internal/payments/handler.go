package payments

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/receipt"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
)

const basePath = "/payments"

// Handler serves the payment screens and receipts.
type Handler struct {
	logger    *slog.Logger
	repo      Repository
	view      view.Responder
	validator *shared.Validator
	queue     receipt.Queue
	footer    receipt.Footer
	now       func() time.Time
	onChange  func(r *http.Request)
}

// Option configures a Handler.
type Option func(*Handler)

// WithReceiptQueue enables sending receipts to the thermal printer.
func WithReceiptQueue(q receipt.Queue) Option {
	return func(h *Handler) { h.queue = q }
}

// WithFooter sets the office contact printed on receipts.
func WithFooter(f receipt.Footer) Option {
	return func(h *Handler) { h.footer = f }
}

// WithClock overrides the time source for the default range and receipt date.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithChangeHook runs after a payment is marked paid.
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
	Payments  []Payment
	Stats     Stats
	StartDate string
	EndDate   string
	Statuses  []string
	CanPrint  bool
	Failed    bool
}

type markPaidPage struct {
	Payment    Payment
	Form       Form
	Errors     shared.FormErrors
	Methods    []MethodOption
	Collectors []Collector
	Action     string
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	state := view.NewListState(r, nil, "status", "startDate", "endDate")
	first, last := shared.MonthRange(h.now())
	start, end := state.Filter("startDate"), state.Filter("endDate")
	if start == "all" {
		start = first
	}
	if end == "all" {
		end = last
	}
	state.Query.Filters["startDate"], state.Query.Filters["endDate"] = start, end

	data := listPage{List: state, StartDate: start, EndDate: end, Statuses: StatusFilters, CanPrint: h.queue != nil}
	res, err := h.repo.List(r.Context(), ListParams{
		StartDate: start,
		EndDate:   end,
		Page:      state.Query.Page,
		Limit:     shared.DefaultPerPage,
		Status:    state.Filter("status"),
		Search:    state.Query.Search,
	})
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "list payments failed") {
			return
		}
		h.view.Flash(r, "error", "Failed to load payments data")
		data.Failed = true
		data.List.Paginate(0)
		h.view.Render(w, r, "pages/payments/list", "Payments", data, http.StatusOK)
		return
	}
	visible := VisibleTo(shared.CurrentUserFromContext(r.Context()), res.Data)
	if err := remember(shared.SessionFromContext(r.Context()), visible); err != nil {
		h.logger.Warn("remember payments page failed", slog.Any("error", err))
	}
	data.Payments = visible
	data.Stats = EffectiveStats(res.Stats, visible)
	data.List.Pagination = res.Pagination.Pagination()
	data.List.Query.Page = data.List.Pagination.Page
	h.view.Render(w, r, "pages/payments/list", "Payments", data, http.StatusOK)
}

func (h *Handler) markPaidForm(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	if p.IsPaid() {
		h.view.RedirectWithFlash(w, r, basePath, "info", "Payment is already marked as paid")
		return
	}
	page := h.markPaidPage(r, p)
	page.Form = Form{PaymentMethod: "cash", ReceivedBy: currentUserID(r)}
	h.view.Render(w, r, "pages/payments/mark_paid", "Mark as Paid", page, http.StatusOK)
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}
	if p.IsPaid() {
		h.view.RedirectWithFlash(w, r, basePath, "info", "Payment is already marked as paid")
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := Form{
		PaymentMethod:  r.PostFormValue("paymentMethod"),
		TransactionRef: r.PostFormValue("transactionRef"),
		Notes:          r.PostFormValue("notes"),
		ReceivedBy:     r.PostFormValue("receivedBy"),
	}
	user := shared.CurrentUserFromContext(r.Context())
	if user == nil || !user.IsAdmin() || form.ReceivedBy == "" {
		form.ReceivedBy = currentUserID(r)
	}
	input, errs := form.Validate(h.validator)
	if errs.Any() {
		page := h.markPaidPage(r, p)
		page.Form, page.Errors = form, errs
		h.view.Render(w, r, "pages/payments/mark_paid", "Mark as Paid", page, http.StatusUnprocessableEntity)
		return
	}
	if err := h.repo.MarkPaid(r.Context(), p.ID, input); err != nil {
		if h.view.HandleBackendError(w, r, err, "mark payment paid failed", slog.String("id", p.ID)) {
			return
		}
		page := h.markPaidPage(r, p)
		page.Form, page.Errors = form, errs
		page.Errors.Add("general", backend.Message(err, "Failed to update payment"))
		h.view.Render(w, r, "pages/payments/mark_paid", "Mark as Paid", page, http.StatusBadGateway)
		return
	}
	p.Status = StatusPaid
	p.PaymentMethod, p.TransactionRef, p.Notes = input.PaymentMethod, input.TransactionRef, input.Notes
	p.ReceivedBy = backend.Ref(input.ReceivedBy)
	p.PaymentDate = h.now().Unix()
	if err := replace(shared.SessionFromContext(r.Context()), p); err != nil {
		h.logger.Warn("update payments snapshot failed", slog.String("id", p.ID), slog.Any("error", err))
	}
	if h.onChange != nil {
		h.onChange(r)
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", "Payment marked as paid successfully")
}

func (h *Handler) markPaidPage(r *http.Request, p Payment) markPaidPage {
	page := markPaidPage{Payment: p, Methods: MethodOptions(), Errors: shared.FormErrors{}, Action: basePath + "/" + p.ID + "/mark-paid"}
	if user := shared.CurrentUserFromContext(r.Context()); user != nil && user.IsAdmin() {
		collectors, err := h.repo.Collectors(r.Context())
		if err != nil {
			h.logger.Error("load collectors failed", slog.Any("error", err))
			h.view.Flash(r, "error", "Failed to load employees")
		}
		page.Collectors = collectors
	}
	return page
}

func (h *Handler) showReceipt(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPaid(w, r)
	if !ok {
		return
	}
	page := receipt.Page{
		Receipt:   BuildReceipt(p, h.now(), h.footer),
		BackHref:  basePath,
		AutoPrint: r.URL.Query().Get("print") == "1",
	}
	if h.queue != nil {
		page.PrintAction = basePath + "/" + p.ID + "/receipt/print"
	}
	h.view.Render(w, r, "documents/receipt", p.Customer.Name, page, http.StatusOK)
}

func (h *Handler) printReceipt(w http.ResponseWriter, r *http.Request) {
	p, ok := h.loadPaid(w, r)
	if !ok {
		return
	}
	if h.queue == nil {
		h.view.RedirectWithFlash(w, r, basePath, "error", "Receipt printer is not configured")
		return
	}
	jobID, err := h.queue.PrintReceipt(r.Context(), BuildReceipt(p, h.now(), h.footer))
	if err != nil {
		if errors.Is(err, receipt.ErrNoPrinter) {
			h.view.RedirectWithFlash(w, r, basePath, "error", "Receipt printer is not configured")
			return
		}
		h.logger.Error("queue payment receipt failed", slog.String("id", p.ID), slog.Any("error", err))
		h.view.RedirectWithFlash(w, r, basePath, "error", "Failed to send receipt to printer")
		return
	}
	h.logger.Info("payment receipt queued", slog.String("id", p.ID), slog.String("job", jobID))
	h.view.RedirectWithFlash(w, r, basePath, "success", "Receipt sent to printer")
}

// load resolves the payment from the rows last listed in this session.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (Payment, bool) {
	p, ok := lookup(shared.SessionFromContext(r.Context()), chi.URLParam(r, "id"))
	if !ok {
		h.view.NotFound(w, r, view.NotFoundPage{Resource: "Payment", BackHref: basePath, BackLabel: "Back to payments"})
		return Payment{}, false
	}
	return p, true
}

func (h *Handler) loadPaid(w http.ResponseWriter, r *http.Request) (Payment, bool) {
	p, ok := h.load(w, r)
	if !ok {
		return Payment{}, false
	}
	if !p.IsPaid() {
		h.view.RedirectWithFlash(w, r, basePath, "warning", "Receipt is available once the payment is marked as paid")
		return Payment{}, false
	}
	return p, true
}

func currentUserID(r *http.Request) string {
	if u := shared.CurrentUserFromContext(r.Context()); u != nil {
		return u.ID
	}
	return ""
}
