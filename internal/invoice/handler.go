package invoice

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/netline-isp/isp-console/internal/receipt"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
)

const basePath = "/invoice"

// Handler serves the invoice form and its outputs.
type Handler struct {
	logger    *slog.Logger
	renderer  *Renderer
	view      view.Responder
	validator *shared.Validator
	queue     receipt.Queue
	now       func() time.Time
	draw      func() int
}

// Option configures a Handler.
type Option func(*Handler)

// WithReceiptQueue enables sending the invoice slip to the thermal printer.
func WithReceiptQueue(q receipt.Queue) Option {
	return func(h *Handler) { h.queue = q }
}

// WithClock overrides the invoice and print date source.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithNumberSource overrides the random draw behind invoice numbers.
func WithNumberSource(draw func() int) Option {
	return func(h *Handler) { h.draw = draw }
}

// NewHandler builds the handler.
func NewHandler(logger *slog.Logger, renderer *Renderer, responder view.Responder, validator *shared.Validator, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		logger:    logger,
		renderer:  renderer,
		view:      responder,
		validator: validator,
		now:       time.Now,
		draw:      func() int { return rand.IntN(10000) },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type formPage struct {
	Form   Form
	Errors shared.FormErrors
	Total  string
}

type previewPage struct {
	Invoice   Invoice
	ShareText string
	CanPrint  bool
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	form := NewForm()
	if r.URL.Query().Get("edit") == "1" {
		if inv, ok := h.stored(r); ok {
			form = FormFromInvoice(inv)
		}
	}
	h.renderForm(w, r, form, nil, http.StatusOK)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := parseForm(r)

	if raw := r.PostFormValue("remove"); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil {
			form.RemoveItem(i)
		}
		h.renderForm(w, r, form, nil, http.StatusOK)
		return
	}
	switch r.PostFormValue("action") {
	case "add":
		form.AddItem()
		h.renderForm(w, r, form, nil, http.StatusOK)
		return
	case "recalculate":
		h.renderForm(w, r, form, nil, http.StatusOK)
		return
	}

	inv, errs := form.Validate(h.validator, NumberFrom(h.draw()), h.now())
	if errs.Any() {
		h.renderForm(w, r, form, errs, http.StatusUnprocessableEntity)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.view.SignedOut(w, r)
		return
	}
	if err := sess.SetJSON(SessionKey, inv); err != nil {
		h.logger.Error("store invoice", slog.Any("error", err))
		errs = shared.FormErrors{"general": "Failed to create invoice"}
		h.renderForm(w, r, form, errs, http.StatusInternalServerError)
		return
	}
	h.logger.Info("invoice created", slog.String("number", inv.Number), slog.String("total", inv.Total.StringFixed(2)))
	http.Redirect(w, r, basePath+"/preview", http.StatusSeeOther)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.require(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, "pages/invoice/preview", "Invoice "+inv.Number, previewPage{
		Invoice:   inv,
		ShareText: ShareText(inv),
		CanPrint:  h.queue != nil,
	}, http.StatusOK)
}

func (h *Handler) printDocument(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.require(w, r)
	if !ok {
		return
	}
	html, err := h.renderer.HTML(Document{Invoice: inv, AutoPrint: true, BackHref: basePath + "/preview"})
	if err != nil {
		h.logger.Error("render invoice document", slog.Any("error", err))
		h.view.RedirectWithFlash(w, r, basePath+"/preview", "error", "Failed to prepare invoice for printing")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(html)
}

func (h *Handler) showReceipt(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.require(w, r)
	if !ok {
		return
	}
	page := receipt.Page{
		Receipt:   h.renderer.Receipt(inv, h.now()),
		BackHref:  basePath + "/preview",
		AutoPrint: r.URL.Query().Get("print") == "1",
	}
	if h.queue != nil {
		page.PrintAction = basePath + "/receipt/print"
	}
	h.view.Render(w, r, "documents/receipt", inv.Number, page, http.StatusOK)
}

func (h *Handler) printReceipt(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.require(w, r)
	if !ok {
		return
	}
	back := basePath + "/preview"
	if h.queue == nil {
		h.view.RedirectWithFlash(w, r, back, "error", "Receipt printer is not configured")
		return
	}
	jobID, err := h.queue.PrintReceipt(r.Context(), h.renderer.Receipt(inv, h.now()))
	if err != nil {
		if errors.Is(err, receipt.ErrNoPrinter) {
			h.view.RedirectWithFlash(w, r, back, "error", "Receipt printer is not configured")
			return
		}
		h.logger.Error("queue invoice receipt failed", slog.String("number", inv.Number), slog.Any("error", err))
		h.view.RedirectWithFlash(w, r, back, "error", "Failed to send receipt to printer")
		return
	}
	h.logger.Info("invoice receipt queued", slog.String("number", inv.Number), slog.String("job", jobID))
	h.view.RedirectWithFlash(w, r, back, "success", "Receipt sent to printer")
}

func (h *Handler) share(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.require(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(ShareText(inv)))
}

func (h *Handler) downloadPDF(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.require(w, r)
	if !ok {
		return
	}
	pdf, err := h.renderer.PDF(r.Context(), inv)
	if err != nil {
		h.logger.Error("generate invoice pdf", slog.String("number", inv.Number), slog.Any("error", err))
		h.view.RedirectWithFlash(w, r, basePath+"/preview", "error", "Failed to generate PDF. Please try again.")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+inv.Filename()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, form Form, errs shared.FormErrors, status int) {
	h.view.Render(w, r, "pages/invoice/form", "Create Invoice", formPage{
		Form:   form,
		Errors: errs,
		Total:  form.Total().StringFixed(2),
	}, status)
}

func (h *Handler) stored(r *http.Request) (Invoice, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return Invoice{}, false
	}
	var inv Invoice
	ok, err := sess.GetJSON(SessionKey, &inv)
	if err != nil {
		h.logger.Warn("decode stored invoice", slog.Any("error", err))
		return Invoice{}, false
	}
	return inv, ok
}

// require loads the stored invoice or sends the user back to the form.
func (h *Handler) require(w http.ResponseWriter, r *http.Request) (Invoice, bool) {
	inv, ok := h.stored(r)
	if !ok {
		http.Redirect(w, r, basePath, http.StatusSeeOther)
		return Invoice{}, false
	}
	return inv, true
}

func parseForm(r *http.Request) Form {
	f := Form{
		CustomerName:   r.PostFormValue("customerName"),
		ServiceCharges: r.PostFormValue("serviceCharges"),
		PackageCharges: r.PostFormValue("packageCharges"),
	}
	names := r.PostForm["itemName"]
	prices := r.PostForm["itemPrice"]
	warranties := r.PostForm["itemWarranty"]
	for i := range names {
		it := ItemForm{Name: names[i]}
		if i < len(prices) {
			it.Price = prices[i]
		}
		if i < len(warranties) {
			it.Warranty = warranties[i]
		}
		f.Items = append(f.Items, it)
	}
	if len(f.Items) == 0 {
		f.Items = []ItemForm{{}}
	}
	return f
}
