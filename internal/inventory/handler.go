package inventory

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

const basePath = "/inventory"

// Handler serves the stock screens.
type Handler struct {
	logger    *slog.Logger
	repo      Repository
	view      view.Responder
	validator *shared.Validator
}

// NewHandler builds the handler.
func NewHandler(logger *slog.Logger, repo Repository, responder view.Responder, validator *shared.Validator) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, repo: repo, view: responder, validator: validator}
}

type listPage struct {
	List       view.ListState
	Items      []Item
	Stats      Stats
	LowStock   []Item
	Categories []string
}

type formPage struct {
	Item       *Item
	Form       Form
	Errors     shared.FormErrors
	Action     string
	Categories []string
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	state := view.NewListState(r, SortKeys, "category", "stock")
	items, err := h.repo.List(r.Context())
	if err != nil {
		if h.view.HandleBackendError(w, r, err, "list inventory failed") {
			return
		}
		h.view.Flash(r, "error", "Failed to load inventory")
	}
	visible := Search(items, Filter{
		Search:   state.Query.Search,
		Category: state.Filter("category"),
		Stock:    state.Filter("stock"),
	}, state.Query.Sort)
	page := state.Paginate(len(visible))
	h.view.Render(w, r, "pages/inventory/list", "Inventory", listPage{
		List:       state,
		Items:      shared.Paginate(visible, page),
		Stats:      ComputeStats(items),
		LowStock:   LowStock(items),
		Categories: Categories,
	}, http.StatusOK)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, "pages/inventory/detail", item.Name, item, http.StatusOK)
}

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, "pages/inventory/form", "Add Item", formPage{
		Form:       Form{Category: "router", Quantity: "0", MinQuantity: "0", UnitPrice: "0"},
		Errors:     shared.FormErrors{},
		Action:     basePath + "/new",
		Categories: Categories,
	}, http.StatusOK)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	form, ok := parseForm(w, r)
	if !ok {
		return
	}
	page := formPage{Form: form, Action: basePath + "/new", Categories: Categories}
	input, errs := form.Validate(h.validator)
	page.Errors = errs
	if errs.Any() {
		h.view.Render(w, r, "pages/inventory/form", "Add Item", page, http.StatusUnprocessableEntity)
		return
	}
	if _, err := h.repo.Create(r.Context(), input); err != nil {
		if h.view.HandleBackendError(w, r, err, "create inventory item failed") {
			return
		}
		errs.Add("general", backend.Message(err, "Failed to add item"))
		h.view.Render(w, r, "pages/inventory/form", "Add Item", page, http.StatusBadGateway)
		return
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", "Item added successfully")
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Render(w, r, "pages/inventory/form", "Edit Item", formPage{
		Item:       item,
		Form:       FormFromItem(item),
		Errors:     shared.FormErrors{},
		Action:     basePath + "/" + item.ID + "/edit",
		Categories: Categories,
	}, http.StatusOK)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form, ok := parseForm(w, r)
	if !ok {
		return
	}
	page := formPage{Item: &Item{ID: id}, Form: form, Action: basePath + "/" + id + "/edit", Categories: Categories}
	input, errs := form.Validate(h.validator)
	page.Errors = errs
	if errs.Any() {
		h.view.Render(w, r, "pages/inventory/form", "Edit Item", page, http.StatusUnprocessableEntity)
		return
	}
	if _, err := h.repo.Update(r.Context(), id, input); err != nil {
		if h.view.HandleBackendError(w, r, err, "update inventory item failed", slog.String("id", id)) {
			return
		}
		errs.Add("general", backend.Message(err, "Failed to update item"))
		h.view.Render(w, r, "pages/inventory/form", "Edit Item", page, http.StatusBadGateway)
		return
	}
	h.view.RedirectWithFlash(w, r, basePath+"/"+id, "success", "Item updated successfully")
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}
	h.view.Confirm(w, r, view.ConfirmPage{
		Title:       "Delete Item",
		Message:     fmt.Sprintf("Are you sure you want to delete %q?", item.Name),
		Action:      basePath + "/" + item.ID + "/delete",
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
		if h.view.HandleBackendError(w, r, err, "delete inventory item failed", slog.String("id", id)) {
			return
		}
		h.view.RedirectWithFlash(w, r, basePath, "error", "Failed to delete item")
		return
	}
	h.view.RedirectWithFlash(w, r, basePath, "success", "Item deleted successfully")
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Item, bool) {
	id := chi.URLParam(r, "id")
	item, err := h.repo.Get(r.Context(), id)
	if err == nil {
		return item, true
	}
	if errors.Is(err, shared.ErrNotFound) {
		h.view.NotFound(w, r, view.NotFoundPage{Resource: "Item", BackHref: basePath, BackLabel: "Back to inventory"})
		return nil, false
	}
	if h.view.HandleBackendError(w, r, err, "get inventory item failed", slog.String("id", id)) {
		return nil, false
	}
	h.view.RedirectWithFlash(w, r, basePath, "error", "Failed to load item details")
	return nil, false
}

func parseForm(w http.ResponseWriter, r *http.Request) (Form, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return Form{}, false
	}
	return Form{
		Name:            r.PostFormValue("name"),
		Description:     r.PostFormValue("description"),
		Category:        r.PostFormValue("category"),
		Brand:           r.PostFormValue("brand"),
		Model:           r.PostFormValue("model"),
		Quantity:        r.PostFormValue("quantity"),
		MinQuantity:     r.PostFormValue("minQuantity"),
		UnitPrice:       r.PostFormValue("unitPrice"),
		Location:        r.PostFormValue("location"),
		Supplier:        r.PostFormValue("supplier"),
		SupplierContact: r.PostFormValue("supplierContact"),
		PurchaseDate:    r.PostFormValue("purchaseDate"),
		WarrantyExpiry:  r.PostFormValue("warrantyExpiry"),
		SerialNumber:    r.PostFormValue("serialNumber"),
		Notes:           r.PostFormValue("notes"),
	}, true
}
