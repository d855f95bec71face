package inventory

import (
	"strconv"
	"strings"

	"github.com/netline-isp/isp-console/internal/shared"
)

// Form is the posted inventory form.
type Form struct {
	Name            string `form:"name" validate:"required"`
	Description     string `form:"description" validate:"max=500"`
	Category        string `form:"category" validate:"required,oneof=router modem cable connector antenna power_supply other"`
	Brand           string `form:"brand"`
	Model           string `form:"model"`
	Quantity        string `form:"quantity" validate:"required,number"`
	MinQuantity     string `form:"minQuantity" validate:"required,number"`
	UnitPrice       string `form:"unitPrice" validate:"required,numeric"`
	Location        string `form:"location"`
	Supplier        string `form:"supplier"`
	SupplierContact string `form:"supplierContact"`
	PurchaseDate    string `form:"purchaseDate" validate:"omitempty,datetime=2006-01-02"`
	WarrantyExpiry  string `form:"warrantyExpiry" validate:"omitempty,datetime=2006-01-02"`
	SerialNumber    string `form:"serialNumber"`
	Notes           string `form:"notes"`
}

var messages = shared.Messages{
	"name":           "Name is required",
	"description":    "Description too long (max 500 chars)",
	"category":       "Please select a valid category",
	"quantity":       "Quantity must be a whole number of 0 or more",
	"minQuantity":    "Minimum quantity must be a whole number of 0 or more",
	"unitPrice":      "Unit price must be 0 or more",
	"purchaseDate":   "Invalid purchase date",
	"warrantyExpiry": "Invalid warranty expiry date",
}

// FormFromItem pre-populates the edit form.
func FormFromItem(it *Item) Form {
	return Form{
		Name:            it.Name,
		Description:     it.Description,
		Category:        it.Category,
		Brand:           it.Brand,
		Model:           it.Model,
		Quantity:        strconv.Itoa(it.Quantity),
		MinQuantity:     strconv.Itoa(it.MinQuantity),
		UnitPrice:       strconv.FormatFloat(it.UnitPrice, 'f', -1, 64),
		Location:        it.Location,
		Supplier:        it.Supplier,
		SupplierContact: it.SupplierContact,
		PurchaseDate:    shared.UnixToDateInput(it.PurchaseDate),
		WarrantyExpiry:  shared.UnixToDateInput(it.WarrantyExpiry),
		SerialNumber:    it.SerialNumber,
		Notes:           it.Notes,
	}
}

// Validate checks the form and builds the payload.
func (f Form) Validate(v *shared.Validator) (Input, shared.FormErrors) {
	f.Name = strings.TrimSpace(f.Name)
	f.Quantity = strings.TrimSpace(f.Quantity)
	f.MinQuantity = strings.TrimSpace(f.MinQuantity)
	f.UnitPrice = strings.TrimSpace(f.UnitPrice)
	errs := v.Check(f, messages)

	qty, err := strconv.Atoi(f.Quantity)
	if err != nil || qty < 0 {
		errs.Add("quantity", messages["quantity"])
	}
	minQty, err := strconv.Atoi(f.MinQuantity)
	if err != nil || minQty < 0 {
		errs.Add("minQuantity", messages["minQuantity"])
	}
	price, err := strconv.ParseFloat(f.UnitPrice, 64)
	if err != nil || price < 0 {
		errs.Add("unitPrice", messages["unitPrice"])
	}

	return Input{
		Name:            f.Name,
		Description:     strings.TrimSpace(f.Description),
		Category:        f.Category,
		Brand:           strings.TrimSpace(f.Brand),
		Model:           strings.TrimSpace(f.Model),
		Quantity:        qty,
		MinQuantity:     minQty,
		UnitPrice:       price,
		Location:        strings.TrimSpace(f.Location),
		Supplier:        strings.TrimSpace(f.Supplier),
		SupplierContact: strings.TrimSpace(f.SupplierContact),
		PurchaseDate:    f.PurchaseDate,
		WarrantyExpiry:  f.WarrantyExpiry,
		SerialNumber:    strings.TrimSpace(f.SerialNumber),
		Notes:           strings.TrimSpace(f.Notes),
	}, errs
}
