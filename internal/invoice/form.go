package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/netline-isp/isp-console/internal/shared"
)

// ItemForm is one item row as typed.
type ItemForm struct {
	Name     string
	Price    string
	Warranty string
}

// Form is the raw invoice form.
type Form struct {
	CustomerName   string `form:"customerName" validate:"required"`
	ServiceCharges string `form:"serviceCharges"`
	PackageCharges string `form:"packageCharges"`
	Items          []ItemForm
}

var messages = shared.Messages{
	"customerName": "Please enter customer name",
}

// NewForm is the empty form with zero charges and one blank item.
func NewForm() Form {
	return Form{ServiceCharges: "0", PackageCharges: "0", Items: []ItemForm{{}}}
}

// FormFromInvoice reopens a created invoice for editing.
func FormFromInvoice(inv Invoice) Form {
	f := Form{
		CustomerName:   inv.CustomerName,
		ServiceCharges: inv.ServiceCharges.String(),
		PackageCharges: inv.PackageCharges.String(),
	}
	for _, it := range inv.Items {
		f.Items = append(f.Items, ItemForm{Name: it.Name, Price: it.Price.String(), Warranty: it.Warranty})
	}
	if len(f.Items) == 0 {
		f.Items = []ItemForm{{}}
	}
	return f
}

// maxAmount bounds a typed amount. Larger values and exponent notation
// count as unparsable.
var maxAmount = decimal.New(1, 12)

// ParseAmount reads a typed amount. Anything unparsable counts as zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero
	}
	return d
}

// AddItem appends a blank item row.
func (f *Form) AddItem() {
	f.Items = append(f.Items, ItemForm{})
}

// RemoveItem drops row i. The last remaining row is kept.
func (f *Form) RemoveItem(i int) {
	if len(f.Items) <= 1 || i < 0 || i >= len(f.Items) {
		return
	}
	f.Items = append(f.Items[:i], f.Items[i+1:]...)
}

// Total recomputes the grand total from the typed values.
func (f Form) Total() decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(f.Items))
	for _, it := range f.Items {
		prices = append(prices, ParseAmount(it.Price))
	}
	return Sum(ParseAmount(f.ServiceCharges), ParseAmount(f.PackageCharges), prices...)
}

// Validate checks the form and builds the invoice stamped with number and date.
func (f Form) Validate(v *shared.Validator, number string, now time.Time) (Invoice, shared.FormErrors) {
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	errs := v.Check(f, messages)
	inv := Invoice{
		Number:         number,
		Date:           now.Format(shared.DisplayDateLayout),
		CustomerName:   f.CustomerName,
		ServiceCharges: ParseAmount(f.ServiceCharges),
		PackageCharges: ParseAmount(f.PackageCharges),
		Total:          f.Total(),
	}
	for _, it := range f.Items {
		inv.Items = append(inv.Items, Item{
			Name:     strings.TrimSpace(it.Name),
			Price:    ParseAmount(it.Price),
			Warranty: strings.TrimSpace(it.Warranty),
		})
	}
	return inv, errs
}

// NumberFrom formats an invoice number from a draw in [0, 10000).
func NumberFrom(n int) string {
	return fmt.Sprintf("INV-%04d", n%10000)
}
