// Package invoice builds walk-in invoices. An invoice lives only in the
// user's session between the form and its outputs; it is never sent to the
// backend.
package invoice

import (
	"github.com/shopspring/decimal"
)

// SessionKey holds the last created invoice.
const SessionKey = "invoice"

// Item is one inventory line of an invoice.
type Item struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Warranty string          `json:"warranty"`
}

// WarrantyDays renders the warranty as "N days", with "0 days" when blank.
func (i Item) WarrantyDays() string {
	if i.Warranty == "" {
		return "0 days"
	}
	return i.Warranty + " days"
}

// Invoice is the value every output is rendered from.
type Invoice struct {
	Number         string          `json:"invoiceNumber"`
	Date           string          `json:"date"`
	CustomerName   string          `json:"customerName"`
	ServiceCharges decimal.Decimal `json:"serviceCharges"`
	PackageCharges decimal.Decimal `json:"packageCharges"`
	Items          []Item          `json:"inventoryItems"`
	Total          decimal.Decimal `json:"total"`
}

// ServiceAndPackage is the service plus package subtotal.
func (inv Invoice) ServiceAndPackage() decimal.Decimal {
	return inv.ServiceCharges.Add(inv.PackageCharges)
}

// ItemsTotal sums the item prices.
func (inv Invoice) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range inv.Items {
		sum = sum.Add(it.Price)
	}
	return sum
}

// Filename is the PDF download name.
func (inv Invoice) Filename() string {
	return "invoice-" + inv.Number + ".pdf"
}

// Sum is service + package + Σ item prices, rounded to paisa.
func Sum(service, pkg decimal.Decimal, prices ...decimal.Decimal) decimal.Decimal {
	total := service.Add(pkg)
	for _, p := range prices {
		total = total.Add(p)
	}
	return total.Round(2)
}
