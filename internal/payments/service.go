package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/netline-isp/isp-console/internal/receipt"
	"github.com/netline-isp/isp-console/internal/shared"
)

// receiptDays is the billing period printed on every payment receipt.
const receiptDays = "30"

// VisibleTo keeps the payments user may see: admins see every payment,
// everyone else only payments for customers they added.
func VisibleTo(user *shared.CurrentUser, ps []Payment) []Payment {
	if user == nil {
		return []Payment{}
	}
	if user.IsAdmin() {
		return ps
	}
	out := make([]Payment, 0, len(ps))
	for _, p := range ps {
		if p.Customer.AddedBy.String() == user.ID {
			out = append(out, p)
		}
	}
	return out
}

// EffectiveStats fills amounts the backend left at zero from the rows on
// the current page.
func EffectiveStats(s Stats, ps []Payment) Stats {
	var total, paid, pending decimal.Decimal
	for _, p := range ps {
		total = total.Add(p.Amount)
		if p.IsPaid() {
			paid = paid.Add(p.Amount)
		} else {
			pending = pending.Add(p.Amount)
		}
	}
	if s.TotalAmount.IsZero() {
		s.TotalAmount = total
	}
	if s.PaidAmount.IsZero() {
		s.PaidAmount = paid
	}
	if s.PendingAmount.IsZero() {
		s.PendingAmount = pending
	}
	return s
}

// CollectionRate is paid over total as a percentage, 0 when nothing is due.
func (s Stats) CollectionRate() decimal.Decimal {
	if s.TotalAmount.IsZero() {
		return decimal.Zero
	}
	return s.PaidAmount.Div(s.TotalAmount).Mul(decimal.NewFromInt(100)).Round(1)
}

// BuildReceipt lays out the 58 mm payment receipt printed at printedAt.
func BuildReceipt(p Payment, printedAt time.Time, footer receipt.Footer) receipt.Receipt {
	amount := shared.FormatRsSpaced(p.Amount)
	return receipt.Receipt{
		Title: "Payment Receipt",
		Details: []receipt.Line{
			{Label: "Date", Value: printedAt.Format(shared.DisplayDateLayout)},
			{Label: "Customer", Value: p.Customer.Name},
			{Label: "Phone", Value: p.Customer.Mobile},
			{Label: "Activation Date", Value: shared.FormatDisplayDate(p.ActivationDate())},
		},
		Table: &receipt.Table{
			Headers: [3]string{"", "Days", "Price"},
			Rows:    [][3]string{{"", receiptDays, amount}},
		},
		Total:    receipt.Line{Label: "Total Amount", Value: amount},
		Messages: []string{"Payment Successful", "Thank you for the payment!"},
		Footer:   footer,
	}
}
