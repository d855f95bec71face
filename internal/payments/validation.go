package payments

import (
	"strings"

	"github.com/netline-isp/isp-console/internal/shared"
)

// Form is the mark-paid form as posted.
type Form struct {
	PaymentMethod  string `form:"paymentMethod" validate:"required,oneof=cash bank jazzcash easypaisa other"`
	TransactionRef string `form:"transactionRef" validate:"max=100"`
	Notes          string `form:"notes" validate:"max=500"`
	ReceivedBy     string `form:"receivedBy"`
}

var messages = shared.Messages{
	"paymentMethod.required": "Payment method is required",
	"paymentMethod.oneof":    "Select a valid payment method",
	"transactionRef.max":     "Transaction reference too long (max 100 chars)",
	"notes.max":              "Notes too long (max 500 chars)",
}

// Validate checks the form and converts it to the backend payload.
func (f Form) Validate(v *shared.Validator) (MarkPaidInput, shared.FormErrors) {
	f.PaymentMethod = strings.TrimSpace(f.PaymentMethod)
	f.TransactionRef = strings.TrimSpace(f.TransactionRef)
	f.Notes = strings.TrimSpace(f.Notes)
	errs := v.Check(f, messages)
	return MarkPaidInput{
		PaymentMethod:  f.PaymentMethod,
		TransactionRef: f.TransactionRef,
		Notes:          f.Notes,
		ReceivedBy:     strings.TrimSpace(f.ReceivedBy),
	}, errs
}
