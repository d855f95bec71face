package payments

import (
	"github.com/shopspring/decimal"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/shared"
)

// Payment statuses.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusOverdue = "overdue"
)

// StatusFilters are the choices of the status select.
var StatusFilters = []string{"all", StatusPaid, StatusPending, StatusOverdue}

// Methods are the accepted payment methods, in picker order.
var Methods = []string{"cash", "bank", "jazzcash", "easypaisa", "other"}

// MethodLabel is the display name of a payment method.
func MethodLabel(m string) string {
	switch m {
	case "cash", "":
		return "Cash"
	case "bank":
		return "Bank Transfer"
	case "jazzcash":
		return "JazzCash"
	case "easypaisa":
		return "EasyPaisa"
	default:
		return "Other"
	}
}

// MethodOption is one entry of the payment method picker.
type MethodOption struct {
	Value string
	Label string
}

// MethodOptions pairs every method with its label.
func MethodOptions() []MethodOption {
	out := make([]MethodOption, len(Methods))
	for i, m := range Methods {
		out[i] = MethodOption{Value: m, Label: MethodLabel(m)}
	}
	return out
}

// CustomerRef is the customer embedded in a payment.
type CustomerRef struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Mobile              string      `json:"mobile"`
	Email               string      `json:"email,omitempty"`
	AddedBy             backend.Ref `json:"addedBy,omitempty"`
	ConnectionStartDate any         `json:"connectionStartDate,omitempty"`
}

// PlanRef is the package embedded in a payment.
type PlanRef struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Payment is one billing record. Dates are Unix seconds.
type Payment struct {
	ID                  string          `json:"id"`
	Amount              decimal.Decimal `json:"amount"`
	Status              string          `json:"status"`
	PaymentDate         any             `json:"paymentDate,omitempty"`
	DueDate             any             `json:"dueDate,omitempty"`
	PaymentMethod       string          `json:"paymentMethod,omitempty"`
	TransactionRef      string          `json:"transactionRef,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	ReceivedBy          backend.Ref     `json:"receivedBy,omitempty"`
	Customer            CustomerRef     `json:"customer"`
	Plan                PlanRef         `json:"plan"`
	ConnectionStartDate any             `json:"connectionStartDate,omitempty"`
}

// IsPaid reports whether the payment has been collected.
func (p Payment) IsPaid() bool { return p.Status == StatusPaid }

// Method is the display label of the payment method.
func (p Payment) Method() string { return MethodLabel(p.PaymentMethod) }

// ActivationDate prefers the customer's start date over the payment's own.
func (p Payment) ActivationDate() any {
	if _, ok := shared.ParseTimestamp(p.Customer.ConnectionStartDate); ok {
		return p.Customer.ConnectionStartDate
	}
	return p.ConnectionStartDate
}

// Stats is the summary strip above the list.
type Stats struct {
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	PendingAmount  decimal.Decimal `json:"pendingAmount"`
	TotalRecords   int             `json:"totalRecords"`
	PaidRecords    int             `json:"paidRecords"`
	PendingRecords int             `json:"pendingRecords"`
}

// ListResult is one page of GET /payments.
type ListResult struct {
	Data       []Payment        `json:"data"`
	Pagination backend.PageInfo `json:"pagination"`
	Stats      Stats            `json:"stats"`
}

// ListParams are the combined filters sent to GET /payments.
type ListParams struct {
	StartDate string
	EndDate   string
	Page      int
	Limit     int
	Status    string
	Search    string
}

// MarkPaidInput is the body of POST /payments/:id/mark-paid.
type MarkPaidInput struct {
	PaymentMethod  string `json:"paymentMethod"`
	TransactionRef string `json:"transactionRef,omitempty"`
	Notes          string `json:"notes,omitempty"`
	ReceivedBy     string `json:"receivedBy,omitempty"`
}

// Collector is an employee who can be recorded as receiving a payment.
type Collector struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}

// FullName joins first and last name.
func (c Collector) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
