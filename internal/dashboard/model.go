package dashboard

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/netline-isp/isp-console/internal/shared"
)

// Number is a backend figure sent either as a JSON number or a numeric
// string. Anything unparsable reads as zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		f = 0
	}
	*n = Number(f)
	return nil
}

// Int truncates to a whole count.
func (n Number) Int() int { return int(n) }

// Decimal returns the figure as an amount.
func (n Number) Decimal() decimal.Decimal { return shared.Amount(float64(n)) }

// Text is a preformatted backend string that occasionally arrives as a number.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*t = ""
		return nil
	}
	*t = Text(cast.ToString(raw))
	return nil
}

// StatusDistribution counts payments per status.
type StatusDistribution struct {
	Paid      Number `json:"paid"`
	Pending   Number `json:"pending"`
	Overdue   Number `json:"overdue"`
	Cancelled Number `json:"cancelled"`
}

// MonthCount is one point of the customer growth series.
type MonthCount struct {
	Month string `json:"month"`
	Count Number `json:"count"`
}

// MonthRevenue is one point of the revenue growth series.
type MonthRevenue struct {
	Month   string `json:"month"`
	Revenue Number `json:"revenue"`
}

// NameCount is a named tally, used for packages and connection types.
type NameCount struct {
	Name  string `json:"name"`
	Count Number `json:"count"`
}

type named struct {
	Name string `json:"name"`
}

// RecentPayment is a payment row of the recent activity table.
type RecentPayment struct {
	ID       string `json:"id"`
	Amount   Number `json:"amount"`
	Status   string `json:"status"`
	Customer named  `json:"customer"`
	Plan     named  `json:"plan"`
}

// RecentCustomer is a customer row of the recent activity table.
type RecentCustomer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Mobile         string `json:"mobile"`
	Plan           named  `json:"plan"`
	ConnectionType named  `json:"connectionType"`
}

// Metrics is the GET /dashboard aggregate.
type Metrics struct {
	TotalCustomers             Number             `json:"totalCustomers"`
	NewCustomersThisMonth      Number             `json:"newCustomersThisMonth"`
	TotalRevenue               Number             `json:"totalRevenue"`
	MonthlyRevenue             Number             `json:"monthlyRevenue"`
	PendingPayments            Number             `json:"pendingPayments"`
	OverduePayments            Number             `json:"overduePayments"`
	ActiveCustomers            Number             `json:"activeCustomers"`
	InactiveCustomers          Number             `json:"inactiveCustomers"`
	PaymentStatusDistribution  StatusDistribution `json:"paymentStatusDistribution"`
	RecentPayments             []RecentPayment    `json:"recentPayments"`
	RecentCustomers            []RecentCustomer   `json:"recentCustomers"`
	CustomerGrowth             []MonthCount       `json:"customerGrowth"`
	RevenueGrowth              []MonthRevenue     `json:"revenueGrowth"`
	TopPackages                []NameCount        `json:"topPackages"`
	ConnectionTypeDistribution []NameCount        `json:"connectionTypeDistribution"`
	CustomerRetentionRate      Text               `json:"customerRetentionRate"`
	AverageRevenuePerCustomer  Text               `json:"averageRevenuePerCustomer"`
	PaymentCollectionRate      Text               `json:"paymentCollectionRate"`
}

// QuickStats is the GET /dashboard/quick-stats summary.
type QuickStats struct {
	TotalCustomers        Number `json:"totalCustomers"`
	NewCustomersThisMonth Number `json:"newCustomersThisMonth"`
	TotalRevenue          Number `json:"totalRevenue"`
	PendingPayments       Number `json:"pendingPayments"`
}

// Overview is everything the dashboard shows, fetched together and cached
// as one value.
type Overview struct {
	Metrics    Metrics         `json:"metrics"`
	QuickStats QuickStats      `json:"quickStats"`
	Revenue    json.RawMessage `json:"revenue,omitempty"`
	Customers  json.RawMessage `json:"customers,omitempty"`
	FetchedAt  time.Time       `json:"fetchedAt"`
}

// Card is one headline figure.
type Card struct {
	Title string
	Value string
	Note  string
	Tone  string
	Href  string
}

// Indicator is one row of the performance panel.
type Indicator struct {
	Label string
	Value string
}

// QuickAction links to a frequent task.
type QuickAction struct {
	Title string
	Href  string
}

// QuickActions are the shortcut tiles under the cards.
var QuickActions = []QuickAction{
	{Title: "Add Customer", Href: "/customers/new"},
	{Title: "Payments", Href: "/payments"},
	{Title: "Create Invoice", Href: "/invoice"},
	{Title: "Manage Packages", Href: "/packages"},
}
