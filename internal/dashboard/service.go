package dashboard

import (
	"context"
	"errors"
	"html/template"
	"log/slog"

	"github.com/netline-isp/isp-console/internal/dashboard/chart"
	"github.com/netline-isp/isp-console/internal/platform/cache"
	"github.com/netline-isp/isp-console/internal/shared"
)

// RecentLimit caps the recent payments and customers tables.
const RecentLimit = 5

// Service loads the overview through a per-user cache.
type Service struct {
	repo   Repository
	cache  *cache.JSONCache
	logger *slog.Logger
}

// NewService wires the service. A nil cache always reads through.
func NewService(repo Repository, c *cache.JSONCache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: c, logger: logger}
}

// Load returns the overview for userID. With refresh set the cached copy is
// dropped first. Cache faults fall back to a direct fetch.
func (s *Service) Load(ctx context.Context, userID string, refresh bool) (*Overview, error) {
	key, err := s.cache.Key(ctx, "user", userID)
	if err != nil {
		s.logger.Warn("dashboard cache key", slog.Any("error", err))
		return s.repo.Overview(ctx)
	}
	if refresh {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("dashboard cache delete", slog.Any("error", err))
		}
	}

	var out Overview
	var loadErr error
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		o, err := s.repo.Overview(ctx)
		if err != nil {
			loadErr = err
			return nil, err
		}
		return o, nil
	})
	if loadErr != nil {
		return nil, loadErr
	}
	if err != nil {
		s.logger.Warn("dashboard cache fetch", slog.Any("error", err))
		return s.repo.Overview(ctx)
	}
	return &out, nil
}

// Invalidate drops every cached overview, e.g. after a payment is recorded.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("dashboard cache bump", slog.Any("error", err))
	}
}

// StatusRow is one line of the payment status panel.
type StatusRow struct {
	Status string
	Count  string
	Share  string
}

// TypeRow is one line of the connection type table.
type TypeRow struct {
	Name  string
	Count string
	Share string
}

// Page is the rendered dashboard.
type Page struct {
	Cards           []Card
	Indicators      []Indicator
	Actions         []QuickAction
	CustomerGrowth  template.HTML
	RevenueGrowth   template.HTML
	TopPackages     template.HTML
	StatusChart     template.HTML
	Statuses        []StatusRow
	ConnectionTypes []TypeRow
	RecentPayments  []RecentPayment
	RecentCustomers []RecentCustomer
	FetchedAt       string
	Failed          bool
}

// BuildPage lays out the overview for the template.
func BuildPage(o *Overview, logger *slog.Logger) Page {
	if logger == nil {
		logger = slog.Default()
	}
	m, q := o.Metrics, o.QuickStats
	p := Page{
		Actions: QuickActions,
		Cards: []Card{
			{Title: "Total Customers", Value: shared.FormatCount(q.TotalCustomers.Int()), Note: shared.FormatCount(q.NewCustomersThisMonth.Int()) + " new this month", Tone: "indigo", Href: "/customers"},
			{Title: "Active Connections", Value: shared.FormatCount(m.ActiveCustomers.Int()), Note: shared.FormatCount(m.InactiveCustomers.Int()) + " inactive", Tone: "green", Href: "/customers"},
			{Title: "Pending Payments", Value: shared.FormatGrouped(q.PendingPayments.Decimal()), Note: shared.FormatCount(m.OverduePayments.Int()) + " overdue", Tone: "yellow", Href: "/payments?status=pending"},
			{Title: "Monthly Revenue", Value: shared.FormatGrouped(m.MonthlyRevenue.Decimal()), Note: shared.FormatGrouped(m.TotalRevenue.Decimal()) + " all time", Tone: "purple", Href: "/payments"},
		},
		Indicators: []Indicator{
			{Label: "Customer Retention", Value: orDefault(string(m.CustomerRetentionRate), "0%")},
			{Label: "Avg Revenue/Customer", Value: "Rs" + orDefault(string(m.AverageRevenuePerCustomer), "0")},
			{Label: "Payment Collection", Value: orDefault(string(m.PaymentCollectionRate), "0%")},
			{Label: "New Customers", Value: shared.FormatCount(q.NewCustomersThisMonth.Int())},
		},
		RecentPayments:  limit(m.RecentPayments, RecentLimit),
		RecentCustomers: limit(m.RecentCustomers, RecentLimit),
	}
	if !o.FetchedAt.IsZero() {
		p.FetchedAt = o.FetchedAt.In(shared.DateLocation).Format("02/01/2006 15:04")
	}

	growth := make([]chart.Point, 0, len(m.CustomerGrowth))
	for _, g := range m.CustomerGrowth {
		growth = append(growth, chart.Point{Label: g.Month, Value: float64(g.Count)})
	}
	p.CustomerGrowth = draw(logger, "customer growth", func() (template.HTML, error) {
		return chart.Line(growth, chart.Options{Title: "Customer Growth", Description: "New customers per month"})
	})

	revenue := make([]chart.Point, 0, len(m.RevenueGrowth))
	for _, g := range m.RevenueGrowth {
		revenue = append(revenue, chart.Point{Label: g.Month, Value: float64(g.Revenue)})
	}
	p.RevenueGrowth = draw(logger, "revenue growth", func() (template.HTML, error) {
		return chart.Bars(revenue, chart.Options{Title: "Revenue Growth", Description: "Revenue per month", Format: func(v float64) string { return "Rs" + chart.Compact(v) }})
	})

	packages := make([]chart.Point, 0, len(m.TopPackages))
	for _, tp := range m.TopPackages {
		packages = append(packages, chart.Point{Label: truncate(tp.Name, 12), Value: float64(tp.Count)})
	}
	p.TopPackages = draw(logger, "top packages", func() (template.HTML, error) {
		return chart.Bars(packages, chart.Options{Title: "Top Packages", Description: "Customers per package", Color: "#16a34a"})
	})

	d := m.PaymentStatusDistribution
	statuses := []chart.Point{
		{Label: "Paid", Value: float64(d.Paid)},
		{Label: "Pending", Value: float64(d.Pending)},
		{Label: "Overdue", Value: float64(d.Overdue)},
		{Label: "Cancelled", Value: float64(d.Cancelled)},
	}
	total := 0.0
	for _, s := range statuses {
		total += s.Value
	}
	for _, s := range statuses {
		p.Statuses = append(p.Statuses, StatusRow{Status: s.Label, Count: shared.FormatCount(int(s.Value)), Share: chart.Percent(s.Value, total)})
	}
	p.StatusChart = draw(logger, "payment status", func() (template.HTML, error) {
		return chart.Share(statuses, chart.Options{Title: "Payment Status", Description: "Payments by status"})
	})

	typeTotal := 0.0
	for _, ct := range m.ConnectionTypeDistribution {
		typeTotal += float64(ct.Count)
	}
	for _, ct := range m.ConnectionTypeDistribution {
		p.ConnectionTypes = append(p.ConnectionTypes, TypeRow{Name: ct.Name, Count: shared.FormatCount(ct.Count.Int()), Share: chart.Percent(float64(ct.Count), typeTotal)})
	}
	return p
}

func draw(logger *slog.Logger, name string, fn func() (template.HTML, error)) template.HTML {
	out, err := fn()
	if err != nil {
		if !errors.Is(err, chart.ErrNoData) {
			logger.Warn("draw chart", slog.String("chart", name), slog.Any("error", err))
		}
		return ""
	}
	return out
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
