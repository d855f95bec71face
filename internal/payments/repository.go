package payments

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/netline-isp/isp-console/internal/backend"
	"github.com/netline-isp/isp-console/internal/shared"
)

// Repository is the payment resource plus the collector picker.
type Repository interface {
	List(ctx context.Context, p ListParams) (*ListResult, error)
	MarkPaid(ctx context.Context, id string, in MarkPaidInput) error
	Collectors(ctx context.Context) ([]Collector, error)
}

// APIRepository implements Repository over /payments and /users.
type APIRepository struct {
	client *backend.Client
}

// NewRepository constructs an APIRepository.
func NewRepository(client *backend.Client) *APIRepository {
	return &APIRepository{client: client}
}

// List fetches one page. Date range, status and search are combined;
// status "all" and empty values are not sent.
func (r *APIRepository) List(ctx context.Context, p ListParams) (*ListResult, error) {
	q := url.Values{}
	if p.StartDate != "" {
		q.Set("startDate", p.StartDate)
	}
	if p.EndDate != "" {
		q.Set("endDate", p.EndDate)
	}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	limit := p.Limit
	if limit <= 0 {
		limit = shared.DefaultPerPage
	}
	q.Set("limit", strconv.Itoa(limit))
	if p.Status != "" && p.Status != "all" {
		q.Set("status", p.Status)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	var out ListResult
	if err := r.client.Get(ctx, "/payments", q, &out); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return &out, nil
}

func (r *APIRepository) MarkPaid(ctx context.Context, id string, in MarkPaidInput) error {
	if err := r.client.Post(ctx, "/payments/"+url.PathEscape(id)+"/mark-paid", in, nil); err != nil {
		return fmt.Errorf("mark payment %s paid: %w", id, err)
	}
	return nil
}

// Collectors lists the users that can be recorded as receiving a payment.
func (r *APIRepository) Collectors(ctx context.Context) ([]Collector, error) {
	var out struct {
		Users []Collector `json:"users"`
	}
	if err := r.client.Get(ctx, "/users", nil, &out); err != nil {
		return nil, fmt.Errorf("list collectors: %w", err)
	}
	return out.Users, nil
}
