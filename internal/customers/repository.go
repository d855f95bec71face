package customers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/netline-isp/isp-console/internal/backend"
)

// Repository is the customer resource plus the pickers its form needs.
type Repository interface {
	List(ctx context.Context, p ListParams) (*backend.Page[Customer], error)
	Get(ctx context.Context, id string) (*Customer, error)
	Create(ctx context.Context, in CreateInput) (*Customer, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Customer, error)
	SetActive(ctx context.Context, id string, active bool) error
	Catalog(ctx context.Context) (*Catalog, error)
}

// APIRepository implements Repository over /customers.
type APIRepository struct {
	client *backend.Client
}

// NewRepository constructs an APIRepository.
func NewRepository(client *backend.Client) *APIRepository {
	return &APIRepository{client: client}
}

// List fetches one page. Status "all" and an empty search are not sent.
func (r *APIRepository) List(ctx context.Context, p ListParams) (*backend.Page[Customer], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}
	q.Set("limit", strconv.Itoa(limit))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" && p.Status != "all" {
		q.Set("status", p.Status)
	}
	var out backend.Page[Customer]
	if err := r.client.Get(ctx, "/customers", q, &out); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return &out, nil
}

func (r *APIRepository) Get(ctx context.Context, id string) (*Customer, error) {
	var out Customer
	if err := r.client.Get(ctx, "/customers/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return &out, nil
}

func (r *APIRepository) Create(ctx context.Context, in CreateInput) (*Customer, error) {
	var out Customer
	if err := r.client.Post(ctx, "/customers", in, &out); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &out, nil
}

func (r *APIRepository) Update(ctx context.Context, id string, in UpdateInput) (*Customer, error) {
	var out Customer
	if err := r.client.Put(ctx, "/customers/"+url.PathEscape(id), in, &out); err != nil {
		return nil, fmt.Errorf("update customer %s: %w", id, err)
	}
	return &out, nil
}

// SetActive sends the target state explicitly, so repeating it is harmless.
func (r *APIRepository) SetActive(ctx context.Context, id string, active bool) error {
	body := map[string]bool{"isActive": active}
	if err := r.client.Put(ctx, "/customers/status/"+url.PathEscape(id), body, nil); err != nil {
		return fmt.Errorf("set customer %s active=%t: %w", id, active, err)
	}
	return nil
}

// Catalog loads plans and connection types concurrently.
func (r *APIRepository) Catalog(ctx context.Context) (*Catalog, error) {
	var cat Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.client.Get(gctx, "/package", nil, &cat.Plans)
	})
	g.Go(func() error {
		return r.client.Get(gctx, "/connection-types", nil, &cat.ConnectionTypes)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load customer form options: %w", err)
	}
	return &cat, nil
}
