package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/netline-isp/isp-console/internal/backend"
)

// Repository reads the dashboard aggregates.
type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
}

// APIRepository fetches the four /dashboard endpoints concurrently.
type APIRepository struct {
	client *backend.Client
	now    func() time.Time
}

// NewRepository constructs an APIRepository.
func NewRepository(client *backend.Client) *APIRepository {
	return &APIRepository{client: client, now: time.Now}
}

// Overview waits for all four calls. The first failure cancels the rest and
// is returned; a partial overview is never produced.
func (r *APIRepository) Overview(ctx context.Context) (*Overview, error) {
	var out Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := r.client.Get(ctx, "/dashboard", nil, &out.Metrics); err != nil {
			return fmt.Errorf("dashboard metrics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := r.client.Get(ctx, "/dashboard/quick-stats", nil, &out.QuickStats); err != nil {
			return fmt.Errorf("dashboard quick stats: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var raw json.RawMessage
		if err := r.client.Get(ctx, "/dashboard/revenue", nil, &raw); err != nil {
			return fmt.Errorf("dashboard revenue: %w", err)
		}
		out.Revenue = raw
		return nil
	})
	g.Go(func() error {
		var raw json.RawMessage
		if err := r.client.Get(ctx, "/dashboard/customers", nil, &raw); err != nil {
			return fmt.Errorf("dashboard customers: %w", err)
		}
		out.Customers = raw
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	out.FetchedAt = r.now()
	return &out, nil
}
