package packages

import (
	"context"
	"fmt"
	"net/url"

	"github.com/netline-isp/isp-console/internal/backend"
)

// Repository is the package catalog as the backend exposes it. The list
// endpoint returns the full catalog, unpaginated.
type Repository interface {
	List(ctx context.Context) ([]Package, error)
	Get(ctx context.Context, id string) (*Package, error)
	Create(ctx context.Context, in Input) (*Package, error)
	Update(ctx context.Context, id string, in Input) (*Package, error)
	Delete(ctx context.Context, id string) error
}

// APIRepository implements Repository over /package.
type APIRepository struct {
	client *backend.Client
}

// NewRepository constructs an APIRepository.
func NewRepository(client *backend.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (r *APIRepository) List(ctx context.Context) ([]Package, error) {
	var out []Package
	if err := r.client.Get(ctx, "/package", nil, &out); err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return out, nil
}

func (r *APIRepository) Get(ctx context.Context, id string) (*Package, error) {
	var out Package
	if err := r.client.Get(ctx, "/package/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get package %s: %w", id, err)
	}
	return &out, nil
}

func (r *APIRepository) Create(ctx context.Context, in Input) (*Package, error) {
	var out Package
	if err := r.client.Post(ctx, "/package", in, &out); err != nil {
		return nil, fmt.Errorf("create package: %w", err)
	}
	return &out, nil
}

func (r *APIRepository) Update(ctx context.Context, id string, in Input) (*Package, error) {
	var out Package
	if err := r.client.Put(ctx, "/package/"+url.PathEscape(id), in, &out); err != nil {
		return nil, fmt.Errorf("update package %s: %w", id, err)
	}
	return &out, nil
}

func (r *APIRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/package/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete package %s: %w", id, err)
	}
	return nil
}
