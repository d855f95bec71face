package connections

import (
	"context"
	"fmt"
	"net/url"

	"github.com/netline-isp/isp-console/internal/backend"
)

// Repository reads and writes connection types. List returns the full set.
type Repository interface {
	List(ctx context.Context) ([]ConnectionType, error)
	Get(ctx context.Context, id string) (*ConnectionType, error)
	Create(ctx context.Context, in Input) (*ConnectionType, error)
	Update(ctx context.Context, id string, in Input) (*ConnectionType, error)
	Delete(ctx context.Context, id string) error
}

// APIRepository implements Repository over /connection-types.
type APIRepository struct {
	client *backend.Client
}

// NewRepository constructs an APIRepository.
func NewRepository(client *backend.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (r *APIRepository) List(ctx context.Context) ([]ConnectionType, error) {
	var out []ConnectionType
	if err := r.client.Get(ctx, "/connection-types", nil, &out); err != nil {
		return nil, fmt.Errorf("list connection types: %w", err)
	}
	return out, nil
}

func (r *APIRepository) Get(ctx context.Context, id string) (*ConnectionType, error) {
	var out ConnectionType
	if err := r.client.Get(ctx, path(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get connection type %s: %w", id, err)
	}
	return &out, nil
}

func (r *APIRepository) Create(ctx context.Context, in Input) (*ConnectionType, error) {
	var out ConnectionType
	if err := r.client.Post(ctx, "/connection-types", in, &out); err != nil {
		return nil, fmt.Errorf("create connection type: %w", err)
	}
	return &out, nil
}

func (r *APIRepository) Update(ctx context.Context, id string, in Input) (*ConnectionType, error) {
	var out ConnectionType
	if err := r.client.Put(ctx, path(id), in, &out); err != nil {
		return nil, fmt.Errorf("update connection type %s: %w", id, err)
	}
	return &out, nil
}

func (r *APIRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, path(id), nil); err != nil {
		return fmt.Errorf("delete connection type %s: %w", id, err)
	}
	return nil
}

func path(id string) string {
	return "/connection-types/" + url.PathEscape(id)
}
