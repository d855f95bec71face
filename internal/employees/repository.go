package employees

import (
	"context"
	"fmt"
	"net/url"

	"github.com/netline-isp/isp-console/internal/backend"
)

// Repository manages employee accounts. Delete is a soft delete; Restore
// reactivates.
type Repository interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id string) (*Employee, error)
	Create(ctx context.Context, in Input) (*Employee, error)
	Update(ctx context.Context, id string, in Input) (*Employee, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

// APIRepository implements Repository over /users.
type APIRepository struct {
	client *backend.Client
}

// NewRepository constructs an APIRepository.
func NewRepository(client *backend.Client) *APIRepository {
	return &APIRepository{client: client}
}

type listResponse struct {
	Users []Employee `json:"users"`
	Count int        `json:"count"`
}

func (r *APIRepository) List(ctx context.Context) ([]Employee, error) {
	var out listResponse
	if err := r.client.Get(ctx, "/users", nil, &out); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if out.Users == nil {
		return []Employee{}, nil
	}
	return out.Users, nil
}

func (r *APIRepository) Get(ctx context.Context, id string) (*Employee, error) {
	var out struct {
		User *Employee `json:"user"`
	}
	if err := r.client.Get(ctx, userPath(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get employee %s: %w", id, err)
	}
	if out.User == nil {
		return nil, fmt.Errorf("get employee %s: empty response", id)
	}
	return out.User, nil
}

func (r *APIRepository) Create(ctx context.Context, in Input) (*Employee, error) {
	var out Employee
	if err := r.client.Post(ctx, "/users", in, &out); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return &out, nil
}

func (r *APIRepository) Update(ctx context.Context, id string, in Input) (*Employee, error) {
	var out Employee
	if err := r.client.Put(ctx, userPath(id), in, &out); err != nil {
		return nil, fmt.Errorf("update employee %s: %w", id, err)
	}
	return &out, nil
}

func (r *APIRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, userPath(id), nil); err != nil {
		return fmt.Errorf("deactivate employee %s: %w", id, err)
	}
	return nil
}

func (r *APIRepository) Restore(ctx context.Context, id string) error {
	if err := r.client.Post(ctx, userPath(id)+"/restore", nil, nil); err != nil {
		return fmt.Errorf("restore employee %s: %w", id, err)
	}
	return nil
}

func userPath(id string) string {
	return "/users/" + url.PathEscape(id)
}
