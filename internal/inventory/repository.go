package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/netline-isp/isp-console/internal/backend"
)

// Repository reads and writes stock items.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, in Input) (*Item, error)
	Update(ctx context.Context, id string, in Input) (*Item, error)
	Delete(ctx context.Context, id string) error
}

// APIRepository implements Repository over /inventory.
type APIRepository struct {
	client *backend.Client
}

// NewRepository constructs an APIRepository.
func NewRepository(client *backend.Client) *APIRepository {
	return &APIRepository{client: client}
}

// List accepts both {inventory: [...]} and a bare array.
func (r *APIRepository) List(ctx context.Context) ([]Item, error) {
	var raw json.RawMessage
	if err := r.client.Get(ctx, "/inventory", nil, &raw); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	items, err := decodeList(raw)
	if err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	return items, nil
}

func decodeList(raw json.RawMessage) ([]Item, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []Item{}, nil
	}
	if raw[0] == '[' {
		var items []Item
		err := json.Unmarshal(raw, &items)
		return items, err
	}
	var wrapped struct {
		Inventory []Item `json:"inventory"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Inventory == nil {
		return []Item{}, nil
	}
	return wrapped.Inventory, nil
}

func (r *APIRepository) Get(ctx context.Context, id string) (*Item, error) {
	var out Item
	if err := r.client.Get(ctx, "/inventory/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get inventory item %s: %w", id, err)
	}
	return &out, nil
}

func (r *APIRepository) Create(ctx context.Context, in Input) (*Item, error) {
	var out Item
	if err := r.client.Post(ctx, "/inventory", in, &out); err != nil {
		return nil, fmt.Errorf("create inventory item: %w", err)
	}
	return &out, nil
}

func (r *APIRepository) Update(ctx context.Context, id string, in Input) (*Item, error) {
	var out Item
	if err := r.client.Put(ctx, "/inventory/"+url.PathEscape(id), in, &out); err != nil {
		return nil, fmt.Errorf("update inventory item %s: %w", id, err)
	}
	return &out, nil
}

func (r *APIRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/inventory/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("delete inventory item %s: %w", id, err)
	}
	return nil
}
