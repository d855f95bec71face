package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type totals struct {
	Customers int `json:"customers"`
}

func newTestCache(t *testing.T, ttl time.Duration) *JSONCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewJSONCache(client, "dashboard", ttl)
}

func TestFetchJSONCachesLoaderResult(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, time.Minute)
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return totals{Customers: 42}, nil
	}

	key, err := c.Key(ctx, "user", "u1")
	require.NoError(t, err)
	assert.Equal(t, "dashboard:user:u1:v1", key)

	for i := 0; i < 3; i++ {
		var got totals
		require.NoError(t, c.FetchJSON(ctx, key, &got, loader))
		assert.Equal(t, 42, got.Customers)
	}
	assert.Equal(t, 1, calls)
}

func TestBumpInvalidatesKeys(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, time.Minute)

	before, err := c.Key(ctx, "user", "u1")
	require.NoError(t, err)
	require.NoError(t, c.Bump(ctx))
	after, err := c.Key(ctx, "user", "u1")
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestLoaderErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, time.Minute)
	boom := errors.New("backend down")

	var got totals
	err := c.FetchJSON(ctx, "k", &got, func(context.Context) (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	require.NoError(t, c.FetchJSON(ctx, "k", &got, func(context.Context) (any, error) { return totals{Customers: 1}, nil }))
	assert.Equal(t, 1, got.Customers)
}

func TestDisabledCacheAlwaysLoads(t *testing.T) {
	c := NewJSONCache(nil, "dashboard", time.Minute)
	calls := 0
	for i := 0; i < 2; i++ {
		var got totals
		require.NoError(t, c.FetchJSON(context.Background(), "k", &got, func(context.Context) (any, error) {
			calls++
			return totals{Customers: 7}, nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestDeleteForcesReload(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t, time.Minute)
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return totals{Customers: calls}, nil
	}

	var got totals
	require.NoError(t, c.FetchJSON(ctx, "k", &got, loader))
	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.FetchJSON(ctx, "k", &got, loader))
	assert.Equal(t, 2, got.Customers)
}
