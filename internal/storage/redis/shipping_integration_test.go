//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/kart-pricing/internal/domain/shipping"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(context.Background()) })

	addr, err := ctr.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestShippingCache_ReadThrough(t *testing.T) {
	ctx := context.Background()
	rdb := startRedis(t)
	backing := &countingRepo{}
	cache := NewShippingCache(rdb, backing, time.Minute)

	for range 3 {
		m, err := cache.FindByID(ctx, "standard")
		require.NoError(t, err)
		assert.Equal(t, "Standard", m.Name)
	}
	assert.Equal(t, 1, backing.calls)

	require.NoError(t, cache.Invalidate(ctx, "standard"))
	_, err := cache.FindByID(ctx, "standard")
	require.NoError(t, err)
	assert.Equal(t, 2, backing.calls)

	_, err = cache.FindByID(ctx, "teleport")
	require.ErrorIs(t, err, shipping.ErrNotFound)
	_, err = cache.FindByID(ctx, "teleport")
	require.ErrorIs(t, err, shipping.ErrNotFound)
	assert.Equal(t, 4, backing.calls, "misses must not be cached")
}
