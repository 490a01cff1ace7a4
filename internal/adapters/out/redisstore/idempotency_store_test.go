package redisstore_test

import (
	"testing"
	"time"

	"workorders/internal/adapters/out/redisstore"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := t.Context()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(t.Context())
	})

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestIdempotencyStore(t *testing.T) {
	client := startRedis(t)
	store := redisstore.NewIdempotencyStore(client)
	ctx := t.Context()

	t.Run("second claim of the same key is rejected", func(t *testing.T) {
		ok, err := store.Claim(ctx, "POST /work-orders:k1", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Claim(ctx, "POST /work-orders:k1", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("release makes the key claimable again", func(t *testing.T) {
		ok, err := store.Claim(ctx, "k2", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, store.Release(ctx, "k2"))

		ok, err = store.Claim(ctx, "k2", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("claims expire after ttl", func(t *testing.T) {
		ok, err := store.Claim(ctx, "k3", time.Minute)
		require.NoError(t, err)
		require.True(t, ok)

		ttl, err := client.TTL(ctx, "idempotency:k3").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 50*time.Second)
	})
}
