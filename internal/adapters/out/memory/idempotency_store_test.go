package memory_test

import (
	"testing"
	"time"

	"workorders/internal/adapters/out/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore(t *testing.T) {
	ctx := t.Context()
	store := memory.NewIdempotencyStore()

	ok, err := store.Claim(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "duplicate claim")

	require.NoError(t, store.Release(ctx, "k1"))
	ok, err = store.Claim(ctx, "k1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "claim after release")

	ok, err = store.Claim(ctx, "short", time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)
	time.Sleep(5 * time.Millisecond)
	ok, err = store.Claim(ctx, "short", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "claim after expiry")
}
