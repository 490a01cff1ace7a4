package ports

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys for a limited time.
type IdempotencyStore interface {
	// Claim records key for ttl. It returns false if key is already claimed.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets key so the request may be retried.
	Release(ctx context.Context, key string) error
}
