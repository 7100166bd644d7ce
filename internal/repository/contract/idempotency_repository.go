package contract

import (
	"context"
	"time"

	"taskfeed-be/internal/entity"
)

// IdempotencyRepository remembers responses keyed by a client supplied Idempotency-Key.
type IdempotencyRepository interface {
	// Reserve atomically claims key; false means someone already holds or finished it.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (*entity.IdempotentResponse, error)
	Save(ctx context.Context, key string, response *entity.IdempotentResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}
