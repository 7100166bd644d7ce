package memory

import (
	"context"
	"time"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// IdempotencyRepository keeps replayable responses in process memory.
// Used when no Redis URL is configured.
type IdempotencyRepository struct {
	cache *cache.Cache
}

func NewIdempotencyRepository(defaultTTL time.Duration) contract.IdempotencyRepository {
	// Purge expired entries every 10 minutes
	c := cache.New(defaultTTL, 10*time.Minute)
	return &IdempotencyRepository{
		cache: c,
	}
}

func (r *IdempotencyRepository) Reserve(_ context.Context, key string, ttl time.Duration) (bool, error) {
	// Add fails when the key is already present, which makes it the claim.
	if err := r.cache.Add(key, &entity.IdempotentResponse{Pending: true}, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *IdempotencyRepository) Get(_ context.Context, key string) (*entity.IdempotentResponse, error) {
	if x, found := r.cache.Get(key); found {
		resp := *x.(*entity.IdempotentResponse)
		return &resp, nil
	}
	return nil, nil
}

func (r *IdempotencyRepository) Save(_ context.Context, key string, response *entity.IdempotentResponse, ttl time.Duration) error {
	stored := *response
	stored.Pending = false
	r.cache.Set(key, &stored, ttl)
	return nil
}

func (r *IdempotencyRepository) Release(_ context.Context, key string) error {
	r.cache.Delete(key)
	return nil
}
