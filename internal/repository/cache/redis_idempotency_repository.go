// Package cache holds Redis-backed repositories.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskfeed-be/internal/entity"
	"taskfeed-be/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type RedisIdempotencyRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisClient parses the URL and pings the server before returning.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

func NewRedisIdempotencyRepository(client *redis.Client) contract.IdempotencyRepository {
	return &RedisIdempotencyRepository{
		client: client,
		prefix: "idem:",
	}
}

func (r *RedisIdempotencyRepository) key(k string) string {
	return r.prefix + k
}

func (r *RedisIdempotencyRepository) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	pending, err := json.Marshal(entity.IdempotentResponse{Pending: true})
	if err != nil {
		return false, fmt.Errorf("marshal pending marker: %w", err)
	}
	ok, err := r.client.SetNX(ctx, r.key(key), pending, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	return ok, nil
}

func (r *RedisIdempotencyRepository) Get(ctx context.Context, key string) (*entity.IdempotentResponse, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}

	var resp entity.IdempotentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal idempotent response: %w", err)
	}
	return &resp, nil
}

func (r *RedisIdempotencyRepository) Save(ctx context.Context, key string, response *entity.IdempotentResponse, ttl time.Duration) error {
	stored := *response
	stored.Pending = false
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal idempotent response: %w", err)
	}
	if err := r.client.Set(ctx, r.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save idempotency key: %w", err)
	}
	return nil
}

func (r *RedisIdempotencyRepository) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
