package cache

import (
	"context"
	"testing"
	"time"

	"taskfeed-be/internal/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisIdempotencyRepository, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client, err := NewRedisClient("redis://" + s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisIdempotencyRepository(client).(*RedisIdempotencyRepository), s
}

func TestRedisIdempotency_ReserveOnce(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	ok, err := repo.Reserve(ctx, "u1:POST:/api/messages:abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Reserve(ctx, "u1:POST:/api/messages:abc", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second reserve must lose")

	pending, err := repo.Get(ctx, "u1:POST:/api/messages:abc")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.True(t, pending.Pending)
}

func TestRedisIdempotency_SaveAndReplay(t *testing.T) {
	repo, s := setupTestRedis(t)
	ctx := context.Background()
	key := "u1:POST:/api/teams:k1"

	_, err := repo.Reserve(ctx, key, time.Minute)
	require.NoError(t, err)

	err = repo.Save(ctx, key, &entity.IdempotentResponse{
		Pending:     true,
		Status:      201,
		ContentType: "application/json",
		Body:        []byte(`{"success":true}`),
	}, time.Hour)
	require.NoError(t, err)

	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Pending)
	assert.Equal(t, 201, got.Status)
	assert.Equal(t, `{"success":true}`, string(got.Body))

	s.FastForward(2 * time.Hour)
	got, err = repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got, "entry should expire with its ttl")
}

func TestRedisIdempotency_Release(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	_, err := repo.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.NoError(t, repo.Release(ctx, "k"))

	ok, err := repo.Reserve(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "released key can be claimed again")
}

func TestNewRedisClient_BadURL(t *testing.T) {
	_, err := NewRedisClient("not a url")
	assert.Error(t, err)
}
