package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisRateLimiter_Allow_PerMinute(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t), Limits{PerMinute: 5})

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "user:7")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "user:7")
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")
}

func TestRedisRateLimiter_Allow_PerHour(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t), Limits{PerMinute: 100, PerHour: 3})

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "user:7")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "user:7")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisRateLimiter_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t), Limits{PerMinute: 1})

	allowed, err := limiter.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user:2")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user:1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRedisRateLimiter_NoLimits(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t), Limits{})

	for i := 0; i < 20; i++ {
		allowed, err := limiter.Allow(context.Background(), "user:7")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisRateLimiter(setupTestRedis(t), Limits{PerMinute: 1})

	allowed, err := limiter.Allow(ctx, "user:7")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user:7")
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "user:7"))

	allowed, err = limiter.Allow(ctx, "user:7")
	require.NoError(t, err)
	assert.True(t, allowed)
}
