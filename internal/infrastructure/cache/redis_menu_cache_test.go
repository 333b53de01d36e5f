package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// unreachableClient points at a port nothing listens on
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestRedisMenuCache_Key(t *testing.T) {
	c := NewRedisMenuCache(unreachableClient(), 0, nil)
	defer c.Close()

	id := uuid.MustParse("6f1c2d1e-9a43-4f0e-8a51-0d1b2c3d4e5f")
	assert.Equal(t, "qrdine:menu:6f1c2d1e-9a43-4f0e-8a51-0d1b2c3d4e5f", c.key(id))
	assert.Equal(t, DefaultMenuTTL, c.ttl)
}

func TestRedisMenuCache_Unreachable(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	c := NewRedisMenuCache(unreachableClient(), time.Minute, zap.New(core))
	defer c.Close()

	ctx := context.Background()
	restaurantID := uuid.New()

	assert.NotPanics(t, func() {
		c.Set(ctx, restaurantID, []byte("menu"))
		_, ok := c.Get(ctx, restaurantID)
		assert.False(t, ok, "redis errors are cache misses")
		c.Invalidate(ctx, restaurantID)
	})

	assert.Equal(t, 1, recorded.FilterMessage("Failed to write menu to Redis").Len())
	assert.Equal(t, 1, recorded.FilterMessage("Failed to read menu from Redis").Len())
	assert.Equal(t, 1, recorded.FilterMessage("Failed to invalidate menu in Redis, stale menu served until TTL").Len())
}

// TestRedisMenuCache_Live runs against a real Redis when QRDINE_TEST_REDIS_ADDR is set
func TestRedisMenuCache_Live(t *testing.T) {
	addr := os.Getenv("QRDINE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("QRDINE_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	c := NewRedisMenuCache(client, time.Minute, nil)
	defer c.Close()

	ctx := context.Background()
	restaurantID := uuid.New()

	c.Set(ctx, restaurantID, []byte(`{"sections":[]}`))
	got, ok := c.Get(ctx, restaurantID)
	require.True(t, ok)
	assert.Equal(t, `{"sections":[]}`, string(got))

	ttl, err := client.TTL(ctx, c.key(restaurantID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	c.Invalidate(ctx, restaurantID)
	_, ok = c.Get(ctx, restaurantID)
	assert.False(t, ok)
}

func TestMenuCacheFactory(t *testing.T) {
	t.Run("uses in-memory cache when redis is disabled", func(t *testing.T) {
		f := NewMenuCacheFactory(config.RedisConfig{Enabled: false, MenuTTL: time.Minute})
		c, err := f.Create()
		require.NoError(t, err)
		defer c.Close()

		assert.IsType(t, &InMemoryMenuCache{}, c)
	})

	t.Run("falls back when redis is unreachable", func(t *testing.T) {
		core, recorded := observer.New(zapcore.WarnLevel)
		f := NewMenuCacheFactory(
			config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
			WithLogger(zap.New(core)),
		)
		c, err := f.Create()
		require.NoError(t, err)
		defer c.Close()

		assert.IsType(t, &InMemoryMenuCache{}, c)
		assert.Equal(t, 1, recorded.Len())
	})

	t.Run("fails when fallback is disabled", func(t *testing.T) {
		f := NewMenuCacheFactory(
			config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1},
			WithInMemoryFallback(false),
		)
		_, err := f.Create()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis menu cache unavailable")
	})
}
