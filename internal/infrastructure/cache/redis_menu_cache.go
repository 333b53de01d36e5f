package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultMenuKeyPrefix = "qrdine:menu:"

// NewRedisClient connects to Redis and checks the connection with a PING
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisMenuCache keeps the rendered public menu of each restaurant in Redis,
// so every API instance serves and invalidates the same copy.
// Redis failures are logged and treated as cache misses.
type RedisMenuCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewRedisMenuCache creates a menu cache on an existing client
func NewRedisMenuCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisMenuCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultMenuTTL
	}
	return &RedisMenuCache{
		client:    client,
		keyPrefix: defaultMenuKeyPrefix,
		ttl:       ttl,
		logger:    logger.Named("menu_cache"),
	}
}

func (c *RedisMenuCache) key(restaurantID uuid.UUID) string {
	return c.keyPrefix + restaurantID.String()
}

// Get returns the cached menu payload
func (c *RedisMenuCache) Get(ctx context.Context, restaurantID uuid.UUID) ([]byte, bool) {
	payload, err := c.client.Get(ctx, c.key(restaurantID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Failed to read menu from Redis",
				zap.String("restaurant_id", restaurantID.String()),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return payload, true
}

// Set stores the menu payload with the configured TTL
func (c *RedisMenuCache) Set(ctx context.Context, restaurantID uuid.UUID, payload []byte) {
	if err := c.client.Set(ctx, c.key(restaurantID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write menu to Redis",
			zap.String("restaurant_id", restaurantID.String()),
			zap.Error(err),
		)
	}
}

// Invalidate drops the cached menu of a restaurant
func (c *RedisMenuCache) Invalidate(ctx context.Context, restaurantID uuid.UUID) {
	if err := c.client.Del(ctx, c.key(restaurantID)).Err(); err != nil {
		c.logger.Error("Failed to invalidate menu in Redis, stale menu served until TTL",
			zap.String("restaurant_id", restaurantID.String()),
			zap.Duration("ttl", c.ttl),
			zap.Error(err),
		)
	}
}

// Close closes the Redis client
func (c *RedisMenuCache) Close() error {
	return c.client.Close()
}
