package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qrdine/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MenuCache is the cache behind the public menu endpoint
type MenuCache interface {
	Get(ctx context.Context, restaurantID uuid.UUID) ([]byte, bool)
	Set(ctx context.Context, restaurantID uuid.UUID, payload []byte)
	Invalidate(ctx context.Context, restaurantID uuid.UUID)
	Close() error
}

// MenuCacheFactory picks the menu cache implementation from configuration
type MenuCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// MenuCacheFactoryOption configures a MenuCacheFactory
type MenuCacheFactoryOption func(*MenuCacheFactory)

// WithLogger sets the logger for the factory and the caches it creates
func WithLogger(logger *zap.Logger) MenuCacheFactoryOption {
	return func(f *MenuCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) MenuCacheFactoryOption {
	return func(f *MenuCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewMenuCacheFactory creates a new factory
func NewMenuCacheFactory(cfg config.RedisConfig, opts ...MenuCacheFactoryOption) *MenuCacheFactory {
	f := &MenuCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis cache when Redis is enabled and reachable, otherwise
// an in-memory cache (when fallback is allowed).
func (f *MenuCacheFactory) Create() (MenuCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Using in-memory menu cache", zap.Duration("ttl", f.redisConfig.MenuTTL))
		return NewInMemoryMenuCache(f.redisConfig.MenuTTL, f.logger), nil
	}

	client, err := NewRedisClient(f.redisConfig)
	if err == nil {
		f.logger.Info("Using Redis menu cache",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Duration("ttl", f.redisConfig.MenuTTL),
		)
		return NewRedisMenuCache(client, f.redisConfig.MenuTTL, f.logger), nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis menu cache unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory menu cache. "+
		"Menu edits reach other instances only after the TTL.",
		zap.Error(err),
	)
	return NewInMemoryMenuCache(f.redisConfig.MenuTTL, f.logger), nil
}
