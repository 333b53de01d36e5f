package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultMenuTTL is used when no TTL is configured
	DefaultMenuTTL         = 5 * time.Minute
	defaultCleanupInterval = 30 * time.Second
)

type menuEntry struct {
	payload   []byte
	expiresAt time.Time
}

func (e *menuEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemoryMenuCache keeps rendered menus in process memory.
// Suitable for single instance deployments and tests: other instances keep
// serving their own copy until it expires.
type InMemoryMenuCache struct {
	entries sync.Map // map[uuid.UUID]*menuEntry
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once

	hits   int64
	misses int64
}

// NewInMemoryMenuCache creates an in-memory menu cache and starts its cleanup loop.
// Call Close to stop the loop.
func NewInMemoryMenuCache(ttl time.Duration, logger *zap.Logger) *InMemoryMenuCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultMenuTTL
	}
	c := &InMemoryMenuCache{
		ttl:    ttl,
		logger: logger.Named("menu_cache"),
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired(defaultCleanupInterval)
	return c
}

// Get returns the cached payload unless it has expired
func (c *InMemoryMenuCache) Get(_ context.Context, restaurantID uuid.UUID) ([]byte, bool) {
	value, ok := c.entries.Load(restaurantID)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	entry := value.(*menuEntry)
	if entry.isExpired(c.now()) {
		c.entries.Delete(restaurantID)
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}
	atomic.AddInt64(&c.hits, 1)
	return entry.payload, true
}

// Set stores a copy of payload
func (c *InMemoryMenuCache) Set(_ context.Context, restaurantID uuid.UUID, payload []byte) {
	stored := make([]byte, len(payload))
	copy(stored, payload)
	c.entries.Store(restaurantID, &menuEntry{payload: stored, expiresAt: c.now().Add(c.ttl)})
}

// Invalidate drops the cached menu of a restaurant
func (c *InMemoryMenuCache) Invalidate(_ context.Context, restaurantID uuid.UUID) {
	c.entries.Delete(restaurantID)
}

// Stats returns the hit and miss counters
func (c *InMemoryMenuCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the cleanup loop. Safe to call more than once.
func (c *InMemoryMenuCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	return nil
}

func (c *InMemoryMenuCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			if removed := c.removeExpired(); removed > 0 {
				c.logger.Debug("Removed expired menus", zap.Int("count", removed))
			}
		}
	}
}

func (c *InMemoryMenuCache) removeExpired() int {
	now := c.now()
	removed := 0
	c.entries.Range(func(key, value any) bool {
		if value.(*menuEntry).isExpired(now) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
