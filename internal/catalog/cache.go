package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/nadzzz/ordertaker/internal/menu"
)

// Cache keeps recently used catalog snapshots in memory for ttl. Concurrent
// misses for the same tenant may both load; the later snapshot wins.
type Cache struct {
	src    Source
	lru    *expirable.LRU[string, []menu.VoiceMenuMapping]
	logger *slog.Logger
}

// NewCache wraps src with an LRU of at most size tenants, unbounded when
// size is zero. A ttl of zero keeps entries until they are evicted or
// invalidated.
func NewCache(src Source, size int, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		src:    src,
		lru:    expirable.NewLRU[string, []menu.VoiceMenuMapping](size, nil, ttl),
		logger: logger,
	}
}

// Catalog returns the cached snapshot or loads it from the source.
// Failed loads are not cached.
func (c *Cache) Catalog(ctx context.Context, tenant string) ([]menu.VoiceMenuMapping, error) {
	if snap, ok := c.lru.Get(tenant); ok {
		return snap, nil
	}
	snap, err := c.src.Catalog(ctx, tenant)
	if err != nil {
		return nil, err
	}
	c.lru.Add(tenant, snap)
	c.logger.Debug("catalog loaded", "tenant", tenant, "entries", len(snap))
	return snap, nil
}

// Invalidate drops the tenant's snapshot so the next call reloads it.
func (c *Cache) Invalidate(tenant string) {
	c.lru.Remove(tenant)
}

// Len returns the number of cached tenants.
func (c *Cache) Len() int { return c.lru.Len() }
