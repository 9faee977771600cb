package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/truestate/retail-sales-api/internal/repository"
)

// SalesCache caches rendered sales list pages for a short TTL. The sales table
// only changes through the offline importer, so a stale window of a few
// seconds is acceptable for the dashboard.
type SalesCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewSalesCache creates a new SalesCache.
func NewSalesCache(redis *RedisClient, ttl time.Duration) *SalesCache {
	return &SalesCache{redis: redis, ttl: ttl}
}

func (c *SalesCache) key(filterKey string) string {
	return fmt.Sprintf("sales:list:%s", filterKey)
}

// Get returns the cached page for a filter key, or nil on miss. Redis errors
// are reported so the caller can decide to fall through to the database.
func (c *SalesCache) Get(ctx context.Context, filterKey string) (*repository.SaleList, error) {
	raw, err := c.redis.Get(ctx, c.key(filterKey))
	if err != nil {
		return nil, err
	}

	var list repository.SaleList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached sales page: %w", err)
	}
	return &list, nil
}

// Set stores a page under the filter key.
func (c *SalesCache) Set(ctx context.Context, filterKey string, list *repository.SaleList) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal sales page: %w", err)
	}
	return c.redis.Set(ctx, c.key(filterKey), string(raw), c.ttl)
}
