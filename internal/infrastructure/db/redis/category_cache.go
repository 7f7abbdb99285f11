package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCategoryTTL = 10 * time.Minute

// commands is the subset of redis.Cmdable the cache needs.
type commands interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CategoryCache remembers category ids known to exist so feedback validation
// does not hit MongoDB on every submission.
// Key format: category:exists:<id>
type CategoryCache struct {
	client commands
	ttl    time.Duration
}

// NewCategoryCache creates a CategoryCache. A non-positive ttl uses the default.
func NewCategoryCache(client commands, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = defaultCategoryTTL
	}
	return &CategoryCache{client: client, ttl: ttl}
}

// Exists reports whether id was previously marked and has not expired.
func (c *CategoryCache) Exists(ctx context.Context, id string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("category cache check: %w", err)
	}
	return n > 0, nil
}

// Mark records that id exists (expires after the configured ttl).
func (c *CategoryCache) Mark(ctx context.Context, id string) error {
	if err := c.client.Set(ctx, c.key(id), "1", c.ttl).Err(); err != nil {
		return fmt.Errorf("category cache mark: %w", err)
	}
	return nil
}

func (c *CategoryCache) key(id string) string {
	return "category:exists:" + id
}
