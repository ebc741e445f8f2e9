// Package cache holds the optional Redis layer. The service runs fine
// without it; callers construct a Cache only when REDIS_URL is set.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the Redis client behind user-level operations.
type Cache struct {
	client *redis.Client
}

// Options bounds the Redis connection pool. Zero values fall back to
// the client library's defaults.
type Options struct {
	PoolSize     int
	MinIdleConns int
}

// New connects to Redis at redisURL and verifies the connection.
func New(ctx context.Context, redisURL string, opts Options) (*Cache, error) {
	cfg, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	applyOptions(cfg, opts)

	client := redis.NewClient(cfg)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// applyOptions layers the configured pool bounds over the parsed URL
// settings, leaving client defaults in place for unset values.
func applyOptions(cfg *redis.Options, opts Options) {
	if opts.PoolSize > 0 {
		cfg.PoolSize = opts.PoolSize
	}
	if opts.MinIdleConns > 0 {
		cfg.MinIdleConns = opts.MinIdleConns
	}
	cfg.PoolTimeout = 4 * time.Second
	cfg.ConnMaxIdleTime = 5 * time.Minute
}

// Ping checks Redis connectivity. The readiness probe calls this.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
