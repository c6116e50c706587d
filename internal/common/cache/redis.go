// internal/common/cache/redis.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"theme-mapper/internal/common/config"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "theme-mapper:theme"

// RedisClient caches raw theme documents fetched from a tenant.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a new Redis client
func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     2,
	})

	return &RedisClient{Client: rdb}
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *redis.Client) *RedisClient {
	return &RedisClient{Client: client}
}

// Ping tests the Redis connection
func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// DocumentKey builds the cache key of a theme document.
func DocumentKey(tenant, themeID string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, tenant, themeID)
}

// GetDocument returns the cached document bytes. A miss is (nil, false, nil).
func (c *RedisClient) GetDocument(ctx context.Context, tenant, themeID string) ([]byte, bool, error) {
	data, err := c.Client.Get(ctx, DocumentKey(tenant, themeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return data, true, nil
}

// SetDocument stores document bytes with the given expiration.
func (c *RedisClient) SetDocument(ctx context.Context, tenant, themeID string, data []byte, ttl time.Duration) error {
	if err := c.Client.Set(ctx, DocumentKey(tenant, themeID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
