// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/bumperr/gPBL-G8/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the Redis client used for the pub/sub command transport.
type RedisClient struct {
	Client *redis.Client
}

// NewRedis creates a new Redis client
func NewRedis(cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &RedisClient{Client: rdb}, nil
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

// Publish sends a payload to a topic channel
func (c *RedisClient) Publish(ctx context.Context, topic, payload string) error {
	return c.Client.Publish(ctx, topic, payload).Err()
}

// Subscribe opens a subscription over exact channels and glob patterns.
// Channels and patterns may both be empty; callers close the returned PubSub.
func (c *RedisClient) Subscribe(ctx context.Context, channels, patterns []string) *redis.PubSub {
	if len(patterns) > 0 {
		ps := c.Client.PSubscribe(ctx, patterns...)
		if len(channels) > 0 {
			_ = ps.Subscribe(ctx, channels...)
		}
		return ps
	}
	return c.Client.Subscribe(ctx, channels...)
}

// GetClient returns the underlying *redis.Client for compatibility
func (c *RedisClient) GetClient() *redis.Client {
	return c.Client
}
