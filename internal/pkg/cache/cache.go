package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/landmark-crm/landmark/internal/pkg/env"
)

// Client wraps the Redis connection used for read-side caching. It is
// constructed once at process start and passed to the components that need
// it; there is no package-level singleton.
type Client struct {
	rdb *redis.Client
}

// NewClient connects to the cache server at the given address.
func NewClient(host, port string) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if pong, err := rdb.Ping(ctx).Result(); err != nil {
		log.Warnf("[Cache] Could not connect to Redis at %s:%s: %v", host, port, err)
	} else {
		log.Infof("[Cache] Connected to Redis: %s", pong)
	}

	return &Client{rdb: rdb}
}

// NewClientFromEnv connects using CACHE_HOST / CACHE_PORT.
func NewClientFromEnv() *Client {
	return NewClient(
		env.GetEnv("CACHE_HOST", "localhost"),
		env.GetEnv("CACHE_PORT", "6379"),
	)
}

// Set stores a value with the given key and expiration time.
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Get retrieves a string value by key. Missing keys return redis.Nil.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// SetNX stores a value only if the key does not exist yet. Returns true when
// the key was set.
func (c *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, key, value, expiration).Result()
}

// Delete removes a value by key.
func (c *Client) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Redis exposes the raw client for callers needing commands the wrapper does
// not cover (hash increments, atomic renames).
func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// IsMiss reports whether the error is a cache miss.
func IsMiss(err error) bool {
	return err == redis.Nil
}
