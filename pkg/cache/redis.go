package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis, for sharing renders between instances
// of the HTTP service. Expiry is left to Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures a RedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// Prefix is prepended to every key, e.g. "textblock:".
	Prefix string
	// DialTimeout bounds connection attempts. Zero uses the client default.
	DialTimeout time.Duration
}

// NewRedisCache creates a cache backed by the Redis server at opts.Addr.
// No connection is made until the first operation; use Ping to check the
// server up front.
func NewRedisCache(opts RedisOptions) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
		MaxRetries:  1,
	})
	return &RedisCache{client: client, prefix: opts.Prefix}
}

// Ping checks that the server is reachable.
func (c *RedisCache) Ping(ctx context.Context) error {
	return backendError("redis", "ping", c.client.Ping(ctx).Err())
}

// Get retrieves a value from the cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, backendError("redis", "get", err)
	}
	return data, true, nil
}

// Set stores a value in the cache. A ttl <= 0 means no expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ttl < 0 {
		ttl = 0
	}
	return backendError("redis", "set", c.client.Set(ctx, c.key(key), data, ttl).Err())
}

// Delete removes a value from the cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return backendError("redis", "delete", c.client.Del(ctx, c.key(key)).Err())
}

// Close closes the connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
