package cache

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/wfgraph/pkg/errors"
)

// DefaultRedisPrefix namespaces every key the Redis backend writes.
const DefaultRedisPrefix = "wfgraph:"

// RedisConfig configures [NewRedisCache].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key. Clear only removes prefixed keys.
	// Empty selects DefaultRedisPrefix.
	Prefix string

	// Backoff governs retries of transient network failures. The zero
	// value selects DefaultBackoff.
	Backoff Backoff
}

// RedisCache stores entries in Redis using native key expiry.
type RedisCache struct {
	client  *redis.Client
	prefix  string
	backoff Backoff
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeCache, err, "connect to redis at %s", cfg.Addr)
	}

	c := &RedisCache{client: client, prefix: cfg.Prefix, backoff: cfg.Backoff}
	if c.prefix == "" {
		c.prefix = DefaultRedisPrefix
	}
	if c.backoff.Attempts == 0 {
		c.backoff = DefaultBackoff
	}
	return c, nil
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := Retry(ctx, c.backoff, func() error {
		b, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if err != nil {
			return classify(err)
		}
		data = b
		return nil
	})
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCache, err, "get %s", key)
	}
	return data, true, nil
}

// Set stores a value with the given expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := Retry(ctx, c.backoff, func() error {
		return classify(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "set %s", key)
	}
	return nil
}

// Delete removes a key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := Retry(ctx, c.backoff, func() error {
		return classify(c.client.Del(ctx, c.prefix+key).Err())
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeCache, err, "delete %s", key)
	}
	return nil
}

// Clear deletes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return errors.Wrap(errors.ErrCodeCache, err, "scan %s*", c.prefix)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "clear %s*", c.prefix)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// classify marks network failures as retryable. redis.Nil and everything
// else pass through unchanged.
func classify(err error) error {
	if err == nil || stderrors.Is(err, redis.Nil) {
		return err
	}
	var ne net.Error
	if stderrors.As(err, &ne) || stderrors.Is(err, io.EOF) {
		return Retryable(err)
	}
	return err
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
