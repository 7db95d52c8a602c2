// Package cache stores small backend lookups (platform lists, topic lists) between requests.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Cacher is implemented by the in-memory and Redis stores. Implementations are safe for
// concurrent use.
type Cacher interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value for ttl; a zero ttl means the store's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrCacheMiss   Error = "cache miss"
	ErrCacheClosed Error = "cache closed"
)

type Options struct {
	RedisURL   string
	Prefix     string
	DefaultTTL time.Duration
}

// New returns a Redis-backed store when RedisURL is set and reachable, otherwise memory.
func New(opts Options, logger *zap.Logger) Cacher {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.RedisURL != "" {
		redisCache, err := NewRedisCache(opts.RedisURL, opts.Prefix, opts.DefaultTTL)
		if err == nil {
			logger.Info("using redis cache", zap.String("prefix", opts.Prefix))
			return redisCache
		}
		logger.Warn("redis unavailable, falling back to memory cache", zap.Error(err))
	}

	return NewMemoryCache(opts.DefaultTTL, time.Minute)
}

// Typed adds JSON encoding on top of a Cacher.
type Typed[T any] struct {
	store Cacher
	ttl   time.Duration
}

func NewTyped[T any](store Cacher, ttl time.Duration) *Typed[T] {
	return &Typed[T]{store: store, ttl: ttl}
}

func (c *Typed[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	data, err := c.store.Get(ctx, key)
	if err != nil {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false
	}
	return value, true
}

func (c *Typed[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %q: %w", key, err)
	}
	return c.store.Set(ctx, key, data, c.ttl)
}

// GetOrLoad returns the cached value for key or calls load and stores its result.
// A failed store write is not an error: the freshly loaded value is still returned.
func (c *Typed[T]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	_ = c.Set(ctx, key, value)
	return value, nil
}
