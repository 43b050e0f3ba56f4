package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyNamespace prefixes every key RedisCache writes.
const KeyNamespace = "recipenexus:cache:"

// GenerationKey holds the invalidation counter. It sits outside KeyNamespace
// so prefix deletion never removes it.
const GenerationKey = "recipenexus:cache_generation"

// scanBatch is the COUNT hint for SCAN during prefix deletion.
const scanBatch = 200

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	client     redis.UniversalClient
	defaultTTL time.Duration
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client redis.UniversalClient, defaultTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, defaultTTL: resolveTTL(defaultTTL, DefaultTTL)}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, KeyNamespace+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, KeyNamespace+key, value, resolveTTL(ttl, c.defaultTTL)).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	if err := c.client.Incr(ctx, GenerationKey).Err(); err != nil {
		return 0, fmt.Errorf("cache bump generation: %w", err)
	}
	iter := c.client.Scan(ctx, 0, KeyNamespace+prefix+"*", scanBatch).Iterator()
	n := 0
	for iter.Next(ctx) {
		removed, err := c.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return n, fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
		n += int(removed)
	}
	if err := iter.Err(); err != nil {
		return n, fmt.Errorf("cache scan %s*: %w", prefix, err)
	}
	return n, nil
}

func (c *RedisCache) Generation(ctx context.Context) (uint64, error) {
	return parseGeneration(c.client.Get(ctx, GenerationKey).Uint64())
}

func parseGeneration(gen uint64, err error) (uint64, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// SetIfGeneration watches the generation key so an invalidation landing
// between the check and the write aborts the transaction.
func (c *RedisCache) SetIfGeneration(ctx context.Context, key string, value []byte, ttl time.Duration, gen uint64) (bool, error) {
	stored := false
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := parseGeneration(tx.Get(ctx, GenerationKey).Uint64())
		if err != nil || cur != gen {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, KeyNamespace+key, value, resolveTTL(ttl, c.defaultTTL))
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, GenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache set %s: %w", key, err)
	}
	return stored, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
