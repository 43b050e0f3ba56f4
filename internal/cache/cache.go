// Package cache is the key/value response cache shared by the aggregation
// engine and the external passthrough routes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DefaultTTL applies when Set is called with a non-positive ttl.
	DefaultTTL = time.Hour
	// MergedTTL is the lifetime of aggregated recipe lists.
	MergedTTL = 5 * time.Minute
	// MergedPrefix prefixes every aggregated-list key.
	MergedPrefix = "merged_"
)

// Cache stores encoded responses by key.
type Cache interface {
	// Get returns the stored bytes. A missing or expired key reports false.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key. ttl <= 0 selects the cache's default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeleteByPrefix removes every key starting with prefix and returns how
	// many were removed. It advances the generation before removing anything.
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
	// Generation returns the invalidation counter.
	Generation(ctx context.Context) (uint64, error)
	// SetIfGeneration stores value only while the generation still equals gen
	// and reports whether it did.
	SetIfGeneration(ctx context.Context, key string, value []byte, ttl time.Duration, gen uint64) (bool, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// SetJSON encodes v and stores it. The encoded bytes are returned so the
// caller writes exactly what a later hit will return.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return data, err
	}
	return data, nil
}

func resolveTTL(ttl, def time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	if def > 0 {
		return def
	}
	return DefaultTTL
}
