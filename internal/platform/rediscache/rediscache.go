// Package rediscache caches /search results by normalized query string, so
// a busy front-of-house terminal re-issuing the same free-text lookup
// doesn't re-run a fuzzy match against the whole roster every keystroke.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rodeovalidate/internal/regdb"
)

const keyPrefix = "rodeovalidate:search:"

// Cache is a Redis-backed cache of ranked search results, keyed by
// normalized query string.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps client with a fixed TTL. Returns nil if addr is empty, so
// callers can treat a disabled cache as "no cache configured" rather than
// threading a bool through every call site.
func New(addr string, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("rediscache: ping: %w", err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Get returns the cached candidates for query, if present and unexpired.
func (c *Cache) Get(ctx context.Context, query string) ([]regdb.Candidate, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, keyPrefix+query).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	var candidates []regdb.Candidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, false
	}
	return candidates, true
}

// Set stores candidates for query, overwriting any previous entry.
func (c *Cache) Set(ctx context.Context, query string, candidates []regdb.Candidate) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(candidates)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, keyPrefix+query, raw, c.ttl).Err()
}
