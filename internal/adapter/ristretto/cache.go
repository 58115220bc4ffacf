// Package ristretto adapts dgraph's ristretto cache to the cache port. It
// backs the report cache: keys are case-text content hashes, values are
// serialized reports, and entries expire on a TTL.
package ristretto

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/casepilot/casepilot/internal/port/cache"
)

type Cache struct {
	inner *ristretto.Cache[string, []byte]
}

var _ cache.Cache = (*Cache)(nil)

// New builds a report cache bounded to maxSizeMB of stored bytes.
func New(maxSizeMB int64) (*Cache, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = 64
	}
	inner, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e5,
		MaxCost:     maxSizeMB << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("creating ristretto cache: %w", err)
	}
	return &Cache{inner: inner}, nil
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, found := c.inner.Get(key)
	return value, found, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.inner.SetWithTTL(key, value, int64(len(value)), ttl)
	// Admission is asynchronous; wait so a Get right after a Set sees the
	// entry, which the triage cache relies on.
	c.inner.Wait()
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.inner.Del(key)
	return nil
}

// Close releases the cache's internal goroutines.
func (c *Cache) Close() {
	c.inner.Close()
}
