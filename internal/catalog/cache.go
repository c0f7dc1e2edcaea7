package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds a built catalog. Get reports ok=false on a miss.
type Cache interface {
	Get(ctx context.Context) (*Catalog, bool, error)
	Set(ctx context.Context, c *Catalog) error
}

// MemoryCache is the process-wide cache. Catalogs are read-only once built,
// so the same pointer is shared across goroutines.
type MemoryCache struct {
	mu  sync.RWMutex
	cur *Catalog
	at  time.Time
	ttl time.Duration
	now func() time.Time
}

// NewMemoryCache returns a cache whose entries expire after ttl. A zero ttl
// keeps entries until the next Set.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context) (*Catalog, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cur == nil {
		return nil, false, nil
	}
	if m.ttl > 0 && m.now().Sub(m.at) > m.ttl {
		return nil, false, nil
	}
	return m.cur, true, nil
}

func (m *MemoryCache) Set(_ context.Context, c *Catalog) error {
	m.mu.Lock()
	m.cur = c
	m.at = m.now()
	m.mu.Unlock()
	return nil
}

// RedisCache shares the catalog between engine instances as one JSON blob.
type RedisCache struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

const defaultRedisKey = "internmatch:catalog:v1"

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, key: defaultRedisKey, ttl: ttl}
}

// NewRedisClient parses redisURL and verifies connectivity.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

func (r *RedisCache) Get(ctx context.Context) (*Catalog, bool, error) {
	b, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	var raw Catalog
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, false, fmt.Errorf("decode cached catalog: %w", err)
	}
	return New(raw.Skills, raw.CourseworkCategories, raw.CourseworkItems, raw.Majors), true, nil
}

func (r *RedisCache) Set(ctx context.Context, c *Catalog) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key, b, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
