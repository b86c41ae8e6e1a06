package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// PageKeyPrefix is the Redis key prefix for cached page payloads.
	PageKeyPrefix = "page:"
	// DefaultPageTTL applies when no TTL is configured.
	DefaultPageTTL = time.Minute
)

// PageRevalidator evicts cached renders for page paths such as "/" or
// "/profile/edit".
type PageRevalidator interface {
	Revalidate(ctx context.Context, paths ...string) error
}

// PageCache stores JSON page payloads in Redis keyed by path. A nil client
// turns every call into a miss or a no-op.
type PageCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewPageCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PageCache{rdb: rdb, ttl: ttl, log: log.Named("pagecache")}
}

func pageKey(path string) string {
	return PageKeyPrefix + path
}

// Get decodes the cached payload for path into dest and reports a hit.
func (c *PageCache) Get(ctx context.Context, path string, dest any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, pageKey(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("pagecache: get %s: %w", path, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("pagecache: decode %s: %w", path, err)
	}
	return true, nil
}

// Set caches value under path for the configured TTL.
func (c *PageCache) Set(ctx context.Context, path string, value any) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("pagecache: encode %s: %w", path, err)
	}
	if err := c.rdb.Set(ctx, pageKey(path), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("pagecache: set %s: %w", path, err)
	}
	return nil
}

// Revalidate evicts every given path.
func (c *PageCache) Revalidate(ctx context.Context, paths ...string) error {
	if c == nil || c.rdb == nil || len(paths) == 0 {
		return nil
	}
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		keys = append(keys, pageKey(p))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("pagecache: revalidate: %w", err)
	}
	c.log.Debug("revalidated pages", zap.Strings("paths", paths))
	return nil
}
