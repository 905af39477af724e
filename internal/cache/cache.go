// Package cache keeps public catalog reads in Redis. A nil *Cache is a
// valid, disabled cache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

const prefix = "homely:"

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *slog.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log *slog.Logger) *Cache {
	if rdb == nil {
		return nil
	}
	if log == nil {
		log = slog.Default()
	}
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

// Connect returns nil when url is empty or the server does not answer, so
// callers keep working without a cache.
func Connect(url string, ttl time.Duration, log *slog.Logger) *Cache {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("invalid REDIS_URL, cache disabled", "error", err)
		return nil
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, cache disabled", "error", err)
		_ = rdb.Close()
		return nil
	}

	return New(rdb, ttl, log)
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}

// Invalidate drops keys; failures only get logged.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = prefix + k
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "keys", keys, "error", err)
	}
}

// Remember returns the cached value for key, or calls load and caches its
// result. Redis errors fall back to load.
func Remember[T any](
	ctx context.Context,
	c *Cache,
	key string,
	load func(context.Context) (T, error),
) (T, error) {

	if !c.Enabled() {
		return load(ctx)
	}

	var out T
	raw, err := c.rdb.Get(ctx, prefix+key).Bytes()
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(raw, &out); jsonErr == nil {
			return out, nil
		}
	case err != redis.Nil:
		c.log.Warn("cache read failed", "key", key, "error", err)
	}

	out, err = load(ctx)
	if err != nil {
		return out, err
	}

	if b, jsonErr := json.Marshal(out); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, prefix+key, b, c.ttl).Err(); setErr != nil {
			c.log.Warn("cache write failed", "key", key, "error", setErr)
		}
	}
	return out, nil
}

// ======================================================
// Keys
// ======================================================

func ChefListKey() string {
	return "chefs:all"
}

func ChefMenuKey(chefID uint) string {
	return fmt.Sprintf("chefs:%d:menu", chefID)
}

func ChefProfileKey(chefID uint) string {
	return fmt.Sprintf("chefs:%d:profile", chefID)
}

// ChefKeys lists every cached entry that mentions the chef.
func ChefKeys(chefID uint) []string {
	return []string{ChefListKey(), ChefMenuKey(chefID), ChefProfileKey(chefID)}
}
