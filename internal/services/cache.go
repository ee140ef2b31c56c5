package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedURL is what the redirect path needs to skip the lookup query.
type CachedURL struct {
	ID          uint   `json:"id"`
	OriginalURL string `json:"original_url"`
}

// URLCache is a cache-aside layer in front of active short code lookups.
// A nil client turns every method into a miss or no-op.
type URLCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewURLCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *URLCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &URLCache{rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(code string) string {
	return "url:" + code
}

func (c *URLCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *URLCache) Get(ctx context.Context, code string) (CachedURL, bool) {
	var entry CachedURL
	if !c.Enabled() {
		return entry, false
	}
	val, err := c.rdb.Get(ctx, cacheKey(code)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("Cache get failed", "short_code", code, "error", err)
		}
		return entry, false
	}
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return entry, false
	}
	return entry, true
}

func (c *URLCache) Set(ctx context.Context, code string, entry CachedURL) {
	if !c.Enabled() {
		return
	}
	data, _ := json.Marshal(entry)
	if err := c.rdb.Set(ctx, cacheKey(code), data, c.ttl).Err(); err != nil {
		c.logger.Debug("Cache set failed", "short_code", code, "error", err)
	}
}

func (c *URLCache) Delete(ctx context.Context, code string) {
	if !c.Enabled() {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(code)).Err(); err != nil {
		c.logger.Warn("Cache delete failed", "short_code", code, "error", err)
	}
}
