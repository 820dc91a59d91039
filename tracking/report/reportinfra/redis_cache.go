package reportinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/acamacho/jobtrail/pkg/logx"
	"github.com/go-redis/redis/v8"
)

// RedisReportCache caches serialized report results in Redis. A nil receiver
// is a no-op cache, so callers never have to branch on whether caching is
// configured.
type RedisReportCache struct {
	client *redis.Client
	prefix string
}

// NewRedisReportCache creates a new Redis-backed report cache
func NewRedisReportCache(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{
		client: client,
		prefix: "jobtrail:report:",
	}
}

// Get loads a cached value into dest, reporting whether the key was present.
// Redis failures degrade to a cache miss rather than failing the report.
func (c *RedisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	payload, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		logx.Warnf("Report cache read failed for %s: %v", key, err)
		return false, nil
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached report %s: %w", key, err)
	}

	return true, nil
}

// Set stores a value under key for ttl
func (c *RedisReportCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report %s for cache: %w", key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, payload, ttl).Err(); err != nil {
		logx.Warnf("Report cache write failed for %s: %v", key, err)
	}

	return nil
}
