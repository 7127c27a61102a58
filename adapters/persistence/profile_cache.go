package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/howlerhq/howler-api/internal/domain/instagram"
	"github.com/howlerhq/howler-api/pkg/logger"
)

const profileCacheTTL = 10 * time.Minute

// RedisProfileCache keeps one-off profile lookups out of Instagram for a
// short TTL, which matters because the upstream aggressively rate limits.
type RedisProfileCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisProfileCache(rdb *redis.Client, log logger.Logger) *RedisProfileCache {
	return &RedisProfileCache{rdb: rdb, ttl: profileCacheTTL, logger: log}
}

func profileKey(username string) string {
	return fmt.Sprintf("howler:profile:%s", username)
}

func (c *RedisProfileCache) Get(ctx context.Context, username string) (*instagram.ProfileData, error) {
	raw, err := c.rdb.Get(ctx, profileKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var data instagram.ProfileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *RedisProfileCache) Set(ctx context.Context, username string, data *instagram.ProfileData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, profileKey(username), raw, c.ttl).Err()
}
