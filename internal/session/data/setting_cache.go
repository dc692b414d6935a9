package data

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lk2023060901/ai-session-backend/internal/session/biz"
)

const settingCacheTTL = 24 * time.Hour

// CachedSettingRepo layers a Redis read-through cache over a durable setting
// repository. The cache is best effort: a cache failure falls back to the
// durable store and is logged, never surfaced.
type CachedSettingRepo struct {
	inner  biz.SettingRepo
	client *redis.Client
	logger *zap.Logger
}

// NewCachedSettingRepo creates a cached setting repository
func NewCachedSettingRepo(inner biz.SettingRepo, client *redis.Client, logger *zap.Logger) *CachedSettingRepo {
	return &CachedSettingRepo{
		inner:  inner,
		client: client,
		logger: logger,
	}
}

func (r *CachedSettingRepo) cacheKey(key string) string {
	return "session:setting:" + key
}

// Get returns the cached value when present, otherwise reads through to the
// durable store and populates the cache.
func (r *CachedSettingRepo) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.cacheKey(key)).Result()
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.logger.Warn("setting cache read failed",
			zap.String("key", key),
			zap.Error(err))
	}

	value, err = r.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	if err := r.client.Set(ctx, r.cacheKey(key), value, settingCacheTTL).Err(); err != nil {
		r.logger.Warn("setting cache populate failed",
			zap.String("key", key),
			zap.Error(err))
	}

	return value, nil
}

// Save writes through to the durable store, then refreshes the cache
func (r *CachedSettingRepo) Save(ctx context.Context, key, value string) error {
	if err := r.inner.Save(ctx, key, value); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.cacheKey(key), value, settingCacheTTL).Err(); err != nil {
		r.logger.Warn("setting cache refresh failed",
			zap.String("key", key),
			zap.Error(err))
	}

	return nil
}
