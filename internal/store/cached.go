package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"zipshipping/internal/rate"
)

const keyPrefix = "zipshipping:settings:"

// Cached is a read-through Redis cache in front of another Store.
// Redis failures are logged and fall through to the backing store.
type Cached struct {
	next Store
	rdb  *redis.Client
	ttl  time.Duration
	log  *zap.Logger
}

func NewCached(next Store, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *Cached {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{next: next, rdb: rdb, ttl: ttl, log: log}
}

func cacheKey(instanceID int) string {
	return keyPrefix + instanceKey(instanceID)
}

func (c *Cached) Get(ctx context.Context, instanceID int) (rate.Settings, error) {
	key := cacheKey(instanceID)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s rate.Settings
		if jerr := json.Unmarshal(raw, &s); jerr == nil {
			return s, nil
		}
		c.log.Warn("discarding corrupt cached settings", zap.String("key", key))
	case !stderrors.Is(err, redis.Nil):
		c.log.Warn("settings cache read failed", zap.String("key", key), zap.Error(err))
	}

	s, err := c.next.Get(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if b, jerr := json.Marshal(s); jerr == nil {
		if serr := c.rdb.Set(ctx, key, b, c.ttl).Err(); serr != nil {
			c.log.Warn("settings cache write failed", zap.String("key", key), zap.Error(serr))
		}
	}
	return s, nil
}

// Save writes through to the backing store and drops the cached copy.
func (c *Cached) Save(ctx context.Context, instanceID int, s rate.Settings) error {
	if err := c.next.Save(ctx, instanceID, s); err != nil {
		return err
	}
	if err := c.rdb.Del(ctx, cacheKey(instanceID)).Err(); err != nil {
		c.log.Warn("settings cache invalidation failed", zap.Int("instance_id", instanceID), zap.Error(err))
	}
	return nil
}
