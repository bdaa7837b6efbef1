package businessflow

import (
	"context"
	"encoding/json"
	"time"

	"github.com/artemmak/showreel/logging"
	"github.com/redis/go-redis/v9"
)

// contentCache is a JSON read-through cache over Redis. A nil client disables it.
type contentCache struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
	store  string
}

func newContentCache(rc *redis.Client, prefix, store string, ttl time.Duration) contentCache {
	return contentCache{rc: rc, prefix: prefix + store + ":", ttl: ttl, store: store}
}

func (c contentCache) key(parts ...string) string {
	k := c.prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

func (c contentCache) get(ctx context.Context, key string, dst any) bool {
	if c.rc == nil {
		return false
	}
	bs, err := c.rc.Get(ctx, key).Bytes()
	if err != nil || len(bs) == 0 {
		contentCacheTotal.WithLabelValues(c.store, "miss").Inc()
		return false
	}
	if err := json.Unmarshal(bs, dst); err != nil {
		contentCacheTotal.WithLabelValues(c.store, "miss").Inc()
		return false
	}
	contentCacheTotal.WithLabelValues(c.store, "hit").Inc()
	return true
}

func (c contentCache) set(ctx context.Context, key string, v any) {
	if c.rc == nil {
		return
	}
	if bs, err := json.Marshal(v); err == nil {
		_ = c.rc.Set(ctx, key, bs, c.ttl).Err()
	}
}

func (c contentCache) del(ctx context.Context, keys ...string) {
	if c.rc == nil || len(keys) == 0 {
		return
	}
	if err := c.rc.Del(ctx, keys...).Err(); err != nil {
		logging.L(ctx).Warn("cache invalidation failed", "store", c.store, "keys", keys, "error", err)
	}
}
