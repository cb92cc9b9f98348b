package missions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/OneOfOne/xxhash"
	"github.com/redis/go-redis/v9"

	"github.com/crewdesk/crewdesk/src/dispatch/core"
)

const cacheKeyPrefix = "dispatch:missions:"

// Cached is a read-through Redis cache in front of a Store. Listings are
// cached briefly; lookups bypass the cache since single-mission reads are
// cheap and must stay fresh for NotFound semantics.
type Cached struct {
	inner Store
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCached wraps a store with a Redis listing cache.
func NewCached(inner Store, rdb *redis.Client, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cached{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *Cached) GetMission(ctx context.Context, id string) (core.MissionRecord, error) {
	return c.inner.GetMission(ctx, id)
}

func (c *Cached) ListMissions(ctx context.Context, f Filter) ([]core.MissionRecord, error) {
	key := c.listKey(f)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var out []core.MissionRecord
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		// corrupt entry, fall through to the store
		c.rdb.Del(ctx, key)
	}

	out, err := c.inner.ListMissions(ctx, f)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			log.Printf("missions cache: set %s: %v", key, err)
		}
	}
	return out, nil
}

// Invalidate drops cached listings touched by a write to one agent's history:
// that agent's scoped keys plus the unscoped system-wide listings. An empty
// agentID drops the system-wide listings only.
func (c *Cached) Invalidate(ctx context.Context, agentID string) {
	patterns := []string{cacheKeyPrefix + "all:*"}
	if agentID != "" {
		patterns = append(patterns, cacheKeyPrefix+"agent:"+agentID+":*")
	}
	for _, pattern := range patterns {
		iter := c.rdb.Scan(ctx, 0, pattern, 256).Iterator()
		for iter.Next(ctx) {
			c.rdb.Del(ctx, iter.Val())
		}
		if err := iter.Err(); err != nil {
			log.Printf("missions cache: invalidate %s: %v", pattern, err)
		}
	}
}

// listKey scopes keys by agent so invalidation can target one agent's
// listings. Since is bucketed to the cache TTL before hashing; without that,
// the scoring fan-out's rolling lookback windows would never repeat a key.
func (c *Cached) listKey(f Filter) string {
	scope := "all"
	if f.AgentID != "" {
		scope = "agent:" + f.AgentID
	}
	h := xxhash.NewS64(0)
	fmt.Fprintf(h, "%v|%d", f.Statuses, f.Since.Truncate(c.ttl).Unix())
	return fmt.Sprintf("%s%s:%x", cacheKeyPrefix, scope, h.Sum64())
}
