package entitlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/allstories/studiokit/pkg/cache"
	"github.com/allstories/studiokit/pkg/plan"
)

// TierCache stores resolved tiers between verifications. Cache misses
// are cheap (one billing lookup); cache errors are treated as misses so
// a broken cache can never break gating.
type TierCache interface {
	Get(ctx context.Context, userID uuid.UUID) (plan.Tier, bool)
	Set(ctx context.Context, userID uuid.UUID, tier plan.Tier)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type memoryEntry struct {
	tier    plan.Tier
	expires time.Time
}

// memoryTierCache is the default single-process cache: a bounded LRU
// with per-entry TTL so a stale paid tier cannot outlive a
// cancellation for longer than the TTL window.
type memoryTierCache struct {
	lru *cache.LRU[uuid.UUID, memoryEntry]
	ttl time.Duration
	now func() time.Time
}

// NewMemoryTierCache creates an in-process TierCache holding up to
// capacity entries for ttl each.
func NewMemoryTierCache(capacity int, ttl time.Duration) TierCache {
	return &memoryTierCache{
		lru: cache.NewLRU[uuid.UUID, memoryEntry](capacity),
		ttl: ttl,
		now: time.Now,
	}
}

func (c *memoryTierCache) Get(ctx context.Context, userID uuid.UUID) (plan.Tier, bool) {
	e, ok := c.lru.Get(userID)
	if !ok {
		return plan.TierFree, false
	}
	if c.now().After(e.expires) {
		c.lru.Remove(userID)
		return plan.TierFree, false
	}
	return e.tier, true
}

func (c *memoryTierCache) Set(ctx context.Context, userID uuid.UUID, tier plan.Tier) {
	c.lru.Put(userID, memoryEntry{tier: tier, expires: c.now().Add(c.ttl)})
}

func (c *memoryTierCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	c.lru.Remove(userID)
}

// redisTierCache shares resolved tiers across processes, so a webhook
// landing on one instance invalidates the cached tier everywhere.
type redisTierCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTierCache creates a Redis-backed TierCache with the given TTL.
func NewRedisTierCache(client *redis.Client, ttl time.Duration) TierCache {
	if client == nil {
		panic("entitlement: redis client is required")
	}
	return &redisTierCache{client: client, ttl: ttl}
}

func redisTierKey(userID uuid.UUID) string {
	return "entitlement:tier:" + userID.String()
}

func (c *redisTierCache) Get(ctx context.Context, userID uuid.UUID) (plan.Tier, bool) {
	val, err := c.client.Get(ctx, redisTierKey(userID)).Result()
	if err != nil {
		// redis.Nil and transport errors alike are cache misses.
		return plan.TierFree, false
	}
	tier, err := plan.ParseTier(val)
	if err != nil {
		return plan.TierFree, false
	}
	return tier, true
}

func (c *redisTierCache) Set(ctx context.Context, userID uuid.UUID, tier plan.Tier) {
	_ = c.client.Set(ctx, redisTierKey(userID), string(tier), c.ttl).Err()
}

func (c *redisTierCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	_ = c.client.Del(ctx, redisTierKey(userID)).Err()
}
