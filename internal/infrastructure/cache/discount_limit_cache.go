package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/fieldsales/backend/internal/domain/partner"
)

// limitEntry caches an agency's discount limit. A nil limit is a valid
// cached value meaning the agency uses the policy default.
type limitEntry struct {
	limit     *decimal.Decimal
	expiresAt time.Time
}

// DiscountLimitCache serves per-agency discount approval limits from an
// in-memory TTL cache backed by the agency repository. Order creation
// consults the limit on every request, so limits are cached to keep the
// hot path off the database.
type DiscountLimitCache struct {
	agencies partner.AgencyRepository
	ttl      time.Duration

	mu      sync.RWMutex
	entries map[uuid.UUID]limitEntry
}

// NewDiscountLimitCache creates a cache over the given agency repository
func NewDiscountLimitCache(agencies partner.AgencyRepository, ttl time.Duration) *DiscountLimitCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DiscountLimitCache{
		agencies: agencies,
		ttl:      ttl,
		entries:  make(map[uuid.UUID]limitEntry),
	}
}

// DiscountLimit returns the agency's discount limit override, or nil when
// the agency uses the policy default.
func (c *DiscountLimitCache) DiscountLimit(ctx context.Context, agencyID uuid.UUID) (*decimal.Decimal, error) {
	c.mu.RLock()
	e, ok := c.entries[agencyID]
	c.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		return copyLimit(e.limit), nil
	}

	agency, err := c.agencies.FindByID(ctx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agency %s: %w", agencyID, err)
	}

	c.mu.Lock()
	c.entries[agencyID] = limitEntry{
		limit:     copyLimit(agency.DiscountLimitPercent),
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()

	return copyLimit(agency.DiscountLimitPercent), nil
}

// Invalidate drops the cached limit for an agency, forcing the next read
// to hit the repository. Called after an agency's limit is updated.
func (c *DiscountLimitCache) Invalidate(agencyID uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, agencyID)
	c.mu.Unlock()
}

func copyLimit(limit *decimal.Decimal) *decimal.Decimal {
	if limit == nil {
		return nil
	}
	v := *limit
	return &v
}

// noLimitSentinel marks a cached "agency has no override" in Redis.
const noLimitSentinel = "none"

// RedisDiscountLimitCache is a distributed variant of DiscountLimitCache
// for deployments with multiple API instances sharing one Redis.
type RedisDiscountLimitCache struct {
	client    *redis.Client
	agencies  partner.AgencyRepository
	ttl       time.Duration
	keyPrefix string
}

// NewRedisDiscountLimitCache creates a Redis-backed discount limit cache
// using an existing client.
func NewRedisDiscountLimitCache(client *redis.Client, agencies partner.AgencyRepository, ttl time.Duration) *RedisDiscountLimitCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisDiscountLimitCache{
		client:    client,
		agencies:  agencies,
		ttl:       ttl,
		keyPrefix: "agency:discount_limit:",
	}
}

// DiscountLimit returns the agency's discount limit override, or nil when
// the agency uses the policy default. Redis errors fall through to the
// repository so a cache outage never blocks order creation.
func (c *RedisDiscountLimitCache) DiscountLimit(ctx context.Context, agencyID uuid.UUID) (*decimal.Decimal, error) {
	key := c.keyPrefix + agencyID.String()

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if cached == noLimitSentinel {
			return nil, nil
		}
		limit, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return &limit, nil
		}
		// Corrupt entry, re-read from the repository below
	} else if !errors.Is(err, redis.Nil) {
		// Fall through to the repository on Redis failure
	}

	agency, err := c.agencies.FindByID(ctx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agency %s: %w", agencyID, err)
	}

	value := noLimitSentinel
	if agency.DiscountLimitPercent != nil {
		value = agency.DiscountLimitPercent.String()
	}
	_ = c.client.Set(ctx, key, value, c.ttl).Err()

	return copyLimit(agency.DiscountLimitPercent), nil
}

// Invalidate drops the cached limit for an agency
func (c *RedisDiscountLimitCache) Invalidate(ctx context.Context, agencyID uuid.UUID) error {
	return c.client.Del(ctx, c.keyPrefix+agencyID.String()).Err()
}
