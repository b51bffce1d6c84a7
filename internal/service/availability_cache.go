package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinic-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	// Redis key prefix for cached availability grids
	availabilityKeyPrefix = "availability:"

	// Ceiling for configured TTLs; availability changes with every booking,
	// so stale entries must age out quickly even when misconfigured.
	maxAvailabilityTTL = 5 * time.Minute
)

// AvailabilityCache keeps computed availability grids in Redis for a bounded
// TTL. It is passed to usecases by injection and invalidated explicitly on
// every appointment write; a cache failure is only ever a miss, never an
// error surfaced to the caller.
type AvailabilityCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger
}

func NewAvailabilityCache(redisClient *redis.Client, ttl time.Duration, log *logrus.Logger) *AvailabilityCache {
	if ttl <= 0 || ttl > maxAvailabilityTTL {
		ttl = maxAvailabilityTTL
	}
	return &AvailabilityCache{
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
	}
}

func availabilityKey(professionalID uuid.UUID, date time.Time, durationMinutes int) string {
	return fmt.Sprintf("%s%s:%s:%d", availabilityKeyPrefix, professionalID, date.Format("2006-01-02"), durationMinutes)
}

// Get returns the cached grid for the key, or ok=false on miss or error.
func (c *AvailabilityCache) Get(ctx context.Context, professionalID uuid.UUID, date time.Time, durationMinutes int) ([]entity.Slot, bool) {
	payload, err := c.redisClient.Get(ctx, availabilityKey(professionalID, date, durationMinutes)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warnf("Failed to read availability cache: %+v", err)
		}
		return nil, false
	}

	var slots []entity.Slot
	if err := json.Unmarshal(payload, &slots); err != nil {
		c.log.Warnf("Failed to decode cached availability, dropping entry: %+v", err)
		return nil, false
	}
	return slots, true
}

// Set stores a computed grid with the bounded TTL.
func (c *AvailabilityCache) Set(ctx context.Context, professionalID uuid.UUID, date time.Time, durationMinutes int, slots []entity.Slot) {
	payload, err := json.Marshal(slots)
	if err != nil {
		c.log.Warnf("Failed to encode availability for cache: %+v", err)
		return
	}

	key := availabilityKey(professionalID, date, durationMinutes)
	if err := c.redisClient.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to write availability cache: %+v", err)
	}
}

// Invalidate drops every cached grid for the professional on the given date,
// regardless of the requested duration. Called whenever an appointment for
// that professional is created, moved, or released.
func (c *AvailabilityCache) Invalidate(ctx context.Context, professionalID uuid.UUID, dates ...time.Time) {
	for _, date := range dates {
		pattern := fmt.Sprintf("%s%s:%s:*", availabilityKeyPrefix, professionalID, date.Format("2006-01-02"))
		keys, err := c.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			c.log.Warnf("Failed to list availability cache keys for invalidation: %+v", err)
			continue
		}
		if len(keys) == 0 {
			continue
		}
		if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
			c.log.Warnf("Failed to invalidate availability cache: %+v", err)
		}
	}
}
