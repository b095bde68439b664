package maps

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TravelTimes matches the collaborator interface the itinerary module
// consumes; both TravelTimeService and CachedTravelTimes satisfy it.
type TravelTimes interface {
	DriveTimeMinutes(ctx context.Context, origin, destination string) (int, error)
}

// CachedTravelTimes wraps a TravelTimes lookup with a Redis cache. Drive
// times between fixed addresses change slowly, and itinerary edits re-request
// the same legs often, so caching saves most of the Directions quota.
// Cache failures fall through to the live lookup; a lookup failure is never
// papered over with a stale or default value.
type CachedTravelTimes struct {
	inner TravelTimes
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedTravelTimes(inner TravelTimes, rdb *redis.Client, ttl time.Duration) *CachedTravelTimes {
	return &CachedTravelTimes{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedTravelTimes) DriveTimeMinutes(ctx context.Context, origin, destination string) (int, error) {
	key := cacheKey(origin, destination)

	if val, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if minutes, convErr := strconv.Atoi(val); convErr == nil {
			return minutes, nil
		}
	}

	minutes, err := c.inner.DriveTimeMinutes(ctx, origin, destination)
	if err != nil {
		return 0, err
	}
	_ = c.rdb.Set(ctx, key, strconv.Itoa(minutes), c.ttl).Err()
	return minutes, nil
}

func cacheKey(origin, destination string) string {
	return fmt.Sprintf("drivetime:%s|%s", origin, destination)
}
