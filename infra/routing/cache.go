package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/ridepool/core/logger"
	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/core/routing"
)

// CachedProvider is a redis read-through cache in front of a routing
// provider. Only two-point routes are cached: they are the direct-route
// detour baselines the engine recomputes on every insertion, and their
// results are stable over the cache window. Multi-stop tours are always
// recomputed. Cache failures degrade to a provider call, never to a routing
// failure.
type CachedProvider struct {
	inner routing.Provider
	redis *redis.Client
	ttl   time.Duration
	log   logger.Logger
}

// NewCachedProvider wraps inner with a redis cache.
func NewCachedProvider(inner routing.Provider, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedProvider{inner: inner, redis: client, ttl: ttl, log: log}
}

func (c *CachedProvider) Route(ctx context.Context, waypoints []model.LatLng) (routing.Route, error) {
	if len(waypoints) != 2 {
		return c.inner.Route(ctx, waypoints)
	}

	key := cacheKey(waypoints[0], waypoints[1])
	if data, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var route routing.Route
		if err := json.Unmarshal(data, &route); err == nil {
			return route, nil
		}
	} else if err != redis.Nil {
		c.log.Debugf("route cache read failed: %v", err)
	}

	route, err := c.inner.Route(ctx, waypoints)
	if err != nil {
		return routing.Route{}, err
	}
	if data, err := json.Marshal(route); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Debugf("route cache write failed: %v", err)
		}
	}
	return route, nil
}

func cacheKey(a, b model.LatLng) string {
	return fmt.Sprintf("routing:direct:%.5f,%.5f:%.5f,%.5f", a.Lat, a.Lng, b.Lat, b.Lng)
}
