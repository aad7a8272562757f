package routing

import (
	"context"
	"errors"
	"time"

	"github.com/example/ridepool/core/model"
)

// ErrNoRoute is returned when the routing backend cannot produce a route
// between the requested waypoints.
var ErrNoRoute = errors.New("routing: no route found")

// Leg is the drive between two consecutive waypoints.
type Leg struct {
	Duration       time.Duration
	DistanceMeters int
}

// Route is the result of a routing request over an ordered waypoint list.
// Legs has exactly one entry per consecutive waypoint pair, in order.
type Route struct {
	TotalDuration  time.Duration
	TotalDistanceM int
	Polyline       string
	Legs           []Leg
}

// Provider resolves driving routes between ordered waypoints. The waypoint
// order is authoritative: providers must not reorder stops. Implementations
// are remote, latency-bearing and fallible; callers treat any error as "this
// candidate is infeasible".
type Provider interface {
	// Route requires at least two waypoints: the first is the origin, the
	// last the destination, everything in between an intermediate stop.
	Route(ctx context.Context, waypoints []model.LatLng) (Route, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, waypoints []model.LatLng) (Route, error)

func (f ProviderFunc) Route(ctx context.Context, waypoints []model.LatLng) (Route, error) {
	return f(ctx, waypoints)
}
