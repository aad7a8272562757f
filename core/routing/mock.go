package routing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/ridepool/core/model"
)

// MockProvider returns deterministic routes computed from great-circle
// distance at a fixed speed. It is used in tests and in the offline match
// command.
type MockProvider struct {
	// SpeedKmh is the assumed driving speed. Defaults to 30 km/h.
	SpeedKmh float64
	// Err, when set, is returned for every request.
	Err error

	mu    sync.Mutex
	calls int
}

// Route computes one leg per consecutive waypoint pair.
func (m *MockProvider) Route(ctx context.Context, waypoints []model.LatLng) (Route, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return Route{}, m.Err
	}
	if len(waypoints) < 2 {
		return Route{}, fmt.Errorf("%w: need at least two waypoints", ErrNoRoute)
	}
	speed := m.SpeedKmh
	if speed <= 0 {
		speed = 30
	}
	var route Route
	for i := 1; i < len(waypoints); i++ {
		km := HaversineKm(waypoints[i-1], waypoints[i])
		leg := Leg{
			Duration:       time.Duration(km / speed * float64(time.Hour)),
			DistanceMeters: int(km * 1000),
		}
		route.Legs = append(route.Legs, leg)
		route.TotalDuration += leg.Duration
		route.TotalDistanceM += leg.DistanceMeters
	}
	route.Polyline = fmt.Sprintf("mock-%d", len(waypoints))
	return route, nil
}

// Calls reports how many route requests were issued.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
