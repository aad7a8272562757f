package routing

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/example/ridepool/core/model"
)

func TestHaversineKm(t *testing.T) {
	paris := model.LatLng{Lat: 48.8566, Lng: 2.3522}
	lyon := model.LatLng{Lat: 45.7640, Lng: 4.8357}

	got := HaversineKm(paris, lyon)
	if math.Abs(got-392) > 5 {
		t.Fatalf("paris-lyon = %.1f km, want ~392", got)
	}
	if d := HaversineKm(paris, paris); d != 0 {
		t.Fatalf("zero distance = %f", d)
	}
}

func TestMockProvider_Route(t *testing.T) {
	p := &MockProvider{SpeedKmh: 60}
	waypoints := []model.LatLng{
		{Lat: 48.00, Lng: 2.0},
		{Lat: 48.01, Lng: 2.0},
		{Lat: 48.03, Lng: 2.0},
	}

	route, err := p.Route(context.Background(), waypoints)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if len(route.Legs) != 2 {
		t.Fatalf("legs %d, want 2", len(route.Legs))
	}
	// The second leg covers twice the distance of the first.
	ratio := float64(route.Legs[1].Duration) / float64(route.Legs[0].Duration)
	if math.Abs(ratio-2) > 0.01 {
		t.Errorf("leg ratio %.3f, want 2", ratio)
	}
	var sum time.Duration
	for _, leg := range route.Legs {
		sum += leg.Duration
	}
	if route.TotalDuration != sum {
		t.Errorf("total %s != leg sum %s", route.TotalDuration, sum)
	}
	if p.Calls() != 1 {
		t.Errorf("calls %d", p.Calls())
	}
}

func TestMockProvider_Errors(t *testing.T) {
	boom := errors.New("boom")
	p := &MockProvider{Err: boom}
	if _, err := p.Route(context.Background(), []model.LatLng{{}, {}}); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}

	ok := &MockProvider{}
	if _, err := ok.Route(context.Background(), []model.LatLng{{}}); !errors.Is(err, ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute for one waypoint, got %v", err)
	}
}
