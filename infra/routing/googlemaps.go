// Package routing provides the concrete routing providers behind the core
// routing interface: Google Directions, OSRM, a redis read-through cache and
// a latency-recording wrapper.
package routing

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/core/routing"
)

// GoogleProvider resolves routes through the Google Maps Directions API.
type GoogleProvider struct {
	client *maps.Client
}

// NewGoogleProvider creates a provider with the given API key.
func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleProvider{client: client}, nil
}

// Route submits the ordered waypoint list as a single directions request.
// Waypoint order is preserved; no optimization is requested.
func (p *GoogleProvider) Route(ctx context.Context, waypoints []model.LatLng) (routing.Route, error) {
	if len(waypoints) < 2 {
		return routing.Route{}, fmt.Errorf("%w: need at least two waypoints", routing.ErrNoRoute)
	}

	r := &maps.DirectionsRequest{
		Origin:      formatLatLng(waypoints[0]),
		Destination: formatLatLng(waypoints[len(waypoints)-1]),
		Mode:        maps.TravelModeDriving,
	}
	for _, wp := range waypoints[1 : len(waypoints)-1] {
		r.Waypoints = append(r.Waypoints, formatLatLng(wp))
	}

	routes, _, err := p.client.Directions(ctx, r)
	if err != nil {
		return routing.Route{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return routing.Route{}, routing.ErrNoRoute
	}

	var out routing.Route
	for _, leg := range routes[0].Legs {
		l := routing.Leg{Duration: leg.Duration, DistanceMeters: leg.Distance.Meters}
		out.Legs = append(out.Legs, l)
		out.TotalDuration += l.Duration
		out.TotalDistanceM += l.DistanceMeters
	}
	out.Polyline = routes[0].OverviewPolyline.Points
	return out, nil
}

func formatLatLng(p model.LatLng) string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}
