package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/core/routing"
)

// OSRMProvider performs route lookups against an OSRM HTTP server.
type OSRMProvider struct {
	Endpoint string
	Client   *http.Client
}

// NewOSRMProvider creates a provider with a bounded request timeout.
func NewOSRMProvider(endpoint string) *OSRMProvider {
	return &OSRMProvider{
		Endpoint: strings.TrimSuffix(endpoint, "/"),
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
		Geometry string  `json:"geometry"`
		Legs     []struct {
			Duration float64 `json:"duration"`
			Distance float64 `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route queries OSRM /route over all waypoints in order. OSRM expects
// lon,lat pairs separated by semicolons.
func (p *OSRMProvider) Route(ctx context.Context, waypoints []model.LatLng) (routing.Route, error) {
	if len(waypoints) < 2 {
		return routing.Route{}, fmt.Errorf("%w: need at least two waypoints", routing.ErrNoRoute)
	}

	coords := make([]string, len(waypoints))
	for i, wp := range waypoints {
		coords[i] = fmt.Sprintf("%.6f,%.6f", wp.Lng, wp.Lat)
	}
	url := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&steps=false", p.Endpoint, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return routing.Route{}, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return routing.Route{}, err
	}
	defer resp.Body.Close()

	var out osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return routing.Route{}, err
	}
	if out.Code != "Ok" || len(out.Routes) == 0 {
		return routing.Route{}, fmt.Errorf("%w: osrm code %q", routing.ErrNoRoute, out.Code)
	}

	best := out.Routes[0]
	route := routing.Route{
		TotalDuration:  time.Duration(best.Duration * float64(time.Second)),
		TotalDistanceM: int(best.Distance),
		Polyline:       best.Geometry,
	}
	for _, leg := range best.Legs {
		route.Legs = append(route.Legs, routing.Leg{
			Duration:       time.Duration(leg.Duration * float64(time.Second)),
			DistanceMeters: int(leg.Distance),
		})
	}
	return route, nil
}
