package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/core/routing"
)

func TestOSRMProvider_Route(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"duration": 600,
				"distance": 5000,
				"geometry": "poly",
				"legs": [
					{"duration": 400, "distance": 3200},
					{"duration": 200, "distance": 1800}
				]
			}]
		}`))
	}))
	defer srv.Close()

	p := NewOSRMProvider(srv.URL)
	route, err := p.Route(context.Background(), []model.LatLng{
		{Lat: 48.0, Lng: 2.0},
		{Lat: 48.1, Lng: 2.0},
		{Lat: 48.2, Lng: 2.0},
	})
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if !strings.HasPrefix(gotPath, "/route/v1/driving/2.000000,48.000000;") {
		t.Errorf("waypoints not sent lon,lat in order: %s", gotPath)
	}
	if route.TotalDuration != 10*time.Minute || route.TotalDistanceM != 5000 {
		t.Errorf("totals %s/%d", route.TotalDuration, route.TotalDistanceM)
	}
	if route.Polyline != "poly" {
		t.Errorf("polyline %q", route.Polyline)
	}
	if len(route.Legs) != 2 || route.Legs[0].Duration != 400*time.Second {
		t.Errorf("legs %+v", route.Legs)
	}
}

func TestOSRMProvider_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	p := NewOSRMProvider(srv.URL)
	_, err := p.Route(context.Background(), []model.LatLng{{Lat: 48.0, Lng: 2.0}, {Lat: 48.1, Lng: 2.0}})
	if !errors.Is(err, routing.ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}

func TestOSRMProvider_TooFewWaypoints(t *testing.T) {
	p := NewOSRMProvider("http://localhost:5000")
	if _, err := p.Route(context.Background(), []model.LatLng{{Lat: 48.0, Lng: 2.0}}); err == nil {
		t.Fatal("expected error for a single waypoint")
	}
}
