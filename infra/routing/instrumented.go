package routing

import (
	"context"
	"time"

	coremetrics "github.com/example/ridepool/core/metrics"
	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/core/routing"
)

// InstrumentedProvider wraps a provider and records per-call latency on
// sinks that support it.
type InstrumentedProvider struct {
	inner    routing.Provider
	name     string
	recorder coremetrics.RouteLatencyRecorder
}

// NewInstrumentedProvider wraps inner. name labels the provider in metrics.
func NewInstrumentedProvider(inner routing.Provider, name string, sink coremetrics.MetricsSink) routing.Provider {
	rec, ok := sink.(coremetrics.RouteLatencyRecorder)
	if !ok {
		return inner
	}
	return &InstrumentedProvider{inner: inner, name: name, recorder: rec}
}

func (p *InstrumentedProvider) Route(ctx context.Context, waypoints []model.LatLng) (routing.Route, error) {
	start := time.Now()
	route, err := p.inner.Route(ctx, waypoints)
	_ = p.recorder.RecordRouteLatency(p.name, time.Since(start), err)
	return route, err
}
