package routing

import (
	"context"
	"testing"
	"time"

	coremetrics "github.com/example/ridepool/core/metrics"
	"github.com/example/ridepool/core/model"
	"github.com/example/ridepool/core/routing"
)

type latencySink struct {
	coremetrics.NopSink
	providers []string
	errs      []error
}

// plainSink implements MetricsSink only, without latency recording.
type plainSink struct{}

func (plainSink) RecordMatch(coremetrics.MatchEvent) error         { return nil }
func (plainSink) RecordInsertion(coremetrics.InsertionEvent) error { return nil }

func (s *latencySink) RecordRouteLatency(provider string, d time.Duration, err error) error {
	s.providers = append(s.providers, provider)
	s.errs = append(s.errs, err)
	return nil
}

func TestInstrumentedProvider_RecordsLatency(t *testing.T) {
	inner := &routing.MockProvider{}
	sink := &latencySink{}
	p := NewInstrumentedProvider(inner, "mock", sink)

	_, err := p.Route(context.Background(), []model.LatLng{{Lat: 48.0, Lng: 2.0}, {Lat: 48.1, Lng: 2.0}})
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if len(sink.providers) != 1 || sink.providers[0] != "mock" || sink.errs[0] != nil {
		t.Fatalf("unexpected recordings: %+v %+v", sink.providers, sink.errs)
	}
}

func TestInstrumentedProvider_PassthroughWithoutRecorder(t *testing.T) {
	inner := &routing.MockProvider{}
	if p := NewInstrumentedProvider(inner, "mock", plainSink{}); p != routing.Provider(inner) {
		t.Fatal("expected the inner provider back when the sink records no latency")
	}
}
