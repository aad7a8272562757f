package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/example/ridepool/core/metrics"
	"github.com/example/ridepool/core/model"
)

func TestPromSink_RecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}

	if err := sink.RecordMatch(coremetrics.MatchEvent{Outcome: model.MatchPool}); err != nil {
		t.Fatalf("record match: %v", err)
	}
	if err := sink.RecordMatch(coremetrics.MatchEvent{Outcome: model.MatchPool}); err != nil {
		t.Fatalf("record match: %v", err)
	}
	if err := sink.RecordInsertion(coremetrics.InsertionEvent{Accepted: false, Reason: "capacity"}); err != nil {
		t.Fatalf("record insertion: %v", err)
	}

	ps := sink.(*PromSink)
	if got := testutil.ToFloat64(ps.matches.WithLabelValues("pool")); got != 2 {
		t.Errorf("match counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(ps.insertions.WithLabelValues("false", "capacity")); got != 1 {
		t.Errorf("insertion counter = %v, want 1", got)
	}
}

func TestPromSink_RouteLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	rec, ok := sink.(coremetrics.RouteLatencyRecorder)
	if !ok {
		t.Fatal("prom sink must record route latency")
	}
	if err := rec.RecordRouteLatency("osrm", 120*time.Millisecond, nil); err != nil {
		t.Fatalf("record latency: %v", err)
	}
	if err := rec.RecordRouteLatency("osrm", time.Second, errors.New("boom")); err != nil {
		t.Fatalf("record latency: %v", err)
	}
}

func TestPromSink_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first sink: %v", err)
	}
	// A second sink on the same registry reuses the existing collectors.
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second sink: %v", err)
	}
}
