package metrics

import (
	"errors"
	"testing"
	"time"

	coremetrics "github.com/example/ridepool/core/metrics"
	"github.com/example/ridepool/core/model"
)

type countingSink struct {
	matches    int
	insertions int
	err        error
}

func (s *countingSink) RecordMatch(coremetrics.MatchEvent) error {
	s.matches++
	return s.err
}

func (s *countingSink) RecordInsertion(coremetrics.InsertionEvent) error {
	s.insertions++
	return s.err
}

func TestMultiSink_FansOut(t *testing.T) {
	a, b := &countingSink{}, &countingSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordMatch(coremetrics.MatchEvent{Outcome: model.MatchNew}); err != nil {
		t.Fatalf("record match: %v", err)
	}
	if err := m.RecordInsertion(coremetrics.InsertionEvent{}); err != nil {
		t.Fatalf("record insertion: %v", err)
	}
	if a.matches != 1 || b.matches != 1 || a.insertions != 1 || b.insertions != 1 {
		t.Fatalf("fan-out incomplete: %+v %+v", a, b)
	}
}

func TestMultiSink_CollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	a, b := &countingSink{err: boom}, &countingSink{}
	m := NewMultiSink(a, b)

	err := m.RecordMatch(coremetrics.MatchEvent{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	// The failing sink does not stop the others.
	if b.matches != 1 {
		t.Fatal("second sink skipped")
	}
}

func TestMultiSink_RouteLatencySkipsIncapableSinks(t *testing.T) {
	plain := &countingSink{}
	m := NewMultiSink(plain)
	if err := m.RecordRouteLatency("mock", time.Millisecond, nil); err != nil {
		t.Fatalf("latency on incapable sinks must be a no-op, got %v", err)
	}
}
