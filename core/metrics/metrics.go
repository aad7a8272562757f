package metrics

import (
	"time"

	"github.com/example/ridepool/core/model"
)

// MatchEvent records the outcome of one matching run.
type MatchEvent struct {
	Outcome     model.MatchKind
	TripID      string
	VehicleID   string
	Passengers  int
	Duration    time.Duration
	Reason      string
	RequestedAt time.Time
	Time        time.Time
}

// InsertionEvent records one evaluated splice position.
type InsertionEvent struct {
	TripID     string
	PickupPos  int
	DropoffPos int
	Accepted   bool
	Reason     string
}

// MetricsSink records matching activity for observability purposes.
type MetricsSink interface {
	RecordMatch(ev MatchEvent) error
	RecordInsertion(ev InsertionEvent) error
}

// RouteLatencyRecorder is implemented by sinks able to record routing call
// latency.
type RouteLatencyRecorder interface {
	RecordRouteLatency(provider string, d time.Duration, err error) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordMatch(MatchEvent) error         { return nil }
func (NopSink) RecordInsertion(InsertionEvent) error { return nil }

// Ensure NopSink implements RouteLatencyRecorder.
func (NopSink) RecordRouteLatency(string, time.Duration, error) error { return nil }
