package metrics

import (
	"errors"
	"time"

	coremetrics "github.com/example/ridepool/core/metrics"
)

// MultiSink fans every record out to all configured sinks.
type MultiSink struct {
	sinks []coremetrics.MetricsSink
}

// NewMultiSink composes several sinks into one.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordMatch(ev coremetrics.MatchEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordMatch(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordInsertion(ev coremetrics.InsertionEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordInsertion(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordRouteLatency forwards to every sink that records latency.
func (m *MultiSink) RecordRouteLatency(provider string, d time.Duration, err error) error {
	var errs []error
	for _, s := range m.sinks {
		if lr, ok := s.(coremetrics.RouteLatencyRecorder); ok {
			if rerr := lr.RecordRouteLatency(provider, d, err); rerr != nil {
				errs = append(errs, rerr)
			}
		}
	}
	return errors.Join(errs...)
}
