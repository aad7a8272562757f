package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/example/ridepool/core/metrics"
)

// PromSink records matching activity in Prometheus metrics.
type PromSink struct {
	matches      *prometheus.CounterVec
	insertions   *prometheus.CounterVec
	routeLatency *prometheus.HistogramVec
}

// NewPromSink registers matching metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	matches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_results_total",
		Help: "Total number of matching runs by outcome",
	}, []string{"outcome"})
	insertions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insertion_evaluations_total",
		Help: "Total number of evaluated insertion positions",
	}, []string{"accepted", "reason"})
	routeLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_request_duration_seconds",
		Help:    "Latency of routing provider calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider", "status"})

	if err := reg.Register(matches); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			matches = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(insertions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			insertions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(routeLatency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			routeLatency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{matches: matches, insertions: insertions, routeLatency: routeLatency}, nil
}

// RecordMatch increments the outcome counter.
func (s *PromSink) RecordMatch(ev coremetrics.MatchEvent) error {
	s.matches.WithLabelValues(string(ev.Outcome)).Inc()
	return nil
}

// RecordInsertion increments the evaluation counter.
func (s *PromSink) RecordInsertion(ev coremetrics.InsertionEvent) error {
	s.insertions.WithLabelValues(strconv.FormatBool(ev.Accepted), ev.Reason).Inc()
	return nil
}

// RecordRouteLatency records the routing call histogram.
func (s *PromSink) RecordRouteLatency(provider string, d time.Duration, err error) error {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.routeLatency.WithLabelValues(provider, status).Observe(d.Seconds())
	return nil
}
