// Package app wires the configured components into a running service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/ridepool/api/booking"
	"github.com/example/ridepool/config"
	"github.com/example/ridepool/core/fleet"
	"github.com/example/ridepool/core/match"
	coremetrics "github.com/example/ridepool/core/metrics"
	"github.com/example/ridepool/core/routing"
	"github.com/example/ridepool/infra/ids"
	"github.com/example/ridepool/infra/logger"
	"github.com/example/ridepool/infra/metrics"
	infrarouting "github.com/example/ridepool/infra/routing"
	"github.com/example/ridepool/infra/notify"
	"github.com/example/ridepool/internal/eventbus"
)

// Service bundles the engine, the fleet store and the HTTP API.
type Service struct {
	Engine *match.Engine
	Store  *fleet.Store

	cfg       *config.Config
	bus       *eventbus.Bus
	notifier  notify.Notifier
	server    *http.Server
	log       logger.Logger
	mqttClose func()
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	provider, err := BuildProvider(cfg.Routing, sink, logg)
	if err != nil {
		return nil, err
	}

	bus := eventbus.New()
	allocator := ids.UUIDAllocator{}
	engine, err := match.NewEngine(provider, allocator, sink, bus, logger.New("matching-engine"))
	if err != nil {
		return nil, fmt.Errorf("matching engine: %w", err)
	}
	store := fleet.NewStore(allocator)

	var notifier notify.Notifier = notify.NopNotifier{}
	var closer func()
	if cfg.MQTT.Enabled {
		n, err := notify.NewMQTTNotifier(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt notifier: %w", err)
		}
		notifier = n
		closer = n.Close
	}

	mux := http.NewServeMux()
	handler := booking.NewHandler(store, engine, cfg.Matching, notifier, logger.New("booking-api"))
	handler.Register(mux)

	svc := &Service{
		Engine:   engine,
		Store:    store,
		cfg:      cfg,
		bus:      bus,
		notifier: notifier,
		server:   &http.Server{Addr: cfg.HTTP.Addr, Handler: mux},
		log:      logg,
	}
	svc.mqttClose = closer
	return svc, nil
}

// BuildProvider constructs the routing provider stack from the config:
// backend, optional redis cache, latency instrumentation.
func BuildProvider(cfg config.RoutingConfig, sink coremetrics.MetricsSink, log logger.Logger) (routing.Provider, error) {
	var provider routing.Provider
	var err error
	switch cfg.Provider {
	case config.ProviderGoogle:
		provider, err = infrarouting.NewGoogleProvider(cfg.GoogleAPIKey)
		if err != nil {
			return nil, fmt.Errorf("google provider: %w", err)
		}
	case config.ProviderOSRM:
		provider = infrarouting.NewOSRMProvider(cfg.OSRMEndpoint)
	case config.ProviderMock:
		provider = &routing.MockProvider{}
	default:
		return nil, fmt.Errorf("unknown routing provider %q", cfg.Provider)
	}

	if cfg.Cache.Enabled {
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
		provider = infrarouting.NewCachedProvider(provider, client, ttl, log)
	}
	return infrarouting.NewInstrumentedProvider(provider, cfg.Provider, sink), nil
}

// Run starts the HTTP API and, when enabled, the Prometheus endpoint. It
// blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go metrics.ServePrometheus(s.cfg.Metrics.PrometheusPort, s.log)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("booking api listening on %s", s.cfg.HTTP.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.mqttClose != nil {
		s.mqttClose()
	}
	return nil
}
