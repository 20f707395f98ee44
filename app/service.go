// Package app wires the planning engine, dataset, sinks and HTTP surface
// into a runnable service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/evroute/api/routes"
	"github.com/kilianp07/evroute/config"
	"github.com/kilianp07/evroute/core/charging"
	"github.com/kilianp07/evroute/core/compare"
	"github.com/kilianp07/evroute/core/events"
	coremetrics "github.com/kilianp07/evroute/core/metrics"
	"github.com/kilianp07/evroute/core/model"
	"github.com/kilianp07/evroute/core/network"
	"github.com/kilianp07/evroute/core/search"
	"github.com/kilianp07/evroute/infra/logger"
	"github.com/kilianp07/evroute/infra/metrics"
	"github.com/kilianp07/evroute/infra/mqtt"
	"github.com/kilianp07/evroute/infra/scorer"
	"github.com/kilianp07/evroute/internal/eventbus"
)

// Service orchestrates the planner and its collaborators.
type Service struct {
	Planner  *compare.Planner
	Network  *network.Network
	Registry *charging.Registry

	cfg       *config.Config
	bus       eventbus.EventBus
	log       logger.Logger
	publisher *mqtt.ResultPublisher
	promSink  *metrics.PromSink
	srv       *http.Server
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	net, stations, err := loadNetwork(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	reg, err := charging.NewRegistry(net, stations)
	if err != nil {
		return nil, fmt.Errorf("charging registry: %w", err)
	}
	logg.Infof("network loaded: %d nodes, %d edges, %d stations",
		net.NodeCount(), net.EdgeCount(), reg.Count())

	var (
		sinks    []coremetrics.MetricsSink
		promSink *metrics.PromSink
	)
	if cfg.Metrics.PrometheusEnabled {
		promSink, err = metrics.NewPromSink(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, promSink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	var sc search.Scorer
	if cfg.Scorer.Endpoint != "" {
		sc = scorer.NewHTTPScorer(cfg.Scorer)
	}

	engine, err := search.NewEngine(net, reg, cfg.Search, sc, logger.New("search"), sink)
	if err != nil {
		return nil, fmt.Errorf("search engine: %w", err)
	}

	bus := eventbus.New()
	planner, err := compare.NewPlanner(engine, net, cfg.Search, logger.New("planner"), sink, bus)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}

	var publisher *mqtt.ResultPublisher
	if cfg.MQTT.Enabled {
		publisher, err = mqtt.NewResultPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	svc := &Service{
		Planner:   planner,
		Network:   net,
		Registry:  reg,
		cfg:       cfg,
		bus:       bus,
		log:       logg,
		publisher: publisher,
		promSink:  promSink,
	}
	svc.srv = &http.Server{Addr: cfg.HTTP.Addr, Handler: svc.mux()}
	return svc, nil
}

func loadNetwork(cfg config.NetworkConfig) (*network.Network, []model.ChargingStation, error) {
	if cfg.Dataset == "" {
		net, stations := network.Amsterdam()
		return net, stations, nil
	}
	return network.Load(cfg.Dataset)
}

func (s *Service) mux() *http.ServeMux {
	mux := http.NewServeMux()
	var onResult func(model.ComparisonResult)
	if s.publisher != nil {
		onResult = s.PublishComparison
	}
	mux.Handle("/api/compare", routes.NewCompareHandler(s.Planner, s.log, onResult))
	mux.Handle("/api/network", routes.NewNetworkHandler(s.Network, s.Registry))
	mux.Handle("/healthz", routes.NewHealthHandler())
	return mux
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promSink != nil {
		metrics.StartEventCollector(ctx, s.bus, s.promSink)
		go func() {
			addr := ":" + s.cfg.Metrics.PrometheusPort
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	go s.logEvents(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("http listening on %s", s.cfg.HTTP.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
	return s.srv.Shutdown(shutdownCtx)
}

// logEvents mirrors plan lifecycle events into the service log.
func (s *Service) logEvents(ctx context.Context) {
	sub := s.bus.Subscribe()
	defer s.bus.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-sub:
			if !open {
				return
			}
			switch e := ev.(type) {
			case events.StrategyEvent:
				if e.Err != nil {
					s.log.Warnf("request %s: %s %s: %v", e.RequestID, e.Strategy, e.Action, e.Err)
				} else {
					s.log.Debugf("request %s: %s %s", e.RequestID, e.Strategy, e.Action)
				}
			case events.ComparisonEvent:
				s.log.Infof("request %s: %d/%d strategies succeeded", e.RequestID, e.Succeeded, e.Total)
			}
		}
	}
}

// PublishComparison forwards a result to the MQTT publisher when enabled.
func (s *Service) PublishComparison(res model.ComparisonResult) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishComparison(res); err != nil {
		s.log.Errorf("publish comparison: %v", err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	s.bus.Close()
	return nil
}
