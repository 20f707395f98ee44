package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/evroute/core/events"
	coremetrics "github.com/kilianp07/evroute/core/metrics"
)

// PromSink records search and comparison events in Prometheus metrics.
type PromSink struct {
	searches    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	expansions  *prometheus.HistogramVec
	comparisons prometheus.Counter
	strategies  *prometheus.CounterVec
}

// NewPromSink registers planning metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. Collectors that
// are already registered are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "route_searches_total",
		Help: "Total number of route searches by strategy and outcome",
	}, []string{"strategy", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_search_duration_seconds",
		Help:    "Wall-clock duration of route searches",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})
	expansions := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_search_expansions",
		Help:    "Number of state expansions per search",
		Buckets: prometheus.ExponentialBuckets(16, 4, 10),
	}, []string{"strategy"})
	comparisons := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "route_comparisons_total",
		Help: "Total number of comparison requests",
	})
	strategies := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "route_strategy_events_total",
		Help: "Strategy lifecycle events observed on the event bus",
	}, []string{"strategy", "action"})

	s := &PromSink{comparisons: comparisons}
	if err := registerCounterVec(reg, searches, &s.searches); err != nil {
		return nil, err
	}
	if err := registerHistogramVec(reg, duration, &s.duration); err != nil {
		return nil, err
	}
	if err := registerHistogramVec(reg, expansions, &s.expansions); err != nil {
		return nil, err
	}
	if err := reg.Register(comparisons); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			s.comparisons = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := registerCounterVec(reg, strategies, &s.strategies); err != nil {
		return nil, err
	}
	return s, nil
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec, dst **prometheus.CounterVec) error {
	*dst = c
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*dst = are.ExistingCollector.(*prometheus.CounterVec)
			return nil
		}
		return err
	}
	return nil
}

func registerHistogramVec(reg prometheus.Registerer, h *prometheus.HistogramVec, dst **prometheus.HistogramVec) error {
	*dst = h
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			*dst = are.ExistingCollector.(*prometheus.HistogramVec)
			return nil
		}
		return err
	}
	return nil
}

// RecordSearch increments the per-strategy counters and histograms.
func (s *PromSink) RecordSearch(ev coremetrics.SearchEvent) error {
	s.searches.WithLabelValues(ev.Strategy.String(), ev.Outcome).Inc()
	s.duration.WithLabelValues(ev.Strategy.String()).Observe(ev.Duration.Seconds())
	s.expansions.WithLabelValues(ev.Strategy.String()).Observe(float64(ev.Expansions))
	return nil
}

// RecordComparison increments the comparison counter.
func (s *PromSink) RecordComparison(coremetrics.ComparisonEvent) error {
	s.comparisons.Inc()
	return nil
}

// RecordStrategyEvent counts lifecycle events from the event bus.
func (s *PromSink) RecordStrategyEvent(ev events.StrategyEvent) error {
	s.strategies.WithLabelValues(ev.Strategy.String(), ev.Action).Inc()
	return nil
}
