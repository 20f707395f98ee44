package metrics

import (
	"time"

	"github.com/kilianp07/evroute/core/model"
)

// SearchEvent represents one completed search to be recorded.
type SearchEvent struct {
	Strategy   model.StrategyKind
	Outcome    string // "ok" or the failure kind
	Expansions int
	Duration   time.Duration
	Stops      int
	Time       time.Time
}

// ComparisonEvent captures one comparison request.
type ComparisonEvent struct {
	RequestID  string
	Strategies int
	Succeeded  int
	Duration   time.Duration
	Time       time.Time
}

// MetricsSink records search and comparison events for observability
// purposes.
type MetricsSink interface {
	RecordSearch(ev SearchEvent) error
	RecordComparison(ev ComparisonEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSearch(SearchEvent) error         { return nil }
func (NopSink) RecordComparison(ComparisonEvent) error { return nil }

// MultiSink fans out events to several sinks, returning the first error.
type MultiSink struct {
	sinks []MetricsSink
}

// NewMultiSink creates a sink that forwards to all given sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordSearch(ev SearchEvent) error {
	var first error
	for _, s := range m.sinks {
		if err := s.RecordSearch(ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *MultiSink) RecordComparison(ev ComparisonEvent) error {
	var first error
	for _, s := range m.sinks {
		if err := s.RecordComparison(ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
