package metrics

import (
	"context"

	"github.com/kilianp07/evroute/core/events"
	coremetrics "github.com/kilianp07/evroute/core/metrics"
	"github.com/kilianp07/evroute/internal/eventbus"
)

// StrategyEventRecorder is implemented by sinks that can count strategy
// lifecycle events.
type StrategyEventRecorder interface {
	RecordStrategyEvent(ev events.StrategyEvent) error
}

// StartEventCollector subscribes to the event bus and records metrics for
// planning events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	rec, ok := sink.(StrategyEventRecorder)
	if !ok {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, open := <-sub:
				if !open {
					return
				}
				if e, ok := ev.(events.StrategyEvent); ok {
					_ = rec.RecordStrategyEvent(e)
				}
			}
		}
	}()
}
