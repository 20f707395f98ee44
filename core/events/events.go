// Package events defines the planning events emitted on the event bus.
//
// Available event types:
//   - StrategyEvent: a comparison variant started or finished
//   - ComparisonEvent: a comparison request completed
package events

import "github.com/kilianp07/evroute/core/model"

// StrategyEvent is emitted for each strategy variant of a comparison.
// Action is "start", "done" or "failed".
type StrategyEvent struct {
	RequestID string
	Strategy  model.StrategyKind
	Action    string
	Err       error
}

// ComparisonEvent is emitted when all variants of a request have completed.
type ComparisonEvent struct {
	RequestID string
	Total     int
	Succeeded int
}
