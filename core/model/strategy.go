package model

import "fmt"

// StrategyKind selects the search strategy used to plan a route.
type StrategyKind int

const (
	StrategyUniformCost StrategyKind = iota
	StrategyAStar
	StrategyLearned
)

// String returns a human-readable representation of the strategy kind.
func (k StrategyKind) String() string {
	switch k {
	case StrategyUniformCost:
		return "uniform-cost"
	case StrategyAStar:
		return "astar"
	case StrategyLearned:
		return "learned"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a strategy name to its kind.
func ParseStrategy(s string) (StrategyKind, error) {
	switch s {
	case "uniform-cost", "dijkstra":
		return StrategyUniformCost, nil
	case "astar", "a*":
		return StrategyAStar, nil
	case "learned", "ai":
		return StrategyLearned, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", s)
	}
}
