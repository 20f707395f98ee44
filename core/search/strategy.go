package search

import (
	"context"
	"fmt"

	"github.com/kilianp07/evroute/core/model"
)

// Scorer estimates the remaining cost from a position to the goal. It is the
// external collaborator backing the learned strategy; implementations may use
// arbitrary cost models (traffic, historical data, remote inference).
type Scorer interface {
	Score(ctx context.Context, from, to model.Coordinate, vehicle model.VehicleProfile) (float64, error)
}

// Strategy supplies the priority estimate for a search variant. The search
// skeleton, state space and feasibility pruning are shared across variants;
// only the estimate differs.
type Strategy interface {
	Name() string
	// Admissible reports whether Estimate never overstates the true
	// remaining cost. Non-admissible strategies lose the optimality
	// guarantee.
	Admissible() bool
	Estimate(ctx context.Context, from, goal model.Node, vehicle model.VehicleProfile) float64
}

// newStrategy builds the strategy implementation for the given kind. The
// learned kind requires a scorer. geomScale is the network's geometric scale
// applied to distance bounds.
func newStrategy(kind model.StrategyKind, cfg Config, scorer Scorer, geomScale float64) (Strategy, error) {
	switch kind {
	case model.StrategyUniformCost:
		return uniformCost{}, nil
	case model.StrategyAStar:
		return lowerBound{cfg: cfg, scale: geomScale}, nil
	case model.StrategyLearned:
		if scorer == nil {
			return nil, fmt.Errorf("learned strategy requires a scorer")
		}
		return learned{cfg: cfg, scorer: scorer, scale: geomScale}, nil
	default:
		return nil, fmt.Errorf("unknown strategy kind %d", kind)
	}
}

// uniformCost expands states in non-decreasing order of accumulated cost.
type uniformCost struct{}

func (uniformCost) Name() string     { return model.StrategyUniformCost.String() }
func (uniformCost) Admissible() bool { return true }

func (uniformCost) Estimate(context.Context, model.Node, model.Node, model.VehicleProfile) float64 {
	return 0
}

// lowerBound is the A* heuristic: the straight-line distance converted to the
// minimum possible time and energy under the vehicle profile. Overestimating
// here would break optimality, so every factor is a hard lower bound. The
// haversine distance is scaled by the network's geometric scale because
// datasets may declare edge lengths shorter than the crow-flies distance.
type lowerBound struct {
	cfg   Config
	scale float64
}

func (lowerBound) Name() string     { return model.StrategyAStar.String() }
func (lowerBound) Admissible() bool { return true }

func (s lowerBound) Estimate(_ context.Context, from, goal model.Node, v model.VehicleProfile) float64 {
	distKm := from.Coord.DistanceM(goal.Coord) / 1000 * s.scale
	minTimeS := distKm / v.MaxSpeedKmh * 3600

	minFactor := 1.0
	for _, f := range v.ClassFactor {
		if f < minFactor {
			minFactor = f
		}
	}
	// 0.1 is the grade-factor floor applied by EnergyForEdge.
	minEnergy := distKm * v.ConsumptionKWhPerKm * minFactor * 0.1

	return s.cfg.TimeWeight*minTimeS + s.cfg.EnergyWeight*minEnergy
}

// learned delegates the estimate to the external scorer. The score is not
// guaranteed admissible, so routes may be suboptimal; on scorer failure the
// admissible lower bound is used instead.
type learned struct {
	cfg    Config
	scorer Scorer
	scale  float64
}

func (learned) Name() string     { return model.StrategyLearned.String() }
func (learned) Admissible() bool { return false }

func (s learned) Estimate(ctx context.Context, from, goal model.Node, v model.VehicleProfile) float64 {
	score, err := s.scorer.Score(ctx, from.Coord, goal.Coord, v)
	if err != nil || score < 0 {
		return lowerBound{cfg: s.cfg, scale: s.scale}.Estimate(ctx, from, goal, v)
	}
	return score
}
