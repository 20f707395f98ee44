// Package search implements the battery-aware route search over the
// augmented (node, remaining energy) state space. Three strategy variants
// share one skeleton: uniform-cost expansion, an admissible A* lower bound
// and a learned estimate delegated to an external scorer.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/evroute/core/charging"
	"github.com/kilianp07/evroute/core/logger"
	"github.com/kilianp07/evroute/core/metrics"
	"github.com/kilianp07/evroute/core/model"
	"github.com/kilianp07/evroute/core/network"
	"github.com/kilianp07/evroute/core/route"
)

const costEps = 1e-9

// Engine runs route searches over a network and charging registry. It holds
// only read-only references and is safe for concurrent FindRoute calls.
type Engine struct {
	net    *network.Network
	reg    *charging.Registry
	cfg    Config
	scorer Scorer
	log    logger.Logger
	sink   metrics.MetricsSink
}

// Stats reports the effort spent by one search.
type Stats struct {
	Expansions int
	Duration   time.Duration
}

// NewEngine creates a search engine. The scorer may be nil when the learned
// strategy is not used; a nil sink disables metrics.
func NewEngine(net *network.Network, reg *charging.Registry, cfg Config, scorer Scorer, log logger.Logger, sink metrics.MetricsSink) (*Engine, error) {
	if net == nil || reg == nil {
		return nil, fmt.Errorf("search: nil network or registry")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("search config: %w", err)
	}
	if log == nil {
		log = nopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Engine{net: net, reg: reg, cfg: cfg, scorer: scorer, log: log, sink: sink}, nil
}

// FindRoute computes a battery-feasible route from start to end for the
// given vehicle using the selected strategy. It fails with ErrUnreachable,
// ErrEnergyInfeasible or ErrTimeout; unknown endpoints surface
// network.ErrNotFound.
func (e *Engine) FindRoute(ctx context.Context, start, end model.NodeID, vehicle model.VehicleProfile, kind model.StrategyKind) (*model.Route, Stats, error) {
	began := time.Now()
	rt, stats, err := e.findRoute(ctx, start, end, vehicle, kind)
	stats.Duration = time.Since(began)

	ev := metrics.SearchEvent{
		Strategy:   kind,
		Outcome:    outcomeKind(err),
		Expansions: stats.Expansions,
		Duration:   stats.Duration,
		Time:       time.Now(),
	}
	if rt != nil {
		ev.Stops = rt.ChargingStops
	}
	if serr := e.sink.RecordSearch(ev); serr != nil {
		e.log.Errorf("search metrics error: %v", serr)
	}
	return rt, stats, err
}

//gocyclo:ignore
func (e *Engine) findRoute(ctx context.Context, start, end model.NodeID, vehicle model.VehicleProfile, kind model.StrategyKind) (*model.Route, Stats, error) {
	var stats Stats

	if err := vehicle.Validate(); err != nil {
		return nil, stats, fmt.Errorf("vehicle profile: %w", err)
	}
	startNode, err := e.net.Node(start)
	if err != nil {
		return nil, stats, err
	}
	goalNode, err := e.net.Node(end)
	if err != nil {
		return nil, stats, err
	}
	strat, err := newStrategy(kind, e.cfg, e.scorer, e.net.GeometricScale())
	if err != nil {
		return nil, stats, err
	}

	reserve := vehicle.ReserveKWh()
	if vehicle.InitialChargeKWh < reserve && start != end {
		return nil, stats, ErrEnergyInfeasible
	}

	now := time.Now()
	ar := newArena(e.cfg.EnergyResolutionKWh)
	estimates := make(map[model.NodeID]float64) // per-search estimate cache

	estimate := func(n model.Node) float64 {
		if h, ok := estimates[n.ID]; ok {
			return h
		}
		h := strat.Estimate(ctx, n, goalNode, vehicle)
		estimates[n.ID] = h
		return h
	}

	var q frontier
	rootSlot := ar.add(record{
		node:         start,
		coord:        startNode.Coord,
		remainingKWh: vehicle.InitialChargeKWh,
		parent:       -1,
	})
	q.push(frontierItem{
		slot:   rootSlot,
		f:      estimate(startNode),
		energy: vehicle.InitialChargeKWh,
	})

	relax := func(parent int32, n model.Node, energyKWh, g, timeS, distM, usedKWh float64, stops int, via *model.Edge, charge *model.ChargeAction) {
		slot := ar.lookup(n.ID, energyKWh)
		if slot >= 0 {
			rec := ar.at(slot)
			if rec.closed {
				return
			}
			better := g < rec.g-costEps
			if !better && g <= rec.g+costEps {
				// Equal cost: prefer fewer charging stops, then more
				// remaining energy.
				better = stops < rec.stops ||
					(stops == rec.stops && energyKWh > rec.remainingKWh+costEps)
			}
			if !better {
				return
			}
			rec.g = g
			rec.timeS = timeS
			rec.distM = distM
			rec.usedKWh = usedKWh
			rec.stops = stops
			rec.parent = parent
			rec.via = via
			rec.charge = charge
			rec.remainingKWh = energyKWh
		} else {
			slot = ar.add(record{
				node:         n.ID,
				coord:        n.Coord,
				remainingKWh: energyKWh,
				g:            g,
				timeS:        timeS,
				distM:        distM,
				usedKWh:      usedKWh,
				stops:        stops,
				parent:       parent,
				via:          via,
				charge:       charge,
			})
		}
		q.push(frontierItem{slot: slot, f: g + estimate(n), g: g, stops: stops, energy: energyKWh})
	}

	energyPruned := 0
	for q.Len() > 0 {
		it := q.pop()
		rec := ar.at(it.slot)
		if rec.closed || it.g > rec.g+costEps {
			continue // stale lazy-decrease-key entry
		}
		rec.closed = true
		stats.Expansions++

		if rec.node == end {
			steps := ar.path(it.slot)
			rt, aerr := route.Assemble(kind, steps, vehicle)
			if aerr != nil {
				e.log.Errorf("route assembly defect: %v", aerr)
				return nil, stats, aerr
			}
			return rt, stats, nil
		}

		if stats.Expansions >= e.cfg.ExpansionBudget {
			return nil, stats, ErrTimeout
		}
		if stats.Expansions%128 == 0 && ctx.Err() != nil {
			return nil, stats, ErrTimeout
		}

		// Charging transitions: zero-distance, time for energy.
		if e.reg.IsChargingNode(rec.node, now) {
			station, _ := e.reg.Station(rec.node)
			cur := rec.remainingKWh
			for _, target := range []float64{0.8 * vehicle.BatteryCapacityKWh, vehicle.BatteryCapacityKWh} {
				if target <= cur+e.cfg.EnergyResolutionKWh/2 {
					continue
				}
				dur, gained := vehicle.ChargeDuration(station.PowerKW, cur, target)
				if gained <= 0 {
					continue
				}
				n, _ := e.net.Node(rec.node)
				relax(it.slot, n,
					cur+gained,
					rec.g+e.cfg.TimeWeight*dur.Seconds(),
					rec.timeS+dur.Seconds(),
					rec.distM,
					rec.usedKWh,
					rec.stops+1,
					nil,
					&model.ChargeAction{
						StationID: station.NodeID,
						PowerKW:   station.PowerKW,
						EnergyKWh: gained,
						Duration:  dur,
					})
			}
		}

		// Edge transitions.
		for _, edge := range e.net.Neighbors(rec.node) {
			eKWh := vehicle.EnergyForEdge(edge)
			left := rec.remainingKWh - eKWh
			if left < reserve-costEps {
				energyPruned++
				continue
			}
			target, terr := e.net.Node(edge.To)
			if terr != nil {
				continue
			}
			dt := vehicle.TravelTimeForEdge(edge)
			cost := e.cfg.TimeWeight*dt.Seconds() + e.cfg.EnergyWeight*eKWh
			edgeCopy := edge
			relax(it.slot, target,
				left,
				rec.g+cost,
				rec.timeS+dt.Seconds(),
				rec.distM+edge.LengthM,
				rec.usedKWh+eKWh,
				rec.stops,
				&edgeCopy,
				nil)
		}
	}

	// Frontier exhausted. Distinguish a geometric gap from a battery gap so
	// the caller can explain why.
	if energyPruned > 0 && e.geometricallyReachable(start, end) {
		return nil, stats, ErrEnergyInfeasible
	}
	return nil, stats, ErrUnreachable
}

// geometricallyReachable runs a plain breadth-first reachability check that
// ignores energy entirely.
func (e *Engine) geometricallyReachable(start, end model.NodeID) bool {
	if start == end {
		return true
	}
	visited := map[model.NodeID]bool{start: true}
	queue := []model.NodeID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, edge := range e.net.Neighbors(cur) {
			if visited[edge.To] {
				continue
			}
			if edge.To == end {
				return true
			}
			visited[edge.To] = true
			queue = append(queue, edge.To)
		}
	}
	return false
}

// outcomeKind maps a search result to a stable label for metrics and
// comparison slots.
func outcomeKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnreachable):
		return "unreachable"
	case errors.Is(err, ErrEnergyInfeasible):
		return "energy_infeasible"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, network.ErrNotFound):
		return "not_found"
	case errors.Is(err, route.ErrEmptyPath):
		return "empty_path"
	default:
		return "error"
	}
}

// OutcomeKind exposes the stable error-kind label for presentation layers.
func OutcomeKind(err error) string { return outcomeKind(err) }

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
