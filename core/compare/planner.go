// Package compare runs several search strategies for one request in parallel
// and aggregates their routes into a comparable result.
package compare

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/evroute/core/events"
	"github.com/kilianp07/evroute/core/logger"
	"github.com/kilianp07/evroute/core/metrics"
	"github.com/kilianp07/evroute/core/model"
	"github.com/kilianp07/evroute/core/network"
	"github.com/kilianp07/evroute/core/search"
	"github.com/kilianp07/evroute/internal/eventbus"
)

// Request describes one comparison: a start/end pair, a vehicle profile and
// the strategies to run. Endpoints are given either as node IDs or as raw
// coordinates snapped onto the network.
type Request struct {
	StartNode  model.NodeID
	EndNode    model.NodeID
	StartCoord model.Coordinate
	EndCoord   model.Coordinate
	Vehicle    model.VehicleProfile
	Strategies []model.StrategyKind

	// TimeoutSeconds overrides the configured per-variant timeout when
	// positive.
	TimeoutSeconds int
}

// Planner fans a request out to one search per strategy and joins the
// outcomes. Variants share only read-only references, so they run without
// locks; a variant that fails or times out fills its own slot without
// aborting the others.
type Planner struct {
	engine  *search.Engine
	net     *network.Network
	timeout time.Duration
	log     logger.Logger
	sink    metrics.MetricsSink
	bus     eventbus.EventBus
}

// NewPlanner creates a planner. Bus and sink may be nil.
func NewPlanner(engine *search.Engine, net *network.Network, cfg search.Config, log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus) (*Planner, error) {
	if engine == nil || net == nil {
		return nil, fmt.Errorf("compare: nil engine or network")
	}
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Planner{
		engine:  engine,
		net:     net,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		log:     log,
		sink:    sink,
		bus:     bus,
	}, nil
}

// Compare runs all requested strategies and joins their outcomes. It returns
// an error only for request-level problems (no strategies, unresolvable
// endpoints); per-strategy failures are reported in their slots.
func (p *Planner) Compare(ctx context.Context, req Request) (model.ComparisonResult, error) {
	began := time.Now()
	res := model.ComparisonResult{
		RequestID: uuid.NewString(),
		Vehicle:   req.Vehicle,
		Results:   make(map[model.StrategyKind]model.Outcome, len(req.Strategies)),
	}
	if len(req.Strategies) == 0 {
		return res, fmt.Errorf("compare: no strategies requested")
	}

	start, err := p.resolve(req.StartNode, req.StartCoord)
	if err != nil {
		return res, fmt.Errorf("resolve start: %w", err)
	}
	end, err := p.resolve(req.EndNode, req.EndCoord)
	if err != nil {
		return res, fmt.Errorf("resolve end: %w", err)
	}
	res.Start, res.End = start, end

	timeout := p.timeout
	if req.TimeoutSeconds > 0 {
		timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, kind := range req.Strategies {
		wg.Add(1)
		go func(kind model.StrategyKind) {
			defer wg.Done()
			p.publish(events.StrategyEvent{RequestID: res.RequestID, Strategy: kind, Action: "start"})

			vctx := ctx
			var cancel context.CancelFunc
			if timeout > 0 {
				vctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			rt, stats, ferr := p.engine.FindRoute(vctx, start, end, req.Vehicle, kind)
			out := model.Outcome{
				Route:      rt,
				SearchTime: stats.Duration,
				Expansions: stats.Expansions,
			}
			if ferr != nil {
				out.Err = search.OutcomeKind(ferr)
				p.log.Warnf("strategy %s failed: %v", kind, ferr)
				p.publish(events.StrategyEvent{RequestID: res.RequestID, Strategy: kind, Action: "failed", Err: ferr})
			} else {
				p.publish(events.StrategyEvent{RequestID: res.RequestID, Strategy: kind, Action: "done"})
			}

			mu.Lock()
			res.Results[kind] = out
			mu.Unlock()
		}(kind)
	}
	wg.Wait()

	succeeded := p.summarize(&res)
	p.publish(events.ComparisonEvent{RequestID: res.RequestID, Total: len(req.Strategies), Succeeded: succeeded})
	if err := p.sink.RecordComparison(metrics.ComparisonEvent{
		RequestID:  res.RequestID,
		Strategies: len(req.Strategies),
		Succeeded:  succeeded,
		Duration:   time.Since(began),
		Time:       time.Now(),
	}); err != nil {
		p.log.Errorf("comparison metrics error: %v", err)
	}
	return res, nil
}

// resolve maps a request endpoint to a network node, snapping coordinates
// when no node ID was supplied.
func (p *Planner) resolve(id model.NodeID, coord model.Coordinate) (model.NodeID, error) {
	if id != "" {
		if _, err := p.net.Node(id); err != nil {
			return "", err
		}
		return id, nil
	}
	return p.net.NearestNode(coord)
}

// summarize fills the best-by markers and returns the number of successful
// slots.
func (p *Planner) summarize(res *model.ComparisonResult) int {
	var (
		names     []string
		times     []float64
		energies  []float64
		distances []float64
	)
	for kind, out := range res.Results {
		if out.Route == nil {
			continue
		}
		names = append(names, kind.String())
		times = append(times, out.Route.TotalTime.Seconds())
		energies = append(energies, out.Route.TotalEnergyKWh)
		distances = append(distances, out.Route.TotalDistanceM)
	}
	if len(names) == 0 {
		return 0
	}
	res.BestByTime = names[floats.MinIdx(times)]
	res.BestByEnergy = names[floats.MinIdx(energies)]
	res.BestByDistance = names[floats.MinIdx(distances)]
	return len(names)
}

func (p *Planner) publish(e eventbus.Event) {
	if p.bus != nil {
		p.bus.Publish(e)
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
