package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evroute/core/charging"
	"github.com/kilianp07/evroute/core/model"
	"github.com/kilianp07/evroute/core/network"
)

// lineNetwork builds a-b-c with two 10 km bidirectional segments and an
// optional station at b.
func lineNetwork(t *testing.T, stations []model.ChargingStation) (*network.Network, *charging.Registry) {
	t.Helper()
	nodes := []model.Node{
		{ID: "a", Coord: model.Coordinate{Lat: 52.0, Lon: 4.0}},
		{ID: "b", Coord: model.Coordinate{Lat: 52.09, Lon: 4.0}, ChargingStation: len(stations) > 0},
		{ID: "c", Coord: model.Coordinate{Lat: 52.18, Lon: 4.0}},
	}
	var edges []model.Edge
	for _, pair := range [][2]model.NodeID{{"a", "b"}, {"b", "c"}} {
		e := model.Edge{From: pair[0], To: pair[1], LengthM: 10000, SpeedLimitKmh: 100}
		rev := e
		rev.From, rev.To = e.To, e.From
		edges = append(edges, e, rev)
	}
	net, err := network.New(nodes, edges)
	require.NoError(t, err)
	reg, err := charging.NewRegistry(net, stations)
	require.NoError(t, err)
	return net, reg
}

// shortRangeVehicle can cover one 10 km segment but not two without charging.
func shortRangeVehicle() model.VehicleProfile {
	return model.VehicleProfile{
		Name:                "Short Range",
		BatteryCapacityKWh:  3,
		InitialChargeKWh:    3,
		ConsumptionKWhPerKm: 0.2,
		MaxSpeedKmh:         100,
	}
}

func newTestEngine(t *testing.T, net *network.Network, reg *charging.Registry, scorer Scorer) *Engine {
	t.Helper()
	eng, err := NewEngine(net, reg, Config{}, scorer, nil, nil)
	require.NoError(t, err)
	return eng
}

func amsterdamEngine(t *testing.T) *Engine {
	t.Helper()
	net, stations := network.Amsterdam()
	reg, err := charging.NewRegistry(net, stations)
	require.NoError(t, err)
	return newTestEngine(t, net, reg, nil)
}

func TestUniformCostAndAStarAgree(t *testing.T) {
	eng := amsterdamEngine(t)
	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)

	uc, ucStats, err := eng.FindRoute(context.Background(), "amsterdam-central", "vondelpark", vehicle, model.StrategyUniformCost)
	require.NoError(t, err)
	as, asStats, err := eng.FindRoute(context.Background(), "amsterdam-central", "vondelpark", vehicle, model.StrategyAStar)
	require.NoError(t, err)

	// Both strategies are admissible, so total cost matches; the heuristic
	// only reduces the work.
	assert.InDelta(t, uc.TotalTime.Seconds(), as.TotalTime.Seconds(), 1e-6)
	assert.LessOrEqual(t, asStats.Expansions, ucStats.Expansions)
	assert.Positive(t, asStats.Expansions)
}

func TestUniformCostAndAStarAgreeAllPairs(t *testing.T) {
	// The sample dataset declares road lengths shorter than the straight-line
	// distance between some endpoints, so the A* bound must shrink by the
	// network's geometric scale to stay admissible. Every pair must agree.
	eng := amsterdamEngine(t)
	net, _ := network.Amsterdam()
	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)

	for _, from := range net.Nodes() {
		for _, to := range net.Nodes() {
			if from.ID == to.ID {
				continue
			}
			uc, _, err := eng.FindRoute(context.Background(), from.ID, to.ID, vehicle, model.StrategyUniformCost)
			require.NoError(t, err, "%s->%s", from.ID, to.ID)
			as, _, err := eng.FindRoute(context.Background(), from.ID, to.ID, vehicle, model.StrategyAStar)
			require.NoError(t, err, "%s->%s", from.ID, to.ID)
			assert.InDelta(t, uc.TotalTime.Seconds(), as.TotalTime.Seconds(), 1e-6,
				"%s->%s", from.ID, to.ID)
		}
	}
}

func TestEqualCostPrefersFewerStops(t *testing.T) {
	net, reg := lineNetwork(t, []model.ChargingStation{
		{NodeID: "b", PowerKW: 50, Available: true},
	})
	// With an energy-only cost, a charging stop is free: paths through b
	// with and without a stop reach c at identical cost. The fewer-stop
	// path must win the tie.
	eng, err := NewEngine(net, reg, Config{EnergyWeight: 1}, nil, nil, nil)
	require.NoError(t, err)

	vehicle := model.VehicleProfile{
		Name:                "Ample",
		BatteryCapacityKWh:  10,
		InitialChargeKWh:    6,
		ConsumptionKWhPerKm: 0.2,
		MaxSpeedKmh:         100,
	}

	rt, _, err := eng.FindRoute(context.Background(), "a", "c", vehicle, model.StrategyUniformCost)
	require.NoError(t, err)
	assert.Zero(t, rt.ChargingStops)
	assert.InDelta(t, 4, rt.TotalEnergyKWh, 1e-9)
}

func TestNoUnnecessaryCharging(t *testing.T) {
	eng := amsterdamEngine(t)
	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)

	// 45 kWh for a few km of city driving: charging would only cost time.
	rt, _, err := eng.FindRoute(context.Background(), "amsterdam-central", "de-pijp", vehicle, model.StrategyAStar)
	require.NoError(t, err)
	assert.Zero(t, rt.ChargingStops)
}

func TestEnergyInfeasibleWithoutStation(t *testing.T) {
	net, reg := lineNetwork(t, nil)
	eng := newTestEngine(t, net, reg, nil)

	for _, kind := range []model.StrategyKind{model.StrategyUniformCost, model.StrategyAStar} {
		_, _, err := eng.FindRoute(context.Background(), "a", "c", shortRangeVehicle(), kind)
		assert.ErrorIs(t, err, ErrEnergyInfeasible, kind.String())
	}
}

func TestChargingMakesRouteFeasible(t *testing.T) {
	net, reg := lineNetwork(t, []model.ChargingStation{
		{NodeID: "b", PowerKW: 50, Available: true},
	})
	eng := newTestEngine(t, net, reg, nil)

	rt, _, err := eng.FindRoute(context.Background(), "a", "c", shortRangeVehicle(), model.StrategyUniformCost)
	require.NoError(t, err)

	assert.Equal(t, 1, rt.ChargingStops)
	assert.InDelta(t, 20000, rt.TotalDistanceM, 1e-9)
	for _, wp := range rt.Waypoints {
		assert.GreaterOrEqual(t, wp.RemainingKWh, -1e-9)
	}
}

func TestUnusableStationStaysInfeasible(t *testing.T) {
	net, reg := lineNetwork(t, []model.ChargingStation{
		{NodeID: "b", PowerKW: 50, Available: false},
	})
	eng := newTestEngine(t, net, reg, nil)

	_, _, err := eng.FindRoute(context.Background(), "a", "c", shortRangeVehicle(), model.StrategyAStar)
	// The destination is geometrically reachable, so the failure must name
	// the battery, not the topology.
	assert.ErrorIs(t, err, ErrEnergyInfeasible)
	assert.NotErrorIs(t, err, ErrUnreachable)
}

func TestUnreachable(t *testing.T) {
	nodes := []model.Node{
		{ID: "a", Coord: model.Coordinate{Lat: 52.0, Lon: 4.0}},
		{ID: "b", Coord: model.Coordinate{Lat: 52.01, Lon: 4.0}},
		{ID: "c", Coord: model.Coordinate{Lat: 53.0, Lon: 5.0}},
		{ID: "d", Coord: model.Coordinate{Lat: 53.01, Lon: 5.0}},
	}
	edges := []model.Edge{
		{From: "a", To: "b", LengthM: 1000, SpeedLimitKmh: 50},
		{From: "c", To: "d", LengthM: 1000, SpeedLimitKmh: 50},
	}
	net, err := network.New(nodes, edges)
	require.NoError(t, err)
	reg, err := charging.NewRegistry(net, nil)
	require.NoError(t, err)
	eng := newTestEngine(t, net, reg, nil)

	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)
	for _, kind := range []model.StrategyKind{model.StrategyUniformCost, model.StrategyAStar} {
		_, _, ferr := eng.FindRoute(context.Background(), "a", "c", vehicle, kind)
		assert.ErrorIs(t, ferr, ErrUnreachable, kind.String())
	}
}

func TestReserveNeverCrossed(t *testing.T) {
	net, reg := lineNetwork(t, []model.ChargingStation{
		{NodeID: "b", PowerKW: 50, Available: true},
	})
	eng := newTestEngine(t, net, reg, nil)

	vehicle := model.VehicleProfile{
		Name:                "Reserve",
		BatteryCapacityKWh:  10,
		InitialChargeKWh:    4.5,
		ConsumptionKWhPerKm: 0.2,
		MaxSpeedKmh:         100,
		MinSoCReserve:       0.1,
	}
	reserve := vehicle.ReserveKWh()

	rt, _, err := eng.FindRoute(context.Background(), "a", "c", vehicle, model.StrategyAStar)
	require.NoError(t, err)

	// Without a stop the second segment would dip below the reserve.
	assert.GreaterOrEqual(t, rt.ChargingStops, 1)
	for _, wp := range rt.Waypoints {
		assert.GreaterOrEqual(t, wp.RemainingKWh, reserve-1e-9, wp.Node)
	}
}

func TestInitialChargeBelowReserve(t *testing.T) {
	net, reg := lineNetwork(t, nil)
	eng := newTestEngine(t, net, reg, nil)

	vehicle := shortRangeVehicle()
	vehicle.InitialChargeKWh = 0.1
	vehicle.MinSoCReserve = 0.2

	_, _, err := eng.FindRoute(context.Background(), "a", "c", vehicle, model.StrategyUniformCost)
	assert.ErrorIs(t, err, ErrEnergyInfeasible)
}

func TestStartEqualsEnd(t *testing.T) {
	eng := amsterdamEngine(t)
	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)

	rt, _, err := eng.FindRoute(context.Background(), "dam-square", "dam-square", vehicle, model.StrategyAStar)
	require.NoError(t, err)
	assert.Zero(t, rt.TotalDistanceM)
	assert.Zero(t, rt.ChargingStops)
	require.Len(t, rt.Waypoints, 1)
	assert.Equal(t, model.NodeID("dam-square"), rt.Waypoints[0].Node)
}

func TestUnknownEndpoint(t *testing.T) {
	eng := amsterdamEngine(t)
	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)

	_, _, err = eng.FindRoute(context.Background(), "atlantis", "dam-square", vehicle, model.StrategyAStar)
	assert.ErrorIs(t, err, network.ErrNotFound)
}

func TestInvalidVehicle(t *testing.T) {
	eng := amsterdamEngine(t)
	_, _, err := eng.FindRoute(context.Background(), "dam-square", "oost", model.VehicleProfile{}, model.StrategyAStar)
	assert.Error(t, err)
}

func TestExpansionBudget(t *testing.T) {
	net, stations := network.Amsterdam()
	reg, err := charging.NewRegistry(net, stations)
	require.NoError(t, err)
	eng, err := NewEngine(net, reg, Config{ExpansionBudget: 1}, nil, nil, nil)
	require.NoError(t, err)

	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)
	_, stats, err := eng.FindRoute(context.Background(), "amsterdam-central", "vondelpark", vehicle, model.StrategyUniformCost)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, stats.Expansions)
}

func TestLearnedRequiresScorer(t *testing.T) {
	eng := amsterdamEngine(t)
	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)

	_, _, err = eng.FindRoute(context.Background(), "dam-square", "oost", vehicle, model.StrategyLearned)
	assert.Error(t, err)
}

type stubScorer struct {
	score float64
	err   error
}

func (s stubScorer) Score(context.Context, model.Coordinate, model.Coordinate, model.VehicleProfile) (float64, error) {
	return s.score, s.err
}

func TestLearnedStrategy(t *testing.T) {
	net, stations := network.Amsterdam()
	reg, err := charging.NewRegistry(net, stations)
	require.NoError(t, err)
	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)

	// A zero score is trivially admissible: the learned variant degrades to
	// uniform cost and finds the optimal route.
	eng := newTestEngine(t, net, reg, stubScorer{score: 0})
	learned, _, err := eng.FindRoute(context.Background(), "amsterdam-central", "vondelpark", vehicle, model.StrategyLearned)
	require.NoError(t, err)

	uc, _, err := eng.FindRoute(context.Background(), "amsterdam-central", "vondelpark", vehicle, model.StrategyUniformCost)
	require.NoError(t, err)
	assert.InDelta(t, uc.TotalTime.Seconds(), learned.TotalTime.Seconds(), 1e-6)
}

func TestLearnedStrategyScorerFailure(t *testing.T) {
	net, stations := network.Amsterdam()
	reg, err := charging.NewRegistry(net, stations)
	require.NoError(t, err)
	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)

	// A broken scorer degrades quality, never availability: the search falls
	// back to the admissible bound.
	eng := newTestEngine(t, net, reg, stubScorer{err: assert.AnError})
	rt, _, err := eng.FindRoute(context.Background(), "amsterdam-central", "vondelpark", vehicle, model.StrategyLearned)
	require.NoError(t, err)
	assert.NotEmpty(t, rt.Waypoints)
}

func TestOutcomeKind(t *testing.T) {
	assert.Equal(t, "ok", OutcomeKind(nil))
	assert.Equal(t, "unreachable", OutcomeKind(ErrUnreachable))
	assert.Equal(t, "energy_infeasible", OutcomeKind(ErrEnergyInfeasible))
	assert.Equal(t, "timeout", OutcomeKind(ErrTimeout))
	assert.Equal(t, "error", OutcomeKind(assert.AnError))
}
