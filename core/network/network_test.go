package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evroute/core/model"
)

func gridNodes() []model.Node {
	return []model.Node{
		{ID: "a", Coord: model.Coordinate{Lat: 52.0, Lon: 4.0}},
		{ID: "b", Coord: model.Coordinate{Lat: 52.0, Lon: 4.1}},
		{ID: "c", Coord: model.Coordinate{Lat: 52.1, Lon: 4.0}},
	}
}

func TestNewValidation(t *testing.T) {
	nodes := gridNodes()
	edge := model.Edge{From: "a", To: "b", LengthM: 1000}

	tests := []struct {
		name  string
		nodes []model.Node
		edges []model.Edge
	}{
		{"no nodes", nil, nil},
		{"empty node ID", append(gridNodes(), model.Node{ID: ""}), nil},
		{"duplicate node", append(gridNodes(), model.Node{ID: "a"}), nil},
		{"unknown from", nodes, []model.Edge{{From: "x", To: "b", LengthM: 1}}},
		{"unknown to", nodes, []model.Edge{{From: "a", To: "x", LengthM: 1}}},
		{"zero length", nodes, []model.Edge{{From: "a", To: "b", LengthM: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nodes, tt.edges)
			assert.ErrorIs(t, err, ErrInvalidNetwork)
		})
	}

	net, err := New(nodes, []model.Edge{edge})
	require.NoError(t, err)
	assert.Equal(t, 3, net.NodeCount())
	assert.Equal(t, 1, net.EdgeCount())
}

func TestNodeLookup(t *testing.T) {
	net, err := New(gridNodes(), nil)
	require.NoError(t, err)

	n, err := net.Node("b")
	require.NoError(t, err)
	assert.Equal(t, model.NodeID("b"), n.ID)

	_, err = net.Node("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNeighbors(t *testing.T) {
	edges := []model.Edge{
		{From: "a", To: "b", LengthM: 1000},
		{From: "a", To: "c", LengthM: 2000},
		{From: "b", To: "a", LengthM: 1000},
	}
	net, err := New(gridNodes(), edges)
	require.NoError(t, err)

	assert.Len(t, net.Neighbors("a"), 2)
	assert.Len(t, net.Neighbors("b"), 1)
	assert.Empty(t, net.Neighbors("c"))
}

func TestNearestNode(t *testing.T) {
	net, err := New(gridNodes(), nil)
	require.NoError(t, err)

	// Just off node c.
	id, err := net.NearestNode(model.Coordinate{Lat: 52.099, Lon: 4.001})
	require.NoError(t, err)
	assert.Equal(t, model.NodeID("c"), id)

	// Exact hit.
	id, err = net.NearestNode(model.Coordinate{Lat: 52.0, Lon: 4.1})
	require.NoError(t, err)
	assert.Equal(t, model.NodeID("b"), id)

	// Second lookup of the same coordinate comes from the cache.
	id, err = net.NearestNode(model.Coordinate{Lat: 52.099, Lon: 4.001})
	require.NoError(t, err)
	assert.Equal(t, model.NodeID("c"), id)
}

func TestGeometricScale(t *testing.T) {
	// No edges: nothing undercuts the straight-line distance.
	empty, err := New(gridNodes(), nil)
	require.NoError(t, err)
	assert.InDelta(t, 1, empty.GeometricScale(), 1e-9)

	// a-b are ~6.8 km apart straight-line; an edge longer than that keeps
	// the scale capped at 1.
	long, err := New(gridNodes(), []model.Edge{{From: "a", To: "b", LengthM: 10000}})
	require.NoError(t, err)
	assert.InDelta(t, 1, long.GeometricScale(), 1e-9)

	// A declared length of half the straight-line distance halves the scale.
	crow := gridNodes()[0].Coord.DistanceM(gridNodes()[1].Coord)
	short, err := New(gridNodes(), []model.Edge{{From: "a", To: "b", LengthM: crow / 2}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, short.GeometricScale(), 1e-6)
}

func TestAmsterdamGeometricScale(t *testing.T) {
	// The sample dataset declares road lengths shorter than the haversine
	// distance between several endpoints.
	net, _ := Amsterdam()
	assert.Less(t, net.GeometricScale(), 1.0)
	assert.Positive(t, net.GeometricScale())
}

func TestAmsterdamSample(t *testing.T) {
	net, stations := Amsterdam()

	assert.Equal(t, 10, net.NodeCount())
	// 13 roads, both directions.
	assert.Equal(t, 26, net.EdgeCount())
	assert.Len(t, stations, 5)

	for _, s := range stations {
		n, err := net.Node(s.NodeID)
		require.NoError(t, err)
		assert.True(t, n.ChargingStation)
		assert.True(t, s.Available)
		assert.Positive(t, s.PowerKW)
	}
}
