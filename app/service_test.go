package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evroute/config"
	"github.com/kilianp07/evroute/core/compare"
	"github.com/kilianp07/evroute/core/model"
)

func TestNewWithBuiltinNetwork(t *testing.T) {
	svc, err := New(&config.Config{})
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	assert.Equal(t, 10, svc.Network.NodeCount())
	assert.Equal(t, 5, svc.Registry.Count())
	require.NotNil(t, svc.Planner)

	vehicle, err := model.DefaultProfile(model.ProfileBalanced)
	require.NoError(t, err)
	res, err := svc.Planner.Compare(context.Background(), compare.Request{
		StartNode:  "amsterdam-central",
		EndNode:    "museumplein",
		Vehicle:    vehicle,
		Strategies: []model.StrategyKind{model.StrategyAStar},
	})
	require.NoError(t, err)
	assert.NotNil(t, res.Results[model.StrategyAStar].Route)
}

func TestNewWithMissingDataset(t *testing.T) {
	_, err := New(&config.Config{Network: config.NetworkConfig{Dataset: "/nonexistent/net.json"}})
	assert.Error(t, err)
}
