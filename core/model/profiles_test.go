package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	eco, err := DefaultProfile(ProfileEco)
	require.NoError(t, err)
	assert.Equal(t, "Eco Driver", eco.Name)
	assert.InDelta(t, 0.17, eco.ConsumptionKWhPerKm, 1e-9)
	assert.InDelta(t, 30, eco.MaxSpeedKmh, 1e-9)

	balanced, err := DefaultProfile(ProfileBalanced)
	require.NoError(t, err)
	assert.Equal(t, "Balanced Driver", balanced.Name)
	assert.InDelta(t, 0.2, balanced.ConsumptionKWhPerKm, 1e-9)

	aggressive, err := DefaultProfile(ProfileAggressive)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, aggressive.ConsumptionKWhPerKm, 1e-9)
	assert.InDelta(t, 50, aggressive.MaxSpeedKmh, 1e-9)

	for _, p := range []VehicleProfile{eco, balanced, aggressive} {
		assert.NoError(t, p.Validate())
		assert.InDelta(t, 60, p.BatteryCapacityKWh, 1e-9)
		assert.InDelta(t, 45, p.InitialChargeKWh, 1e-9)
	}
}

func TestDefaultProfileEmptyIsBalanced(t *testing.T) {
	p, err := DefaultProfile("")
	require.NoError(t, err)
	assert.Equal(t, "Balanced Driver", p.Name)
}

func TestDefaultProfileUnknown(t *testing.T) {
	_, err := DefaultProfile("reckless")
	assert.Error(t, err)
}
