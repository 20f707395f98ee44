package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStationUsableAt(t *testing.T) {
	now := time.Now()

	s := ChargingStation{NodeID: "a", PowerKW: 50, Available: true}
	assert.True(t, s.UsableAt(now))

	s.Available = false
	assert.False(t, s.UsableAt(now))

	s.Available = true
	s.PowerKW = 0
	assert.False(t, s.UsableAt(now))
}

func TestStationTimeWindow(t *testing.T) {
	now := time.Now()
	s := ChargingStation{
		NodeID:    "a",
		PowerKW:   50,
		Available: true,
		Window: &TimeWindow{
			Start: now.Add(-time.Hour),
			End:   now.Add(time.Hour),
		},
	}
	assert.True(t, s.UsableAt(now))
	assert.False(t, s.UsableAt(now.Add(2*time.Hour)))
	assert.False(t, s.UsableAt(now.Add(-2*time.Hour)))
}
