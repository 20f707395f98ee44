package model

import "time"

// TimeWindow bounds the availability of a charging station.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ChargingStation is a charging point overlaid on a network node. Stations
// are owned by the charging registry and referenced by node ID.
type ChargingStation struct {
	NodeID    NodeID      `json:"node"`
	PowerKW   float64     `json:"power_kw"`
	Available bool        `json:"available"`
	Window    *TimeWindow `json:"window,omitempty"`
}

// UsableAt reports whether the station can charge a vehicle at time t.
// Unavailable stations remain in the network as ordinary nodes.
func (s ChargingStation) UsableAt(t time.Time) bool {
	if !s.Available || s.PowerKW <= 0 {
		return false
	}
	if s.Window != nil {
		return s.Window.Contains(t)
	}
	return true
}
