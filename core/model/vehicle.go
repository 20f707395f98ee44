package model

import (
	"fmt"
	"math"
	"time"
)

// VehicleProfile describes the battery and consumption characteristics of an
// electric vehicle for route planning.
type VehicleProfile struct {
	Name                string  `json:"name"`
	BatteryCapacityKWh  float64 `json:"battery_capacity_kwh"`
	InitialChargeKWh    float64 `json:"initial_charge_kwh"`
	ConsumptionKWhPerKm float64 `json:"consumption_kwh_per_km"` // base consumption on city roads
	MaxSpeedKmh         float64 `json:"max_speed_kmh"`
	MinSoCReserve       float64 `json:"min_soc_reserve"` // fraction of capacity never to be crossed

	// ClassFactor scales base consumption per edge class. A missing class
	// is treated as factor 1.
	ClassFactor map[EdgeClass]float64 `json:"-"`
}

// Validate checks that the profile configuration is sound.
func (v VehicleProfile) Validate() error {
	if v.BatteryCapacityKWh <= 0 {
		return fmt.Errorf("battery capacity must be positive")
	}
	if v.InitialChargeKWh < 0 || v.InitialChargeKWh > v.BatteryCapacityKWh {
		return fmt.Errorf("initial charge must be within [0, capacity]")
	}
	if v.ConsumptionKWhPerKm <= 0 {
		return fmt.Errorf("consumption must be positive")
	}
	if v.MinSoCReserve < 0 || v.MinSoCReserve >= 1 {
		return fmt.Errorf("reserve must be within [0, 1)")
	}
	if v.MaxSpeedKmh <= 0 {
		return fmt.Errorf("max speed must be positive")
	}
	return nil
}

// ReserveKWh returns the minimum energy the vehicle must retain.
func (v VehicleProfile) ReserveKWh() float64 {
	return v.MinSoCReserve * v.BatteryCapacityKWh
}

// EnergyForEdge returns the energy in kWh consumed by traversing e.
// Uphill grades add roughly 1% consumption per percent of grade; downhill
// recuperation is credited at half that rate and never turns the cost negative.
func (v VehicleProfile) EnergyForEdge(e Edge) float64 {
	factor := 1.0
	if f, ok := v.ClassFactor[e.Class]; ok {
		factor = f
	}
	grade := 1 + e.GradePct/100
	if e.GradePct < 0 {
		grade = 1 + e.GradePct/200
	}
	if grade < 0.1 {
		grade = 0.1
	}
	return e.LengthM / 1000 * v.ConsumptionKWhPerKm * factor * grade
}

// TravelTimeForEdge returns the time to traverse e, bounded by the edge speed
// limit and the profile's maximum speed.
func (v VehicleProfile) TravelTimeForEdge(e Edge) time.Duration {
	speed := e.SpeedLimitKmh
	if speed <= 0 || speed > v.MaxSpeedKmh {
		speed = v.MaxSpeedKmh
	}
	hours := e.LengthM / 1000 / speed
	return time.Duration(hours * float64(time.Hour))
}

// ChargeRateKWhPerMin returns the effective charging rate at a station of the
// given power for the current state of charge. Above 80% SoC the rate tapers
// linearly to 20% of nominal at full charge.
func (v VehicleProfile) ChargeRateKWhPerMin(powerKW, soc float64) float64 {
	rate := powerKW / 60
	if soc >= 0.8 {
		frac := (soc - 0.8) / 0.2
		rate *= 1 - 0.8*math.Min(frac, 1)
	}
	return rate
}

// ChargeDuration integrates the tapered charge rate from fromKWh to toKWh in
// one-minute steps and returns the required duration and the energy actually
// added (the battery never exceeds capacity).
func (v VehicleProfile) ChargeDuration(powerKW, fromKWh, toKWh float64) (time.Duration, float64) {
	if toKWh > v.BatteryCapacityKWh {
		toKWh = v.BatteryCapacityKWh
	}
	if toKWh <= fromKWh || powerKW <= 0 {
		return 0, 0
	}
	const step = time.Minute
	energy := fromKWh
	var elapsed time.Duration
	for energy < toKWh {
		rate := v.ChargeRateKWhPerMin(powerKW, energy/v.BatteryCapacityKWh)
		if rate <= 0 {
			break
		}
		gain := rate
		if energy+gain > toKWh {
			// Last partial minute.
			elapsed += time.Duration(float64(step) * (toKWh - energy) / gain)
			energy = toKWh
			break
		}
		energy += gain
		elapsed += step
	}
	return elapsed, energy - fromKWh
}
