package model

import "fmt"

// ProfileKind selects one of the built-in driver profiles.
type ProfileKind string

const (
	ProfileEco        ProfileKind = "eco"
	ProfileBalanced   ProfileKind = "balanced"
	ProfileAggressive ProfileKind = "aggressive"
)

// DefaultProfile returns the built-in vehicle profile for the given kind.
// The presets assume a 60 kWh battery starting at 75% charge with a 10%
// reserve; eco drivers trade speed for consumption, aggressive drivers the
// opposite.
func DefaultProfile(kind ProfileKind) (VehicleProfile, error) {
	base := VehicleProfile{
		BatteryCapacityKWh:  60,
		InitialChargeKWh:    45,
		ConsumptionKWhPerKm: 0.2,
		MinSoCReserve:       0.1,
		ClassFactor: map[EdgeClass]float64{
			ClassCity:     1.0,
			ClassArterial: 0.95,
			ClassHighway:  1.15,
		},
	}
	switch kind {
	case ProfileEco:
		base.Name = "Eco Driver"
		base.ConsumptionKWhPerKm *= 0.85
		base.MaxSpeedKmh = 30
	case ProfileAggressive:
		base.Name = "Aggressive Driver"
		base.ConsumptionKWhPerKm *= 1.25
		base.MaxSpeedKmh = 50
	case ProfileBalanced, "":
		base.Name = "Balanced Driver"
		base.MaxSpeedKmh = 40
	default:
		return VehicleProfile{}, fmt.Errorf("unknown profile %q", kind)
	}
	return base, nil
}
