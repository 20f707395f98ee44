package model

import "time"

// Emission and price factors applied to route summaries (Dutch grid).
const (
	EmissionGramsPerKWh  = 84.5
	EnergyPriceEURPerKWh = 0.25
)

// ChargeAction describes a charging transition taken during search: the
// vehicle stays at the station node and gains energy at the cost of time.
type ChargeAction struct {
	StationID NodeID        `json:"station"`
	PowerKW   float64       `json:"power_kw"`
	EnergyKWh float64       `json:"energy_kwh"`
	Duration  time.Duration `json:"duration"`
}

// PathStep is one element of the state path produced by a search. A step
// carries either the edge traversed to reach Node, a charge action performed
// at Node, or neither for the initial step.
type PathStep struct {
	Node         NodeID
	Coord        Coordinate
	Edge         *Edge
	Charge       *ChargeAction
	RemainingKWh float64
}

// Waypoint is one hop of an assembled route with cumulative figures.
type Waypoint struct {
	Node          NodeID        `json:"node"`
	Coord         Coordinate    `json:"coord"`
	DistanceM     float64       `json:"distance_m"`
	Elapsed       time.Duration `json:"elapsed"`
	EnergyUsedKWh float64       `json:"energy_used_kwh"`
	RemainingKWh  float64       `json:"remaining_kwh"`
	Charge        *ChargeAction `json:"charge,omitempty"`
}

// Route is a user-facing feasible route. It is produced by the route
// assembler and immutable once returned.
type Route struct {
	Strategy       StrategyKind  `json:"-"`
	Waypoints      []Waypoint    `json:"waypoints"`
	TotalDistanceM float64       `json:"total_distance_m"`
	TotalTime      time.Duration `json:"total_time"`
	TotalEnergyKWh float64       `json:"total_energy_kwh"`
	ChargingStops  int           `json:"charging_stops"`
	EmissionsGrams float64       `json:"emissions_grams"`
	EnergyCostEUR  float64       `json:"energy_cost_eur"`
}

// Outcome is the per-strategy slot of a comparison: either a route or the
// kind of failure that prevented one.
type Outcome struct {
	Route      *Route        `json:"route,omitempty"`
	Err        string        `json:"error,omitempty"`
	SearchTime time.Duration `json:"search_time"`
	Expansions int           `json:"expansions"`
}

// ComparisonResult aggregates one outcome per requested strategy. All routes
// in one result share the same start, end and vehicle profile.
type ComparisonResult struct {
	RequestID string                   `json:"request_id"`
	Start     NodeID                   `json:"start"`
	End       NodeID                   `json:"end"`
	Vehicle   VehicleProfile           `json:"vehicle"`
	Results   map[StrategyKind]Outcome `json:"-"`

	// BestByTime/Energy/Distance name the winning strategy per metric,
	// empty when no strategy produced a route.
	BestByTime     string `json:"best_by_time,omitempty"`
	BestByEnergy   string `json:"best_by_energy,omitempty"`
	BestByDistance string `json:"best_by_distance,omitempty"`
}

// ResultsByName returns the outcomes keyed by strategy name for
// serialization to the presentation layer.
func (r ComparisonResult) ResultsByName() map[string]Outcome {
	out := make(map[string]Outcome, len(r.Results))
	for k, v := range r.Results {
		out[k.String()] = v
	}
	return out
}
