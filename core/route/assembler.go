// Package route converts search state paths into user-facing routes.
package route

import (
	"errors"
	"time"

	"github.com/kilianp07/evroute/core/model"
)

// ErrEmptyPath indicates the assembler was handed a zero-length state path.
// A successful search never produces one, so callers treat this as a defect
// and log it.
var ErrEmptyPath = errors.New("route: empty state path")

// Assemble converts the winning state path into a Route. Consecutive charge
// transitions at the same node are collapsed into a single charging stop with
// summed duration and energy. The result is a pure function of its inputs:
// re-assembling the same path yields an identical route.
func Assemble(kind model.StrategyKind, steps []model.PathStep, vehicle model.VehicleProfile) (*model.Route, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyPath
	}

	r := &model.Route{Strategy: kind}
	var distM, usedKWh float64
	var elapsed time.Duration

	for _, step := range steps {
		if step.Charge != nil {
			// Zero-distance transition: fold into the waypoint we are
			// already at.
			if len(r.Waypoints) == 0 {
				return nil, ErrEmptyPath
			}
			last := &r.Waypoints[len(r.Waypoints)-1]
			elapsed += step.Charge.Duration
			if last.Charge == nil {
				charge := *step.Charge
				last.Charge = &charge
				r.ChargingStops++
			} else {
				last.Charge.EnergyKWh += step.Charge.EnergyKWh
				last.Charge.Duration += step.Charge.Duration
			}
			last.RemainingKWh = step.RemainingKWh
			last.Elapsed = elapsed
			continue
		}

		if step.Edge != nil {
			distM += step.Edge.LengthM
			elapsed += vehicle.TravelTimeForEdge(*step.Edge)
			usedKWh += vehicle.EnergyForEdge(*step.Edge)
		}
		r.Waypoints = append(r.Waypoints, model.Waypoint{
			Node:          step.Node,
			Coord:         step.Coord,
			DistanceM:     distM,
			Elapsed:       elapsed,
			EnergyUsedKWh: usedKWh,
			RemainingKWh:  step.RemainingKWh,
		})
	}

	r.TotalDistanceM = distM
	r.TotalTime = elapsed
	r.TotalEnergyKWh = usedKWh
	r.EmissionsGrams = usedKWh * model.EmissionGramsPerKWh
	r.EnergyCostEUR = usedKWh * model.EnergyPriceEURPerKWh
	return r, nil
}
