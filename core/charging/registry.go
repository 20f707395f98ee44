// Package charging maintains the registry of charging stations overlaid on
// the road network.
package charging

import (
	"fmt"
	"time"

	"github.com/kilianp07/evroute/core/model"
	"github.com/kilianp07/evroute/core/network"
)

// Registry holds the charging stations of a network. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	net      *network.Network
	stations map[model.NodeID]model.ChargingStation
}

// NewRegistry builds a registry over net. It fails if a station references a
// node unknown to the network.
func NewRegistry(net *network.Network, stations []model.ChargingStation) (*Registry, error) {
	r := &Registry{
		net:      net,
		stations: make(map[model.NodeID]model.ChargingStation, len(stations)),
	}
	for _, s := range stations {
		if _, err := net.Node(s.NodeID); err != nil {
			return nil, fmt.Errorf("charging station at unknown node: %w", err)
		}
		r.stations[s.NodeID] = s
	}
	return r, nil
}

// IsChargingNode reports whether the node hosts a station usable at time t.
// Unavailable stations behave like ordinary nodes.
func (r *Registry) IsChargingNode(id model.NodeID, t time.Time) bool {
	s, ok := r.stations[id]
	return ok && s.UsableAt(t)
}

// Station returns the station at the given node, whether usable or not.
func (r *Registry) Station(id model.NodeID) (model.ChargingStation, bool) {
	s, ok := r.stations[id]
	return s, ok
}

// StationsNear returns the stations within radiusM meters of the given node,
// usable or not.
func (r *Registry) StationsNear(id model.NodeID, radiusM float64) ([]model.ChargingStation, error) {
	node, err := r.net.Node(id)
	if err != nil {
		return nil, err
	}
	var out []model.ChargingStation
	for _, s := range r.stations {
		sn, err := r.net.Node(s.NodeID)
		if err != nil {
			continue
		}
		if node.Coord.DistanceM(sn.Coord) <= radiusM {
			out = append(out, s)
		}
	}
	return out, nil
}

// Count returns the number of registered stations.
func (r *Registry) Count() int { return len(r.stations) }

// Stations returns all registered stations in unspecified order.
func (r *Registry) Stations() []model.ChargingStation {
	out := make([]model.ChargingStation, 0, len(r.stations))
	for _, s := range r.stations {
		out = append(out, s)
	}
	return out
}
