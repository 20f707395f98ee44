package search

import (
	"math"

	"github.com/kilianp07/evroute/core/model"
)

// stateKey identifies an augmented search state: a node paired with the
// quantized remaining energy. Two states at the same node with different
// energy are distinct and tracked independently.
type stateKey struct {
	node   model.NodeID
	energy int // remaining energy in resolution units
}

// record is one discovered state in the arena. Parent links index into the
// arena, so no pointer cycles are created.
type record struct {
	node         model.NodeID
	coord        model.Coordinate
	remainingKWh float64
	g            float64 // accumulated cost
	timeS        float64
	distM        float64
	usedKWh      float64
	stops        int
	parent       int32
	via          *model.Edge
	charge       *model.ChargeAction
	closed       bool
}

// arena stores state records indexed by composite key.
type arena struct {
	records    []record
	index      map[stateKey]int32
	resolution float64
}

func newArena(resolution float64) *arena {
	return &arena{
		index:      make(map[stateKey]int32),
		resolution: resolution,
	}
}

func (a *arena) key(node model.NodeID, energyKWh float64) stateKey {
	return stateKey{node: node, energy: int(math.Round(energyKWh / a.resolution))}
}

// lookup returns the arena slot for the state, or -1 when undiscovered.
func (a *arena) lookup(node model.NodeID, energyKWh float64) int32 {
	if i, ok := a.index[a.key(node, energyKWh)]; ok {
		return i
	}
	return -1
}

// add appends a record and indexes it, returning its slot.
func (a *arena) add(r record) int32 {
	i := int32(len(a.records))
	a.records = append(a.records, r)
	a.index[a.key(r.node, r.remainingKWh)] = i
	return i
}

func (a *arena) at(i int32) *record { return &a.records[i] }

// path reconstructs the state path ending at slot i, oldest first.
func (a *arena) path(i int32) []model.PathStep {
	var steps []model.PathStep
	for ; i >= 0; i = a.records[i].parent {
		r := &a.records[i]
		steps = append(steps, model.PathStep{
			Node:         r.node,
			Coord:        r.coord,
			Edge:         r.via,
			Charge:       r.charge,
			RemainingKWh: r.remainingKWh,
		})
	}
	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	return steps
}
