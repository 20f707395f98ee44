package model

// NodeID identifies a node of the road network.
type NodeID string

// Node is an intersection or waypoint of the road network. Nodes are
// immutable once the network is built.
type Node struct {
	ID              NodeID     `json:"id"`
	Coord           Coordinate `json:"coord"`
	ChargingStation bool       `json:"charging_station,omitempty"`
}

// EdgeClass categorizes road segments for consumption and speed modelling.
type EdgeClass int

const (
	ClassCity EdgeClass = iota
	ClassArterial
	ClassHighway
)

// String returns a human-readable representation of the edge class.
func (c EdgeClass) String() string {
	switch c {
	case ClassCity:
		return "city"
	case ClassArterial:
		return "arterial"
	case ClassHighway:
		return "highway"
	default:
		return "unknown"
	}
}

// ParseEdgeClass maps a dataset class name to an EdgeClass. Unknown names
// default to city, the most conservative class.
func ParseEdgeClass(s string) EdgeClass {
	switch s {
	case "highway":
		return ClassHighway
	case "arterial":
		return ClassArterial
	default:
		return ClassCity
	}
}

// Edge is a directed road segment between two nodes. Edges are immutable;
// travel time and energy cost are derived per vehicle profile.
type Edge struct {
	From          NodeID    `json:"from"`
	To            NodeID    `json:"to"`
	LengthM       float64   `json:"length_m"`
	SpeedLimitKmh float64   `json:"speed_kmh"`
	GradePct      float64   `json:"grade_pct"`
	Class         EdgeClass `json:"class"`
}
