package network

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kilianp07/evroute/core/model"
)

// Dataset is the on-disk JSON representation of a network and its charging
// stations.
type Dataset struct {
	Nodes    []datasetNode    `json:"nodes"`
	Edges    []datasetEdge    `json:"edges"`
	Stations []datasetStation `json:"stations"`
}

type datasetNode struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type datasetEdge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	LengthM  float64 `json:"length_m"`
	SpeedKmh float64 `json:"speed_kmh"`
	GradePct float64 `json:"grade_pct"`
	Class    string  `json:"class"`
	Oneway   bool    `json:"oneway"`
}

type datasetStation struct {
	Node      string  `json:"node"`
	PowerKW   float64 `json:"power_kw"`
	Available bool    `json:"available"`
}

// Load reads a dataset file and builds the network together with its
// charging stations. Edges not marked oneway are inserted in both directions.
func Load(path string) (*Network, []model.ChargingStation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read dataset: %w", err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidNetwork, err)
	}
	return buildDataset(ds)
}

func buildDataset(ds Dataset) (*Network, []model.ChargingStation, error) {
	stationNodes := make(map[model.NodeID]bool, len(ds.Stations))
	for _, s := range ds.Stations {
		stationNodes[model.NodeID(s.Node)] = true
	}

	nodes := make([]model.Node, 0, len(ds.Nodes))
	for _, n := range ds.Nodes {
		id := model.NodeID(n.ID)
		nodes = append(nodes, model.Node{
			ID:              id,
			Coord:           model.Coordinate{Lat: n.Lat, Lon: n.Lon},
			ChargingStation: stationNodes[id],
		})
	}

	edges := make([]model.Edge, 0, len(ds.Edges)*2)
	for _, e := range ds.Edges {
		edge := model.Edge{
			From:          model.NodeID(e.From),
			To:            model.NodeID(e.To),
			LengthM:       e.LengthM,
			SpeedLimitKmh: e.SpeedKmh,
			GradePct:      e.GradePct,
			Class:         model.ParseEdgeClass(e.Class),
		}
		edges = append(edges, edge)
		if !e.Oneway {
			rev := edge
			rev.From, rev.To = edge.To, edge.From
			rev.GradePct = -edge.GradePct
			edges = append(edges, rev)
		}
	}

	net, err := New(nodes, edges)
	if err != nil {
		return nil, nil, err
	}

	stations := make([]model.ChargingStation, 0, len(ds.Stations))
	for _, s := range ds.Stations {
		stations = append(stations, model.ChargingStation{
			NodeID:    model.NodeID(s.Node),
			PowerKW:   s.PowerKW,
			Available: s.Available,
		})
	}
	return net, stations, nil
}
