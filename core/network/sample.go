package network

import "github.com/kilianp07/evroute/core/model"

// Amsterdam returns the built-in demonstration dataset: a simplified
// Amsterdam road network with five public charging stations. It is used when
// no dataset path is configured and by the test suite.
func Amsterdam() (*Network, []model.ChargingStation) {
	type loc struct {
		id       string
		lat, lon float64
	}
	locations := []loc{
		{"amsterdam-central", 52.3791, 4.9003},
		{"dam-square", 52.3730, 4.8926},
		{"museumplein", 52.3579, 4.8816},
		{"vondelpark", 52.3567, 4.8687},
		{"leidseplein", 52.3641, 4.8833},
		{"rembrandtplein", 52.3667, 4.8950},
		{"jordaan", 52.3733, 4.8792},
		{"de-pijp", 52.3558, 4.8927},
		{"oost", 52.3654, 4.9023},
		{"west", 52.3689, 4.8891},
	}
	type road struct {
		from, to string
		km       float64
	}
	roads := []road{
		{"amsterdam-central", "dam-square", 0.8},
		{"dam-square", "rembrandtplein", 0.6},
		{"rembrandtplein", "leidseplein", 1.2},
		{"leidseplein", "museumplein", 0.5},
		{"museumplein", "vondelpark", 0.8},
		{"leidseplein", "jordaan", 1.1},
		{"jordaan", "west", 0.9},
		{"west", "oost", 2.1},
		{"oost", "de-pijp", 1.3},
		{"de-pijp", "museumplein", 0.7},
		{"amsterdam-central", "jordaan", 1.0},
		{"dam-square", "west", 1.2},
		{"rembrandtplein", "oost", 1.8},
	}
	type charger struct {
		node    string
		powerKW float64
	}
	chargers := []charger{
		{"dam-square", 50},
		{"leidseplein", 22},
		{"oost", 50},
		{"west", 22},
		{"jordaan", 150},
	}

	stationNodes := make(map[string]bool, len(chargers))
	for _, c := range chargers {
		stationNodes[c.node] = true
	}

	nodes := make([]model.Node, 0, len(locations))
	for _, l := range locations {
		nodes = append(nodes, model.Node{
			ID:              model.NodeID(l.id),
			Coord:           model.Coordinate{Lat: l.lat, Lon: l.lon},
			ChargingStation: stationNodes[l.id],
		})
	}

	edges := make([]model.Edge, 0, len(roads)*2)
	for _, r := range roads {
		e := model.Edge{
			From:          model.NodeID(r.from),
			To:            model.NodeID(r.to),
			LengthM:       r.km * 1000,
			SpeedLimitKmh: 30,
			Class:         model.ClassCity,
		}
		rev := e
		rev.From, rev.To = e.To, e.From
		edges = append(edges, e, rev)
	}

	net, err := New(nodes, edges)
	if err != nil {
		// The embedded dataset is static; a build failure is a defect.
		panic(err)
	}

	stations := make([]model.ChargingStation, 0, len(chargers))
	for _, c := range chargers {
		stations = append(stations, model.ChargingStation{
			NodeID:    model.NodeID(c.node),
			PowerKW:   c.powerKW,
			Available: true,
		})
	}
	return net, stations
}
