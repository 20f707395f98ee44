// Package network provides the immutable road-network model: nodes, directed
// edges, read-only adjacency queries and spatial nearest-node lookup.
package network

import (
	"fmt"
	"sync"

	"github.com/kilianp07/evroute/core/model"
)

// Network is the queryable road graph. It is built once per dataset and safe
// for concurrent reads without locking; the nearest-node cache carries its
// own lock.
type Network struct {
	nodes     map[model.NodeID]model.Node
	adj       map[model.NodeID][]model.Edge
	edgeCount int

	// geomScale is the smallest ratio of declared edge length to the
	// straight-line distance between its endpoints, capped at 1. Datasets
	// may declare lengths shorter than the haversine distance; distance
	// lower bounds must shrink by this factor to stay valid.
	geomScale float64

	index *spatialIndex

	cacheMu      sync.Mutex
	nearestCache map[model.Coordinate]model.NodeID
}

// New builds a network from nodes and directed edges. It fails with
// ErrInvalidNetwork on duplicate node IDs, edges referencing unknown nodes or
// non-positive edge lengths. Disconnection between endpoints is detected
// lazily at query time, not here.
func New(nodes []model.Node, edges []model.Edge) (*Network, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrInvalidNetwork)
	}
	n := &Network{
		nodes:        make(map[model.NodeID]model.Node, len(nodes)),
		adj:          make(map[model.NodeID][]model.Edge, len(nodes)),
		geomScale:    1,
		nearestCache: make(map[model.Coordinate]model.NodeID),
	}
	for _, node := range nodes {
		if node.ID == "" {
			return nil, fmt.Errorf("%w: node with empty ID", ErrInvalidNetwork)
		}
		if _, ok := n.nodes[node.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate node %s", ErrInvalidNetwork, node.ID)
		}
		n.nodes[node.ID] = node
	}
	for _, e := range edges {
		if _, ok := n.nodes[e.From]; !ok {
			return nil, fmt.Errorf("%w: edge references unknown node %s", ErrInvalidNetwork, e.From)
		}
		if _, ok := n.nodes[e.To]; !ok {
			return nil, fmt.Errorf("%w: edge references unknown node %s", ErrInvalidNetwork, e.To)
		}
		if e.LengthM <= 0 {
			return nil, fmt.Errorf("%w: edge %s->%s has non-positive length", ErrInvalidNetwork, e.From, e.To)
		}
		if crow := n.nodes[e.From].Coord.DistanceM(n.nodes[e.To].Coord); crow > 0 {
			if ratio := e.LengthM / crow; ratio < n.geomScale {
				n.geomScale = ratio
			}
		}
		n.adj[e.From] = append(n.adj[e.From], e)
		n.edgeCount++
	}
	n.index = newSpatialIndex(nodes)
	return n, nil
}

// Node returns the node with the given ID or ErrNotFound.
func (n *Network) Node(id model.NodeID) (model.Node, error) {
	node, ok := n.nodes[id]
	if !ok {
		return model.Node{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return node, nil
}

// Neighbors returns the outgoing edges of the given node. The returned slice
// is owned by the network and must not be modified.
func (n *Network) Neighbors(id model.NodeID) []model.Edge {
	return n.adj[id]
}

// NearestNode snaps an arbitrary coordinate onto the closest network node.
// Lookups are cached per network; the cache is invalidated only by rebuilding
// the model.
func (n *Network) NearestNode(c model.Coordinate) (model.NodeID, error) {
	n.cacheMu.Lock()
	if id, ok := n.nearestCache[c]; ok {
		n.cacheMu.Unlock()
		return id, nil
	}
	n.cacheMu.Unlock()

	id, err := n.index.nearest(c)
	if err != nil {
		return "", err
	}
	n.cacheMu.Lock()
	n.nearestCache[c] = id
	n.cacheMu.Unlock()
	return id, nil
}

// GeometricScale returns the smallest ratio of declared edge length to the
// straight-line distance between the edge's endpoints, capped at 1. A
// haversine distance multiplied by this factor never exceeds the length of
// any path between the two points, so it is safe in admissible bounds.
func (n *Network) GeometricScale() float64 { return n.geomScale }

// NodeCount returns the number of nodes in the network.
func (n *Network) NodeCount() int { return len(n.nodes) }

// EdgeCount returns the number of directed edges in the network.
func (n *Network) EdgeCount() int { return n.edgeCount }

// Nodes returns all nodes of the network in unspecified order.
func (n *Network) Nodes() []model.Node {
	out := make([]model.Node, 0, len(n.nodes))
	for _, node := range n.nodes {
		out = append(out, node)
	}
	return out
}
