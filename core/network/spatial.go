package network

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/kilianp07/evroute/core/model"
)

// spatialIndex answers nearest-node queries with a k-d tree over an
// equirectangular projection centred on the network. The projection is
// accurate enough at city scale, which is the intended dataset size.
type spatialIndex struct {
	tree   *kdtree.Tree
	cosLat float64
}

func newSpatialIndex(nodes []model.Node) *spatialIndex {
	var sumLat float64
	for _, n := range nodes {
		sumLat += n.Coord.Lat
	}
	cosLat := math.Cos(sumLat / float64(len(nodes)) * math.Pi / 180)

	points := make(nodePoints, 0, len(nodes))
	for _, n := range nodes {
		points = append(points, projectNode(n.ID, n.Coord, cosLat))
	}
	return &spatialIndex{
		tree:   kdtree.New(points, false),
		cosLat: cosLat,
	}
}

func (s *spatialIndex) nearest(c model.Coordinate) (model.NodeID, error) {
	got, _ := s.tree.Nearest(projectNode("", c, s.cosLat))
	p, ok := got.(nodePoint)
	if !ok {
		return "", fmt.Errorf("%w: empty spatial index", ErrNotFound)
	}
	return p.id, nil
}

func projectNode(id model.NodeID, c model.Coordinate, cosLat float64) nodePoint {
	const earthRadiusM = 6371000.0
	return nodePoint{
		x:  c.Lon * math.Pi / 180 * cosLat * earthRadiusM,
		y:  c.Lat * math.Pi / 180 * earthRadiusM,
		id: id,
	}
}

// nodePoint implements kdtree.Comparable in two projected dimensions.
type nodePoint struct {
	x, y float64
	id   model.NodeID
}

func (p nodePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(nodePoint)
	switch d {
	case 0:
		return p.x - q.x
	default:
		return p.y - q.y
	}
}

func (p nodePoint) Dims() int { return 2 }

func (p nodePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(nodePoint)
	dx := p.x - q.x
	dy := p.y - q.y
	return dx*dx + dy*dy
}

// nodePoints implements kdtree.Interface.
type nodePoints []nodePoint

func (p nodePoints) Index(i int) kdtree.Comparable { return p[i] }

func (p nodePoints) Len() int { return len(p) }

func (p nodePoints) Pivot(d kdtree.Dim) int {
	return nodePlane{nodePoints: p, Dim: d}.pivot()
}

func (p nodePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// nodePlane sorts nodePoints along a single dimension for pivot selection.
type nodePlane struct {
	nodePoints
	kdtree.Dim
}

func (p nodePlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.nodePoints[i].x < p.nodePoints[j].x
	default:
		return p.nodePoints[i].y < p.nodePoints[j].y
	}
}

func (p nodePlane) pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p nodePlane) Slice(start, end int) kdtree.SortSlicer {
	p.nodePoints = p.nodePoints[start:end]
	return p
}

func (p nodePlane) Swap(i, j int) {
	p.nodePoints[i], p.nodePoints[j] = p.nodePoints[j], p.nodePoints[i]
}
