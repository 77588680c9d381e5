// File: methods_edges.go
// Role: Edge creation, adjacency maintenance and geometry helpers.
// Determinism:
//   - Adjacency lists keep insertion order; EdgeIDs returns IDs sorted ascending.

package network

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// AddConnection snaps both endpoints through the tolerance grid, creating
// nodes on first occurrence, and adds one edge registered in both
// endpoints' adjacency lists.
//
// points is the polyline geometry; when empty it defaults to [start, end].
// length may be AutoLength to use the polyline length.
//
// Errors: ErrPseudoScopeOpen, ErrNegativeLength, ErrDuplicateEdge.
// Complexity: O(len(points))
func (n *Network) AddConnection(start, end r3.Vec, points []r3.Vec, length float64, opts ...EdgeOption) (EdgeID, error) {
	// 1) Structural mutation is refused while pseudo nodes are spliced in.
	if n.scopeOpen() {
		return 0, ErrPseudoScopeOpen
	}

	// 2) Resolve options.
	var spec edgeSpec
	for _, opt := range opts {
		opt(&spec)
	}

	// 3) Geometry and length.
	if len(points) == 0 {
		points = []r3.Vec{start, end}
	} else {
		points = slices.Clone(points)
	}
	if length == AutoLength {
		length = PolylineLength(points)
	}
	if !(length >= 0) || math.IsInf(length, 1) {
		return 0, fmt.Errorf("%w: %v", ErrNegativeLength, length)
	}

	// 4) Edge ID: explicit or next in sequence.
	id := n.lastEdgeID + 1
	if spec.hasID {
		id = spec.id
		if _, dup := n.edges[id]; dup {
			return 0, fmt.Errorf("%w: %d", ErrDuplicateEdge, id)
		}
	}
	if id > n.lastEdgeID {
		n.lastEdgeID = id
	}

	// 5) Endpoints, then the edge itself.
	s := n.addNode(start)
	t := n.addNode(end)
	e := &Edge{ID: id, Start: s, End: t, Length: length, Points: points, Name: spec.name, Costs: spec.costs}
	n.edges[id] = e
	n.link(e)

	return id, nil
}

// nextEdgeID reserves and returns a fresh edge ID.
func (n *Network) nextEdgeID() EdgeID {
	n.lastEdgeID++

	return n.lastEdgeID
}

// link appends e to both endpoint adjacency lists.
func (n *Network) link(e *Edge) {
	n.mustNode(e.Start).Edges = append(n.mustNode(e.Start).Edges, e.ID)
	n.mustNode(e.End).Edges = append(n.mustNode(e.End).Edges, e.ID)
}

// unlink removes the first occurrence of e from each endpoint list and
// returns the positions it was removed from.
func (n *Network) unlink(e *Edge) (startPos, endPos int) {
	startPos = n.mustNode(e.Start).removeEdge(e.ID)
	endPos = n.mustNode(e.End).removeEdge(e.ID)

	return startPos, endPos
}

// removeEdge drops the first occurrence of id and returns its index.
func (nd *Node) removeEdge(id EdgeID) int {
	i := slices.Index(nd.Edges, id)
	if i < 0 {
		panic(fmt.Errorf("%w: edge %d not incident to node %d", ErrInvariant, id, nd.ID))
	}
	nd.Edges = slices.Delete(nd.Edges, i, i+1)

	return i
}

func (n *Network) mustNode(id NodeID) *Node {
	nd, ok := n.nodes[id]
	if !ok {
		panic(fmt.Errorf("%w: node %d missing", ErrInvariant, id))
	}

	return nd
}

func (n *Network) mustEdge(id EdgeID) *Edge {
	e, ok := n.edges[id]
	if !ok {
		panic(fmt.Errorf("%w: edge %d missing", ErrInvariant, id))
	}

	return e
}

// Edge returns the edge with the given ID, or nil.
func (n *Network) Edge(id EdgeID) *Edge { return n.edges[id] }

// Edges exposes the edge map, hidden and pseudo edges included.
// Callers must treat it as read-only.
func (n *Network) Edges() map[EdgeID]*Edge { return n.edges }

// EdgeIDs returns all edge IDs sorted ascending.
// Complexity: O(E log E)
func (n *Network) EdgeIDs() []EdgeID {
	ids := make([]EdgeID, 0, len(n.edges))
	for id := range n.edges {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// EdgeIDByNodes returns the first edge in a's adjacency list that joins a and b.
// Complexity: O(deg(a))
func (n *Network) EdgeIDByNodes(a, b NodeID) (EdgeID, bool) {
	nd, ok := n.nodes[a]
	if !ok {
		return 0, false
	}
	for _, id := range nd.Edges {
		if n.edges[id].OtherEnd(a) == b {
			return id, true
		}
	}

	return 0, false
}

// PolylineLength returns the summed segment length of points.
func PolylineLength(points []r3.Vec) float64 {
	var sum float64
	for i := 1; i < len(points); i++ {
		sum += r3.Norm(r3.Sub(points[i], points[i-1]))
	}

	return sum
}

// PointAt returns the point at fraction t of the polyline length, measured
// from Start. t is clamped to [0,1].
func (e *Edge) PointAt(t float64) r3.Vec {
	if len(e.Points) == 0 {
		return r3.Vec{}
	}
	t = min(max(t, 0), 1)
	target := t * PolylineLength(e.Points)
	for i := 1; i < len(e.Points); i++ {
		seg := r3.Norm(r3.Sub(e.Points[i], e.Points[i-1]))
		if target <= seg && seg > 0 {
			return r3.Add(e.Points[i-1], r3.Scale(target/seg, r3.Sub(e.Points[i], e.Points[i-1])))
		}
		target -= seg
	}

	return e.Points[len(e.Points)-1]
}

// Distance returns the straight-line distance between two located nodes.
// ok is false if either node is missing or has no point.
func (n *Network) Distance(a, b NodeID) (float64, bool) {
	na, nb := n.nodes[a], n.nodes[b]
	if na == nil || nb == nil || !na.HasPoint || !nb.HasPoint {
		return 0, false
	}

	return r3.Norm(r3.Sub(na.Point, nb.Point)), true
}
