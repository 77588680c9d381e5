// File: methods_nodes.go
// Role: Node creation through coordinate snapping, and node queries.
// Determinism:
//   - Node IDs are assigned from a counter in creation order.
//   - NodeIDs returns IDs sorted ascending.

package network

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// cell is a point snapped onto the tolerance grid.
type cell struct{ x, y, z int64 }

func (n *Network) snap(p r3.Vec) cell {
	return cell{
		x: int64(math.Round(p.X / n.tolerance)),
		y: int64(math.Round(p.Y / n.tolerance)),
		z: int64(math.Round(p.Z / n.tolerance)),
	}
}

// AddNode returns the node occupying the snapped cell of p, creating it on
// first occurrence. Options apply only when the node is created.
// Complexity: O(1)
func (n *Network) AddNode(p r3.Vec, opts ...NodeOption) (NodeID, error) {
	if n.scopeOpen() {
		return 0, ErrPseudoScopeOpen
	}

	return n.addNode(p, opts...), nil
}

func (n *Network) addNode(p r3.Vec, opts ...NodeOption) NodeID {
	c := n.snap(p)
	if id, ok := n.index[c]; ok {
		return id
	}
	id := n.NextNodeID()
	nd := &Node{ID: id, Point: p, HasPoint: true, Weight: 1.0}
	for _, opt := range opts {
		opt(nd)
	}
	n.nodes[id] = nd
	n.index[c] = id

	return id
}

// NodeAt returns the node snapped to p, if any.
func (n *Network) NodeAt(p r3.Vec) (NodeID, bool) {
	id, ok := n.index[n.snap(p)]

	return id, ok
}

// SetWeight overwrites the weight of an existing node.
func (n *Network) SetWeight(id NodeID, w float64) error {
	nd, ok := n.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	if w < 0 || math.IsNaN(w) {
		return fmt.Errorf("network: SetWeight(%d, %v): weight must be non-negative", id, w)
	}
	nd.Weight = w

	return nil
}

// NextNodeID reserves and returns a fresh node ID.
func (n *Network) NextNodeID() NodeID {
	n.lastNodeID++

	return n.lastNodeID
}

// Node returns the node with the given ID, or nil.
func (n *Network) Node(id NodeID) *Node { return n.nodes[id] }

// HasNode reports whether id exists.
func (n *Network) HasNode(id NodeID) bool {
	_, ok := n.nodes[id]

	return ok
}

// Nodes exposes the node map. Callers must treat it as read-only.
func (n *Network) Nodes() map[NodeID]*Node { return n.nodes }

// NodeIDs returns all node IDs sorted ascending.
// Complexity: O(V log V)
func (n *Network) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(n.nodes))
	for id := range n.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// NodeCount returns the number of nodes, pseudo nodes included.
func (n *Network) NodeCount() int { return len(n.nodes) }

// TotalWeight returns the sum of all node weights.
func (n *Network) TotalWeight() float64 {
	var sum float64
	for _, id := range n.NodeIDs() {
		sum += n.nodes[id].Weight
	}

	return sum
}

// Remap renumbers nodes to the dense range 0..V-1, preserving their
// relative order, and rewrites every edge endpoint accordingly.
// Refused while a pseudo scope is open.
// Complexity: O(V log V + E)
func (n *Network) Remap() error {
	if n.scopeOpen() {
		return ErrPseudoScopeOpen
	}
	ids := n.NodeIDs()
	mapping := make(map[NodeID]NodeID, len(ids))
	nodes := make(map[NodeID]*Node, len(ids))
	for i, old := range ids {
		nid := NodeID(i)
		mapping[old] = nid
		nd := n.nodes[old]
		nd.ID = nid
		nodes[nid] = nd
	}
	for _, e := range n.edges {
		e.Start = mapping[e.Start]
		e.End = mapping[e.End]
	}
	for c, old := range n.index {
		n.index[c] = mapping[old]
	}
	n.nodes = nodes
	n.lastNodeID = NodeID(len(ids) - 1)

	return nil
}
