package network

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Undirected returns a gonum view of the visible network. Parallel edges
// collapse to the shortest one and self-loops are dropped, since a simple
// graph holds neither. Node IDs are preserved.
// Complexity: O(V + E)
func (n *Network) Undirected() *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for _, id := range n.NodeIDs() {
		g.AddNode(simple.Node(id))
	}
	for _, id := range n.EdgeIDs() {
		e := n.edges[id]
		if e.Hidden || e.Start == e.End {
			continue
		}
		if w, ok := g.Weight(int64(e.Start), int64(e.End)); ok && w <= e.Length {
			continue
		}
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(e.Start), T: simple.Node(e.End), W: e.Length})
	}

	return g
}

// Components returns the connected components of the visible network,
// largest first. Each component is sorted ascending; ties between equally
// sized components are broken by their smallest ID.
func (n *Network) Components() [][]NodeID {
	raw := topo.ConnectedComponents(n.Undirected())
	out := make([][]NodeID, 0, len(raw))
	for _, comp := range raw {
		ids := make([]NodeID, len(comp))
		for i, nd := range comp {
			ids[i] = NodeID(nd.ID())
		}
		slices.Sort(ids)
		out = append(out, ids)
	}
	slices.SortFunc(out, func(a, b []NodeID) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}

		return cmp.Compare(a[0], b[0])
	})

	return out
}
