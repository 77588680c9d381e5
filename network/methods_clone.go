// File: methods_clone.go
// Role: Deep copies for per-worker batch queries.
// Determinism:
//   - Clone carries the ID counters, so pseudo IDs allocated on a clone match
//     those allocated on the source.

package network

import (
	"maps"
	"slices"
)

// Clone returns a deep copy of the network: nodes, edges, adjacency lists,
// pseudo bookkeeping and counters. Analysis metrics are copied too.
// Complexity: O(V + E)
func (n *Network) Clone() *Network {
	n.mu.Lock()
	defer n.mu.Unlock()

	c := &Network{
		tolerance:   n.tolerance,
		nodes:       make(map[NodeID]*Node, len(n.nodes)),
		edges:       make(map[EdgeID]*Edge, len(n.edges)),
		index:       maps.Clone(n.index),
		pseudoEdges: maps.Clone(n.pseudoEdges),
		pseudoNodes: maps.Clone(n.pseudoNodes),
		hiddenEdges: maps.Clone(n.hiddenEdges),
		lastNodeID:  n.lastNodeID,
		lastEdgeID:  n.lastEdgeID,
		scope: pseudoScope{
			open:       n.scope.open,
			journal:    slices.Clone(n.scope.journal),
			lastNodeID: n.scope.lastNodeID,
			lastEdgeID: n.scope.lastEdgeID,
		},
	}
	for id, nd := range n.nodes {
		cp := *nd
		cp.Edges = slices.Clone(nd.Edges)
		cp.Metrics.Accumulations = maps.Clone(nd.Metrics.Accumulations)
		c.nodes[id] = &cp
	}
	for id, e := range n.edges {
		cp := *e
		cp.Points = slices.Clone(e.Points)
		cp.Costs = maps.Clone(e.Costs)
		c.edges[id] = &cp
	}

	return c
}
