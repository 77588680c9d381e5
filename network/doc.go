// Package network provides the in-memory spatial street network used by
// every analysis engine in una.
//
// A Network is a multigraph of Nodes joined by undirected Edges. Each edge
// carries a scalar Length, a polyline geometry and optional named Costs:
//
//   - Nodes are created by coordinate snapping: two endpoints that fall in
//     the same tolerance cell collapse onto one node (WithTolerance).
//   - Every node keeps an ordered adjacency list of incident edge IDs.
//   - Node weights (population, floor area, ...) default to 1.0.
//
// Pseudo nodes:
//
// An arbitrary point on an edge (a building entrance, a bus stop) is
// represented for the duration of one query by a pseudo node. Splicing
// hides the original edge and replaces it with two pseudo edges whose
// lengths are proportional to the split fraction. Several splits on the
// same edge are supported; each new split only replaces the pseudo edge
// between its immediate neighbors.
//
//	err := net.WithPseudoNodes([]network.Location{origin, dest}, func(ids []network.NodeID) error {
//	    // ids[0], ids[1] are the spliced nodes
//	    return nil
//	})
//
// ClearPseudoNodes (called by WithPseudoNodes on every exit path) deletes
// the pseudo entities and restores hidden edges at their original adjacency
// positions, so the network is left exactly as it was.
//
// Concurrency:
//
// Searches only read the network. Splicing mutates it in place, so at most
// one query scope is open per Network; batch drivers run workers on Clones.
//
// Interop:
//
// Undirected exposes a gonum simple.WeightedUndirectedGraph view, and
// Components reports connected components through gonum/graph/topo.
package network
