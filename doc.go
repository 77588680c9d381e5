// Package una is an in-memory toolkit for urban network analysis: how
// central every junction of a street network is, how many alternative
// routes connect two places, and which streets those routes share.
//
// 🚀 What is una?
//
//	A spatial street-network model plus three analysis engines on top of one
//	shortest-path primitive:
//		• Network: junctions, polyline streets, weighted locations spliced in
//		  as temporary pseudo nodes
//		• Shortest paths: A* and bounded Dijkstra over a lazy-deletion heap
//		• Centrality: reach, gravity, betweenness, closeness, straightness
//		• Redundancy: the redundant-edge index of an origin-destination pair
//		• Paths: every simple path within a detour budget, with wayfinding
//		  probability and per-segment usage
//
// ✨ Why choose una?
//
//   - Deterministic: sorted iteration everywhere, equal results for any
//     worker count
//   - Bounded: radius and detour limits prune every search early
//   - Reversible: pseudo nodes are removed on every exit path of a query
//   - Batch friendly: koanf config, Prometheus textfile metrics and a cobra CLI
//
// Layout:
//
//	network/    – Network, Node, Edge, Locations and pseudo-node splicing
//	pqueue/     – indexable priority queue with remove-by-handle
//	dijkstra/   – ShortestPath (A*) and ShortestPathTree
//	centrality/ – per-node centrality sweep, parallel over origins
//	redundancy/ – redundancy index and batch summaries
//	paths/      – bounded simple-path enumeration
//	builder/    – synthetic grids, paths, cycles, stars and random networks
//	netio/      – YAML/JSON documents, CSV tables and GeoJSON export
//	config/     – layered configuration
//	logging/    – slog setup shared by the engines
//	metrics/    – Prometheus collectors
//	cmd/una/    – command-line front end
//
// Quick ASCII example:
//
//	    A───B
//	    │   │
//	    C───D
//
//	a square block: B and C each lie on one of the two shortest A–D
//	routes, so their betweenness is equal.
//
//	go get github.com/katalvlaran/una
package una
