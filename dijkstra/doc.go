// Package dijkstra is the single traversal primitive of una: every analysis
// engine (centrality, redundancy, paths) reaches distances through it.
//
// Overview:
//
//   - ShortestPath(net, o, d, opts...) returns the edge sequence and length of
//     a shortest o→d path, or ErrNoPath.
//   - ShortestPathTree(net, o, opts...) returns parent and distance maps for
//     reuse by callers that need many single-source distances.
//
// Key features:
//
//   - WithMaxDistance: distances above the bound are never queued, so the
//     tree is exactly the ball of that radius.
//   - WithAvoid: nodes that may not be entered (used by path enumeration to
//     forbid stepping back through the current node).
//   - WithHeuristicCache: an explicit straight-line estimate cache, owned by
//     the query, passed by reference into repeated searches.
//   - Hidden edges (replaced by pseudo splits) are never traversed.
//
// Ties:
//
// Equal priorities pop in insertion order; no further tie-break is applied.
//
// Thread safety:
//
// A search only reads the network. Concurrent searches on one network are
// safe as long as nobody splices pseudo nodes meanwhile.
package dijkstra
