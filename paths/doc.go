// Package paths lists every simple route between two locations that is at
// most c times longer than the shortest one, and derives two indices from
// the set.
//
// Overview:
//
//   - Enumerate(net, locs, o, d, opts...) returns the paths of one pair in
//     depth-first discovery order, with per-segment usage counts.
//   - Batch(net, locs, o, dests, opts...) runs one origin against many
//     destinations and returns a Table of rows plus summed segment counts.
//
// Indices:
//
//   - Redundancy: total length of the distinct edges used by any path over
//     the shortest distance d0 (1 when d0 is 0).
//   - Wayfinding: the summed probability of the enumerated paths under a
//     walker who never revisits a junction and picks uniformly among the
//     unvisited streets at each one. It lies in (0, 1].
//
// Pruning:
//
// A branch is cut when its edge overruns the remaining budget, when the
// straight line from its far end to the destination does, or when the
// shortest remaining route that does not step back through the current
// node does. The straight-line rule needs edge lengths that are at least
// the distance between their endpoints.
//
// Cancellation and limits:
//
// WithContext is checked at every expanded node; WithMaxPaths stops early,
// sets Result.Truncated and emits WarnTruncated. Pseudo nodes are cleared
// on every return path, so the network is unchanged after each pair.
package paths
