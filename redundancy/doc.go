// Package redundancy computes the redundancy index of origin-destination
// pairs: how much of the street network lies on some route that is at most
// c times longer than the shortest one.
//
// Overview:
//
//   - Index(net, locs, o, d, opts...) evaluates one pair and reports the
//     index with the original segments involved.
//   - Batch(ctx, net, locs, origins, dests, opts...) evaluates every pair
//     once and returns per-origin statistics (count, mean, population
//     standard deviation, min, max, union of segments).
//   - CommonOrigin reports whether a list of pairs shares a single ID.
//
// Accounting:
//
// By default both sides of the ratio are edge lengths. WithWeights counts
// each edge by the weight of the locations lying on it instead, restricted
// to the covered fraction for split edges. A zero denominator yields 1.
//
// Guarantees:
//
//   - The shortest-path edges are always redundant, so Index >= 1.
//   - At coefficient 1 only shortest-path edges qualify (up to ties).
//   - The network is restored after every pair, including failures.
package redundancy
