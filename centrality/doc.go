// Package centrality computes reach, gravity, betweenness, closeness and
// straightness for a set of origins in one traversal per origin.
//
// Overview:
//
//   - Compute(net, opts...) writes results into network.Node.Metrics and
//     returns a Result describing what was computed and normalized.
//   - Metric is a bitmask; ParseMetrics reads comma-separated names.
//
// Radius:
//
// With WithRadius the search never queues a node beyond the network
// distance bound. With WithEuclideanRadius every node is relaxed, the sweep
// stops once every node within the straight-line radius has been popped,
// and only those nodes contribute to the totals.
//
// Normalization:
//
//	norm_reach        = reach count / (sum of origin weights - weight_s)
//	norm_gravity      = e^beta * gravity / weighted reach
//	norm_betweenness  = betweenness / (weighted reach * (reach count - 1))
//	norm_closeness    = closeness * weighted reach
//	norm_straightness = straightness / weighted reach
//
// A zero denominator yields 0. Betweenness is normalized only when every
// node was an origin; otherwise it is dropped from the set with a warning.
//
// Accumulators:
//
// Each named cost is summed along the chain that last enqueued a node, and
// the origin's total is the sum over every node ever enqueued. On networks
// with many equal-length ties this counts more than the single shortest-path
// tree would.
//
// Concurrency:
//
// WithWorkers(n) splits the origins into n contiguous chunks. The network is
// only read during the sweeps and results are written after all workers
// finish, so the outcome matches the sequential run up to float rounding of
// the betweenness sums. WithContext is checked before each origin; a done
// context stops every worker and Compute returns its error.
package centrality
