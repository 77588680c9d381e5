// Package dijkstra defines the result types, configuration options and
// heuristic cache of the shortest-path engine.
//
// Options:
//
//	– Avoid:       node IDs that may never be entered (the origin itself is exempt).
//	– MaxDistance: nodes whose distance would exceed this bound are never queued.
//	– Heuristic:   explicit per-query cache of straight-line lower bounds.
//
// Errors (sentinel):
//
//	– ErrNilNetwork     if the network pointer is nil.
//	– ErrNodeNotFound   if the origin or destination is missing.
//	– ErrNoPath         if the destination is unreachable within MaxDistance.
//	– ErrBadMaxDistance if MaxDistance < 0 (panic in WithMaxDistance).
package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/una/network"
)

// Sentinel errors returned by the shortest-path engine.
var (
	// ErrNilNetwork indicates that a nil *network.Network was passed.
	ErrNilNetwork = errors.New("dijkstra: network is nil")

	// ErrNodeNotFound indicates that the origin or destination does not exist.
	ErrNodeNotFound = errors.New("dijkstra: node not found in network")

	// ErrNoPath indicates that the destination cannot be reached within MaxDistance
	// without entering an avoided node.
	ErrNoPath = errors.New("dijkstra: no path within bound")

	// ErrBadMaxDistance indicates that MaxDistance was negative or NaN.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Step is the parent link of a node in a shortest-path tree: the previous
// node and the edge used to leave it.
type Step struct {
	Node network.NodeID
	Edge network.EdgeID
}

// Tree is a single-source shortest-path tree.
//
// Dist holds the distance of every reached node, Parent the tree link of
// every reached node except Origin.
type Tree struct {
	Origin network.NodeID
	Parent map[network.NodeID]Step
	Dist   map[network.NodeID]float64
}

// Reached reports whether id was reached within the distance bound.
func (t *Tree) Reached(id network.NodeID) bool {
	_, ok := t.Dist[id]

	return ok
}

// Distance returns the tree distance of id.
func (t *Tree) Distance(id network.NodeID) (float64, bool) {
	d, ok := t.Dist[id]

	return d, ok
}

// PathTo returns the edges from Origin to id in travel order. It returns
// nil when id was not reached and an empty slice for the origin itself.
// Complexity: O(depth)
func (t *Tree) PathTo(id network.NodeID) []network.EdgeID {
	if !t.Reached(id) {
		return nil
	}
	edges := []network.EdgeID{}
	for cur := id; cur != t.Origin; {
		st := t.Parent[cur]
		edges = append(edges, st.Edge)
		cur = st.Node
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return edges
}

// Path is a point-to-point shortest path.
type Path struct {
	Origin      network.NodeID
	Destination network.NodeID
	Nodes       []network.NodeID // Origin first, Destination last
	Edges       []network.EdgeID // len(Nodes)-1 edges in travel order
	Length      float64
}

// HeuristicCache memoizes straight-line distances from nodes to one
// destination. It provides an admissible A* estimate because no network
// path is shorter than the straight line. Nodes without a point estimate 0.
//
// A cache belongs to a single query: pseudo nodes come and go between
// queries, and IDs may be reused once a scope is cleared.
type HeuristicCache struct {
	net  *network.Network
	dest network.NodeID
	h    map[network.NodeID]float64
}

// NewHeuristicCache creates an empty cache toward dest on net.
func NewHeuristicCache(net *network.Network, dest network.NodeID) *HeuristicCache {
	return &HeuristicCache{net: net, dest: dest, h: make(map[network.NodeID]float64)}
}

// Destination returns the node the cache estimates distances to.
func (c *HeuristicCache) Destination() network.NodeID { return c.dest }

// Lookup returns a memoized estimate.
func (c *HeuristicCache) Lookup(id network.NodeID) (float64, bool) {
	v, ok := c.h[id]

	return v, ok
}

// Insert memoizes an estimate.
func (c *HeuristicCache) Insert(id network.NodeID, v float64) { c.h[id] = v }

// Estimate returns the memoized estimate for id, computing it on first use.
func (c *HeuristicCache) Estimate(id network.NodeID) float64 {
	if v, ok := c.h[id]; ok {
		return v
	}
	v, ok := c.net.Distance(id, c.dest)
	if !ok {
		v = 0
	}
	c.h[id] = v

	return v
}

// Options configures a search.
type Options struct {
	Avoid       map[network.NodeID]struct{}
	MaxDistance float64
	Heuristic   *HeuristicCache
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// WithAvoid marks nodes that the search may not enter.
func WithAvoid(ids ...network.NodeID) Option {
	return func(o *Options) {
		if o.Avoid == nil {
			o.Avoid = make(map[network.NodeID]struct{}, len(ids))
		}
		for _, id := range ids {
			o.Avoid[id] = struct{}{}
		}
	}
}

// WithMaxDistance bounds the search: a node whose distance would exceed max
// is never queued. Panics if max is negative or NaN.
func WithMaxDistance(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(ErrBadMaxDistance.Error())
	}

	return func(o *Options) { o.MaxDistance = max }
}

// WithHeuristicCache supplies the cache used by ShortestPath. Reusing one
// cache across several searches toward the same destination within a query
// avoids recomputing estimates. Panics on nil.
func WithHeuristicCache(c *HeuristicCache) Option {
	if c == nil {
		panic("dijkstra: WithHeuristicCache(nil)")
	}

	return func(o *Options) { o.Heuristic = c }
}

// DefaultOptions returns Options with no avoided nodes, no distance bound
// and no heuristic cache.
func DefaultOptions() Options {
	return Options{MaxDistance: math.Inf(1)}
}
