// Package dijkstra implements the shortest-path engine over network.Network.
//
// One search routine serves two modes:
//
//   - ShortestPath: point-to-point A*. The priority of a node is its tentative
//     distance plus a memoized straight-line estimate to the destination,
//     which never overestimates network distance.
//   - ShortestPathTree: single-source Dijkstra returning parent and distance
//     maps for every node reachable within the bound.
//
// Both modes skip hidden edges and avoided nodes, and never queue a node
// whose distance would exceed MaxDistance. Decrease-key is implemented by
// removing the queued entry and pushing the better cost (pqueue.Queue), so
// each node is queued at most once at any time.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V)
package dijkstra

import (
	"fmt"
	"math"

	"github.com/katalvlaran/una/network"
	"github.com/katalvlaran/una/pqueue"
)

// ShortestPath returns the shortest path from origin to dest.
//
// Errors:
//
//   - ErrNilNetwork, ErrNodeNotFound on bad input.
//   - ErrNoPath when dest cannot be reached within the bound.
func ShortestPath(net *network.Network, origin, dest network.NodeID, opts ...Option) (*Path, error) {
	// 1) Build and validate options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate(net, origin); err != nil {
		return nil, err
	}
	if !net.HasNode(dest) {
		return nil, fmt.Errorf("%w: destination %d", ErrNodeNotFound, dest)
	}

	// 2) Use the caller's cache only if it targets the same destination.
	h := cfg.Heuristic
	if h == nil || h.Destination() != dest {
		h = NewHeuristicCache(net, dest)
	}

	// 3) Run until dest is popped.
	r := newRunner(net, cfg, origin)
	r.dest, r.hasDest, r.h = dest, true, h
	if !r.run() {
		return nil, fmt.Errorf("%w: %d to %d", ErrNoPath, origin, dest)
	}

	return r.path(), nil
}

// ShortestPathTree runs a single-source search from origin bounded by the
// options and returns the resulting tree.
//
// Errors: ErrNilNetwork, ErrNodeNotFound.
func ShortestPathTree(net *network.Network, origin network.NodeID, opts ...Option) (*Tree, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validate(net, origin); err != nil {
		return nil, err
	}

	r := newRunner(net, cfg, origin)
	r.run()

	return &Tree{Origin: origin, Parent: r.parent, Dist: r.dist}, nil
}

func validate(net *network.Network, origin network.NodeID) error {
	if net == nil {
		return ErrNilNetwork
	}
	if !net.HasNode(origin) {
		return fmt.Errorf("%w: origin %d", ErrNodeNotFound, origin)
	}

	return nil
}

// runner holds the mutable state for a single search.
type runner struct {
	net     *network.Network
	options Options
	origin  network.NodeID

	dest    network.NodeID
	hasDest bool
	h       *HeuristicCache

	dist   map[network.NodeID]float64
	parent map[network.NodeID]Step
	done   map[network.NodeID]struct{}
	pq     *pqueue.Queue[network.NodeID]
}

func newRunner(net *network.Network, cfg Options, origin network.NodeID) *runner {
	return &runner{
		net:     net,
		options: cfg,
		origin:  origin,
		dist:    map[network.NodeID]float64{origin: 0},
		parent:  make(map[network.NodeID]Step),
		done:    make(map[network.NodeID]struct{}),
		pq:      pqueue.New[network.NodeID](0),
	}
}

func (r *runner) estimate(id network.NodeID) float64 {
	if !r.hasDest {
		return 0
	}

	return r.h.Estimate(id)
}

// run is the main loop. It reports whether the destination was popped;
// without a destination it always runs to exhaustion and returns false.
func (r *runner) run() bool {
	// 1) Seed the queue with the origin.
	r.pq.Push(r.origin, r.estimate(r.origin))

	for {
		// 2) Pop the best candidate; its distance is final.
		u, _, ok := r.pq.Pop()
		if !ok {
			return false
		}
		if r.hasDest && u == r.dest {
			return true
		}
		r.done[u] = struct{}{}

		// 3) Relax visible incident edges.
		r.relax(u)
	}
}

// relax improves the tentative distance of every unfinished, non-avoided
// neighbor of u that stays within the bound.
func (r *runner) relax(u network.NodeID) {
	du := r.dist[u]
	for _, eid := range r.net.Node(u).Edges {
		e := r.net.Edge(eid)
		if e.Hidden {
			continue
		}
		v := e.OtherEnd(u)
		if _, fin := r.done[v]; fin {
			continue
		}
		if _, avoid := r.options.Avoid[v]; avoid {
			continue
		}

		nd := du + e.Length
		old, seen := r.dist[v]
		if !seen {
			old = math.Inf(1)
		}
		if nd >= old || nd > r.options.MaxDistance {
			continue
		}

		r.dist[v] = nd
		r.parent[v] = Step{Node: u, Edge: eid}
		if r.pq.Contains(v) {
			r.pq.Remove(v)
		}
		r.pq.Push(v, nd+r.estimate(v))
	}
}

// path rebuilds the origin→dest path from the parent links.
func (r *runner) path() *Path {
	p := &Path{Origin: r.origin, Destination: r.dest, Length: r.dist[r.dest]}
	nodes := []network.NodeID{r.dest}
	var edges []network.EdgeID
	for cur := r.dest; cur != r.origin; {
		st := r.parent[cur]
		edges = append(edges, st.Edge)
		nodes = append(nodes, st.Node)
		cur = st.Node
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	p.Nodes, p.Edges = nodes, edges

	return p
}
