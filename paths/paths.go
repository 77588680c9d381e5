// Package paths enumerates every simple path between an origin and a
// destination whose length stays within c times the shortest distance.
//
// The search is a depth-first walk carrying the remaining budget. At each
// node an unvisited, visible edge is expanded only if all three hold:
//
//  1. the edge fits in the remaining budget;
//  2. the straight line from its far end to the destination fits in what
//     would remain;
//  3. the shortest distance from its far end to the destination, avoiding
//     the current node, fits as well (memoized per node pair).
//
// Rule 2 assumes edge lengths are never shorter than the straight line
// between their ends. Networks that violate this can lose paths.
//
// Complexity: exponential in the worst case; bounded by the budget.
package paths

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/dijkstra"
	"github.com/katalvlaran/una/metrics"
	"github.com/katalvlaran/una/network"
)

// errLimit ends the walk once MaxPaths paths are recorded.
var errLimit = errors.New("paths: limit reached")

// Enumerate lists the simple paths between two locations.
//
// ok is false when no path exists or d0 exceeds the radius; a warning is
// emitted in both cases. Pseudo nodes are cleared on every return path.
func Enumerate(net *network.Network, locs *network.Locations, originID, destID int64, opts ...Option) (*Result, bool, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return enumerate(net, locs, originID, destID, &cfg)
}

func enumerate(net *network.Network, locs *network.Locations, originID, destID int64, cfg *Options) (*Result, bool, error) {
	// 1) Resolve the pair.
	if net == nil || locs == nil {
		return nil, false, ErrNilNetwork
	}
	if originID == destID {
		return nil, false, fmt.Errorf("%w: %d", ErrSameLocation, originID)
	}
	o, ok := locs.Get(originID)
	if !ok {
		return nil, false, fmt.Errorf("%w: origin %d", ErrLocationNotFound, originID)
	}
	d, ok := locs.Get(destID)
	if !ok {
		return nil, false, fmt.Errorf("%w: destination %d", ErrLocationNotFound, destID)
	}

	var res *Result
	err := net.WithPseudoNodes([]network.Location{o, d}, func(ids []network.NodeID) error {
		// 2) Shortest distance d0 within the radius.
		h := dijkstra.NewHeuristicCache(net, ids[1])
		sp, err := dijkstra.ShortestPath(net, ids[0], ids[1], dijkstra.WithHeuristicCache(h))
		if errors.Is(err, dijkstra.ErrNoPath) {
			cfg.Warn(WarnNoPath, "origin", originID, "destination", destID)
			metrics.Pair(metrics.EnginePaths, metrics.OutcomeNoPath)
			return nil
		}
		if err != nil {
			return err
		}
		if sp.Length > cfg.Radius {
			cfg.Warn(WarnOutOfRadius, "origin", originID, "destination", destID,
				"distance", sp.Length, "radius", cfg.Radius)
			metrics.Pair(metrics.EnginePaths, metrics.OutcomeOutOfRadius)
			return nil
		}

		// 3) Walk.
		w := newWalker(net, cfg, ids[0], ids[1], h)
		err = w.walk(ids[0], sp.Length*cfg.Coefficient, 1)
		truncated := errors.Is(err, errLimit)
		if err != nil && !truncated {
			return err
		}
		if truncated {
			cfg.Warn(WarnTruncated, "origin", originID, "destination", destID, "paths", len(w.found))
		}

		// 4) Summarize while the pseudo edges still exist.
		res = w.result(originID, destID, sp.Length)
		res.Truncated = truncated
		metrics.Pair(metrics.EnginePaths, metrics.OutcomeOK)
		metrics.PathsEnumerated.Add(float64(len(res.Paths)))

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return res, res != nil, nil
}

// trail is a path recorded in pseudo-spliced IDs.
type trail struct {
	nodes  []network.NodeID
	edges  []network.EdgeID
	length float64
	prob   float64
}

// walker encapsulates state during the enumeration.
type walker struct {
	net  *network.Network
	cfg  *Options
	dest network.NodeID
	h    *dijkstra.HeuristicCache

	// memo holds shortest distances to dest from the second node of each
	// key, avoiding the first.
	memo map[[2]network.NodeID]float64

	visited map[network.NodeID]bool
	nodes   []network.NodeID
	edges   []network.EdgeID
	length  float64

	found []trail
}

func newWalker(net *network.Network, cfg *Options, origin, dest network.NodeID, h *dijkstra.HeuristicCache) *walker {
	return &walker{
		net:     net,
		cfg:     cfg,
		dest:    dest,
		h:       h,
		memo:    make(map[[2]network.NodeID]float64),
		visited: map[network.NodeID]bool{origin: true},
		nodes:   []network.NodeID{origin},
	}
}

// way is a branch that survived pruning.
type way struct {
	to     network.NodeID
	edge   network.EdgeID
	length float64
	remain float64
}

// walk extends the current path from end with budget remain. prob is the
// probability of having followed the current path so far.
func (w *walker) walk(end network.NodeID, remain, prob float64) error {
	// 1) Cancellation check
	select {
	case <-w.cfg.Ctx.Done():
		return w.cfg.Ctx.Err()
	default:
	}

	// 2) Count branches and prune.
	var ways []way
	branches := 0
	for _, eid := range w.net.Node(end).Edges {
		e := w.net.Edge(eid)
		if e.Hidden {
			continue
		}
		to := e.OtherEnd(end)
		if w.visited[to] {
			continue
		}
		branches++

		left := remain - e.Length
		if left < 0 {
			continue
		}
		if left < w.h.Estimate(to) {
			continue
		}
		if left < w.shortest(end, to) {
			continue
		}
		ways = append(ways, way{to: to, edge: eid, length: e.Length, remain: left})
	}

	// 3) Expand in adjacency order.
	for _, wy := range ways {
		p := prob / float64(branches)
		w.push(wy)
		var err error
		if wy.to == w.dest {
			w.record(p)
			if w.cfg.MaxPaths > 0 && len(w.found) >= w.cfg.MaxPaths {
				err = errLimit
			}
		} else {
			err = w.walk(wy.to, wy.remain, p)
		}
		w.pop(wy)
		if err != nil {
			return err
		}
	}

	return nil
}

// shortest returns the memoized distance from to the destination that
// avoids from. Unreachable is +Inf.
func (w *walker) shortest(from, to network.NodeID) float64 {
	k := [2]network.NodeID{from, to}
	if d, ok := w.memo[k]; ok {
		return d
	}
	d := math.Inf(1)
	sp, err := dijkstra.ShortestPath(w.net, to, w.dest,
		dijkstra.WithAvoid(from, to), dijkstra.WithHeuristicCache(w.h))
	if err == nil {
		d = sp.Length
	}
	w.memo[k] = d

	return d
}

func (w *walker) push(wy way) {
	w.visited[wy.to] = true
	w.nodes = append(w.nodes, wy.to)
	w.edges = append(w.edges, wy.edge)
	w.length += wy.length
}

func (w *walker) pop(wy way) {
	delete(w.visited, wy.to)
	w.nodes = w.nodes[:len(w.nodes)-1]
	w.edges = w.edges[:len(w.edges)-1]
	w.length -= wy.length
}

func (w *walker) record(prob float64) {
	w.found = append(w.found, trail{
		nodes:  append([]network.NodeID(nil), w.nodes...),
		edges:  append([]network.EdgeID(nil), w.edges...),
		length: sumLengths(w.net, w.edges),
		prob:   prob,
	})
}

func sumLengths(net *network.Network, edges []network.EdgeID) float64 {
	var s float64
	for _, eid := range edges {
		s += net.Edge(eid).Length
	}

	return s
}

// result maps the recorded trails to original IDs and computes the indices.
func (w *walker) result(originID, destID int64, d0 float64) *Result {
	res := &Result{
		Origin:        originID,
		Destination:   destID,
		Distance:      d0,
		Paths:         make([]Path, 0, len(w.found)),
		SegmentCounts: make(map[network.EdgeID]int),
		HasWayfinding: w.cfg.Wayfinding,
	}
	used := make(map[network.EdgeID]struct{})
	for _, tr := range w.found {
		p := Path{
			Length:      tr.length,
			Probability: tr.prob,
			Points:      pointsOnPath(w.net, tr.nodes, tr.edges),
		}
		for _, id := range tr.nodes {
			if !w.net.IsPseudoNode(id) {
				p.Junctions = append(p.Junctions, id)
			}
		}
		for _, eid := range tr.edges {
			used[eid] = struct{}{}
			orig := w.net.OriginalEdge(eid)
			res.SegmentCounts[orig]++
			if n := len(p.Segments); n == 0 || p.Segments[n-1] != orig {
				p.Segments = append(p.Segments, orig)
			}
		}
		if w.cfg.Wayfinding {
			res.Wayfinding += tr.prob
		}
		res.Paths = append(res.Paths, p)
	}

	res.Redundancy = 1
	if d0 > 0 {
		var total float64
		for eid := range used {
			total += w.net.Edge(eid).Length
		}
		res.Redundancy = total / d0
	}

	return res
}

// pointsOnPath concatenates edge geometries in travel order. An edge is
// reversed when the walk leaves it from its End; shared junction points
// appear once.
func pointsOnPath(net *network.Network, nodes []network.NodeID, edges []network.EdgeID) []r3.Vec {
	var out []r3.Vec
	for i, eid := range edges {
		e := net.Edge(eid)
		pts := e.Points
		if e.Start != nodes[i] {
			pts = slices.Clone(pts)
			slices.Reverse(pts)
		}
		if i > 0 && len(pts) > 0 {
			pts = pts[1:]
		}
		out = append(out, pts...)
	}

	return out
}
