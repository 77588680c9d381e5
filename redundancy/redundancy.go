// Package redundancy measures how many alternative routes exist between an
// origin and a destination within a detour budget.
//
// Both locations are spliced in as pseudo nodes, the shortest distance d0
// is found, and two shortest-path trees capped at q = c·d0 are grown from
// the origin and from the destination. An edge (u,v) is redundant when
// dist_O(u) + len + dist_D(v) <= q in either orientation; the tree paths
// leading to it become redundant as well. Walks found this way may repeat
// edges.
//
// Complexity:
//
//   - Time:  O((V + E) log V) per pair
//   - Space: O(V + E)
package redundancy

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/una/dijkstra"
	"github.com/katalvlaran/una/metrics"
	"github.com/katalvlaran/una/network"
)

// Index computes the redundancy of the pair (originID, destID).
//
// ok is false when no path exists or d0 exceeds the radius; a warning is
// emitted in both cases. Pseudo nodes are cleared on every return path.
func Index(net *network.Network, locs *network.Locations, originID, destID int64, opts ...Option) (*Result, bool, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return index(net, locs, originID, destID, &cfg)
}

// pair resolves both locations.
func pair(net *network.Network, locs *network.Locations, originID, destID int64) (network.Location, network.Location, error) {
	if net == nil || locs == nil {
		return network.Location{}, network.Location{}, ErrNilNetwork
	}
	if originID == destID {
		return network.Location{}, network.Location{}, fmt.Errorf("%w: %d", ErrSameLocation, originID)
	}
	o, ok := locs.Get(originID)
	if !ok {
		return network.Location{}, network.Location{}, fmt.Errorf("%w: origin %d", ErrLocationNotFound, originID)
	}
	d, ok := locs.Get(destID)
	if !ok {
		return network.Location{}, network.Location{}, fmt.Errorf("%w: destination %d", ErrLocationNotFound, destID)
	}

	return o, d, nil
}

func index(net *network.Network, locs *network.Locations, originID, destID int64, cfg *Options) (*Result, bool, error) {
	// 1) Resolve the pair.
	o, d, err := pair(net, locs, originID, destID)
	if err != nil {
		return nil, false, err
	}

	var res *Result
	err = net.WithPseudoNodes([]network.Location{o, d}, func(ids []network.NodeID) error {
		// 2) Shortest distance d0 within the radius.
		sp, err := dijkstra.ShortestPath(net, ids[0], ids[1])
		if errors.Is(err, dijkstra.ErrNoPath) {
			cfg.Warn(WarnNoPath, "origin", originID, "destination", destID)
			metrics.Pair(metrics.EngineRedundancy, metrics.OutcomeNoPath)
			return nil
		}
		if err != nil {
			return err
		}
		if sp.Length > cfg.Radius {
			cfg.Warn(WarnOutOfRadius, "origin", originID, "destination", destID,
				"distance", sp.Length, "radius", cfg.Radius)
			metrics.Pair(metrics.EngineRedundancy, metrics.OutcomeOutOfRadius)
			return nil
		}

		// 3) Classify edges against the budget.
		valid, err := uniqueSegments(net, ids[0], ids[1], sp.Length*cfg.Coefficient)
		if err != nil {
			return err
		}

		// 4) Account while the pseudo edges still exist.
		res = &Result{
			Origin:         originID,
			Destination:    destID,
			Index:          ratio(net, locs, cfg.Weighted, valid, sp),
			UniqueSegments: originals(net, valid),
			ShortestPath:   collapse(net, sp.Edges),
			Distance:       sp.Length,
		}
		metrics.Pair(metrics.EngineRedundancy, metrics.OutcomeOK)
		metrics.RedundancyIndex.Observe(res.Index)

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return res, res != nil, nil
}

// uniqueSegments returns the edges lying on some O→D walk of length at
// most quota, ascending by ID.
func uniqueSegments(net *network.Network, origin, dest network.NodeID, quota float64) ([]network.EdgeID, error) {
	// 1) Budget-capped trees from both ends.
	fromO, err := dijkstra.ShortestPathTree(net, origin, dijkstra.WithMaxDistance(quota))
	if err != nil {
		return nil, err
	}
	fromD, err := dijkstra.ShortestPathTree(net, dest, dijkstra.WithMaxDistance(quota))
	if err != nil {
		return nil, err
	}

	// 2) Every node reached by either tree.
	reach := make(map[network.NodeID]struct{}, len(fromO.Dist)+len(fromD.Dist))
	for id := range fromO.Dist {
		reach[id] = struct{}{}
	}
	for id := range fromD.Dist {
		reach[id] = struct{}{}
	}
	nodes := make([]network.NodeID, 0, len(reach))
	for id := range reach {
		nodes = append(nodes, id)
	}
	slices.Sort(nodes)

	valid := make(map[network.EdgeID]struct{})
	invalid := make(map[network.EdgeID]struct{})
	validate := func(t *dijkstra.Tree, id network.NodeID) {
		for id != t.Origin {
			st := t.Parent[id]
			valid[st.Edge] = struct{}{}
			id = st.Node
		}
	}

	// 3) Test every incident edge once, in both orientations.
	for _, id := range nodes {
		for _, eid := range net.Node(id).Edges {
			if _, ok := valid[eid]; ok {
				continue
			}
			if _, ok := invalid[eid]; ok {
				continue
			}
			e := net.Edge(eid)
			if e.Hidden {
				continue
			}
			success := false
			if dist(fromO, e.Start)+e.Length+dist(fromD, e.End) <= quota {
				validate(fromO, e.Start)
				validate(fromD, e.End)
				success = true
			}
			if dist(fromO, e.End)+e.Length+dist(fromD, e.Start) <= quota {
				validate(fromO, e.End)
				validate(fromD, e.Start)
				success = true
			}
			if success {
				valid[eid] = struct{}{}
			} else {
				invalid[eid] = struct{}{}
			}
		}
	}

	out := make([]network.EdgeID, 0, len(valid))
	for eid := range valid {
		out = append(out, eid)
	}
	slices.Sort(out)

	return out, nil
}

func dist(t *dijkstra.Tree, id network.NodeID) float64 {
	if d, ok := t.Dist[id]; ok {
		return d
	}

	return math.Inf(1)
}

// ratio divides the accounted size of the valid set by that of the shortest
// path. A zero denominator yields 1.
func ratio(net *network.Network, locs *network.Locations, weighted bool, valid []network.EdgeID, sp *dijkstra.Path) float64 {
	if weighted {
		var num, den float64
		for _, eid := range valid {
			num += locs.EdgeWeight(net, eid)
		}
		for _, eid := range sp.Edges {
			den += locs.EdgeWeight(net, eid)
		}
		if den > 0 {
			return num / den
		}

		return 1
	}

	var num float64
	for _, eid := range valid {
		num += net.Edge(eid).Length
	}
	if sp.Length > 0 {
		return num / sp.Length
	}

	return 1
}

// originals maps edges to their original IDs, deduplicated and ascending.
func originals(net *network.Network, edges []network.EdgeID) []network.EdgeID {
	seen := make(map[network.EdgeID]struct{}, len(edges))
	out := make([]network.EdgeID, 0, len(edges))
	for _, eid := range edges {
		orig := net.OriginalEdge(eid)
		if _, dup := seen[orig]; dup {
			continue
		}
		seen[orig] = struct{}{}
		out = append(out, orig)
	}
	slices.Sort(out)

	return out
}

// collapse maps a travel-ordered edge sequence to original IDs, merging
// consecutive pieces of the same split edge.
func collapse(net *network.Network, edges []network.EdgeID) []network.EdgeID {
	out := make([]network.EdgeID, 0, len(edges))
	for _, eid := range edges {
		orig := net.OriginalEdge(eid)
		if len(out) > 0 && out[len(out)-1] == orig {
			continue
		}
		out = append(out, orig)
	}

	return out
}
