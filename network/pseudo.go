// File: pseudo.go
// Role: Reversible splicing of transient pseudo nodes into edges.
// Determinism:
//   - Pseudo bookkeeping is iterated in ascending ID order.
//   - ClearPseudoNodes rewinds the ID counters, so repeating a query on an
//     unchanged network allocates the same pseudo IDs.
// Reversibility:
//   - Hiding an edge journals its adjacency positions; restoring replays the
//     journal backwards, so adjacency lists come back identical in order.

package network

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// pseudoScope is the bookkeeping for one open query.
type pseudoScope struct {
	open       bool
	journal    []hiddenEntry
	lastNodeID NodeID
	lastEdgeID EdgeID
}

// hiddenEntry records where a hidden edge sat in its endpoint lists.
type hiddenEntry struct {
	edge     EdgeID
	startPos int
	endPos   int
}

func (n *Network) scopeOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.scope.open
}

// openScopeLocked snapshots the counters. Caller holds n.mu.
func (n *Network) openScopeLocked() {
	n.scope = pseudoScope{open: true, lastNodeID: n.lastNodeID, lastEdgeID: n.lastEdgeID}
}

// WithPseudoNodes splices every location into the network as a pseudo node,
// calls fn with the new node IDs (in the order of locs), and clears every
// pseudo node on return, including when fn fails or panics.
//
// A location without a point is placed at Edge.PointAt(T).
//
// Errors: ErrPseudoScopeOpen if another scope is open, any AddPseudoNode
// error, or the error returned by fn.
func (n *Network) WithPseudoNodes(locs []Location, fn func(ids []NodeID) error) error {
	// 1) Claim the scope.
	n.mu.Lock()
	if n.scope.open || len(n.pseudoNodes) > 0 {
		n.mu.Unlock()
		return ErrPseudoScopeOpen
	}
	n.openScopeLocked()
	n.mu.Unlock()
	defer n.ClearPseudoNodes()

	// 2) Splice in order.
	ids := make([]NodeID, len(locs))
	for i, loc := range locs {
		e, ok := n.edges[loc.EdgeID]
		if !ok {
			return fmt.Errorf("%w: location %d on edge %d", ErrEdgeNotFound, loc.ID, loc.EdgeID)
		}
		p := loc.Point
		if !loc.HasPoint {
			p = e.PointAt(loc.T)
		}
		ids[i] = n.NextNodeID()
		if err := n.AddPseudoNode(loc.T, loc.EdgeID, ids[i], p); err != nil {
			return err
		}
	}

	// 3) Run the query.
	return fn(ids)
}

// AddPseudoNode splices node id at fraction t along the original edge
// edgeID. A t of exactly 0 or 1 is moved to tol or 1-tol, where tol is the
// network tolerance, so the pseudo node never coincides with an endpoint.
//
// If the edge is not yet hidden it is hidden and replaced by two pseudo
// edges of lengths L·t and L·(1-t). Otherwise every split already on that
// edge is collected and sorted by fraction, and only the pseudo edge between
// the two immediate neighbors of t is replaced.
//
// Errors: ErrEdgeNotFound, ErrPseudoEdge, ErrDuplicateNode, ErrBadFraction.
// Complexity: O(P log P + deg) where P is the number of pseudo nodes.
func (n *Network) AddPseudoNode(t float64, edgeID EdgeID, id NodeID, point r3.Vec) error {
	// 1) Validate.
	orig, ok := n.edges[edgeID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrEdgeNotFound, edgeID)
	}
	if n.IsPseudoEdge(edgeID) {
		return fmt.Errorf("%w: %d", ErrPseudoEdge, edgeID)
	}
	if _, dup := n.nodes[id]; dup {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}
	if !(t >= 0 && t <= 1) {
		return fmt.Errorf("%w: %v", ErrBadFraction, t)
	}
	switch t {
	case 0:
		t = n.tolerance
	case 1:
		t = 1 - n.tolerance
	}

	// 2) Open the scope implicitly for direct callers.
	n.mu.Lock()
	if !n.scope.open {
		n.openScopeLocked()
	}
	n.mu.Unlock()
	if id > n.lastNodeID {
		n.lastNodeID = id
	}

	// 3) Find the segment to replace and the fractions that bound it.
	var (
		s, e       NodeID
		sT, eT     float64
		replaced   *Edge
		replacedID EdgeID
	)
	if orig.Hidden {
		s, sT, e, eT = n.neighborSplits(orig, t)
		replacedID = n.pseudoEdgeBetween(s, e, edgeID)
		replaced = n.edges[replacedID]
		n.unlink(replaced)
		delete(n.edges, replacedID)
		delete(n.pseudoEdges, replacedID)
	} else {
		s, sT, e, eT = orig.Start, 0, orig.End, 1
		replaced = orig
		n.hide(orig)
	}

	// 4) Create the pseudo node and the two pseudo edges around it.
	n.nodes[id] = &Node{ID: id, Point: point, HasPoint: true, T: t, OriginalEdge: edgeID}
	n.pseudoNodes[id] = struct{}{}
	first, second := splitPoints(replaced.Points, point)
	n.addPseudoEdge(s, id, orig, t-sT, first)
	n.addPseudoEdge(id, e, orig, eT-t, second)

	return nil
}

// neighborSplits returns the splits immediately before and after t on orig.
func (n *Network) neighborSplits(orig *Edge, t float64) (s NodeID, sT float64, e NodeID, eT float64) {
	type split struct {
		id    NodeID
		t     float64
		fresh bool
	}
	chain := []split{{id: orig.Start, t: 0}, {id: orig.End, t: 1}}
	for _, pid := range n.sortedPseudoNodes() {
		if pn := n.nodes[pid]; pn.OriginalEdge == orig.ID {
			chain = append(chain, split{id: pid, t: pn.T})
		}
	}
	// The new split goes last so that ties keep it after existing splits.
	chain = append(chain, split{t: t, fresh: true})
	sort.SliceStable(chain, func(i, j int) bool { return chain[i].t < chain[j].t })

	i := slices.IndexFunc(chain, func(sp split) bool { return sp.fresh })
	if i <= 0 || i >= len(chain)-1 {
		panic(fmt.Errorf("%w: split %v not interior on edge %d", ErrInvariant, t, orig.ID))
	}

	return chain[i-1].id, chain[i-1].t, chain[i+1].id, chain[i+1].t
}

// pseudoEdgeBetween finds the pseudo edge joining a and b that was derived
// from orig.
func (n *Network) pseudoEdgeBetween(a, b NodeID, orig EdgeID) EdgeID {
	for _, id := range n.mustNode(a).Edges {
		if !n.IsPseudoEdge(id) {
			continue
		}
		if n.edges[id].OtherEnd(a) == b && n.OriginalEdge(id) == orig {
			return id
		}
	}
	panic(fmt.Errorf("%w: no pseudo edge %d-%d on edge %d", ErrInvariant, a, b, orig))
}

// hide removes e from traversal and journals its adjacency positions.
func (n *Network) hide(e *Edge) {
	sp, ep := n.unlink(e)
	e.Hidden = true
	n.hiddenEdges[e.ID] = struct{}{}
	n.scope.journal = append(n.scope.journal, hiddenEntry{edge: e.ID, startPos: sp, endPos: ep})
}

func (n *Network) addPseudoEdge(from, to NodeID, orig *Edge, frac float64, points []r3.Vec) {
	id := n.nextEdgeID()
	e := &Edge{
		ID:     id,
		Start:  from,
		End:    to,
		Length: orig.Length * frac,
		Points: points,
		Name:   orig.Name,
	}
	if orig.Costs != nil {
		e.Costs = make(map[string]float64, len(orig.Costs))
		for k, v := range orig.Costs {
			e.Costs[k] = v * frac
		}
	}
	n.edges[id] = e
	n.pseudoEdges[id] = struct{}{}
	n.link(e)
}

// ClearPseudoNodes deletes every pseudo edge and pseudo node and restores
// every hidden edge into its endpoints' adjacency lists at its original
// position. Calling it with nothing spliced is a no-op.
// Complexity: O(P log P + H·deg)
func (n *Network) ClearPseudoNodes() {
	n.mu.Lock()
	defer n.mu.Unlock()

	// 1) Unlink and delete pseudo edges.
	for _, id := range slices.Sorted(maps.Keys(n.pseudoEdges)) {
		n.unlink(n.edges[id])
		delete(n.edges, id)
	}

	// 2) Delete pseudo nodes.
	for id := range n.pseudoNodes {
		delete(n.nodes, id)
	}

	// 3) Replay the hide journal backwards.
	for i := len(n.scope.journal) - 1; i >= 0; i-- {
		h := n.scope.journal[i]
		e := n.mustEdge(h.edge)
		e.Hidden = false
		end := n.mustNode(e.End)
		end.Edges = slices.Insert(end.Edges, h.endPos, e.ID)
		start := n.mustNode(e.Start)
		start.Edges = slices.Insert(start.Edges, h.startPos, e.ID)
	}

	// 4) Reset bookkeeping and rewind counters.
	clear(n.pseudoEdges)
	clear(n.pseudoNodes)
	clear(n.hiddenEdges)
	if n.scope.open {
		n.lastNodeID, n.lastEdgeID = n.scope.lastNodeID, n.scope.lastEdgeID
	}
	n.scope = pseudoScope{}
}

// OriginalEdge maps a possibly pseudo edge back to the original edge it was
// split from. Panics if a pseudo edge has no pseudo endpoint.
func (n *Network) OriginalEdge(id EdgeID) EdgeID {
	if !n.IsPseudoEdge(id) {
		return id
	}
	e := n.mustEdge(id)
	if n.IsPseudoNode(e.Start) {
		return n.nodes[e.Start].OriginalEdge
	}
	if n.IsPseudoNode(e.End) {
		return n.nodes[e.End].OriginalEdge
	}
	panic(fmt.Errorf("%w: pseudo edge %d has no pseudo endpoint", ErrInvariant, id))
}

// IsPseudoEdge reports whether id is a transient pseudo edge.
func (n *Network) IsPseudoEdge(id EdgeID) bool {
	_, ok := n.pseudoEdges[id]

	return ok
}

// IsPseudoNode reports whether id is a transient pseudo node.
func (n *Network) IsPseudoNode(id NodeID) bool {
	_, ok := n.pseudoNodes[id]

	return ok
}

// IsHidden reports whether id is currently replaced by pseudo splits.
func (n *Network) IsHidden(id EdgeID) bool {
	_, ok := n.hiddenEdges[id]

	return ok
}

func (n *Network) sortedPseudoNodes() []NodeID {
	return slices.Sorted(maps.Keys(n.pseudoNodes))
}
