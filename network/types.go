// Package network defines the Network, Node and Edge types of a spatial
// street network, together with the sentinel errors and options used to
// build one.
//
// This file declares NodeID, EdgeID, Node, Edge, Metrics, Network, the
// Option/NodeOption/EdgeOption types and the New constructor.
//
// Errors:
//
//	ErrNodeNotFound     - requested node does not exist.
//	ErrEdgeNotFound     - requested edge does not exist.
//	ErrDuplicateEdge    - an edge with the requested ID already exists.
//	ErrDuplicateNode    - a node with the requested ID already exists.
//	ErrNegativeLength   - edge length below zero or not finite.
//	ErrBadFraction      - split fraction outside [0,1].
//	ErrPseudoEdge       - operation requires an original (non-pseudo) edge.
//	ErrPseudoScopeOpen  - pseudo nodes already spliced into this network.
//	ErrInvariant        - carried by panics on internal-consistency violations.
package network

import (
	"errors"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors for network operations.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("network: edge not found")

	// ErrDuplicateEdge indicates an explicit edge ID is already taken.
	ErrDuplicateEdge = errors.New("network: duplicate edge id")

	// ErrDuplicateNode indicates an explicit node ID is already taken.
	ErrDuplicateNode = errors.New("network: duplicate node id")

	// ErrNegativeLength indicates a negative, NaN or infinite edge length.
	ErrNegativeLength = errors.New("network: negative edge length")

	// ErrBadFraction indicates a split fraction outside the closed interval [0,1].
	ErrBadFraction = errors.New("network: split fraction out of range")

	// ErrPseudoEdge indicates a pseudo edge was passed where an original edge is required.
	ErrPseudoEdge = errors.New("network: original edge required")

	// ErrPseudoScopeOpen indicates that pseudo nodes are currently spliced in.
	// Structural mutation and a second query scope are refused until
	// ClearPseudoNodes runs.
	ErrPseudoScopeOpen = errors.New("network: pseudo node scope already open")

	// ErrInvariant is wrapped by panics raised on internal-consistency violations.
	ErrInvariant = errors.New("network: invariant violated")
)

// DefaultTolerance is the coordinate snapping tolerance used by New.
const DefaultTolerance = 0.001

// AutoLength may be passed as the length of AddConnection to use the
// polyline length of the edge geometry.
const AutoLength = -1.0

// NodeID identifies a node within its Network.
type NodeID int64

// EdgeID identifies an edge within its Network.
type EdgeID int64

// Node is a junction of the network.
//
// Edges lists incident edge IDs in insertion order. A self-loop appears twice.
// T and OriginalEdge are meaningful only for pseudo nodes (see IsPseudoNode).
type Node struct {
	// ID is the unique identifier for this Node.
	ID NodeID

	// Point is the spatial location; HasPoint reports whether it was set.
	Point    r3.Vec
	HasPoint bool

	// Weight is a non-negative mass (population, floor area, ...). Default 1.0.
	Weight float64

	// Edges is the ordered adjacency list.
	Edges []EdgeID

	// T is the split fraction along OriginalEdge.
	T float64

	// OriginalEdge is the edge this pseudo node was spliced into.
	OriginalEdge EdgeID

	// Metrics holds fields written by the analysis engines.
	Metrics Metrics
}

// Edge is a street segment between two nodes.
type Edge struct {
	// ID uniquely identifies this edge in the Network.
	ID EdgeID

	// Start and End are the endpoint node IDs.
	Start NodeID
	End   NodeID

	// Length is the traversal cost used by every search.
	Length float64

	// Points is the polyline geometry oriented from Start to End.
	Points []r3.Vec

	// Name is an optional label carried into exports.
	Name string

	// Hidden is true while the edge is replaced by pseudo splits.
	Hidden bool

	// Costs are named contributions summed along shortest paths.
	Costs map[string]float64
}

// OtherEnd returns the endpoint of e opposite to id.
func (e *Edge) OtherEnd(id NodeID) NodeID {
	if e.Start == id {
		return e.End
	}

	return e.Start
}

// Output field names written back for every processed node.
const (
	FieldReach            = "reach"
	FieldNormReach        = "norm_reach"
	FieldGravity          = "gravity"
	FieldNormGravity      = "norm_gravity"
	FieldBetweenness      = "betweenness"
	FieldNormBetweenness  = "norm_betweenness"
	FieldCloseness        = "closeness"
	FieldNormCloseness    = "norm_closeness"
	FieldStraightness     = "straightness"
	FieldNormStraightness = "norm_straightness"
)

// Metrics is the fixed record of analysis results on a Node.
//
// Reach is the reported reach (the weighted reach). WeightedReach and
// ReachCount are kept for every processed origin whether or not reach was
// requested, since normalization of the other metrics needs them.
type Metrics struct {
	Reach            float64
	WeightedReach    float64
	ReachCount       float64
	NormReach        float64
	Gravity          float64
	NormGravity      float64
	Betweenness      float64
	NormBetweenness  float64
	Closeness        float64
	NormCloseness    float64
	Straightness     float64
	NormStraightness float64

	// Accumulations maps accumulator names to totals along shortest paths.
	Accumulations map[string]float64
}

// Field returns the metric stored under one of the Field* names, or an
// accumulator total. ok is false for unknown names.
func (m *Metrics) Field(name string) (float64, bool) {
	switch name {
	case FieldReach:
		return m.Reach, true
	case FieldNormReach:
		return m.NormReach, true
	case FieldGravity:
		return m.Gravity, true
	case FieldNormGravity:
		return m.NormGravity, true
	case FieldBetweenness:
		return m.Betweenness, true
	case FieldNormBetweenness:
		return m.NormBetweenness, true
	case FieldCloseness:
		return m.Closeness, true
	case FieldNormCloseness:
		return m.NormCloseness, true
	case FieldStraightness:
		return m.Straightness, true
	case FieldNormStraightness:
		return m.NormStraightness, true
	}
	v, ok := m.Accumulations[name]

	return v, ok
}

// Option configures a Network before creation.
type Option func(n *Network)

// WithTolerance sets the coordinate snapping tolerance. Panics if tol <= 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 1) {
		panic("network: WithTolerance(tol<=0)")
	}

	return func(n *Network) { n.tolerance = tol }
}

// NodeOption configures a Node when it is first created.
type NodeOption func(*Node)

// WithWeight sets the node weight. Panics if w < 0.
func WithWeight(w float64) NodeOption {
	if w < 0 || math.IsNaN(w) {
		panic("network: WithWeight(w<0)")
	}

	return func(nd *Node) { nd.Weight = w }
}

// WithoutPoint marks the node as unlocated. The coordinate still keys the
// snapping grid, but straight-line distances to the node are unknown; used
// for schematic networks whose coordinates are only identifiers.
func WithoutPoint() NodeOption {
	return func(nd *Node) { nd.HasPoint = false }
}

// EdgeOption configures an Edge when it is added.
type EdgeOption func(*edgeSpec)

type edgeSpec struct {
	id    EdgeID
	hasID bool
	name  string
	costs map[string]float64
}

// WithEdgeID requests an explicit edge ID instead of the next sequence value.
func WithEdgeID(id EdgeID) EdgeOption {
	return func(s *edgeSpec) { s.id, s.hasID = id, true }
}

// WithName sets the edge label.
func WithName(name string) EdgeOption {
	return func(s *edgeSpec) { s.name = name }
}

// WithCosts sets the per-edge accumulator contributions. The map is copied.
func WithCosts(costs map[string]float64) EdgeOption {
	return func(s *edgeSpec) {
		s.costs = make(map[string]float64, len(costs))
		for k, v := range costs {
			s.costs[k] = v
		}
	}
}

// Network is the in-memory street network.
//
// Structural mutation (AddNode, AddConnection, Remap) is single-writer and
// must not run concurrently with searches. Searches only read. Pseudo-node
// splicing mutates the network in place, so at most one query scope may be
// open at a time; use Clone for independent workers.
type Network struct {
	mu sync.Mutex // guards scope transitions

	tolerance float64

	nodes map[NodeID]*Node
	edges map[EdgeID]*Edge
	index map[cell]NodeID // snapped coordinate → node

	pseudoEdges map[EdgeID]struct{}
	pseudoNodes map[NodeID]struct{}
	hiddenEdges map[EdgeID]struct{}

	lastNodeID NodeID
	lastEdgeID EdgeID

	scope pseudoScope
}

// New creates an empty Network. The default tolerance is DefaultTolerance.
// Complexity: O(1)
func New(opts ...Option) *Network {
	n := &Network{
		tolerance:   DefaultTolerance,
		nodes:       make(map[NodeID]*Node),
		edges:       make(map[EdgeID]*Edge),
		index:       make(map[cell]NodeID),
		pseudoEdges: make(map[EdgeID]struct{}),
		pseudoNodes: make(map[NodeID]struct{}),
		hiddenEdges: make(map[EdgeID]struct{}),
		lastNodeID:  -1,
		lastEdgeID:  -1,
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Tolerance returns the coordinate snapping tolerance.
func (n *Network) Tolerance() float64 { return n.tolerance }
