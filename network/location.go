// File: location.go
// Role: Weighted points snapped onto edges (buildings, stops, addresses).
// Determinism:
//   - IDs, Origins and Destinations are returned sorted ascending.

package network

import (
	"fmt"
	"maps"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Location is a point that has been snapped onto an edge at fraction T,
// measured from the edge Start. It becomes a pseudo node for the duration
// of an origin-destination query.
type Location struct {
	ID     int64
	EdgeID EdgeID
	T      float64

	Point    r3.Vec
	HasPoint bool

	Weight float64

	Origin      bool
	Destination bool
}

// Locations indexes a set of Location values by ID and by edge.
type Locations struct {
	byID   map[int64]Location
	byEdge map[EdgeID][]int64
}

// NewLocations builds an index over locs.
// Errors: duplicate location IDs.
func NewLocations(locs ...Location) (*Locations, error) {
	l := &Locations{
		byID:   make(map[int64]Location, len(locs)),
		byEdge: make(map[EdgeID][]int64),
	}
	for _, loc := range locs {
		if err := l.Add(loc); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// Add inserts one location.
func (l *Locations) Add(loc Location) error {
	if _, dup := l.byID[loc.ID]; dup {
		return fmt.Errorf("network: duplicate location id %d", loc.ID)
	}
	if !(loc.T >= 0 && loc.T <= 1) {
		return fmt.Errorf("%w: location %d t=%v", ErrBadFraction, loc.ID, loc.T)
	}
	l.byID[loc.ID] = loc
	l.byEdge[loc.EdgeID] = append(l.byEdge[loc.EdgeID], loc.ID)

	return nil
}

// Get returns the location with the given ID.
func (l *Locations) Get(id int64) (Location, bool) {
	loc, ok := l.byID[id]

	return loc, ok
}

// Len returns the number of locations.
func (l *Locations) Len() int { return len(l.byID) }

// IDs returns every location ID sorted ascending.
func (l *Locations) IDs() []int64 {
	return slices.Sorted(maps.Keys(l.byID))
}

// Origins returns the IDs of locations flagged as origins.
func (l *Locations) Origins() []int64 {
	return l.filter(func(loc Location) bool { return loc.Origin })
}

// Destinations returns the IDs of locations flagged as destinations.
func (l *Locations) Destinations() []int64 {
	return l.filter(func(loc Location) bool { return loc.Destination })
}

func (l *Locations) filter(keep func(Location) bool) []int64 {
	var out []int64
	for _, id := range l.IDs() {
		if keep(l.byID[id]) {
			out = append(out, id)
		}
	}

	return out
}

// Weighted reports whether any location carries a positive weight.
func (l *Locations) Weighted() bool {
	for _, loc := range l.byID {
		if loc.Weight > 0 {
			return true
		}
	}

	return false
}

// OnEdge returns the locations snapped onto an original edge.
func (l *Locations) OnEdge(id EdgeID) []Location {
	ids := l.byEdge[id]
	out := make([]Location, 0, len(ids))
	for _, lid := range ids {
		out = append(out, l.byID[lid])
	}

	return out
}

// EdgeWeight returns the summed weight of the locations lying on edge id.
// For a pseudo edge only locations strictly between the fractions of its
// endpoints on the original edge are counted.
func (l *Locations) EdgeWeight(n *Network, id EdgeID) float64 {
	orig := n.OriginalEdge(id)
	lo, hi := 0.0, 1.0
	if n.IsPseudoEdge(id) {
		e := n.mustEdge(id)
		lo, hi = n.fraction(e.Start, 0), n.fraction(e.End, 1)
		if lo > hi {
			lo, hi = hi, lo
		}
	}

	var sum float64
	for _, loc := range l.OnEdge(orig) {
		if !n.IsPseudoEdge(id) || (lo < loc.T && loc.T < hi) {
			sum += loc.Weight
		}
	}

	return sum
}

// fraction returns the split fraction of a pseudo node, or def for an
// original node.
func (n *Network) fraction(id NodeID, def float64) float64 {
	if n.IsPseudoNode(id) {
		return n.nodes[id].T
	}

	return def
}
