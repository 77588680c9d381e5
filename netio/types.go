// Package netio defines the on-disk network document and the sentinel
// errors raised while decoding or building it.
//
// Document layout (YAML or JSON):
//
//	– tolerance: snapping tolerance, default network.DefaultTolerance.
//	– edges:     polyline geometry, optional id, name, length and costs.
//	– nodes:     optional per-junction weights, keyed by coordinate.
//	– locations: weighted points snapped onto edges at fraction t.
//
// Errors (sentinel):
//
//	– ErrBadPoint     if a coordinate does not have 2 or 3 finite components.
//	– ErrBadGeometry  if an edge has fewer than two points.
//	– ErrBadNumber    if a tolerance, length, weight or cost is not finite,
//	                  or a length or weight is negative.
//	– ErrUnknownField if a write-back names a field no node carries.
package netio

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Sentinel errors returned by the document loader and the exporters.
var (
	// ErrBadPoint indicates a coordinate with a component count other than 2 or 3.
	ErrBadPoint = errors.New("netio: point must have 2 or 3 coordinates")

	// ErrBadGeometry indicates an edge polyline with fewer than two points.
	ErrBadGeometry = errors.New("netio: edge needs at least two points")

	// ErrBadNumber indicates a tolerance, length, weight or cost that is
	// NaN, infinite or out of range.
	ErrBadNumber = errors.New("netio: number out of range")

	// ErrUnknownField indicates a write-back of a field that is not a metric
	// or accumulator.
	ErrUnknownField = errors.New("netio: unknown field")
)

// Point is a coordinate written as [x, y] or [x, y, z].
type Point []float64

// Vec converts p to a vector, with Z=0 for 2D input.
func (p Point) Vec() (r3.Vec, error) {
	switch len(p) {
	case 2, 3:
		for _, c := range p {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return r3.Vec{}, fmt.Errorf("%w: %v is not finite", ErrBadPoint, []float64(p))
			}
		}
		if len(p) == 2 {
			return r3.Vec{X: p[0], Y: p[1]}, nil
		}
		return r3.Vec{X: p[0], Y: p[1], Z: p[2]}, nil
	}

	return r3.Vec{}, fmt.Errorf("%w: %v", ErrBadPoint, []float64(p))
}

// pointOf renders v, dropping Z when it is zero.
func pointOf(v r3.Vec) Point {
	if v.Z == 0 {
		return Point{v.X, v.Y}
	}

	return Point{v.X, v.Y, v.Z}
}

// Document is the serialized form of a network and its locations.
type Document struct {
	Tolerance float64       `yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	Edges     []EdgeDoc     `yaml:"edges" json:"edges"`
	Nodes     []NodeDoc     `yaml:"nodes,omitempty" json:"nodes,omitempty"`
	Locations []LocationDoc `yaml:"locations,omitempty" json:"locations,omitempty"`
}

// EdgeDoc is one street. The first and last points are the endpoints.
type EdgeDoc struct {
	// ID defaults to the next sequence value.
	ID *int64 `yaml:"id,omitempty" json:"id,omitempty"`

	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Length defaults to the polyline length.
	Length *float64 `yaml:"length,omitempty" json:"length,omitempty"`

	Points []Point             `yaml:"points,flow" json:"points"`
	Costs  map[string]float64 `yaml:"costs,omitempty" json:"costs,omitempty"`
}

// NodeDoc sets attributes of the junction at Point. Junctions not listed
// keep weight 1.
type NodeDoc struct {
	Point  Point    `yaml:"point,flow" json:"point"`
	Weight *float64 `yaml:"weight,omitempty" json:"weight,omitempty"`

	// Located=false marks a schematic junction whose coordinate is only an
	// identifier; straight-line distances to it are unknown.
	Located *bool `yaml:"located,omitempty" json:"located,omitempty"`
}

// LocationDoc is a weighted point on an edge.
type LocationDoc struct {
	ID   int64   `yaml:"id" json:"id"`
	Edge int64   `yaml:"edge" json:"edge"`
	T    float64 `yaml:"t" json:"t"`

	// Point defaults to the polyline point at T.
	Point Point `yaml:"point,omitempty,flow" json:"point,omitempty"`

	// Weight defaults to 1.
	Weight *float64 `yaml:"weight,omitempty" json:"weight,omitempty"`

	Origin      bool `yaml:"origin,omitempty" json:"origin,omitempty"`
	Destination bool `yaml:"destination,omitempty" json:"destination,omitempty"`
}
