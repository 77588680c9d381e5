package network

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// splitPoints partitions a polyline at p, returning the part from the first
// point up to p and the part from p to the last point. p is inserted after
// the vertex i whose flanking segment (points[i], points[i+1]) minimizes
//
//	dot(u, v) / (|u|² · |v|²),  u = points[i]-p, v = points[i+1]-p
//
// which is exact only when the polyline segments are straight.
// If p coincides with a polyline vertex the split happens at that vertex.
func splitPoints(points []r3.Vec, p r3.Vec) (first, second []r3.Vec) {
	if len(points) < 2 {
		return []r3.Vec{p}, []r3.Vec{p}
	}
	if i := slices.Index(points, p); i >= 0 {
		return slices.Clone(points[:i+1]), slices.Clone(points[i:])
	}

	best, bestCost := 0, 0.0
	for i := 0; i < len(points)-1; i++ {
		u := r3.Sub(points[i], p)
		v := r3.Sub(points[i+1], p)
		c := r3.Dot(u, v) / (r3.Norm2(u) * r3.Norm2(v))
		if i == 0 || c < bestCost {
			best, bestCost = i, c
		}
	}

	first = make([]r3.Vec, 0, best+2)
	first = append(first, points[:best+1]...)
	first = append(first, p)
	second = make([]r3.Vec, 0, len(points)-best)
	second = append(second, p)
	second = append(second, points[best+1:]...)

	return first, second
}
