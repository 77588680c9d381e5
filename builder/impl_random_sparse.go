// SPDX-License-Identifier: MIT
// Package: una/builder
//
// impl_random_sparse.go - implementation of RandomSparse(n, p).
//
// Model:
//   • n junctions drawn uniformly in the square [0, side)² shifted by
//     origin, side = spacing·√n, so the density is one junction per
//     spacing².
//   • Each unordered pair {i,j}, i<j, becomes a straight street with
//     independent probability p.
//
// Contract:
//   • n ≥ 1 (else ErrTooFewNodes); 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   • An RNG is always required because the layout is random
//     (else ErrNeedRandSource).
//
// Complexity: O(n²) Bernoulli trials.
//
// Determinism: positions are drawn first (x then y per junction), then
// junction weights, then one trial per pair in (i asc, j asc) order, each
// accepted street followed by its own detour and cost draws.

package builder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
)

const (
	methodRandomSparse = "RandomSparse"
	minRandomNodes     = 1
)

// RandomSparse returns a Constructor that samples a random planar-ish
// street network over n junctions with edge probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		// 1) Validate.
		if err := validateMin(methodRandomSparse, n, minRandomNodes); err != nil {
			return err
		}
		if err := validateProbability(methodRandomSparse, p); err != nil {
			return err
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		// 2) Positions.
		side := cfg.spacing * math.Sqrt(float64(n))
		pts := make([]r3.Vec, n)
		for i := range pts {
			x := cfg.rng.Float64() * side
			y := cfg.rng.Float64() * side
			pts[i] = r3.Add(cfg.origin, r3.Vec{X: x, Y: y})
		}
		if err := junctions(net, cfg, methodRandomSparse, pts); err != nil {
			return err
		}

		// 3) Bernoulli trial per unordered pair.
		idx := 0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if cfg.rng.Float64() >= p {
					continue
				}
				if err := street(net, cfg, methodRandomSparse, idx, pts[i], pts[j]); err != nil {
					return err
				}
				idx++
			}
		}

		return nil
	}
}
