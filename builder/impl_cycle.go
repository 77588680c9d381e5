// SPDX-License-Identifier: MIT
// Package: una/builder
//
// impl_cycle.go - implementation of Cycle(n).
//
// Contract:
//   • n ≥ 3 (else ErrTooFewNodes).
//   • Junctions lie counter-clockwise on a circle centred at origin whose
//     chords have length spacing; junction 0 is on the +X axis.
//   • Streets i→(i+1) mod n, in increasing i.
//
// Complexity: O(n).

package builder

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
)

const (
	methodCycle   = "Cycle"
	minCycleNodes = 3
)

// Cycle returns a Constructor that lays out a ring road of n junctions.
func Cycle(n int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMin(methodCycle, n, minCycleNodes); err != nil {
			return err
		}
		if err := validateRand(methodCycle, cfg); err != nil {
			return err
		}

		radius := cfg.spacing / (2 * math.Sin(math.Pi/float64(n)))
		pts := ring(cfg.origin, radius, n)
		if err := junctions(net, cfg, methodCycle, pts); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := street(net, cfg, methodCycle, i, pts[i], pts[(i+1)%n]); err != nil {
				return err
			}
		}

		return nil
	}
}

// ring returns k points evenly spaced on a circle, starting on +X.
func ring(center r3.Vec, radius float64, k int) []r3.Vec {
	pts := make([]r3.Vec, k)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(k)
		pts[i] = r3.Add(center, r3.Vec{X: radius * math.Cos(a), Y: radius * math.Sin(a)})
	}

	return pts
}
