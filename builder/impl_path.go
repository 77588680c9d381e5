// SPDX-License-Identifier: MIT
// Package: una/builder
//
// impl_path.go - implementation of Path(n).
//
// Contract:
//   • n ≥ 2 (else ErrTooFewNodes).
//   • Junction i sits at origin + (i·spacing, 0, 0).
//   • Streets (i-1)→i are emitted for i=1..n-1 in increasing order.
//
// Complexity: O(n).

package builder

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
)

const (
	methodPath   = "Path"
	minPathNodes = 2
)

// Path returns a Constructor that lays out a straight street of n junctions.
func Path(n int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMin(methodPath, n, minPathNodes); err != nil {
			return err
		}
		if err := validateRand(methodPath, cfg); err != nil {
			return err
		}

		pts := make([]r3.Vec, n)
		for i := range pts {
			pts[i] = r3.Add(cfg.origin, r3.Vec{X: float64(i) * cfg.spacing})
		}
		if err := junctions(net, cfg, methodPath, pts); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := street(net, cfg, methodPath, i-1, pts[i-1], pts[i]); err != nil {
				return err
			}
		}

		return nil
	}
}
