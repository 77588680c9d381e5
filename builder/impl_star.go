// SPDX-License-Identifier: MIT
// Package: una/builder
//
// impl_star.go - implementation of Star(n).
//
// Contract:
//   • n ≥ 2 (else ErrTooFewNodes): one hub plus n-1 leaves.
//   • The hub sits at origin and is created first; leaves lie on a circle
//     of radius spacing, leaf 0 on the +X axis.
//   • Streets hub→leaf in leaf order.
//
// Complexity: O(n).

package builder

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
)

const (
	methodStar   = "Star"
	minStarNodes = 2
)

// Star returns a Constructor that lays out n-1 radial streets from a hub.
func Star(n int) Constructor {
	return func(net *network.Network, cfg builderConfig) error {
		if err := validateMin(methodStar, n, minStarNodes); err != nil {
			return err
		}
		if err := validateRand(methodStar, cfg); err != nil {
			return err
		}

		leaves := ring(cfg.origin, cfg.spacing, n-1)
		if err := junctions(net, cfg, methodStar, append([]r3.Vec{cfg.origin}, leaves...)); err != nil {
			return err
		}
		for i, leaf := range leaves {
			if err := street(net, cfg, methodStar, i, cfg.origin, leaf); err != nil {
				return err
			}
		}

		return nil
	}
}
