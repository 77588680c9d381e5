// SPDX-License-Identifier: MIT
// Package: una/builder
//
// impl_grid.go - implementation of Grid(rows, cols).
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooFewNodes).
//   • Junction (r,c) sits at origin + (c·spacing, r·spacing, 0) and is
//     created in row-major order, so its node ID is r·cols+c on an empty
//     network.
//   • For each (r,c) the street to the right is emitted before the street
//     below; edge IDs follow that order.
//
// Complexity: O(rows·cols) time, O(rows·cols) extra space for the points.

package builder

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that lays out a rows×cols street lattice.
func Grid(rows, cols int) Constructor {
	return func(n *network.Network, cfg builderConfig) error {
		// 1) Validate before touching the network.
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewNodes)
		}
		if err := validateRand(methodGrid, cfg); err != nil {
			return err
		}

		// 2) Junctions in row-major order.
		at := func(r, c int) r3.Vec {
			return r3.Add(cfg.origin, r3.Vec{X: float64(c) * cfg.spacing, Y: float64(r) * cfg.spacing})
		}
		pts := make([]r3.Vec, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				pts = append(pts, at(r, c))
			}
		}
		if err := junctions(n, cfg, methodGrid, pts); err != nil {
			return err
		}

		// 3) Right then bottom neighbor of every cell.
		idx := 0
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					if err := street(n, cfg, methodGrid, idx, at(r, c), at(r, c+1)); err != nil {
						return err
					}
					idx++
				}
				if r+1 < rows {
					if err := street(n, cfg, methodGrid, idx, at(r, c), at(r+1, c)); err != nil {
						return err
					}
					idx++
				}
			}
		}

		return nil
	}
}
