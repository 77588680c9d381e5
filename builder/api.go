// SPDX-License-Identifier: MIT
// Package: una/builder
//
// api.go - public entry point of the builder package.
//
// Design contract:
//   - One orchestrator: BuildNetwork(nopts, bopts, cons...). Creates the
//     network, resolves cfg, runs cons in order.
//   - Factories live in impl_*.go, one topology per file.
//   - Functional options (BuilderOption) resolve into an immutable
//     builderConfig; option constructors panic on meaningless input,
//     constructors return sentinel errors.
//   - Determinism: same inputs, options, seed and constructor order give
//     identical networks, including node and edge IDs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/una/network"
)

// Constructor applies a deterministic mutation to a network using the
// resolved builderConfig. Constructors validate parameters before adding
// anything and never panic.
type Constructor func(n *network.Network, cfg builderConfig) error

// BuildNetwork creates a network with options nopts, resolves the builder
// configuration from bopts and applies every constructor in order.
// Constructor errors are wrapped as "BuildNetwork: %w".
//
// Constructors share the snapping grid, so two topologies laid out over
// the same coordinates join at their common junctions.
func BuildNetwork(nopts []network.Option, bopts []BuilderOption, cons ...Constructor) (*network.Network, error) {
	n := network.New(nopts...)
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildNetwork: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(n, cfg); err != nil {
			return nil, fmt.Errorf("BuildNetwork: %w", err)
		}
	}

	return n, nil
}

// Topology factories, implemented in impl_*.go:
//
//	Grid(rows, cols)     orthogonal street lattice, row-major junctions.
//	Path(n)              straight street of n junctions along +X.
//	Cycle(n)             ring road with n junctions, sides of one spacing.
//	Star(n)              hub with n-1 radial streets.
//	RandomSparse(n, p)   random junctions in a square, pairs joined with probability p.
