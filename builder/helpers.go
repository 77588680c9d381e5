// SPDX-License-Identifier: MIT
// Package: una/builder
//
// helpers.go - junction and street emission shared by every constructor.
//
// RNG draw order per constructor is: all junction weights in emission
// order, then for each street its detour followed by its costs in
// ascending accumulator name order.

package builder

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
)

// junctions adds one node per point with a weight drawn from cfg. Points
// that snap onto an existing node keep that node and its weight.
func junctions(n *network.Network, cfg builderConfig, method string, pts []r3.Vec) error {
	for _, p := range pts {
		w := cfg.nodeWeightFn(cfg.rng)
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%s: junction weight %v at %v: %w", method, w, p, ErrConstructFailed)
		}
		if _, err := n.AddNode(p, network.WithWeight(w)); err != nil {
			return fmt.Errorf("%s: AddNode(%v): %w", method, p, err)
		}
	}

	return nil
}

// street connects a and b with a straight edge. idx feeds the name scheme.
func street(n *network.Network, cfg builderConfig, method string, idx int, a, b r3.Vec) error {
	length := r3.Norm(r3.Sub(b, a))
	if cfg.detour > 0 {
		length *= 1 + cfg.detour*cfg.rng.Float64()
	}

	var opts []network.EdgeOption
	if cfg.nameFn != nil {
		opts = append(opts, network.WithName(cfg.nameFn(idx)))
	}
	if names := cfg.costNames(); len(names) > 0 {
		costs := make(map[string]float64, len(names))
		for _, name := range names {
			costs[name] = cfg.costFns[name](cfg.rng)
		}
		opts = append(opts, network.WithCosts(costs))
	}

	if _, err := n.AddConnection(a, b, nil, length, opts...); err != nil {
		return fmt.Errorf("%s: AddConnection(%v→%v): %w", method, a, b, err)
	}

	return nil
}
