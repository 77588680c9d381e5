// SPDX-License-Identifier: MIT
// Package: una/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng          = nil            (no randomness unless seeded)
//   • spacing      = 100            (distance between neighboring junctions)
//   • origin       = (0,0,0)        (position of junction 0)
//   • detour       = 0              (edge length equals straight-line distance)
//   • nodeWeightFn = DefaultWeightFn
//   • nameFn       = nil            (unnamed streets)

package builder

import (
	"maps"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// builderConfig aggregates all knobs used by constructors. It is passed by
// value; costFns is never mutated after resolution.
type builderConfig struct {
	// RNG for stochastic choices; nil means no randomness.
	rng *rand.Rand

	// Layout.
	spacing float64
	origin  r3.Vec

	// Edge length = straight distance · (1 + detour·U[0,1)).
	detour float64

	// Junction weights and optional street names.
	nodeWeightFn WeightFn
	nameFn       IDFn

	// Accumulator contributions per edge, keyed by accumulator name.
	costFns map[string]WeightFn
}

// Deterministic defaults.
const (
	defaultSpacing = 100.0
	defaultDetour  = 0.0
)

// newBuilderConfig constructs a config with deterministic defaults and
// applies all options in order (last wins).
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		spacing:      defaultSpacing,
		detour:       defaultDetour,
		nodeWeightFn: DefaultWeightFn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// costNames returns the accumulator names in ascending order so that RNG
// draws happen in a stable sequence.
func (c builderConfig) costNames() []string {
	return slices.Sorted(maps.Keys(c.costFns))
}
