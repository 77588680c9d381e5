// SPDX-License-Identifier: MIT
// Package: una/builder
//
// options.go - functional options for the builder package.
//
// Contract:
//   • Options are functional (type BuilderOption func(*builderConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs;
//     constructors themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// BuilderOption customizes a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic builders. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithSpacing sets the distance between neighboring junctions.
// Panics if s <= 0.
func WithSpacing(s float64) BuilderOption {
	if !(s > 0) || math.IsInf(s, 1) {
		panic("builder: WithSpacing(s<=0)")
	}

	return func(c *builderConfig) { c.spacing = s }
}

// WithOrigin places junction 0 of every topology at p.
func WithOrigin(p r3.Vec) BuilderOption {
	return func(c *builderConfig) { c.origin = p }
}

// WithDetour makes every edge up to (1+f) times longer than the straight
// line between its ends, drawn uniformly. Needs an RNG when f > 0.
// Panics if f < 0.
func WithDetour(f float64) BuilderOption {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 1) {
		panic("builder: WithDetour(f<0)")
	}

	return func(c *builderConfig) { c.detour = f }
}

// WithNodeWeightFn sets the junction weight generator. Panics on nil.
func WithNodeWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithNodeWeightFn(nil)")
	}

	return func(c *builderConfig) { c.nodeWeightFn = fn }
}

// WithNameScheme names every edge by its construction index. Panics on nil.
func WithNameScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithNameScheme(nil)")
	}

	return func(c *builderConfig) { c.nameFn = fn }
}

// WithCost adds an accumulator contribution drawn per edge from fn.
// Panics on an empty name or nil fn.
func WithCost(name string, fn WeightFn) BuilderOption {
	if name == "" || fn == nil {
		panic("builder: WithCost(empty name or nil fn)")
	}

	return func(c *builderConfig) {
		next := make(map[string]WeightFn, len(c.costFns)+1)
		for k, v := range c.costFns {
			next[k] = v
		}
		next[name] = fn
		c.costFns = next
	}
}
