// SPDX-License-Identifier: MIT
// Package: una/builder
//
// weight_fn.go - value distributions for junction weights and edge costs.

package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultNodeWeight is the junction weight used when no WeightFn is set.
const DefaultNodeWeight float64 = 1

// WeightFn produces a non-negative value from an optional RNG. It must be
// deterministic for a given RNG state.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn always returns DefaultNodeWeight.
func DefaultWeightFn(_ *rand.Rand) float64 {
	return DefaultNodeWeight
}

// ConstantWeightFn returns a WeightFn that always yields value.
// Panics if value < 0.
func ConstantWeightFn(value float64) WeightFn {
	if value < 0 || math.IsNaN(value) {
		panic(fmt.Sprintf("ConstantWeightFn: value must be ≥ 0, got %g", value))
	}

	return func(_ *rand.Rand) float64 { return value }
}

// UniformWeightFn samples uniformly in [min, max). With a nil RNG it yields
// the midpoint. Panics if min < 0 or max < min.
func UniformWeightFn(min, max float64) WeightFn {
	if min < 0 || max < min {
		panic(fmt.Sprintf("UniformWeightFn: require 0 ≤ min ≤ max, got min=%g, max=%g", min, max))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil || max == min {
			return min + (max-min)/2
		}

		return min + rng.Float64()*(max-min)
	}
}

// NormalWeightFn samples N(mean, stddev) clipped at 0. With a nil RNG it
// yields max(mean, 0). Panics if stddev < 0.
func NormalWeightFn(mean, stddev float64) WeightFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalWeightFn: stddev must be ≥ 0, got %f", stddev))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return math.Max(mean, 0)
		}

		return math.Max(rng.NormFloat64()*stddev+mean, 0)
	}
}

// ExponentialWeightFn samples Exp(rate), mean 1/rate. With a nil RNG it
// yields the mean. Panics if rate <= 0.
func ExponentialWeightFn(rate float64) WeightFn {
	if !(rate > 0) {
		panic(fmt.Sprintf("ExponentialWeightFn: rate must be > 0, got %f", rate))
	}

	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return 1 / rate
		}

		return rng.ExpFloat64() / rate
	}
}

// WithConstantNodeWeight sets every junction weight to w.
func WithConstantNodeWeight(w float64) BuilderOption {
	return WithNodeWeightFn(ConstantWeightFn(w))
}

// WithUniformNodeWeight draws junction weights from U[min,max).
func WithUniformNodeWeight(min, max float64) BuilderOption {
	return WithNodeWeightFn(UniformWeightFn(min, max))
}
