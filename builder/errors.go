// SPDX-License-Identifier: MIT
// Package: una/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Implementations attach context with %w.
//   • Constructors never panic; validation panics are confined to option
//     constructors (WithX...).

package builder

import "errors"

// ErrTooFewNodes indicates that a size parameter (n, rows, cols) is below
// the minimum of the requested constructor.
var ErrTooFewNodes = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic choice without an RNG, either
// RandomSparse with 0 < p < 1 or a positive detour.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a failure not covered by the sentinels
// above, such as a nil constructor or a network error.
var ErrConstructFailed = errors.New("builder: construction failed")
