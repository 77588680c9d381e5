// SPDX-License-Identifier: MIT
// Package: una/builder
//
// validators.go - parameter checks shared by the constructors.

package builder

import "fmt"

// validateMin ensures got >= min for the named constructor.
func validateMin(method string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: n=%d < min=%d: %w", method, got, min, ErrTooFewNodes)
	}

	return nil
}

// validateProbability enforces p ∈ [0,1].
func validateProbability(method string, p float64) error {
	if !(p >= 0 && p <= 1) {
		return fmt.Errorf("%s: p=%.6f not in [0,1]: %w", method, p, ErrInvalidProbability)
	}

	return nil
}

// validateRand requires an RNG whenever the detour draws random lengths.
func validateRand(method string, cfg builderConfig) error {
	if cfg.detour > 0 && cfg.rng == nil {
		return fmt.Errorf("%s: detour %.3f: %w", method, cfg.detour, ErrNeedRandSource)
	}

	return nil
}
