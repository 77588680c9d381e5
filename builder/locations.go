// SPDX-License-Identifier: MIT
// Package: una/builder
//
// locations.go - one weighted origin/destination location per street.

package builder

import (
	"fmt"

	"github.com/katalvlaran/una/network"
)

const methodLocations = "Locations"

// Locations places one location on every visible edge of net, in
// ascending edge ID order, with ID equal to the edge ID. Each location is
// both an origin and a destination, its weight comes from the node weight
// generator, and it sits at the edge midpoint, or at a fraction drawn from
// U[0.1, 0.9) when an RNG is configured.
func Locations(net *network.Network, bopts ...BuilderOption) (*network.Locations, error) {
	if net == nil {
		return nil, fmt.Errorf("%s: nil network: %w", methodLocations, ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)

	locs, err := network.NewLocations()
	if err != nil {
		return nil, err
	}
	for _, eid := range net.EdgeIDs() {
		if net.IsHidden(eid) || net.IsPseudoEdge(eid) {
			continue
		}
		t := 0.5
		if cfg.rng != nil {
			t = 0.1 + 0.8*cfg.rng.Float64()
		}
		w := cfg.nodeWeightFn(cfg.rng)
		if w < 0 {
			return nil, fmt.Errorf("%s: weight %v on edge %d: %w", methodLocations, w, eid, ErrConstructFailed)
		}
		loc := network.Location{
			ID:          int64(eid),
			EdgeID:      eid,
			T:           t,
			Weight:      w,
			Origin:      true,
			Destination: true,
		}
		if err := locs.Add(loc); err != nil {
			return nil, fmt.Errorf("%s: %w", methodLocations, err)
		}
	}

	return locs, nil
}
