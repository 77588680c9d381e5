package paths

import (
	"github.com/katalvlaran/una/network"
)

// Batch enumerates the paths from one origin to each destination in order
// and collects a Table. Destinations equal to the origin are skipped, and
// pairs with no result leave no row. Progress ticks once per destination.
//
// Errors: those of Enumerate, or Ctx.Err() when cancelled between pairs.
func Batch(net *network.Network, locs *network.Locations, originID int64, dests []int64, opts ...Option) (*Table, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if net == nil || locs == nil {
		return nil, ErrNilNetwork
	}

	// 1) Filter the pairs.
	targets := make([]int64, 0, len(dests))
	for _, d := range dests {
		if d != originID {
			targets = append(targets, d)
		}
	}
	if len(targets) == 0 {
		cfg.Warn(WarnNoPairs)
	}

	// 2) Enumerate pair by pair on the shared network.
	tbl := &Table{SegmentCounts: make(map[network.EdgeID]int)}
	for i, d := range targets {
		if err := cfg.Ctx.Err(); err != nil {
			return nil, err
		}
		res, ok, err := enumerate(net, locs, originID, d, &cfg)
		if err != nil {
			return nil, err
		}
		if ok {
			tbl.add(res)
		}
		if cfg.Progress != nil {
			cfg.Progress(i+1, len(targets))
		}
	}

	return tbl, nil
}

func (t *Table) add(res *Result) {
	t.Rows = append(t.Rows, Row{
		Origin:        res.Origin,
		Destination:   res.Destination,
		NumPaths:      res.Count(),
		Redundancy:    res.Redundancy,
		Wayfinding:    res.Wayfinding,
		HasWayfinding: res.HasWayfinding,
	})
	for eid, c := range res.SegmentCounts {
		t.SegmentCounts[eid] += c
	}
	t.Results = append(t.Results, res)
}
