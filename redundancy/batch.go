package redundancy

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/una/network"
)

// key is an unordered O-D pair; the index is symmetric in its ends.
type key struct{ lo, hi int64 }

func keyOf(a, b int64) key {
	if a > b {
		a, b = b, a
	}

	return key{a, b}
}

type outcome struct {
	res *Result
	ok  bool
}

// Batch computes Summary statistics for every origin over every destination
// other than itself. Each unordered pair is queried once.
//
// With more than one worker, pairs are spread over goroutines that each
// splice into their own net.Clone(). Progress ticks once per distinct pair.
// Cancelling ctx stops the run between pairs and returns ctx.Err().
func Batch(ctx context.Context, net *network.Network, locs *network.Locations, origins, dests []int64, opts ...Option) (map[int64]Summary, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if net == nil || locs == nil {
		return nil, ErrNilNetwork
	}
	if len(origins) == 0 || len(dests) == 0 || (len(origins) == 1 && slices.Equal(origins, dests)) {
		cfg.Warn(WarnNoPairs)
	}

	// 1) Distinct pairs in first-seen order.
	var pairs []key
	seen := make(map[key]struct{})
	for _, o := range origins {
		for _, d := range dests {
			if o == d {
				continue
			}
			k := keyOf(o, d)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			pairs = append(pairs, k)
		}
	}

	// 2) Query them.
	results, err := solve(ctx, net, locs, pairs, &cfg)
	if err != nil {
		return nil, err
	}
	memo := make(map[key]outcome, len(pairs))
	for i, k := range pairs {
		memo[k] = results[i]
	}

	// 3) Summarize per origin.
	out := make(map[int64]Summary, len(origins))
	for _, o := range origins {
		var values []float64
		segs := make(map[network.EdgeID]struct{})
		for _, d := range dests {
			if o == d {
				continue
			}
			r := memo[keyOf(o, d)]
			if !r.ok {
				continue
			}
			values = append(values, r.res.Index)
			for _, eid := range r.res.UniqueSegments {
				segs[eid] = struct{}{}
			}
		}
		out[o] = summarize(o, values, segs)
	}

	return out, nil
}

func summarize(origin int64, values []float64, segs map[network.EdgeID]struct{}) Summary {
	s := Summary{Origin: origin, N: len(values), UniqueSegments: make([]network.EdgeID, 0, len(segs))}
	for eid := range segs {
		s.UniqueSegments = append(s.UniqueSegments, eid)
	}
	slices.Sort(s.UniqueSegments)
	if len(values) == 0 {
		return s
	}
	s.Mean, s.StdDev = stat.PopMeanStdDev(values, nil)
	s.Min, s.Max = floats.Min(values), floats.Max(values)

	return s
}

// solve runs every pair, sequentially on net or on per-worker clones.
func solve(ctx context.Context, net *network.Network, locs *network.Locations, pairs []key, cfg *Options) ([]outcome, error) {
	results := make([]outcome, len(pairs))
	var (
		mu   sync.Mutex
		done int
	)
	step := func() {
		if cfg.Progress == nil {
			return
		}
		mu.Lock()
		done++
		cfg.Progress(done, len(pairs))
		mu.Unlock()
	}
	do := func(n *network.Network, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, ok, err := index(n, locs, pairs[i].lo, pairs[i].hi, cfg)
		if err != nil {
			return err
		}
		results[i] = outcome{res: res, ok: ok}
		step()

		return nil
	}

	workers := min(max(cfg.Workers, 1), len(pairs))
	if workers <= 1 {
		for i := range pairs {
			if err := do(net, i); err != nil {
				return nil, err
			}
		}

		return results, nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int)
	eg.Go(func() error {
		defer close(jobs)
		for i := range pairs {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		local := net.Clone()
		eg.Go(func() error {
			for i := range jobs {
				if err := do(local, i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// CommonOrigin reports whether every pair shares one location ID, i.e. the
// batch describes a single origin. An empty list has no common ID.
func CommonOrigin(pairs [][2]int64) bool {
	switch len(pairs) {
	case 0:
		return false
	case 1:
		return true
	}
	a, b := pairs[0], pairs[1]
	var common []int64
	for _, x := range []int64{a[0], a[1]} {
		if (x == b[0] || x == b[1]) && !slices.Contains(common, x) {
			common = append(common, x)
		}
	}
	if len(common) != 1 {
		return false
	}
	for _, p := range pairs[2:] {
		if p[0] != common[0] && p[1] != common[0] {
			return false
		}
	}

	return true
}
