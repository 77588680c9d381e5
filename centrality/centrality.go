// Package centrality implements the multi-metric single-source engine.
//
// Every origin s gets one Dijkstra sweep. Pop-time totals give reach,
// gravity, closeness and straightness; the Brandes triple (sigma,
// predecessors, stack) collected during relaxation gives betweenness in a
// backward pass over the pop order. Normalization runs once all origins are
// done.
//
// Complexity (per origin):
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
package centrality

import (
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/una/metrics"
	"github.com/katalvlaran/una/network"
)

// tieTolerance decides when two path lengths count as equal.
const tieTolerance = 1e-6

func eqTol(a, b float64) bool { return math.Abs(a-b) <= tieTolerance }

func ltTol(a, b float64) bool { return b-a > tieTolerance }

// Compute runs the requested metrics for every origin and writes the
// results into the Metrics of the origin nodes. Betweenness, when
// requested, is written for every node of the network.
//
// Errors: ErrNilNetwork, ErrInvalidParameters, ErrNoLocations,
// ErrMissingAccumulator, or the context error when WithContext is done
// before every origin ran. Metrics are not written back on error.
func Compute(net *network.Network, opts ...Option) (*Result, error) {
	// 1) Build options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if net == nil {
		return nil, ErrNilNetwork
	}
	res := &Result{Accumulators: append([]string(nil), cfg.Accumulators...)}
	warn := func(msg string, args ...any) {
		res.Warnings = append(res.Warnings, msg)
		cfg.Warn(msg, args...)
	}

	// 2) Validate the origin set against the node set.
	origins := cfg.Origins
	if origins == nil {
		origins = net.NodeIDs()
	}
	n, o := net.NodeCount(), len(origins)
	if o > n {
		return nil, fmt.Errorf("%w: %d origins, %d nodes", ErrInvalidParameters, o, n)
	}
	if o == 0 {
		return res, nil
	}

	// 3) Snapshot and drop what cannot be computed.
	g, err := snapshot(net, cfg.Accumulators)
	if err != nil {
		return nil, err
	}
	if cfg.Euclidean && !g.located {
		return nil, ErrNoLocations
	}
	want := cfg.Metrics
	if want.Has(Straightness) && !g.located {
		want &^= Straightness
		warn(WarnNoStraightness)
	}
	res.Computed = want

	var sources []int
	for _, id := range origins {
		i, ok := g.index[id]
		if !ok {
			warn(WarnOriginNotFound, "origin", id)
			continue
		}
		sources = append(sources, i)
		res.Origins = append(res.Origins, id)
	}

	// 4) Sweep every origin.
	stats, between, err := run(g, &cfg, want, sources)
	if err != nil {
		return nil, err
	}

	// 5) Write back.
	if want.Has(Betweenness) {
		for i, id := range g.ids {
			net.Node(id).Metrics.Betweenness = between[i]
		}
	}
	var sumWeights float64
	for k, src := range sources {
		st := stats[k]
		m := &net.Node(g.ids[src]).Metrics
		sumWeights += g.weight[src]
		m.ReachCount, m.WeightedReach = st.reachCount, st.weightedReach
		if want.Has(Reach) {
			m.Reach = st.weightedReach
		}
		if want.Has(Gravity) {
			m.Gravity = st.gravity
		}
		if want.Has(Closeness) {
			m.Closeness = 0
			if st.dSum > 0 {
				m.Closeness = 1 / st.dSum
			}
		}
		if want.Has(Straightness) {
			m.Straightness = st.straightness
		}
		if len(cfg.Accumulators) > 0 {
			m.Accumulations = make(map[string]float64, len(cfg.Accumulators))
			for a, name := range cfg.Accumulators {
				m.Accumulations[name] = st.totals[a]
			}
		}
	}

	// 6) Normalize.
	norm := cfg.Normalize & want
	if norm.Has(Betweenness) && o < n {
		norm &^= Betweenness
		warn(WarnNoBetweennessNormalization)
	}
	res.Normalized = norm
	if norm != None {
		for _, src := range sources {
			normalize(&net.Node(g.ids[src]).Metrics, norm, cfg.Beta, sumWeights-g.weight[src])
		}
	}

	return res, nil
}

// normalize fills the normalized counterparts selected by norm. A zero or
// non-finite quotient yields 0.
func normalize(m *network.Metrics, norm Metric, beta, otherWeights float64) {
	if norm.Has(Reach) {
		m.NormReach = quotient(m.ReachCount, otherWeights)
	}
	if norm.Has(Gravity) {
		m.NormGravity = quotient(math.Exp(beta)*m.Gravity, m.WeightedReach)
	}
	if norm.Has(Betweenness) {
		m.NormBetweenness = quotient(m.Betweenness, m.WeightedReach*(m.ReachCount-1))
	}
	if norm.Has(Closeness) {
		m.NormCloseness = m.Closeness * m.WeightedReach
	}
	if norm.Has(Straightness) {
		m.NormStraightness = quotient(m.Straightness, m.WeightedReach)
	}
}

func quotient(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}

	return q
}

// run distributes sources over the configured workers in contiguous chunks.
// Each worker owns its sweep state and betweenness vector; vectors are summed
// in chunk order after all workers finish.
// run sweeps sources in contiguous chunks, one chunk per worker. It fails
// with the context error when cfg.Ctx is done before every origin ran.
func run(g *graph, cfg *Options, want Metric, sources []int) ([]originStats, []float64, error) {
	stats := make([]originStats, len(sources))
	workers := min(max(cfg.Workers, 1), len(sources))
	chunk := (len(sources) + workers - 1) / workers

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
		cfg.Progress(done, len(sources))
		mu.Unlock()
	}

	partial := make([][]float64, workers)
	eg, ctx := errgroup.WithContext(cfg.Ctx)
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, min((w+1)*chunk, len(sources))
		if lo >= hi {
			continue
		}
		eg.Go(func() error {
			sw := newSweep(g, cfg, want)
			for k := lo; k < hi; k++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				start := time.Now()
				stats[k] = sw.origin(sources[k])
				metrics.OriginDuration.Observe(time.Since(start).Seconds())
				metrics.OriginsProcessed.Inc()
				step()
			}
			partial[w] = sw.between
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	var between []float64
	if want.Has(Betweenness) {
		between = make([]float64, len(g.ids))
		for _, p := range partial {
			for i, v := range p {
				between[i] += v
			}
		}
	}

	return stats, between, nil
}
