package centrality

import (
	"math"

	"github.com/katalvlaran/una/pqueue"
)

// originStats holds the pop-time totals of one origin.
type originStats struct {
	reachCount    float64
	weightedReach float64
	gravity       float64
	dSum          float64
	straightness  float64
	totals        []float64
}

// sweep is the reusable per-worker state of a single-source traversal.
// Only entries listed in touched are reset between origins.
type sweep struct {
	g    *graph
	cfg  *Options
	want Metric

	dist    []float64
	seen    []bool
	touched []int
	q       *pqueue.Queue[int]

	// Brandes triple and pop order.
	sigma []float64
	delta []float64
	pred  [][]int
	stack []int

	// acc[w] is the cost vector of the latest chain that enqueued w.
	acc [][]float64

	// inRadius marks nodes within the Euclidean radius not yet popped.
	inRadius []bool
	pending  int

	between []float64
}

func newSweep(g *graph, cfg *Options, want Metric) *sweep {
	n := len(g.ids)
	sw := &sweep{
		g:    g,
		cfg:  cfg,
		want: want,
		dist: make([]float64, n),
		seen: make([]bool, n),
		q:    pqueue.New[int](0),
	}
	if want.Has(Betweenness) {
		sw.sigma = make([]float64, n)
		sw.delta = make([]float64, n)
		sw.pred = make([][]int, n)
		sw.between = make([]float64, n)
	}
	if len(cfg.Accumulators) > 0 {
		sw.acc = make([][]float64, n)
	}
	if cfg.Euclidean {
		sw.inRadius = make([]bool, n)
	}

	return sw
}

func (sw *sweep) visit(i int, d float64) {
	sw.dist[i] = d
	if !sw.seen[i] {
		sw.seen[i] = true
		sw.touched = append(sw.touched, i)
	}
}

func (sw *sweep) reset() {
	for _, i := range sw.touched {
		sw.seen[i] = false
		if sw.sigma != nil {
			sw.sigma[i], sw.delta[i], sw.pred[i] = 0, 0, sw.pred[i][:0]
		}
		if sw.acc != nil {
			sw.acc[i] = nil
		}
	}
	sw.touched = sw.touched[:0]
	sw.stack = sw.stack[:0]
	for sw.q.Len() > 0 {
		sw.q.Pop()
	}
	if sw.inRadius != nil {
		clear(sw.inRadius)
		sw.pending = 0
	}
}

func (sw *sweep) euclid(a, b int) float64 {
	dx, dy, dz := sw.g.point[a].X-sw.g.point[b].X, sw.g.point[a].Y-sw.g.point[b].Y, sw.g.point[a].Z-sw.g.point[b].Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// origin runs the sweep from s and returns its totals. Betweenness
// dependencies are added into sw.between.
func (sw *sweep) origin(s int) originStats {
	defer sw.reset()
	g, radius, euclidean := sw.g, sw.cfg.Radius, sw.cfg.Euclidean
	brandes := sw.want.Has(Betweenness)

	// 1) Seed. Reach starts below zero so that s itself is not counted.
	st := originStats{reachCount: -1, weightedReach: -g.weight[s]}
	sw.visit(s, 0)
	sw.q.Push(s, 0)
	if brandes {
		sw.sigma[s] = 1
	}
	if sw.acc != nil {
		sw.acc[s] = make([]float64, len(sw.cfg.Accumulators))
	}
	if euclidean {
		for t := range g.ids {
			if sw.euclid(s, t) <= radius {
				sw.inRadius[t] = true
				sw.pending++
			}
		}
	}

	for sw.q.Len() > 0 && (!euclidean || sw.pending > 0) {
		// 2) Pop v and fold it into the totals.
		v, dsv, _ := sw.q.Pop()
		if euclidean && sw.inRadius[v] {
			sw.inRadius[v] = false
			sw.pending--
		}
		if !euclidean || sw.euclid(s, v) <= radius {
			wv := g.weight[v]
			st.reachCount++
			st.weightedReach += wv
			if dsv > 0 {
				if sw.want.Has(Gravity) {
					st.gravity += wv * math.Exp(-dsv*sw.cfg.Beta)
				}
				if sw.want.Has(Closeness) {
					st.dSum += wv * dsv
				}
				if sw.want.Has(Straightness) {
					st.straightness += wv * sw.euclid(s, v) / dsv
				}
			}
			if brandes {
				sw.stack = append(sw.stack, v)
			}
		}

		// 3) Relax every arc; settled neighbors are not skipped.
		for _, a := range g.arcs[v] {
			sw.relax(v, dsv, a, radius, euclidean, brandes)
		}
	}

	// 4) Backward pass in reverse pop order.
	if brandes {
		for k := len(sw.stack) - 1; k >= 0; k-- {
			w := sw.stack[k]
			dw := sw.delta[w]
			for _, v := range sw.pred[w] {
				sw.delta[v] += sw.sigma[v] / sw.sigma[w] * (g.weight[w] + dw)
			}
			if w != s {
				sw.between[w] += dw
			}
		}
	}

	// 5) Total every chain ever enqueued.
	if sw.acc != nil {
		st.totals = make([]float64, len(sw.cfg.Accumulators))
		for _, i := range sw.touched {
			if sw.acc[i] != nil {
				st.totals = mergeCosts(st.totals, sw.acc[i])
			}
		}
	}

	return st
}

// relax extends the path s~v by arc a to w.
func (sw *sweep) relax(v int, dsv float64, a arc, radius float64, euclidean, brandes bool) {
	w, dsw := a.to, dsv+a.length
	within := euclidean || dsw <= radius
	enqueue, refresh := false, false

	switch {
	case !sw.seen[w]:
		// First path to w.
		enqueue = within
		sw.visit(w, dsw)
		refresh = true
	case ltTol(dsw, sw.dist[w]):
		// Strictly better path to w.
		if within {
			if sw.q.Contains(w) {
				sw.q.Remove(w)
			}
			enqueue = true
		}
		sw.dist[w] = dsw
		refresh = true
	}

	if enqueue {
		sw.q.Push(w, dsw)
		if sw.acc != nil {
			sw.acc[w] = mergeCosts(sw.acc[v], a.costs)
		}
	}

	if brandes {
		if refresh {
			sw.sigma[w] = 0
			sw.pred[w] = sw.pred[w][:0]
		}
		if eqTol(dsw, sw.dist[w]) {
			sw.sigma[w] += sw.sigma[v]
			sw.pred[w] = append(sw.pred[w], v)
			sw.delta[v] = 0
		}
	}
}
