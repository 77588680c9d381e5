package centrality

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
)

// arc is one traversable direction of a visible edge.
type arc struct {
	to     int
	length float64
	costs  []float64 // indexed like Options.Accumulators
}

// graph is a dense, read-only snapshot of the network used by every sweep.
type graph struct {
	ids    []network.NodeID
	index  map[network.NodeID]int
	weight []float64
	point  []r3.Vec
	arcs   [][]arc

	// located is true when every node carries a point.
	located bool
}

// snapshot indexes the nodes of net in ascending id order and collects the
// arcs of every visible edge in adjacency-list order.
func snapshot(net *network.Network, accumulators []string) (*graph, error) {
	// 1) Dense node index.
	ids := net.NodeIDs()
	g := &graph{
		ids:     ids,
		index:   make(map[network.NodeID]int, len(ids)),
		weight:  make([]float64, len(ids)),
		point:   make([]r3.Vec, len(ids)),
		arcs:    make([][]arc, len(ids)),
		located: len(ids) > 0,
	}
	for i, id := range ids {
		nd := net.Node(id)
		g.index[id] = i
		g.weight[i] = nd.Weight
		g.point[i] = nd.Point
		if !nd.HasPoint {
			g.located = false
		}
	}

	// 2) Arcs with accumulator vectors, validated once per edge.
	costs := make(map[network.EdgeID][]float64)
	for i, id := range ids {
		nd := net.Node(id)
		for _, eid := range nd.Edges {
			e := net.Edge(eid)
			if e.Hidden {
				continue
			}
			vec, ok := costs[eid]
			if !ok {
				var err error
				if vec, err = costVector(e, accumulators); err != nil {
					return nil, err
				}
				costs[eid] = vec
			}
			g.arcs[i] = append(g.arcs[i], arc{to: g.index[e.OtherEnd(id)], length: e.Length, costs: vec})
		}
	}

	return g, nil
}

func costVector(e *network.Edge, accumulators []string) ([]float64, error) {
	if len(accumulators) == 0 {
		return nil, nil
	}
	vec := make([]float64, len(accumulators))
	for k, name := range accumulators {
		v, ok := e.Costs[name]
		if !ok {
			return nil, fmt.Errorf("%w: edge %d has no %q", ErrMissingAccumulator, e.ID, name)
		}
		vec[k] = v
	}

	return vec, nil
}

// mergeCosts returns a+b element-wise. Vectors of different lengths mean
// the accumulator keys diverged, which is an internal-consistency error.
func mergeCosts(a, b []float64) []float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("centrality: accumulator key sets differ (%d vs %d)", len(a), len(b)))
	}
	out := make([]float64, len(a))
	for k := range a {
		out[k] = a[k] + b[k]
	}

	return out
}
