// Package dijkstra_test validates both search modes against hand-computed
// distances, gonum's Dijkstra and the triangle inequality.
package dijkstra_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/dijkstra"
	"github.com/katalvlaran/una/network"
)

// diamond: A–B=5, B–D=5, A–C=6, C–D=6, A–D=20.
func diamond(t testing.TB) (*network.Network, map[string]network.NodeID) {
	t.Helper()
	pts := map[string]r3.Vec{
		"A": {X: 0}, "B": {X: 5}, "C": {X: 5, Y: math.Sqrt(11)}, "D": {X: 10},
	}
	n := network.New()
	for _, e := range []struct {
		a, b string
		l    float64
	}{{"A", "B", 5}, {"B", "D", 5}, {"A", "C", 6}, {"C", "D", 6}, {"A", "D", 20}} {
		_, err := n.AddConnection(pts[e.a], pts[e.b], nil, e.l)
		require.NoError(t, err)
	}
	ids := make(map[string]network.NodeID, len(pts))
	for k, p := range pts {
		id, ok := n.NodeAt(p)
		require.True(t, ok)
		ids[k] = id
	}

	return n, ids
}

// grid builds a rows×cols street grid whose lengths exceed the straight
// line by a random detour factor in [1,2).
func grid(t testing.TB, rows, cols int, seed int64) *network.Network {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	n := network.New()
	at := func(r, c int) r3.Vec { return r3.Vec{X: float64(c) * 10, Y: float64(r) * 10} }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				_, err := n.AddConnection(at(r, c), at(r, c+1), nil, 10*(1+rng.Float64()))
				require.NoError(t, err)
			}
			if r+1 < rows {
				_, err := n.AddConnection(at(r, c), at(r+1, c), nil, 10*(1+rng.Float64()))
				require.NoError(t, err)
			}
		}
	}

	return n
}

func TestShortestPath_Validation(t *testing.T) {
	n, ids := diamond(t)
	_, err := dijkstra.ShortestPath(nil, 0, 1)
	assert.ErrorIs(t, err, dijkstra.ErrNilNetwork)
	_, err = dijkstra.ShortestPath(n, 99, ids["D"])
	assert.ErrorIs(t, err, dijkstra.ErrNodeNotFound)
	_, err = dijkstra.ShortestPath(n, ids["A"], 99)
	assert.ErrorIs(t, err, dijkstra.ErrNodeNotFound)
	_, err = dijkstra.ShortestPathTree(n, 99)
	assert.ErrorIs(t, err, dijkstra.ErrNodeNotFound)
	assert.Panics(t, func() { dijkstra.WithMaxDistance(-1) })
}

func TestShortestPath_Diamond(t *testing.T) {
	n, ids := diamond(t)
	p, err := dijkstra.ShortestPath(n, ids["A"], ids["D"])
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.Length)
	assert.Equal(t, []network.NodeID{ids["A"], ids["B"], ids["D"]}, p.Nodes)
	assert.Len(t, p.Edges, 2)

	// Avoiding B forces the route through C.
	p, err = dijkstra.ShortestPath(n, ids["A"], ids["D"], dijkstra.WithAvoid(ids["B"]))
	require.NoError(t, err)
	assert.Equal(t, 12.0, p.Length)

	// Avoiding B and C leaves only the long edge; a bound below it fails.
	p, err = dijkstra.ShortestPath(n, ids["A"], ids["D"], dijkstra.WithAvoid(ids["B"], ids["C"]))
	require.NoError(t, err)
	assert.Equal(t, 20.0, p.Length)
	_, err = dijkstra.ShortestPath(n, ids["A"], ids["D"], dijkstra.WithAvoid(ids["B"], ids["C"]), dijkstra.WithMaxDistance(19))
	assert.ErrorIs(t, err, dijkstra.ErrNoPath)

	// Origin equals destination.
	p, err = dijkstra.ShortestPath(n, ids["A"], ids["A"])
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Length)
	assert.Empty(t, p.Edges)
}

func TestShortestPathTree_MaxDistance(t *testing.T) {
	n, ids := diamond(t)
	tree, err := dijkstra.ShortestPathTree(n, ids["A"], dijkstra.WithMaxDistance(5))
	require.NoError(t, err)
	assert.True(t, tree.Reached(ids["B"]))
	assert.False(t, tree.Reached(ids["C"]), "6 > bound must never be queued")
	assert.False(t, tree.Reached(ids["D"]))
	assert.Nil(t, tree.PathTo(ids["D"]))
	assert.Empty(t, tree.PathTo(ids["A"]))

	tree, err = dijkstra.ShortestPathTree(n, ids["A"])
	require.NoError(t, err)
	d, ok := tree.Distance(ids["D"])
	require.True(t, ok)
	assert.Equal(t, 10.0, d)
	assert.Len(t, tree.PathTo(ids["D"]), 2)
}

func TestShortestPath_SkipsHiddenEdges(t *testing.T) {
	n, ids := diamond(t)
	ab, ok := n.EdgeIDByNodes(ids["A"], ids["B"])
	require.True(t, ok)

	err := n.WithPseudoNodes([]network.Location{{ID: 1, EdgeID: ab, T: 0.4}}, func(pn []network.NodeID) error {
		p, err := dijkstra.ShortestPath(n, ids["A"], ids["D"])
		require.NoError(t, err)
		assert.InDelta(t, 10.0, p.Length, 1e-9)
		assert.Contains(t, p.Nodes, pn[0], "route runs over the split, not the hidden edge")
		assert.NotContains(t, p.Edges, ab)

		p, err = dijkstra.ShortestPath(n, pn[0], ids["D"])
		require.NoError(t, err)
		assert.InDelta(t, 8.0, p.Length, 1e-9)
		return nil
	})
	require.NoError(t, err)
}

// TestShortestPathTree_AgreesWithGonum cross-checks distances on a random
// grid and verifies the triangle inequality over every visible edge.
func TestShortestPathTree_AgreesWithGonum(t *testing.T) {
	n := grid(t, 8, 8, 42)
	ref := path.DijkstraFrom(simple.Node(0), n.Undirected())

	tree, err := dijkstra.ShortestPathTree(n, 0)
	require.NoError(t, err)
	for _, id := range n.NodeIDs() {
		d, ok := tree.Distance(id)
		require.True(t, ok)
		assert.InDelta(t, ref.WeightTo(int64(id)), d, 1e-9, "node %d", id)
	}

	for _, e := range n.Edges() {
		ds, de := tree.Dist[e.Start], tree.Dist[e.End]
		assert.LessOrEqual(t, de, ds+e.Length+1e-9)
		assert.LessOrEqual(t, ds, de+e.Length+1e-9)
	}
}

// TestShortestPath_AStarMatchesTree checks that the heuristic never changes
// the answer of a point-to-point query.
func TestShortestPath_AStarMatchesTree(t *testing.T) {
	n := grid(t, 6, 9, 7)
	rng := rand.New(rand.NewSource(3))
	ids := n.NodeIDs()
	for i := 0; i < 25; i++ {
		o, d := ids[rng.Intn(len(ids))], ids[rng.Intn(len(ids))]
		tree, err := dijkstra.ShortestPathTree(n, o)
		require.NoError(t, err)
		cache := dijkstra.NewHeuristicCache(n, d)
		p, err := dijkstra.ShortestPath(n, o, d, dijkstra.WithHeuristicCache(cache))
		require.NoError(t, err)
		assert.InDelta(t, tree.Dist[d], p.Length, 1e-9)

		var sum float64
		for _, eid := range p.Edges {
			sum += n.Edge(eid).Length
		}
		assert.InDelta(t, p.Length, sum, 1e-9)
	}
}

func TestHeuristicCache(t *testing.T) {
	n, ids := diamond(t)
	c := dijkstra.NewHeuristicCache(n, ids["D"])
	_, ok := c.Lookup(ids["A"])
	assert.False(t, ok)
	assert.Equal(t, 10.0, c.Estimate(ids["A"]))
	v, ok := c.Lookup(ids["A"])
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)
	c.Insert(ids["B"], 1)
	assert.Equal(t, 1.0, c.Estimate(ids["B"]))
}

func BenchmarkShortestPathTree_Grid(b *testing.B) {
	n := grid(b, 40, 40, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dijkstra.ShortestPathTree(n, 0)
	}
}
