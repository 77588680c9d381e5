// Package builder_test checks topology counts, layout, determinism and the
// validation contract of every constructor.
package builder_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/builder"
	"github.com/katalvlaran/una/network"
)

func build(t *testing.T, bopts []builder.BuilderOption, cons ...builder.Constructor) *network.Network {
	t.Helper()
	n, err := builder.BuildNetwork(nil, bopts, cons...)
	require.NoError(t, err)

	return n
}

func straight(n *network.Network, e *network.Edge) float64 {
	d, _ := n.Distance(e.Start, e.End)

	return d
}

func TestBuilders_Topology(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		ctor         builder.Constructor
		wantN, wantE int
		edgeLength   float64
	}{
		{"Grid(3,4)", builder.Grid(3, 4), 12, 17, 100},
		{"Grid(1,1)", builder.Grid(1, 1), 1, 0, 0},
		{"Path(4)", builder.Path(4), 4, 3, 100},
		{"Cycle(6)", builder.Cycle(6), 6, 6, 100},
		{"Star(5)", builder.Star(5), 5, 4, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			n := build(t, nil, tc.ctor)
			assert.Equal(t, tc.wantN, n.NodeCount())
			assert.Len(t, n.Edges(), tc.wantE)
			for _, e := range n.Edges() {
				assert.InDelta(t, tc.edgeLength, e.Length, 1e-9, "edge %d", e.ID)
				assert.InDelta(t, straight(n, e), e.Length, 1e-9)
			}
			for _, nd := range n.Nodes() {
				assert.Equal(t, builder.DefaultNodeWeight, nd.Weight)
			}
		})
	}
}

func TestGrid_Layout(t *testing.T) {
	n := build(t, []builder.BuilderOption{builder.WithSpacing(10), builder.WithOrigin(r3.Vec{X: 5})}, builder.Grid(2, 3))
	// Row-major junction IDs.
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			id, ok := n.NodeAt(r3.Vec{X: 5 + float64(c)*10, Y: float64(r) * 10})
			require.True(t, ok)
			assert.Equal(t, network.NodeID(r*3+c), id)
		}
	}
	// Right before bottom for each cell.
	e0, e1 := n.Edge(0), n.Edge(1)
	assert.Equal(t, network.NodeID(0), e0.Start)
	assert.Equal(t, network.NodeID(1), e0.End)
	assert.Equal(t, network.NodeID(3), e1.End)
}

func TestStar_Hub(t *testing.T) {
	n := build(t, nil, builder.Star(7))
	assert.Len(t, n.Node(0).Edges, 6)
	assert.Equal(t, r3.Vec{}, n.Node(0).Point)
}

func TestBuildNetwork_ComposesOnSharedJunctions(t *testing.T) {
	n := build(t, nil, builder.Grid(2, 2), builder.Path(3))
	assert.Equal(t, 5, n.NodeCount(), "the path reuses two grid junctions")
	assert.Len(t, n.Edges(), 6)
}

func TestRandomSparse(t *testing.T) {
	a := build(t, []builder.BuilderOption{builder.WithSeed(7)}, builder.RandomSparse(30, 0.2))
	b := build(t, []builder.BuilderOption{builder.WithSeed(7)}, builder.RandomSparse(30, 0.2))
	require.Equal(t, a.NodeCount(), b.NodeCount())
	require.Equal(t, len(a.Edges()), len(b.Edges()))
	for id, e := range a.Edges() {
		assert.Equal(t, e.Start, b.Edge(id).Start)
		assert.Equal(t, e.End, b.Edge(id).End)
		assert.Equal(t, e.Length, b.Edge(id).Length)
	}

	full := build(t, []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(6, 1))
	assert.Len(t, full.Edges(), 15)
	empty := build(t, []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(6, 0))
	assert.Empty(t, empty.Edges())
	assert.Equal(t, 6, empty.NodeCount())
}

func TestDetour(t *testing.T) {
	n := build(t, []builder.BuilderOption{builder.WithSeed(3), builder.WithDetour(0.5)}, builder.Grid(4, 4))
	longer := 0
	for _, e := range n.Edges() {
		s := straight(n, e)
		assert.GreaterOrEqual(t, e.Length, s)
		assert.Less(t, e.Length, 1.5*s+1e-9)
		if e.Length > s {
			longer++
		}
	}
	assert.Positive(t, longer)
}

func TestAttributes(t *testing.T) {
	n := build(t, []builder.BuilderOption{
		builder.WithStreetNames("St "),
		builder.WithCost("time", builder.ConstantWeightFn(2)),
		builder.WithConstantNodeWeight(3),
	}, builder.Path(3))
	assert.Equal(t, "St 0", n.Edge(0).Name)
	assert.Equal(t, "St 1", n.Edge(1).Name)
	assert.Equal(t, map[string]float64{"time": 2}, n.Edge(1).Costs)
	assert.Equal(t, 3.0, n.Node(2).Weight)
	assert.Equal(t, 9.0, n.TotalWeight())
}

func TestUniformNodeWeight(t *testing.T) {
	bopts := []builder.BuilderOption{builder.WithSeed(7), builder.WithUniformNodeWeight(2, 4)}
	n := build(t, bopts, builder.Grid(3, 3))
	distinct := make(map[float64]struct{})
	for _, id := range n.NodeIDs() {
		w := n.Node(id).Weight
		assert.GreaterOrEqual(t, w, 2.0)
		assert.Less(t, w, 4.0)
		distinct[w] = struct{}{}
	}
	assert.Greater(t, len(distinct), 1, "weights are drawn, not constant")

	again := build(t, bopts, builder.Grid(3, 3))
	assert.Equal(t, n.TotalWeight(), again.TotalWeight(), "same seed, same weights")
	assert.Panics(t, func() { builder.WithUniformNodeWeight(3, 2) })
}

func TestLocations(t *testing.T) {
	n := build(t, nil, builder.Grid(2, 2))
	locs, err := builder.Locations(n, builder.WithConstantNodeWeight(4))
	require.NoError(t, err)
	require.Equal(t, 4, locs.Len())
	for _, id := range locs.IDs() {
		loc, _ := locs.Get(id)
		assert.Equal(t, network.EdgeID(id), loc.EdgeID)
		assert.Equal(t, 0.5, loc.T)
		assert.Equal(t, 4.0, loc.Weight)
		assert.True(t, loc.Origin && loc.Destination)
	}

	locs, err = builder.Locations(n, builder.WithSeed(2))
	require.NoError(t, err)
	for _, id := range locs.IDs() {
		loc, _ := locs.Get(id)
		assert.GreaterOrEqual(t, loc.T, 0.1)
		assert.Less(t, loc.T, 0.9)
	}

	_, err = builder.Locations(nil)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)
}

func TestBuilders_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []builder.BuilderOption
		ctor builder.Constructor
		want error
	}{
		{"Grid(0,3)", nil, builder.Grid(0, 3), builder.ErrTooFewNodes},
		{"Path(1)", nil, builder.Path(1), builder.ErrTooFewNodes},
		{"Cycle(2)", nil, builder.Cycle(2), builder.ErrTooFewNodes},
		{"Star(1)", nil, builder.Star(1), builder.ErrTooFewNodes},
		{"RandomSparse(0,.5)", []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(0, 0.5), builder.ErrTooFewNodes},
		{"RandomSparse(p>1)", []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(5, 1.5), builder.ErrInvalidProbability},
		{"RandomSparse(NaN)", []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomSparse(5, math.NaN()), builder.ErrInvalidProbability},
		{"RandomSparse no rng", nil, builder.RandomSparse(5, 0.5), builder.ErrNeedRandSource},
		{"Detour no rng", []builder.BuilderOption{builder.WithDetour(0.2)}, builder.Path(3), builder.ErrNeedRandSource},
		{"negative weight", []builder.BuilderOption{builder.WithNodeWeightFn(func(*rand.Rand) float64 { return -1 })}, builder.Path(3), builder.ErrConstructFailed},
		{"nil constructor", nil, nil, builder.ErrConstructFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := builder.BuildNetwork(nil, tc.opts, tc.ctor)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithSpacing(0) })
	assert.Panics(t, func() { builder.WithDetour(-0.1) })
	assert.Panics(t, func() { builder.WithNodeWeightFn(nil) })
	assert.Panics(t, func() { builder.WithNameScheme(nil) })
	assert.Panics(t, func() { builder.WithCost("", builder.DefaultWeightFn) })
	assert.Panics(t, func() { builder.WithCost("time", nil) })
}

func BenchmarkGrid(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = builder.BuildNetwork(nil, []builder.BuilderOption{builder.WithSeed(1), builder.WithDetour(0.3)}, builder.Grid(50, 50))
	}
}
