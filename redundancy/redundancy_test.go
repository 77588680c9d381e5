package redundancy_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/network"
	"github.com/katalvlaran/una/redundancy"
)

func quiet(string, ...any) {}

// diamond: A–B=5, B–D=5, A–C=6, C–D=6, A–D=20 (edge IDs 0..4). Origin 1
// sits on A and destination 2 on D, both spliced into the long edge A–D.
func diamond(t testing.TB) (*network.Network, *network.Locations) {
	t.Helper()
	pts := map[string]r3.Vec{"A": {X: 0}, "B": {X: 5}, "C": {X: 5, Y: math.Sqrt(11)}, "D": {X: 10}}
	n := network.New(network.WithTolerance(1e-9))
	for _, e := range []struct {
		a, b string
		l    float64
	}{{"A", "B", 5}, {"B", "D", 5}, {"A", "C", 6}, {"C", "D", 6}, {"A", "D", 20}} {
		_, err := n.AddConnection(pts[e.a], pts[e.b], nil, e.l)
		require.NoError(t, err)
	}
	locs, err := network.NewLocations(
		network.Location{ID: 1, EdgeID: 4, T: 0, Origin: true, Destination: true},
		network.Location{ID: 2, EdgeID: 4, T: 1, Origin: true, Destination: true},
	)
	require.NoError(t, err)

	return n, locs
}

// grid builds a street lattice with randomly detoured edge lengths and one
// location in the middle of every edge.
func grid(t testing.TB, rows, cols int, seed int64) (*network.Network, *network.Locations) {
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
	locs, err := network.NewLocations()
	require.NoError(t, err)
	for _, eid := range n.EdgeIDs() {
		require.NoError(t, locs.Add(network.Location{
			ID: int64(eid), EdgeID: eid, T: rng.Float64(), Weight: 1 + float64(rng.Intn(5)),
			Origin: true, Destination: true,
		}))
	}

	return n, locs
}

func TestIndex_Diamond(t *testing.T) {
	n, locs := diamond(t)
	res, ok, err := redundancy.Index(n, locs, 1, 2, redundancy.WithCoefficient(1.2), redundancy.WithWarningSink(quiet))
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 10.0, res.Distance, 1e-6)
	assert.InDelta(t, 2.2, res.Index, 1e-6)
	// The stubs of A–D between each location and its junction count, the
	// middle of A–D does not, so A–D still appears as a touched segment.
	assert.Equal(t, []network.EdgeID{0, 1, 2, 3, 4}, res.UniqueSegments)
	assert.Equal(t, []network.EdgeID{4, 0, 1, 4}, res.ShortestPath)

	before := len(n.Edges())
	assert.Equal(t, 5, before, "pseudo state cleared")
	assert.False(t, n.Edge(4).Hidden)
}

func TestIndex_CoefficientOne(t *testing.T) {
	n, locs := diamond(t)
	res, ok, err := redundancy.Index(n, locs, 1, 2, redundancy.WithCoefficient(1), redundancy.WithWarningSink(quiet))
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 1.0, res.Index, 1e-9)
	assert.Equal(t, []network.EdgeID{0, 1, 4}, res.UniqueSegments)
}

func TestIndex_Weighted(t *testing.T) {
	n, locs := diamond(t)
	for _, l := range []network.Location{
		{ID: 3, EdgeID: 0, T: 0.5, Weight: 2},
		{ID: 4, EdgeID: 2, T: 0.5, Weight: 3},
		{ID: 5, EdgeID: 3, T: 0.5, Weight: 1},
		{ID: 6, EdgeID: 1, T: 0.5, Weight: 2},
	} {
		require.NoError(t, locs.Add(l))
	}
	res, ok, err := redundancy.Index(n, locs, 1, 2, redundancy.WithWeights(), redundancy.WithWarningSink(quiet))
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 8.0/4.0, res.Index, 1e-9)

	// No weight on the shortest path falls back to 1.
	n2, locs2 := diamond(t)
	require.NoError(t, locs2.Add(network.Location{ID: 4, EdgeID: 2, T: 0.5, Weight: 3}))
	res, ok, err = redundancy.Index(n2, locs2, 1, 2, redundancy.WithWeights(), redundancy.WithWarningSink(quiet))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.0, res.Index)
}

func TestIndex_NoResult(t *testing.T) {
	n, locs := diamond(t)
	var warned []string
	sink := func(msg string, _ ...any) { warned = append(warned, msg) }

	_, ok, err := redundancy.Index(n, locs, 1, 2, redundancy.WithRadius(5), redundancy.WithWarningSink(sink))
	require.NoError(t, err)
	assert.False(t, ok)

	// A disconnected street.
	eid, err := n.AddConnection(r3.Vec{X: 100}, r3.Vec{X: 110}, nil, network.AutoLength)
	require.NoError(t, err)
	require.NoError(t, locs.Add(network.Location{ID: 9, EdgeID: eid, T: 0.5}))
	_, ok, err = redundancy.Index(n, locs, 1, 9, redundancy.WithWarningSink(sink))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, []string{redundancy.WarnOutOfRadius, redundancy.WarnNoPath}, warned)
	assert.Len(t, n.Edges(), 6, "pseudo state cleared after early exits")
}

func TestIndex_Errors(t *testing.T) {
	n, locs := diamond(t)
	_, _, err := redundancy.Index(nil, locs, 1, 2)
	assert.ErrorIs(t, err, redundancy.ErrNilNetwork)
	_, _, err = redundancy.Index(n, locs, 1, 1)
	assert.ErrorIs(t, err, redundancy.ErrSameLocation)
	_, _, err = redundancy.Index(n, locs, 1, 77)
	assert.ErrorIs(t, err, redundancy.ErrLocationNotFound)

	require.NoError(t, locs.Add(network.Location{ID: 8, EdgeID: 99, T: 0.5}))
	_, _, err = redundancy.Index(n, locs, 1, 8)
	assert.ErrorIs(t, err, network.ErrEdgeNotFound)

	assert.Panics(t, func() { redundancy.WithCoefficient(0.9) })
	assert.Panics(t, func() { redundancy.WithRadius(-1) })
}

// TestIndex_LowerBound checks index >= 1 and that the shortest path is
// always inside the redundant set, over many random pairs.
func TestIndex_LowerBound(t *testing.T) {
	n, locs := grid(t, 5, 5, 11)
	ids := locs.IDs()
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 30; i++ {
		o, d := ids[rng.Intn(len(ids))], ids[rng.Intn(len(ids))]
		if o == d {
			continue
		}
		for _, c := range []float64{1, 1.3, 2} {
			res, ok, err := redundancy.Index(n, locs, o, d, redundancy.WithCoefficient(c), redundancy.WithWarningSink(quiet))
			require.NoError(t, err)
			require.True(t, ok)
			assert.GreaterOrEqual(t, res.Index, 1.0-1e-9, "pair %d-%d c=%v", o, d, c)
			for _, eid := range res.ShortestPath {
				assert.Contains(t, res.UniqueSegments, eid)
			}
		}
	}
}

func TestBatch(t *testing.T) {
	n, locs := diamond(t)
	var ticks int
	out, err := redundancy.Batch(context.Background(), n, locs, []int64{1, 2}, []int64{1, 2},
		redundancy.WithWarningSink(quiet),
		redundancy.WithProgress(func(done, total int) { ticks++; assert.Equal(t, 1, total) }))
	require.NoError(t, err)
	assert.Equal(t, 1, ticks, "the unordered pair is queried once")

	for _, o := range []int64{1, 2} {
		s := out[o]
		assert.Equal(t, 1, s.N)
		assert.InDelta(t, 2.2, s.Mean, 1e-6)
		assert.InDelta(t, 0, s.StdDev, 1e-12)
		assert.Equal(t, s.Min, s.Max)
		assert.Equal(t, []network.EdgeID{0, 1, 2, 3, 4}, s.UniqueSegments)
	}
}

func TestBatch_WorkersAgree(t *testing.T) {
	n, locs := grid(t, 4, 4, 3)
	ids := locs.IDs()[:8]
	seq, err := redundancy.Batch(context.Background(), n, locs, ids, ids, redundancy.WithWarningSink(quiet))
	require.NoError(t, err)
	par, err := redundancy.Batch(context.Background(), n, locs, ids, ids,
		redundancy.WithWorkers(3), redundancy.WithWarningSink(quiet))
	require.NoError(t, err)
	require.Len(t, par, len(seq))
	for id, s := range seq {
		p := par[id]
		assert.Equal(t, s.N, p.N)
		assert.InDelta(t, s.Mean, p.Mean, 1e-9)
		assert.InDelta(t, s.StdDev, p.StdDev, 1e-9)
		assert.Equal(t, s.UniqueSegments, p.UniqueSegments)
	}
	assert.Len(t, n.Edges(), 24, "base network untouched")
}

func TestBatch_Cancelled(t *testing.T) {
	n, locs := grid(t, 3, 3, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ids := locs.IDs()
	_, err := redundancy.Batch(ctx, n, locs, ids, ids, redundancy.WithWarningSink(quiet))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatch_NoPairsWarns(t *testing.T) {
	n, locs := diamond(t)
	var warned []string
	out, err := redundancy.Batch(context.Background(), n, locs, []int64{1}, []int64{1},
		redundancy.WithWarningSink(func(msg string, _ ...any) { warned = append(warned, msg) }))
	require.NoError(t, err)
	assert.Equal(t, []string{redundancy.WarnNoPairs}, warned)
	assert.Equal(t, 0, out[1].N)
}

func TestCommonOrigin(t *testing.T) {
	assert.False(t, redundancy.CommonOrigin(nil))
	assert.True(t, redundancy.CommonOrigin([][2]int64{{1, 2}}))
	assert.True(t, redundancy.CommonOrigin([][2]int64{{1, 2}, {1, 3}, {4, 1}}))
	assert.False(t, redundancy.CommonOrigin([][2]int64{{1, 2}, {1, 3}, {4, 5}}))
	assert.False(t, redundancy.CommonOrigin([][2]int64{{1, 2}, {2, 1}}))
	assert.False(t, redundancy.CommonOrigin([][2]int64{{1, 2}, {3, 4}}))
}
