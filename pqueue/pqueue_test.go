package pqueue_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/una/pqueue"
)

func TestQueue_PopOrderAndTies(t *testing.T) {
	q := pqueue.New[string](4)
	q.Push("c", 3)
	q.Push("a", 1)
	q.Push("b1", 2)
	q.Push("b2", 2)

	var got []string
	for q.Len() > 0 {
		item, _, ok := q.Pop()
		require.True(t, ok)
		got = append(got, item)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, got, "equal costs pop in insertion order")

	_, _, ok := q.Pop()
	assert.False(t, ok, "empty queue yields the sentinel")
}

func TestQueue_RemoveAndDecreaseKey(t *testing.T) {
	q := pqueue.New[int](0)
	for i := 0; i < 10; i++ {
		q.Push(i, float64(10-i))
	}
	assert.True(t, q.Contains(3))
	cost, ok := q.Cost(3)
	require.True(t, ok)
	assert.Equal(t, 7.0, cost)

	// Decrease-key: remove the old entry and push the better cost.
	q.RemoveWithCost(3, 7)
	assert.False(t, q.Contains(3))
	q.Push(3, 0.5)
	item, c, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 3, item)
	assert.Equal(t, 0.5, c)

	q.Remove(9)
	assert.Equal(t, 9, q.Len())
}

func TestQueue_MisusePanics(t *testing.T) {
	q := pqueue.New[int](0)
	q.Push(1, 1)
	assert.PanicsWithError(t, "pqueue: item already queued: 1", func() { q.Push(1, 2) })
	assert.Panics(t, func() { q.Remove(2) })
	assert.Panics(t, func() { q.RemoveWithCost(1, 5) })
}

// TestQueue_MonotonicPop pushes, removes and re-pushes random items and
// checks that successive pops never decrease.
func TestQueue_MonotonicPop(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	q := pqueue.New[int](0)
	for i := 0; i < 500; i++ {
		q.Push(i, rng.Float64()*100)
	}
	for i := 0; i < 500; i += 3 {
		q.Remove(i)
		q.Push(i, rng.Float64()*100)
	}

	prev := -1.0
	for q.Len() > 0 {
		_, c, _ := q.Pop()
		require.GreaterOrEqual(t, c, prev)
		prev = c
	}
}

func BenchmarkQueue_PushPop(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	costs := make([]float64, 1024)
	for i := range costs {
		costs[i] = rng.Float64()
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q := pqueue.New[int](len(costs))
		for j, c := range costs {
			q.Push(j, c)
		}
		for q.Len() > 0 {
			q.Pop()
		}
	}
}
