// Package pqueue implements an indexable min-priority queue with O(log n)
// removal of arbitrary items, the decrease-key primitive used by every
// search in una.
//
// Each item may be queued at most once. Ties in cost are resolved by
// insertion order: the item pushed first pops first.
//
// Complexity:
//
//   - Push, Pop, Remove: O(log n)
//   - Contains, Cost, Len: O(1)
//
// Misuse (pushing a queued item, removing an absent one) indicates a
// broken caller invariant and panics with ErrDuplicateItem or ErrMissingItem.
package pqueue

import (
	"container/heap"
	"errors"
	"fmt"
)

// Sentinel errors carried by misuse panics.
var (
	// ErrDuplicateItem indicates Push of an item that is already queued.
	ErrDuplicateItem = errors.New("pqueue: item already queued")

	// ErrMissingItem indicates Remove of an item that is not queued.
	ErrMissingItem = errors.New("pqueue: item not queued")

	// ErrCostMismatch indicates RemoveWithCost with a stale cost.
	ErrCostMismatch = errors.New("pqueue: cost does not match queued entry")
)

// entry is one queued item with its heap position.
type entry[T comparable] struct {
	item T
	cost float64
	seq  uint64 // insertion order, breaks cost ties
	pos  int    // index in the heap slice
}

// entries is the container/heap implementation backing Queue.
type entries[T comparable] []*entry[T]

func (h entries[T]) Len() int { return len(h) }

func (h entries[T]) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}

	return h[i].seq < h[j].seq
}

func (h entries[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].pos = i
	h[j].pos = j
}

func (h *entries[T]) Push(x any) {
	e := x.(*entry[T])
	e.pos = len(*h)
	*h = append(*h, e)
}

func (h *entries[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	e.pos = -1

	return e
}

// Queue is a min-priority queue of unique items. The zero value is not
// usable; call New.
type Queue[T comparable] struct {
	heap  entries[T]
	index map[T]*entry[T]
	seq   uint64
}

// New returns an empty Queue with room for capacity items.
func New[T comparable](capacity int) *Queue[T] {
	return &Queue[T]{
		heap:  make(entries[T], 0, capacity),
		index: make(map[T]*entry[T], capacity),
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.heap) }

// Contains reports whether item is queued.
func (q *Queue[T]) Contains(item T) bool {
	_, ok := q.index[item]

	return ok
}

// Cost returns the queued cost of item.
func (q *Queue[T]) Cost(item T) (float64, bool) {
	e, ok := q.index[item]
	if !ok {
		return 0, false
	}

	return e.cost, true
}

// Push queues item with the given cost. Panics with ErrDuplicateItem if
// item is already queued.
func (q *Queue[T]) Push(item T, cost float64) {
	if _, dup := q.index[item]; dup {
		panic(fmt.Errorf("%w: %v", ErrDuplicateItem, item))
	}
	e := &entry[T]{item: item, cost: cost, seq: q.seq}
	q.seq++
	q.index[item] = e
	heap.Push(&q.heap, e)
}

// Pop removes and returns the lowest-cost item. ok is false when the queue
// is empty.
func (q *Queue[T]) Pop() (item T, cost float64, ok bool) {
	if len(q.heap) == 0 {
		return item, 0, false
	}
	e := heap.Pop(&q.heap).(*entry[T])
	delete(q.index, e.item)

	return e.item, e.cost, true
}

// Peek returns the lowest-cost item without removing it.
func (q *Queue[T]) Peek() (item T, cost float64, ok bool) {
	if len(q.heap) == 0 {
		return item, 0, false
	}

	return q.heap[0].item, q.heap[0].cost, true
}

// Remove drops item from the queue. Panics with ErrMissingItem if it is
// not queued.
func (q *Queue[T]) Remove(item T) {
	e, ok := q.index[item]
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrMissingItem, item))
	}
	heap.Remove(&q.heap, e.pos)
	delete(q.index, item)
}

// RemoveWithCost drops item after checking that it is queued at cost.
// Panics with ErrMissingItem or ErrCostMismatch.
func (q *Queue[T]) RemoveWithCost(item T, cost float64) {
	e, ok := q.index[item]
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrMissingItem, item))
	}
	if e.cost != cost {
		panic(fmt.Errorf("%w: %v queued at %v, not %v", ErrCostMismatch, item, e.cost, cost))
	}
	q.Remove(item)
}
