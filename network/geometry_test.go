package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSplitPoints(t *testing.T) {
	poly := []r3.Vec{{X: 0}, {X: 4}, {X: 4, Y: 4}, {X: 8, Y: 4}}

	// Interior of the second segment.
	first, second := splitPoints(poly, r3.Vec{X: 4, Y: 1})
	assert.Equal(t, []r3.Vec{{X: 0}, {X: 4}, {X: 4, Y: 1}}, first)
	assert.Equal(t, []r3.Vec{{X: 4, Y: 1}, {X: 4, Y: 4}, {X: 8, Y: 4}}, second)

	// Coincident with a vertex: both halves share it.
	first, second = splitPoints(poly, r3.Vec{X: 4, Y: 4})
	assert.Equal(t, poly[:3], first)
	assert.Equal(t, poly[2:], second)

	// Halves do not alias the input.
	first[0] = r3.Vec{X: -1}
	assert.Equal(t, r3.Vec{}, poly[0])
}
