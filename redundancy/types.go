// Package redundancy defines the options, results and sentinel errors of
// the redundancy index engine.
//
// Options:
//
//	– Coefficient: stretch factor c >= 1; the detour budget is c·d0.
//	– Radius:      pairs whose shortest distance d0 exceeds it give no result.
//	– Weighted:    account for location weights on edges instead of lengths.
//	– Workers:     goroutines used by Batch, each with its own network copy.
//
// Errors (sentinel):
//
//	– ErrNilNetwork        if the network or location set is nil.
//	– ErrLocationNotFound  if an origin or destination ID is unknown.
//	– ErrSameLocation      if origin and destination are the same location.
package redundancy

import (
	"errors"
	"math"

	"github.com/katalvlaran/una/logging"
	"github.com/katalvlaran/una/network"
)

// Sentinel errors returned by Index and Batch.
var (
	// ErrNilNetwork indicates a nil network or location set.
	ErrNilNetwork = errors.New("redundancy: network or locations is nil")

	// ErrLocationNotFound indicates an unknown origin or destination ID.
	ErrLocationNotFound = errors.New("redundancy: location not found")

	// ErrSameLocation indicates an origin equal to its destination.
	ErrSameLocation = errors.New("redundancy: origin equals destination")
)

// Warning messages passed to the warning sink.
const (
	WarnNoPath      = "No path found"
	WarnOutOfRadius = "Shortest path distance larger than search radius"
	WarnNoPairs     = "No OD pair found, no computation will be done"
)

// WarnFunc receives non-fatal diagnostics.
type WarnFunc func(msg string, args ...any)

// ProgressFunc is invoked once per completed O-D pair.
type ProgressFunc func(done, total int)

// Options configures Index and Batch.
type Options struct {
	Coefficient float64
	Radius      float64
	Weighted    bool
	Workers     int
	Progress    ProgressFunc
	Warn        WarnFunc
}

// Option represents a functional option for configuring the engine.
type Option func(*Options)

// WithCoefficient sets the stretch coefficient. Panics if c < 1.
func WithCoefficient(c float64) Option {
	if !(c >= 1) || math.IsInf(c, 1) {
		panic("redundancy: WithCoefficient(c<1)")
	}

	return func(o *Options) { o.Coefficient = c }
}

// WithRadius sets the search radius. Panics if r < 0.
func WithRadius(r float64) Option {
	if r < 0 || math.IsNaN(r) {
		panic("redundancy: WithRadius(r<0)")
	}

	return func(o *Options) { o.Radius = r }
}

// WithWeights switches to weight-based accounting: each edge counts with the
// summed weight of the locations on it.
func WithWeights() Option {
	return func(o *Options) { o.Weighted = true }
}

// WithWorkers runs Batch pairs on n goroutines. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("redundancy: WithWorkers(n<1)")
	}

	return func(o *Options) { o.Workers = n }
}

// WithProgress installs a per-pair progress callback for Batch.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.Progress = fn }
}

// WithWarningSink replaces the default warning sink (logging.Warn).
func WithWarningSink(fn WarnFunc) Option {
	if fn == nil {
		panic("redundancy: WithWarningSink(nil)")
	}

	return func(o *Options) { o.Warn = fn }
}

// DefaultOptions uses coefficient 1.2, an unbounded radius, length-based
// accounting and a single worker.
func DefaultOptions() Options {
	return Options{
		Coefficient: 1.2,
		Radius:      math.Inf(1),
		Workers:     1,
		Warn:        logging.Warn,
	}
}

// Result is the redundancy of one O-D pair.
type Result struct {
	Origin      int64
	Destination int64

	// Index is the accounted size of the redundant edge set over that of the
	// shortest path. It is at least 1.
	Index float64

	// UniqueSegments are the original edge IDs touched by some path within
	// the budget, ascending.
	UniqueSegments []network.EdgeID

	// ShortestPath lists the original edge IDs of the shortest path in
	// travel order; pieces of one split edge appear once.
	ShortestPath []network.EdgeID

	// Distance is the shortest-path distance d0.
	Distance float64
}

// Summary aggregates the indices of one origin over its destinations.
// StdDev is the population standard deviation. All values are 0 when no
// destination produced a result.
type Summary struct {
	Origin         int64
	N              int
	Mean           float64
	StdDev         float64
	Min            float64
	Max            float64
	UniqueSegments []network.EdgeID
}
