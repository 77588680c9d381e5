// Package paths defines the options, results and sentinel errors of the
// bounded simple-path enumerator.
//
// Options:
//
//	– Ctx:         cancellation; checked at every expanded node.
//	– Coefficient: stretch factor c >= 1; paths may be up to c·d0 long.
//	– Radius:      pairs whose shortest distance d0 exceeds it give no result.
//	– Wayfinding:  also report the sum of path probabilities.
//	– MaxPaths:    stop after this many paths (0 means no limit).
//
// Errors (sentinel):
//
//	– ErrNilNetwork        if the network or location set is nil.
//	– ErrLocationNotFound  if an origin or destination ID is unknown.
//	– ErrSameLocation      if origin and destination are the same location.
//	– context.Canceled     if Ctx is done.
package paths

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/una/logging"
	"github.com/katalvlaran/una/network"
)

// Sentinel errors returned by Enumerate and Batch.
var (
	// ErrNilNetwork indicates a nil network or location set.
	ErrNilNetwork = errors.New("paths: network or locations is nil")

	// ErrLocationNotFound indicates an unknown origin or destination ID.
	ErrLocationNotFound = errors.New("paths: location not found")

	// ErrSameLocation indicates an origin equal to its destination.
	ErrSameLocation = errors.New("paths: origin equals destination")
)

// Warning messages passed to the warning sink.
const (
	WarnNoPath      = "No path found"
	WarnOutOfRadius = "Shortest path distance larger than search radius"
	WarnTruncated   = "Path limit reached, enumeration stopped early"
	WarnNoPairs     = "No OD pair found, no computation will be done"
)

// WarnFunc receives non-fatal diagnostics.
type WarnFunc func(msg string, args ...any)

// ProgressFunc is invoked once per completed O-D pair in Batch.
type ProgressFunc func(done, total int)

// Options configures Enumerate and Batch.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	Coefficient float64
	Radius      float64
	Wayfinding  bool
	MaxPaths    int
	Progress    ProgressFunc
	Warn        WarnFunc
}

// Option represents a functional option for configuring the enumerator.
type Option func(*Options)

// WithContext sets the cancellation context. A nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithCoefficient sets the stretch coefficient. Panics if c < 1.
func WithCoefficient(c float64) Option {
	if !(c >= 1) || math.IsInf(c, 1) {
		panic("paths: WithCoefficient(c<1)")
	}

	return func(o *Options) { o.Coefficient = c }
}

// WithRadius sets the search radius. Panics if r < 0.
func WithRadius(r float64) Option {
	if r < 0 || math.IsNaN(r) {
		panic("paths: WithRadius(r<0)")
	}

	return func(o *Options) { o.Radius = r }
}

// WithWayfinding requests the wayfinding index.
func WithWayfinding() Option {
	return func(o *Options) { o.Wayfinding = true }
}

// WithMaxPaths stops the enumeration after n paths. Panics if n < 0.
func WithMaxPaths(n int) Option {
	if n < 0 {
		panic("paths: WithMaxPaths(n<0)")
	}

	return func(o *Options) { o.MaxPaths = n }
}

// WithProgress installs a per-pair progress callback for Batch.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.Progress = fn }
}

// WithWarningSink replaces the default warning sink (logging.Warn).
func WithWarningSink(fn WarnFunc) Option {
	if fn == nil {
		panic("paths: WithWarningSink(nil)")
	}

	return func(o *Options) { o.Warn = fn }
}

// DefaultOptions uses coefficient 1.2, an unbounded radius, no wayfinding
// and no path limit.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		Coefficient: 1.2,
		Radius:      math.Inf(1),
		Warn:        logging.Warn,
	}
}

// Path is one simple path from the origin to the destination.
type Path struct {
	// Junctions are the original nodes passed, in travel order.
	Junctions []network.NodeID

	// Segments are the original edge IDs in travel order; consecutive
	// pieces of one split edge appear once.
	Segments []network.EdgeID

	// Length is the network length of the path.
	Length float64

	// Probability that a random walker who never revisits a junction and
	// picks uniformly among unvisited streets follows this path.
	Probability float64

	// Points is the polyline from the origin to the destination.
	Points []r3.Vec
}

// Result is the enumeration of one O-D pair.
type Result struct {
	Origin      int64
	Destination int64

	// Distance is the shortest-path distance d0.
	Distance float64

	// Paths are in depth-first discovery order.
	Paths []Path

	// SegmentCounts maps original edge IDs to the number of path pieces
	// running over them.
	SegmentCounts map[network.EdgeID]int

	// Redundancy is the length of the union of used edges over d0, or 1
	// when d0 is 0.
	Redundancy float64

	// Wayfinding is the summed path probability, set when requested.
	Wayfinding    float64
	HasWayfinding bool

	// Truncated is true when MaxPaths stopped the enumeration.
	Truncated bool
}

// Count returns the number of enumerated paths.
func (r *Result) Count() int { return len(r.Paths) }

// Row is one line of a Batch table.
type Row struct {
	Origin        int64
	Destination   int64
	NumPaths      int
	Redundancy    float64
	Wayfinding    float64
	HasWayfinding bool
}

// Table collects the results of one origin against many destinations.
type Table struct {
	Rows []Row

	// SegmentCounts sums the per-pair segment counts.
	SegmentCounts map[network.EdgeID]int

	// Results holds the full per-pair results in row order.
	Results []*Result
}
