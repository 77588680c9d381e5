// Package centrality defines the metric set, options, result and sentinel
// errors of the centrality engine.
//
// Options:
//
//	– Metrics:      which of reach, gravity, betweenness, closeness, straightness to compute.
//	– Origins:      nodes used as sources (nil means every node).
//	– Radius:       search radius; network distance unless Euclidean is set.
//	– Beta:         gravity decay parameter.
//	– Accumulators: per-edge cost names summed along shortest paths.
//	– Normalize:    metrics that get a normalized counterpart.
//	– Workers:      number of goroutines sharing the origin set.
//
// Errors (sentinel):
//
//	– ErrNilNetwork          if the network pointer is nil.
//	– ErrInvalidParameters   if there are more origins than nodes.
//	– ErrNoLocations         if a Euclidean radius is requested but a node has no point.
//	– ErrMissingAccumulator  if an edge lacks a requested accumulator.
package centrality

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/una/logging"
	"github.com/katalvlaran/una/network"
)

// Sentinel errors returned by Compute.
var (
	// ErrNilNetwork indicates that a nil *network.Network was passed.
	ErrNilNetwork = errors.New("centrality: network is nil")

	// ErrInvalidParameters indicates that the origin set is larger than the node set.
	ErrInvalidParameters = errors.New("centrality: size of origins exceeds size of nodes")

	// ErrNoLocations indicates a Euclidean radius on a network without node points.
	ErrNoLocations = errors.New("centrality: euclidean radius requires node locations")

	// ErrMissingAccumulator indicates an edge without a requested cost entry.
	ErrMissingAccumulator = errors.New("centrality: edge lacks accumulator")

	// ErrUnknownMetric is returned by ParseMetrics.
	ErrUnknownMetric = errors.New("centrality: unknown metric")
)

// Metric is a set of centrality measures.
type Metric uint8

// Individual metrics.
const (
	Reach Metric = 1 << iota
	Gravity
	Betweenness
	Closeness
	Straightness

	// None is the empty set.
	None Metric = 0

	// All selects every metric.
	All = Reach | Gravity | Betweenness | Closeness | Straightness
)

var metricNames = []struct {
	m    Metric
	name string
}{
	{Reach, network.FieldReach},
	{Gravity, network.FieldGravity},
	{Betweenness, network.FieldBetweenness},
	{Closeness, network.FieldCloseness},
	{Straightness, network.FieldStraightness},
}

// Has reports whether every metric of sub is in m.
func (m Metric) Has(sub Metric) bool { return m&sub == sub }

// String lists the member names joined by commas, e.g. "reach,closeness".
func (m Metric) String() string {
	if m == None {
		return "none"
	}
	var parts []string
	for _, mn := range metricNames {
		if m.Has(mn.m) {
			parts = append(parts, mn.name)
		}
	}

	return strings.Join(parts, ",")
}

// ParseMetrics turns names such as "reach", "Gravity" or "all" into a set.
func ParseMetrics(names ...string) (Metric, error) {
	var m Metric
	for _, raw := range names {
		for _, name := range strings.Split(raw, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if name == "all" {
				m |= All
				continue
			}
			found := false
			for _, mn := range metricNames {
				if mn.name == name {
					m |= mn.m
					found = true
					break
				}
			}
			if !found {
				return None, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
			}
		}
	}

	return m, nil
}

// WarnFunc receives non-fatal diagnostics.
type WarnFunc func(msg string, args ...any)

// ProgressFunc is invoked once per completed origin.
type ProgressFunc func(done, total int)

// Options configures Compute.
type Options struct {
	Ctx          context.Context
	Metrics      Metric
	Origins      []network.NodeID
	Radius       float64
	Euclidean    bool
	Beta         float64
	Accumulators []string
	Normalize    Metric
	Workers      int
	Progress     ProgressFunc
	Warn         WarnFunc
}

// Option represents a functional option for configuring Compute.
type Option func(*Options)

// WithContext makes Compute stop between origins once ctx is done.
// Panics if ctx is nil.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic("centrality: WithContext(nil)")
	}

	return func(o *Options) { o.Ctx = ctx }
}

// WithMetrics selects the metrics to compute.
func WithMetrics(m Metric) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithOrigins restricts the source set. IDs missing from the network are
// skipped with a warning but still count against the node total.
func WithOrigins(ids ...network.NodeID) Option {
	return func(o *Options) { o.Origins = append(make([]network.NodeID, 0, len(ids)), ids...) }
}

// WithRadius bounds the search by network distance. Panics if r < 0.
func WithRadius(r float64) Option {
	if r < 0 || math.IsNaN(r) {
		panic("centrality: WithRadius(r<0)")
	}

	return func(o *Options) { o.Radius, o.Euclidean = r, false }
}

// WithEuclideanRadius bounds metric accumulation by straight-line distance
// from the origin. Nodes outside it are still relaxed so that paths through
// them count. Panics if r < 0.
func WithEuclideanRadius(r float64) Option {
	if r < 0 || math.IsNaN(r) {
		panic("centrality: WithEuclideanRadius(r<0)")
	}

	return func(o *Options) { o.Radius, o.Euclidean = r, true }
}

// WithBeta sets the gravity decay parameter. Panics if beta < 0.
func WithBeta(beta float64) Option {
	if beta < 0 || math.IsNaN(beta) {
		panic("centrality: WithBeta(beta<0)")
	}

	return func(o *Options) { o.Beta = beta }
}

// WithAccumulators names per-edge costs to total along shortest paths.
func WithAccumulators(names ...string) Option {
	return func(o *Options) { o.Accumulators = append([]string(nil), names...) }
}

// WithNormalize selects the metrics that receive a normalized value.
func WithNormalize(m Metric) Option {
	return func(o *Options) { o.Normalize = m }
}

// WithWorkers spreads origins over n goroutines. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("centrality: WithWorkers(n<1)")
	}

	return func(o *Options) { o.Workers = n }
}

// WithProgress installs a per-origin progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) { o.Progress = fn }
}

// WithWarningSink replaces the default warning sink (logging.Warn).
func WithWarningSink(fn WarnFunc) Option {
	if fn == nil {
		panic("centrality: WithWarningSink(nil)")
	}

	return func(o *Options) { o.Warn = fn }
}

// DefaultOptions computes every metric from every node with an unbounded
// network radius, beta 0 and a single worker.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		Metrics: All,
		Radius:  math.Inf(1),
		Workers: 1,
		Warn:    logging.Warn,
	}
}

// Warning messages emitted by Compute.
const (
	WarnNoBetweennessNormalization = "Betweenness values were not normalized since not all nodes were used as origins"
	WarnNoStraightness             = "Straightness was not computed since some nodes have no location"
	WarnOriginNotFound             = "Origin is not a node of the network"
)

// Result summarizes a Compute call. Per-node values are written into
// network.Node.Metrics of every processed origin.
type Result struct {
	// Origins lists the processed origins in processing order.
	Origins []network.NodeID

	// Computed and Normalized are the metrics actually produced, after
	// straightness or betweenness normalization may have been dropped.
	Computed   Metric
	Normalized Metric

	// Accumulators echoes the accumulated cost names.
	Accumulators []string

	// Warnings records every message passed to the warning sink.
	Warnings []string
}

// Fields returns the node field names holding this run's output, in metric
// order with each normalized field after its raw one, then accumulators.
func (r *Result) Fields() []string {
	var out []string
	for _, mn := range metricNames {
		if !r.Computed.Has(mn.m) {
			continue
		}
		out = append(out, mn.name)
		if r.Normalized.Has(mn.m) {
			out = append(out, "norm_"+mn.name)
		}
	}

	return append(out, r.Accumulators...)
}
