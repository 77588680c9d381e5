// Package metrics holds the Prometheus collectors updated by the analysis
// engines during batch runs.
//
// Collectors live on a dedicated Registry rather than the global default, so
// a textfile written after a run holds only una series.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry gathers every una collector.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// Outcome label values for O-D pairs.
const (
	OutcomeOK          = "ok"
	OutcomeNoPath      = "no_path"
	OutcomeOutOfRadius = "out_of_radius"
)

// Engine label values.
const (
	EngineCentrality = "centrality"
	EngineRedundancy = "redundancy"
	EnginePaths      = "paths"
)

var (
	// OriginsProcessed counts completed centrality sweeps.
	OriginsProcessed = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "una_centrality_origins_total",
			Help: "Total number of origins swept by the centrality engine",
		},
	)

	// OriginDuration measures one centrality sweep.
	OriginDuration = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "una_centrality_origin_duration_seconds",
			Help:    "Duration of a single-origin centrality sweep in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		},
	)

	// PairsTotal counts O-D queries by engine and outcome.
	PairsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "una_od_pairs_total",
			Help: "Total number of origin-destination queries",
		},
		[]string{"engine", "outcome"},
	)

	// PathsEnumerated counts simple paths recorded by the path engine.
	PathsEnumerated = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "una_paths_enumerated_total",
			Help: "Total number of bounded simple paths recorded",
		},
	)

	// RedundancyIndex tracks the distribution of computed indices.
	RedundancyIndex = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "una_redundancy_index",
			Help:    "Distribution of redundancy indices",
			Buckets: []float64{1, 1.1, 1.25, 1.5, 2, 3, 5, 8},
		},
	)
)

// Pair records the outcome of one O-D query.
func Pair(engine, outcome string) {
	PairsTotal.WithLabelValues(engine, outcome).Inc()
}

// WriteTextfile writes the current values in the node-exporter textfile
// format. The file is written atomically.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
