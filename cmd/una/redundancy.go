package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/una/config"
	"github.com/katalvlaran/una/logging"
	"github.com/katalvlaran/una/netio"
	"github.com/katalvlaran/una/network"
	"github.com/katalvlaran/una/redundancy"
)

var redundancyCmd = &cobra.Command{
	Use:   "redundancy",
	Short: "Compute the redundancy index of every origin-destination pair",
	Args:  cobra.NoArgs,
	RunE:  runRedundancy,
}

func init() {
	f := redundancyCmd.Flags()
	f.Float64("coefficient", 1.2, "detour budget as a multiple of the shortest distance (>= 1)")
	f.Float64("radius", 0, "skip pairs farther apart than this (0 = unbounded)")
	f.Bool("weights", false, "account edges by the weight of their locations instead of length")
	f.StringSlice("origins", nil, "origin location IDs (default every origin)")
	f.StringSlice("destinations", nil, "destination location IDs (default every destination)")
	f.String("segments", "", "write the union of unique segments as GeoJSON when every pair shares one location")
}

func redundancyOptions(rc config.RedundancyConfig) []redundancy.Option {
	opts := []redundancy.Option{
		redundancy.WithCoefficient(rc.Coefficient),
		redundancy.WithWorkers(cfg.Workers),
	}
	if rc.Radius > 0 {
		opts = append(opts, redundancy.WithRadius(rc.Radius))
	}
	if rc.Weights {
		opts = append(opts, redundancy.WithWeights())
	}
	if p := progress("redundancy"); p != nil {
		opts = append(opts, redundancy.WithProgress(p))
	}

	return opts
}

func runRedundancy(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	net, locs, err := loadNetwork(ctx)
	if err != nil {
		return err
	}
	rc := cfg.Redundancy
	origins, err := config.ParseIDs(rc.Origins)
	if err != nil {
		return err
	}
	if len(origins) == 0 {
		origins = locs.Origins()
	}
	dests, err := config.ParseIDs(rc.Destinations)
	if err != nil {
		return err
	}
	if len(dests) == 0 {
		dests = locs.Destinations()
	}

	sums, err := redundancy.Batch(ctx, net, locs, origins, dests, redundancyOptions(rc)...)
	if err != nil {
		return err
	}
	logging.InfoContext(ctx, "redundancy done", "origins", len(sums), "destinations", len(dests))

	if rc.Segments != "" {
		if err := writeRedundancySegments(ctx, net, rc.Segments, origins, dests, sums); err != nil {
			return err
		}
	}

	w, format, err := output()
	if err != nil {
		return err
	}
	defer w.Close()
	if format != "csv" {
		return fmt.Errorf("una: unsupported redundancy output format %q", format)
	}

	return netio.WriteRedundancyCSV(w, sums)
}

// writeRedundancySegments exports the segments of a single-origin batch.
// Batches whose pairs share no location are skipped with a warning.
func writeRedundancySegments(ctx context.Context, net *network.Network, path string, origins, dests []int64, sums map[int64]redundancy.Summary) error {
	var pairs [][2]int64
	for _, o := range origins {
		for _, d := range dests {
			if o != d {
				pairs = append(pairs, [2]int64{o, d})
			}
		}
	}
	if !redundancy.CommonOrigin(pairs) {
		logging.WarnContext(ctx, "segments skipped: pairs share no common location", "pairs", len(pairs))
		return nil
	}

	seen := make(map[network.EdgeID]struct{})
	var segs []network.EdgeID
	for _, s := range sums {
		for _, eid := range s.UniqueSegments {
			if _, dup := seen[eid]; !dup {
				seen[eid] = struct{}{}
				segs = append(segs, eid)
			}
		}
	}
	slices.Sort(segs)

	return writeGeoJSON(path, netio.SegmentsGeoJSON(net, segs))
}
