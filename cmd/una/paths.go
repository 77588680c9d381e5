package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/una/config"
	"github.com/katalvlaran/una/logging"
	"github.com/katalvlaran/una/netio"
	"github.com/katalvlaran/una/paths"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Enumerate bounded simple paths from one origin to many destinations",
	Args:  cobra.NoArgs,
	RunE:  runPaths,
}

func init() {
	f := pathsCmd.Flags()
	f.Float64("coefficient", 1.2, "detour budget as a multiple of the shortest distance (>= 1)")
	f.Float64("radius", 0, "skip pairs farther apart than this (0 = unbounded)")
	f.Bool("wayfinding", false, "report the probability of reaching the destination by random choice")
	f.Int("max-paths", 0, "stop a pair after this many paths (0 = no limit)")
	f.Int64("origin", 0, "origin location ID")
	f.StringSlice("destinations", nil, "destination location IDs (default every destination)")
	f.String("segments", "", "also write aggregated segment counts as GeoJSON to this file")
}

func pathsOptions(cmd *cobra.Command, pc config.PathsConfig) []paths.Option {
	opts := []paths.Option{
		paths.WithContext(cmd.Context()),
		paths.WithCoefficient(pc.Coefficient),
		paths.WithMaxPaths(pc.MaxPaths),
	}
	if pc.Radius > 0 {
		opts = append(opts, paths.WithRadius(pc.Radius))
	}
	if pc.Wayfinding {
		opts = append(opts, paths.WithWayfinding())
	}
	if p := progress("paths"); p != nil {
		opts = append(opts, paths.WithProgress(p))
	}

	return opts
}

func runPaths(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	net, locs, err := loadNetwork(ctx)
	if err != nil {
		return err
	}
	pc := cfg.Paths
	dests, err := config.ParseIDs(pc.Destinations)
	if err != nil {
		return err
	}
	if len(dests) == 0 {
		dests = locs.Destinations()
	}

	tbl, err := paths.Batch(net, locs, pc.Origin, dests, pathsOptions(cmd, pc)...)
	if err != nil {
		return err
	}
	logging.InfoContext(ctx, "paths done", "origin", pc.Origin, "pairs", len(tbl.Rows))

	if pc.Segments != "" {
		if err := writeGeoJSON(pc.Segments, netio.SegmentCountsGeoJSON(net, tbl.SegmentCounts)); err != nil {
			return err
		}
	}

	w, format, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	switch format {
	case "geojson":
		all := geojson.NewFeatureCollection()
		for _, res := range tbl.Results {
			all.Features = append(all.Features, netio.PathsGeoJSON(res).Features...)
		}
		return json.NewEncoder(w).Encode(all)
	case "csv":
		return netio.WritePathsCSV(w, tbl)
	}

	return fmt.Errorf("una: unsupported paths output format %q", format)
}

func writeGeoJSON(path string, fc *geojson.FeatureCollection) error {
	raw, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
