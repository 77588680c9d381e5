package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/una/centrality"
	"github.com/katalvlaran/una/config"
	"github.com/katalvlaran/una/logging"
	"github.com/katalvlaran/una/netio"
	"github.com/katalvlaran/una/network"
)

var centralityCmd = &cobra.Command{
	Use:   "centrality",
	Short: "Compute reach, gravity, betweenness, closeness and straightness per node",
	Args:  cobra.NoArgs,
	RunE:  runCentrality,
}

func init() {
	f := centralityCmd.Flags()
	f.StringSlice("metrics", []string{"all"}, "metrics to compute (reach,gravity,betweenness,closeness,straightness,all)")
	f.StringSlice("normalize", nil, "metrics to normalize")
	f.Float64("radius", 0, "network search radius (0 = unbounded)")
	f.Float64("euclidean", 0, "straight-line search radius (0 = disabled)")
	f.Float64("beta", 0, "gravity distance decay")
	f.StringSlice("accumulators", nil, "edge cost names summed along shortest paths")
	f.StringSlice("origins", nil, "origin node IDs (default every node)")
}

func centralityOptions(ctx context.Context, cc config.CentralityConfig) ([]centrality.Option, error) {
	want, err := centrality.ParseMetrics(cc.Metrics...)
	if err != nil {
		return nil, err
	}
	norm, err := centrality.ParseMetrics(cc.Normalize...)
	if err != nil {
		return nil, err
	}
	opts := []centrality.Option{
		centrality.WithContext(ctx),
		centrality.WithMetrics(want),
		centrality.WithNormalize(norm),
		centrality.WithBeta(cc.Beta),
		centrality.WithWorkers(cfg.Workers),
		centrality.WithAccumulators(cc.Accumulators...),
	}
	if cc.Radius > 0 {
		opts = append(opts, centrality.WithRadius(cc.Radius))
	}
	if cc.Euclidean > 0 {
		opts = append(opts, centrality.WithEuclideanRadius(cc.Euclidean))
	}
	ids, err := config.ParseIDs(cc.Origins)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		origins := make([]network.NodeID, len(ids))
		for i, id := range ids {
			origins[i] = network.NodeID(id)
		}
		opts = append(opts, centrality.WithOrigins(origins...))
	}
	if p := progress("centrality"); p != nil {
		opts = append(opts, centrality.WithProgress(p))
	}

	return opts, nil
}

func runCentrality(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	net, _, err := loadNetwork(ctx)
	if err != nil {
		return err
	}
	opts, err := centralityOptions(ctx, cfg.Centrality)
	if err != nil {
		return err
	}
	res, err := centrality.Compute(net, opts...)
	if err != nil {
		return err
	}
	logging.InfoContext(ctx, "centrality done",
		"origins", len(res.Origins), "metrics", res.Computed.String(), "warnings", len(res.Warnings))

	w, format, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	fields := res.Fields()
	switch format {
	case "geojson":
		fc, err := netio.NodesGeoJSON(net, nil, fields)
		if err != nil {
			return err
		}
		return json.NewEncoder(w).Encode(fc)
	case "csv", "":
		tbl := netio.NewTable(net, fields...)
		if err := netio.WriteMetrics(net, nil, tbl, fields); err != nil {
			return err
		}
		return tbl.WriteCSV(w)
	}

	return fmt.Errorf("una: unsupported centrality output format %q", format)
}
