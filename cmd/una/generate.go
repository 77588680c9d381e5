package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/una/builder"
	"github.com/katalvlaran/una/logging"
	"github.com/katalvlaran/una/netio"
	"github.com/katalvlaran/una/network"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic network document",
}

func init() {
	pf := generateCmd.PersistentFlags()
	pf.Float64("spacing", 100, "junction spacing")
	pf.Float64("detour", 0, "lengths exceed the straight line by up to this factor")
	pf.Int64("seed", 1, "random seed")
	pf.Bool("locations", true, "place one location on every street")
	pf.Float64("min-weight", 1, "lowest junction weight")
	pf.Float64("max-weight", 1, "junction weights are drawn up to this bound")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "Rectangular street grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, builder.Grid(cfg.Generate.Rows, cfg.Generate.Cols))
		},
	}
	gridCmd.Flags().Int("rows", 10, "junction rows")
	gridCmd.Flags().Int("cols", 10, "junction columns")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Single straight street with evenly spaced junctions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, builder.Path(cfg.Generate.Nodes))
		},
	}
	cycleCmd := &cobra.Command{
		Use:   "cycle",
		Short: "Ring road",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, builder.Cycle(cfg.Generate.Nodes))
		},
	}
	starCmd := &cobra.Command{
		Use:   "star",
		Short: "Hub with radial streets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, builder.Star(cfg.Generate.Nodes))
		},
	}
	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "Random junctions joined with a fixed probability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, builder.RandomSparse(cfg.Generate.Nodes, cfg.Generate.Probability))
		},
	}
	randomCmd.Flags().Float64("probability", 0.1, "probability that a junction pair is joined")

	for _, c := range []*cobra.Command{pathCmd, cycleCmd, starCmd, randomCmd} {
		c.Flags().Int("nodes", 50, "number of junctions")
	}
	generateCmd.AddCommand(gridCmd, pathCmd, cycleCmd, starCmd, randomCmd)
}

func runGenerate(cmd *cobra.Command, con builder.Constructor) error {
	gc := cfg.Generate
	bopts := []builder.BuilderOption{
		builder.WithSeed(gc.Seed),
		builder.WithSpacing(gc.Spacing),
		builder.WithDetour(gc.Detour),
		builder.WithStreetNames("Street "),
	}
	switch {
	case gc.MaxWeight > gc.MinWeight:
		bopts = append(bopts, builder.WithUniformNodeWeight(gc.MinWeight, gc.MaxWeight))
	case gc.MinWeight != 1:
		bopts = append(bopts, builder.WithConstantNodeWeight(gc.MinWeight))
	}
	net, err := builder.BuildNetwork(nil, bopts, con)
	if err != nil {
		return err
	}
	var locs *network.Locations
	if gc.Locations {
		if locs, err = builder.Locations(net, builder.WithSeed(gc.Seed)); err != nil {
			return err
		}
	}
	logging.InfoContext(cmd.Context(), "network generated",
		"kind", cmd.Name(), "nodes", net.NodeCount(), "edges", len(net.Edges()))

	doc := netio.FromNetwork(net, locs)
	if cfg.Output == "" {
		return netio.Encode(os.Stdout, doc)
	}

	return netio.WriteFile(cfg.Output, doc)
}
