package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/una/config"
	"github.com/katalvlaran/una/logging"
	"github.com/katalvlaran/una/metrics"
)

// cfg is the configuration of the running command, set before RunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "una",
	Short:         "Urban network analysis: centrality, redundancy and path enumeration",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		if cfg == nil || cfg.Metrics.File == "" {
			return nil
		}
		if err := metrics.WriteTextfile(cfg.Metrics.File); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logging.InfoContext(cmd.Context(), "metrics written", "file", cfg.Metrics.File)

		return nil
	},
}

// persistentPreRunE is attached to rootCmd in init: it refers to rootCmd
// through section, so it cannot appear in rootCmd's initializer.
func persistentPreRunE(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path, cmd.Flags(), section(cmd))
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	logging.SetJSONOutput(c.Log.JSON)
	lvl, _ := logging.ParseLevel(c.Log.Level)
	logging.SetLevel(lvl)

	ctx := logging.WithRunID(cmd.Context(), logging.NewRunID())
	cmd.SetContext(ctx)
	logging.DebugContext(ctx, "configuration loaded", "command", cmd.CommandPath())

	return nil
}

func init() {
	rootCmd.PersistentPreRunE = persistentPreRunE

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "TOML config file (default ./"+config.DefaultFile+" when present)")
	pf.StringP("network", "n", "", "network document (YAML or JSON)")
	pf.StringP("output", "o", "", "output file; extension selects the format (default stdout CSV)")
	pf.Int("workers", 1, "parallel workers")
	pf.Bool("progress", false, "show a progress bar on stderr")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.Bool("log-json", false, "log as JSON")
	pf.String("metrics-file", "", "write Prometheus metrics to this textfile after the run")

	rootCmd.AddCommand(centralityCmd, redundancyCmd, pathsCmd, generateCmd)
}

// section returns the config section of cmd: its own name for top-level
// commands and the parent's name for nested ones (generate grid).
func section(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent() != rootCmd {
		cmd = cmd.Parent()
	}
	if cmd == rootCmd {
		return ""
	}

	return cmd.Name()
}
