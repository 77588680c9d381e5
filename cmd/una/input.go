package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/katalvlaran/una/logging"
	"github.com/katalvlaran/una/netio"
	"github.com/katalvlaran/una/network"
)

var errNoNetwork = errors.New("una: no network document given (--network)")

// loadNetwork reads and builds the configured document and warns when the
// network falls apart into several components.
func loadNetwork(ctx context.Context) (*network.Network, *network.Locations, error) {
	if cfg.Network == "" {
		return nil, nil, errNoNetwork
	}
	doc, err := netio.LoadFile(cfg.Network)
	if err != nil {
		return nil, nil, err
	}
	net, locs, err := doc.Build()
	if err != nil {
		return nil, nil, err
	}
	if comps := net.Components(); len(comps) > 1 {
		logging.WarnContext(ctx, "network is disconnected", "components", len(comps))
	}
	logging.InfoContext(ctx, "network loaded",
		"file", cfg.Network, "nodes", net.NodeCount(), "edges", len(net.Edges()), "locations", locs.Len())

	return net, locs, nil
}

// output opens the configured output, stdout when none is set. The
// returned format is the lower-case extension without the dot.
func output() (io.WriteCloser, string, error) {
	if cfg.Output == "" {
		return nopCloser{os.Stdout}, "csv", nil
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return nil, "", fmt.Errorf("create output: %w", err)
	}

	return f, strings.TrimPrefix(strings.ToLower(filepath.Ext(cfg.Output)), "."), nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// progress returns a callback that drives a terminal bar, or nil when
// progress output is disabled. Engines may call it from several workers.
func progress(desc string) func(done, total int) {
	if !cfg.Progress {
		return nil
	}
	var (
		once sync.Once
		bar  *progressbar.ProgressBar
	)

	return func(done, total int) {
		once.Do(func() {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription(desc),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		})
		_ = bar.Set(done)
	}
}
