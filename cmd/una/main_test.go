package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/una/netio"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(context.Background())
}

// TestCommands generates a grid and runs every analysis over it.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	doc := filepath.Join(dir, "grid.yaml")

	require.NoError(t, execute(t, "generate", "grid", "--rows", "3", "--cols", "3", "-o", doc, "--log-level", "warn",
		"--min-weight", "2", "--max-weight", "5"))
	d, err := netio.LoadFile(doc)
	require.NoError(t, err)
	assert.Len(t, d.Edges, 12)
	assert.Len(t, d.Locations, 12)
	require.Len(t, d.Nodes, 9, "drawn weights are written per junction")
	for _, nd := range d.Nodes {
		require.NotNil(t, nd.Weight)
		assert.GreaterOrEqual(t, *nd.Weight, 2.0)
		assert.Less(t, *nd.Weight, 5.0)
	}

	out := filepath.Join(dir, "centrality.csv")
	metricsFile := filepath.Join(dir, "una.prom")
	require.NoError(t, execute(t, "centrality", "-n", doc, "--metrics", "reach,betweenness", "-o", out,
		"--metrics-file", metricsFile))
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.Equal(t, "node,x,y,reach,betweenness", lines[0])
	assert.Len(t, lines, 10)
	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "una_centrality_origins_total")

	out = filepath.Join(dir, "redundancy.csv")
	unique := filepath.Join(dir, "unique.geojson")
	require.NoError(t, execute(t, "redundancy", "-n", doc, "--origins", "0", "--destinations", "5,7",
		"--segments", unique, "-o", out))
	raw, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "origin,n,mean,stdev,min,max,segments\n0,2,"))
	raw, err = os.ReadFile(unique)
	require.NoError(t, err, "one origin shares every pair")
	assert.Contains(t, string(raw), `"FeatureCollection"`)
	assert.Contains(t, string(raw), `"LineString"`)

	out = filepath.Join(dir, "paths.geojson")
	segs := filepath.Join(dir, "segments.geojson")
	require.NoError(t, execute(t, "paths", "-n", doc, "--origin", "0", "--destinations", "11",
		"--coefficient", "1.5", "--segments", segs, "-o", out))
	raw, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"FeatureCollection"`)
	_, err = os.Stat(segs)
	assert.NoError(t, err)
}

func TestCommands_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.ErrorIs(t, execute(t, "centrality", "-n", ""), errNoNetwork)
	assert.Error(t, execute(t, "paths", "-n", "missing.yaml"))
	assert.Error(t, execute(t, "redundancy", "-n", "missing.yaml", "--coefficient", "0.5"))
}
