package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/una/config"
)

// isolate runs the test in an empty directory so no una.toml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := config.Load("", nil, "")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, []string{"all"}, cfg.Centrality.Metrics)
	assert.Equal(t, 1.2, cfg.Redundancy.Coefficient)
	assert.Equal(t, 1.2, cfg.Paths.Coefficient)
	assert.Equal(t, 100.0, cfg.Generate.Spacing)
	assert.True(t, cfg.Generate.Locations)
}

func TestLoad_Layers(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, config.DefaultFile), `
network = "city.yaml"
workers = 4

[centrality]
metrics = ["reach", "betweenness"]
radius = 800.0

[paths]
coefficient = 1.5
maxpaths = 100
`)
	t.Setenv("UNA_CENTRALITY_RADIUS", "1200")
	t.Setenv("UNA_LOG_LEVEL", "debug")

	fs := pflag.NewFlagSet("paths", pflag.ContinueOnError)
	fs.Int("workers", 1, "")
	fs.Float64("coefficient", 1.2, "")
	fs.Int("max-paths", 0, "")
	require.NoError(t, fs.Parse([]string{"--max-paths=7"}))

	cfg, err := config.Load("", fs, "paths")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "city.yaml", cfg.Network, "file")
	assert.Equal(t, 4, cfg.Workers, "unchanged flag keeps the file value")
	assert.Equal(t, []string{"reach", "betweenness"}, cfg.Centrality.Metrics)
	assert.Equal(t, 1200.0, cfg.Centrality.Radius, "env beats file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 1.5, cfg.Paths.Coefficient)
	assert.Equal(t, 7, cfg.Paths.MaxPaths, "flag beats file")
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "other.toml")
	writeFile(t, path, "[log]\njson = true\n")

	cfg, err := config.Load(path, nil, "")
	require.NoError(t, err)
	assert.True(t, cfg.Log.JSON)

	_, err = config.Load(filepath.Join(dir, "missing.toml"), nil, "")
	assert.Error(t, err, "an explicit path must exist")

	writeFile(t, path, "workers = [")
	_, err = config.Load(path, nil, "")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)
	cases := map[string]func(*config.Config){
		"coefficient": func(c *config.Config) { c.Paths.Coefficient = 0.9 },
		"redundancy":  func(c *config.Config) { c.Redundancy.Coefficient = 0 },
		"radius":      func(c *config.Config) { c.Centrality.Radius = -1 },
		"beta":        func(c *config.Config) { c.Centrality.Beta = -0.1 },
		"metric":      func(c *config.Config) { c.Centrality.Metrics = []string{"pagerank"} },
		"normalize":   func(c *config.Config) { c.Centrality.Normalize = []string{"reach,foo"} },
		"level":       func(c *config.Config) { c.Log.Level = "loud" },
		"workers":     func(c *config.Config) { c.Workers = 0 },
		"ids":         func(c *config.Config) { c.Redundancy.Origins = []string{"1,x"} },
		"maxpaths":    func(c *config.Config) { c.Paths.MaxPaths = -1 },
		"probability": func(c *config.Config) { c.Generate.Probability = 1.5 },
		"spacing":     func(c *config.Config) { c.Generate.Spacing = 0 },
		"minweight":   func(c *config.Config) { c.Generate.MinWeight = -1 },
		"maxweight":   func(c *config.Config) { c.Generate.MaxWeight = 0.5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.Load("", nil, "")
			require.NoError(t, err)
			mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := config.ParseIDs([]string{"3", " 1, 2 ", ""})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)

	ids, err = config.ParseIDs(nil)
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = config.ParseIDs([]string{"1.5"})
	assert.Error(t, err)
}

func TestFlagKey(t *testing.T) {
	assert.Equal(t, "log.level", config.FlagKey("paths", "log-level"))
	assert.Equal(t, "paths.maxpaths", config.FlagKey("paths", "max-paths"))
	assert.Equal(t, "generate.rows", config.FlagKey("generate", "rows"))
	assert.Equal(t, "seed", config.FlagKey("", "seed"))
}
