// Package config loads una settings from defaults, an optional TOML file,
// UNA_* environment variables and command-line flags, in rising priority.
//
// Keys are dotted and single-word per level (centrality.radius,
// paths.maxpaths), so UNA_PATHS_MAXPATHS and the --max-paths flag of the
// paths command both land on the same key.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/una/centrality"
	"github.com/katalvlaran/una/logging"
)

// DefaultFile is read from the working directory when no explicit config
// path is given. Its absence is not an error.
const DefaultFile = "una.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "UNA_"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds all settings of a una run.
type Config struct {
	// Network is the path of the input document (YAML or JSON).
	Network string `koanf:"network"`

	// Output is the result path; its extension selects the format.
	Output string `koanf:"output"`

	Workers  int  `koanf:"workers"`
	Progress bool `koanf:"progress"`

	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`

	Centrality CentralityConfig `koanf:"centrality"`
	Redundancy RedundancyConfig `koanf:"redundancy"`
	Paths      PathsConfig      `koanf:"paths"`
	Generate   GenerateConfig   `koanf:"generate"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

// MetricsConfig names the Prometheus textfile written after a run.
// An empty File disables it.
type MetricsConfig struct {
	File string `koanf:"file"`
}

// CentralityConfig mirrors the centrality options. Radius and Euclidean
// of 0 mean unbounded and disabled respectively.
type CentralityConfig struct {
	Metrics      []string `koanf:"metrics"`
	Normalize    []string `koanf:"normalize"`
	Radius       float64  `koanf:"radius"`
	Euclidean    float64  `koanf:"euclidean"`
	Beta         float64  `koanf:"beta"`
	Accumulators []string `koanf:"accumulators"`
	Origins      []string `koanf:"origins"`
}

// RedundancyConfig mirrors the redundancy options. Radius 0 means unbounded.
type RedundancyConfig struct {
	Coefficient  float64  `koanf:"coefficient"`
	Radius       float64  `koanf:"radius"`
	Weights      bool     `koanf:"weights"`
	Origins      []string `koanf:"origins"`
	Destinations []string `koanf:"destinations"`

	// Segments optionally receives the union of unique segments as GeoJSON.
	// It is written only when every pair shares one location.
	Segments string `koanf:"segments"`
}

// PathsConfig mirrors the path enumeration options. Radius 0 means
// unbounded and MaxPaths 0 means no limit.
type PathsConfig struct {
	Coefficient  float64  `koanf:"coefficient"`
	Radius       float64  `koanf:"radius"`
	Wayfinding   bool     `koanf:"wayfinding"`
	MaxPaths     int      `koanf:"maxpaths"`
	Origin       int64    `koanf:"origin"`
	Destinations []string `koanf:"destinations"`

	// Segments optionally receives the aggregated segment counts as GeoJSON.
	Segments string `koanf:"segments"`
}

// GenerateConfig drives the synthetic network generators.
type GenerateConfig struct {
	Rows        int     `koanf:"rows"`
	Cols        int     `koanf:"cols"`
	Nodes       int     `koanf:"nodes"`
	Probability float64 `koanf:"probability"`
	Spacing     float64 `koanf:"spacing"`
	Detour      float64 `koanf:"detour"`
	Seed        int64   `koanf:"seed"`
	Locations   bool    `koanf:"locations"`

	// Junction weights are drawn from [MinWeight, MaxWeight); equal bounds
	// give every junction MinWeight.
	MinWeight float64 `koanf:"minweight"`
	MaxWeight float64 `koanf:"maxweight"`
}

// defaults returns the lowest-priority layer. Flags left unchanged never
// override a key present here.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"network":  "",
		"output":   "",
		"workers":  1,
		"progress": false,
		"log": map[string]interface{}{
			"level": "info",
			"json":  false,
		},
		"metrics": map[string]interface{}{
			"file": "",
		},
		"centrality": map[string]interface{}{
			"metrics":      []string{"all"},
			"normalize":    []string{},
			"radius":       0.0,
			"euclidean":    0.0,
			"beta":         0.0,
			"accumulators": []string{},
			"origins":      []string{},
		},
		"redundancy": map[string]interface{}{
			"coefficient":  1.2,
			"radius":       0.0,
			"weights":      false,
			"origins":      []string{},
			"destinations": []string{},
			"segments":     "",
		},
		"paths": map[string]interface{}{
			"coefficient":  1.2,
			"radius":       0.0,
			"wayfinding":   false,
			"maxpaths":     0,
			"origin":       0,
			"destinations": []string{},
			"segments":     "",
		},
		"generate": map[string]interface{}{
			"rows":        10,
			"cols":        10,
			"nodes":       50,
			"probability": 0.1,
			"spacing":     100.0,
			"detour":      0.0,
			"seed":        1,
			"locations":   true,
			"minweight":   1.0,
			"maxweight":   1.0,
		},
	}
}

// Load loads configuration from defaults, config file, environment
// variables and flags. Priority: Flags > Env > Config File > Defaults.
//
// path names the TOML file; when empty DefaultFile is tried and silently
// skipped if missing. section is the command whose local flags map under
// it (e.g. "paths" maps --max-paths to paths.maxpaths). f may be nil.
func Load(path string, f *pflag.FlagSet, section string) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(makeMapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// 3. Environment variables, e.g. UNA_CENTRALITY_RADIUS=800
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		p := posflag.ProviderWithFlag(f, ".", k, func(fl *pflag.Flag) (string, interface{}) {
			return FlagKey(section, fl.Name), posflag.FlagVal(f, fl)
		})
		if err := k.Load(p, nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// globalFlags are the persistent flags of the root command.
var globalFlags = map[string]string{
	"config":       "config",
	"network":      "network",
	"output":       "output",
	"workers":      "workers",
	"progress":     "progress",
	"log-level":    "log.level",
	"log-json":     "log.json",
	"metrics-file": "metrics.file",
}

// FlagKey returns the config key a flag of the given command section
// writes to. Unknown flags map under section with dashes removed.
func FlagKey(section, name string) string {
	if key, ok := globalFlags[name]; ok {
		return key
	}
	key := strings.ReplaceAll(name, "-", "")
	if section == "" {
		return key
	}

	return section + "." + key
}

// Validate rejects settings that no engine accepts.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers: must be at least 1, got %d", c.Workers))
	}

	cc := c.Centrality
	if _, err := centrality.ParseMetrics(cc.Metrics...); err != nil {
		errs = append(errs, fmt.Errorf("centrality.metrics: %w", err))
	}
	if _, err := centrality.ParseMetrics(cc.Normalize...); err != nil {
		errs = append(errs, fmt.Errorf("centrality.normalize: %w", err))
	}
	errs = appendNegative(errs, "centrality.radius", cc.Radius)
	errs = appendNegative(errs, "centrality.euclidean", cc.Euclidean)
	errs = appendNegative(errs, "centrality.beta", cc.Beta)
	errs = appendIDs(errs, "centrality.origins", cc.Origins)

	rc := c.Redundancy
	errs = appendCoefficient(errs, "redundancy.coefficient", rc.Coefficient)
	errs = appendNegative(errs, "redundancy.radius", rc.Radius)
	errs = appendIDs(errs, "redundancy.origins", rc.Origins)
	errs = appendIDs(errs, "redundancy.destinations", rc.Destinations)

	pc := c.Paths
	errs = appendCoefficient(errs, "paths.coefficient", pc.Coefficient)
	errs = appendNegative(errs, "paths.radius", pc.Radius)
	if pc.MaxPaths < 0 {
		errs = append(errs, fmt.Errorf("paths.maxpaths: negative value %d", pc.MaxPaths))
	}
	errs = appendIDs(errs, "paths.destinations", pc.Destinations)

	gc := c.Generate
	if !(gc.Spacing > 0) {
		errs = append(errs, fmt.Errorf("generate.spacing: must be positive, got %v", gc.Spacing))
	}
	errs = appendNegative(errs, "generate.detour", gc.Detour)
	if !(gc.Probability >= 0 && gc.Probability <= 1) {
		errs = append(errs, fmt.Errorf("generate.probability: %v outside [0,1]", gc.Probability))
	}
	errs = appendNegative(errs, "generate.minweight", gc.MinWeight)
	if math.IsInf(gc.MaxWeight, 0) || !(gc.MaxWeight >= gc.MinWeight) {
		errs = append(errs, fmt.Errorf("generate.maxweight: %v below minweight %v", gc.MaxWeight, gc.MinWeight))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func appendNegative(errs []error, key string, v float64) []error {
	if v < 0 || math.IsNaN(v) {
		return append(errs, fmt.Errorf("%s: negative value %v", key, v))
	}

	return errs
}

func appendCoefficient(errs []error, key string, v float64) []error {
	if !(v >= 1) {
		return append(errs, fmt.Errorf("%s: must be at least 1, got %v", key, v))
	}

	return errs
}

func appendIDs(errs []error, key string, list []string) []error {
	if _, err := ParseIDs(list); err != nil {
		return append(errs, fmt.Errorf("%s: %w", key, err))
	}

	return errs
}

// ParseIDs turns a list of integer IDs into values. Entries may hold
// several comma-separated IDs, as environment variables do.
func ParseIDs(list []string) ([]int64, error) {
	var ids []int64
	for _, raw := range list {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad id %q: %w", s, err)
			}
			ids = append(ids, id)
		}
	}

	return ids, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
