package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/una/metrics"
)

func TestPairCounter(t *testing.T) {
	c := metrics.PairsTotal.WithLabelValues(metrics.EngineRedundancy, metrics.OutcomeNoPath)
	before := testutil.ToFloat64(c)
	metrics.Pair(metrics.EngineRedundancy, metrics.OutcomeNoPath)
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestWriteTextfile(t *testing.T) {
	metrics.OriginsProcessed.Inc()
	path := filepath.Join(t.TempDir(), "una.prom")
	require.NoError(t, metrics.WriteTextfile(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "una_centrality_origins_total")
}
