package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreIndependentPerInstance(t *testing.T) {
	a, b := New(), New()
	a.WordsResolved.WithLabelValues("en").Add(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(a.WordsResolved.WithLabelValues("en")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.WordsResolved.WithLabelValues("en")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.WordsMissing.WithLabelValues("af").Inc()
	m.Nodes.Set(42)
	m.ObserveStage("similarity", time.Now())

	path := filepath.Join(t.TempDir(), "textfile", "embedgraph.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, `embedgraph_words_missing_total{language="af"} 1`)
	assert.Contains(t, s, "embedgraph_dataset_nodes 42")
	assert.Contains(t, s, `embedgraph_stage_duration_seconds_count{stage="similarity"} 1`)
}
