package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the counters of one pipeline process. Each instance owns its
// registry, so a batch run can flush it to a node_exporter textfile.
type Metrics struct {
	registry *prometheus.Registry

	// Vocabulary words found in a corpus, by language.
	WordsResolved *prometheus.CounterVec
	// Vocabulary words absent from a corpus, by language.
	WordsMissing *prometheus.CounterVec
	// Corpus rows read before the vocabulary was exhausted or the file ended.
	RowsScanned *prometheus.CounterVec
	// Languages served from the subset cache instead of a corpus scan.
	CacheHits *prometheus.CounterVec
	// Nodes in the last assembled dataset.
	Nodes prometheus.Gauge
	// Wall time per pipeline stage.
	StageDuration *prometheus.HistogramVec
	// Unix time of the last successful run.
	LastSuccess prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		WordsResolved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "embedgraph_words_resolved_total",
			Help: "Vocabulary words resolved from a corpus",
		}, []string{"language"}),
		WordsMissing: f.NewCounterVec(prometheus.CounterOpts{
			Name: "embedgraph_words_missing_total",
			Help: "Vocabulary words not found in a corpus",
		}, []string{"language"}),
		RowsScanned: f.NewCounterVec(prometheus.CounterOpts{
			Name: "embedgraph_corpus_rows_scanned_total",
			Help: "Corpus rows read during extraction",
		}, []string{"language"}),
		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "embedgraph_subset_cache_hits_total",
			Help: "Languages loaded from the subset cache",
		}, []string{"language"}),
		Nodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "embedgraph_dataset_nodes",
			Help: "Number of nodes in the last dataset",
		}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "embedgraph_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 60, 300, 1200},
		}, []string{"stage"}),
		LastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Name: "embedgraph_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveStage records the time elapsed since start for stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	m.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes the registry in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
