package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"embedgraph/internal/aggregate"
	"embedgraph/internal/corpus"
	"embedgraph/internal/domain"
	"embedgraph/internal/graph"
	"embedgraph/internal/metrics"
	"embedgraph/internal/vectorstore"
	"embedgraph/internal/vectorstore/memory"
)

// Language is one language to extract, with its curated vocabulary.
type Language struct {
	Code  string
	Words []string
}

// Options control which corpora are read and how.
type Options struct {
	Languages []Language
	// CorpusPath maps a language code to its corpus file.
	CorpusPath func(lang string) string
	// Workers bounds concurrent corpus scans; 0 means one per language.
	Workers int
	// ReuseCache loads a language from its subset cache when one exists
	// instead of scanning the corpus.
	ReuseCache bool
}

// Pipeline runs extraction → aggregation → similarity/projection → assembly → export.
type Pipeline struct {
	opts       Options
	cache      vectorstore.Storage
	similarity domain.SimilarityEngine
	projector  domain.Projector
	palette    graph.Palette
	sinks      []domain.Sink
	metrics    *metrics.Metrics
	log        logrus.FieldLogger
}

func NewPipeline(opts Options, cache vectorstore.Storage, similarity domain.SimilarityEngine, projector domain.Projector, palette graph.Palette, sinks []domain.Sink, m *metrics.Metrics, log logrus.FieldLogger) *Pipeline {
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{
		opts:       opts,
		cache:      cache,
		similarity: similarity,
		projector:  projector,
		palette:    palette,
		sinks:      sinks,
		metrics:    m,
		log:        log,
	}
}

// Run executes one full pipeline pass and returns the exported dataset. Any
// extraction or write error aborts the run; outputs already on disk from an
// earlier run are only replaced by complete files.
func (p *Pipeline) Run(ctx context.Context) (*domain.GraphDataset, error) {
	run := domain.RunInfo{ID: uuid.NewString(), StartedAt: time.Now()}
	for _, l := range p.opts.Languages {
		run.Languages = append(run.Languages, l.Code)
	}
	log := p.log.WithField("run_id", run.ID)
	log.WithField("languages", run.Languages).Info("Starting pipeline")

	start := time.Now()
	inputs, err := p.extractAll(ctx, log)
	if err != nil {
		return nil, err
	}
	p.metrics.ObserveStage("extract", start)

	start = time.Now()
	collection, err := aggregate.Collect(inputs)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	p.metrics.ObserveStage("aggregate", start)
	log.WithFields(logrus.Fields{"nodes": collection.Len(), "dimension": collection.Dimension}).Info("Aggregated subsets")

	vectors := collection.Vectors()
	start = time.Now()
	dists, err := p.similarity.Compute(vectors)
	if err != nil {
		return nil, fmt.Errorf("%s similarity: %w", p.similarity.Name(), err)
	}
	p.metrics.ObserveStage("similarity", start)

	start = time.Now()
	points, err := p.projector.Project(vectors)
	if err != nil {
		return nil, fmt.Errorf("%s projection: %w", p.projector.Name(), err)
	}
	p.metrics.ObserveStage("projection", start)

	dataset, err := graph.Assemble(collection, dists, points, p.palette)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	start = time.Now()
	for _, sink := range p.sinks {
		if err := sink.Write(ctx, run, dataset); err != nil {
			return nil, fmt.Errorf("write %s output: %w", sink.Name(), err)
		}
		log.WithField("sink", sink.Name()).Debug("Dataset written")
	}
	p.metrics.ObserveStage("export", start)

	p.metrics.Nodes.Set(float64(len(dataset.Nodes)))
	p.metrics.LastSuccess.SetToCurrentTime()
	log.WithFields(logrus.Fields{
		"nodes":    len(dataset.Nodes),
		"duration": time.Since(run.StartedAt).Round(time.Millisecond),
	}).Info("Pipeline finished")
	return dataset, nil
}

// extractAll resolves every language on a bounded worker pool. Results keep
// the configured language order regardless of completion order.
func (p *Pipeline) extractAll(ctx context.Context, log logrus.FieldLogger) ([]aggregate.Input, error) {
	langs := p.opts.Languages
	workers := p.opts.Workers
	if workers <= 0 {
		workers = len(langs)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]aggregate.Input, len(langs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, lang := range langs {
		g.Go(func() error {
			subset, err := p.extract(gctx, lang, log.WithField("language", lang.Code))
			if err != nil {
				return fmt.Errorf("language %s: %w", lang.Code, err)
			}
			results[i] = aggregate.Input{Language: lang.Code, Subset: subset}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) extract(ctx context.Context, lang Language, log logrus.FieldLogger) (*memory.Subset, error) {
	if p.opts.ReuseCache && p.cache.Exists(lang.Code) {
		subset, err := p.cache.Load(ctx, lang.Code)
		if err != nil {
			return nil, fmt.Errorf("load subset cache: %w", err)
		}
		p.metrics.CacheHits.WithLabelValues(lang.Code).Inc()
		log.WithField("words", subset.Len()).Info("Loaded subset from cache")
		return subset, nil
	}

	path := p.opts.CorpusPath(lang.Code)
	log.WithField("corpus", path).Info("Parsing language")
	res, err := corpus.ResolveFile(ctx, path, lang.Words)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Missing {
		log.WithFields(logrus.Fields{"word": w, "corpus": path}).Warn("Word not found in corpus")
	}
	p.metrics.RowsScanned.WithLabelValues(lang.Code).Add(float64(res.RowsScanned))
	p.metrics.WordsResolved.WithLabelValues(lang.Code).Add(float64(res.Subset.Len()))
	p.metrics.WordsMissing.WithLabelValues(lang.Code).Add(float64(len(res.Missing)))

	if err := p.cache.Save(ctx, lang.Code, res.Subset); err != nil {
		return nil, fmt.Errorf("save subset cache: %w", err)
	}
	log.WithFields(logrus.Fields{"words": res.Subset.Len(), "missing": len(res.Missing), "rows": res.RowsScanned}).Info("Extracted subset")
	return res.Subset, nil
}

var _ domain.PipelineService = (*Pipeline)(nil)
