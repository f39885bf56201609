package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"embedgraph/internal/config"
	"embedgraph/internal/domain"
	"embedgraph/internal/export"
	"embedgraph/internal/graph"
	"embedgraph/internal/metrics"
	"embedgraph/internal/projection"
	"embedgraph/internal/service"
	"embedgraph/internal/similarity"
	"embedgraph/internal/tui"
	"embedgraph/internal/vectorstore/textfile"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath     string
		reuseCache  bool
		inspect     bool
		inspectOnly string
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./embedgraph.yaml or ~/.config/embedgraph/config.yaml if not provided)")
	flag.BoolVar(&reuseCache, "reuse-cache", false, "Load subsets from the cache files instead of scanning corpora when available")
	flag.BoolVar(&inspect, "inspect", false, "Open the dataset inspector after building")
	flag.StringVar(&inspectOnly, "inspect-only", "", "Open the inspector on an existing data.js without running the pipeline")
	flag.Parse()
	if flag.NArg() > 0 {
		fmt.Println("Usage: embedgraph [--config=embedgraph.yaml] [--reuse-cache] [--inspect] [--inspect-only=web/data.js]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, cfgPath, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config %s: %v", cfgPath, err)
	}

	log := newLogger(cfg.Log)
	log.WithFields(logrus.Fields{"config": cfgPath, "languages": cfg.Codes()}).Debug("config loaded")

	if inspectOnly != "" {
		ds, err := export.ReadJS(inspectOnly)
		if err != nil {
			log.Fatalf("read dataset: %v", err)
		}
		runInspector(ds, cfg.Inspector, log)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, err := textfile.NewStorage(config.Expand(cfg.Paths.CacheTemplate))
	if err != nil {
		log.Fatalf("cache init failed: %v", err)
	}

	js, err := export.NewJSWriter(config.Expand(cfg.Paths.Dataset), cfg.Paths.DatasetVariable)
	if err != nil {
		log.Fatalf("dataset writer init failed: %v", err)
	}
	sinks := []domain.Sink{js}
	if cfg.Export.SQLitePath != "" {
		db, err := export.NewSQLiteWriter(config.Expand(cfg.Export.SQLitePath))
		if err != nil {
			log.Fatalf("sqlite writer init failed: %v", err)
		}
		sinks = append(sinks, db)
	}

	langs := make([]service.Language, len(cfg.Languages))
	for i, l := range cfg.Languages {
		langs[i] = service.Language{Code: l.Code, Words: l.Words}
	}

	m := metrics.New()
	svc := service.NewPipeline(service.Options{
		Languages:  langs,
		CorpusPath: cfg.CorpusPath,
		Workers:    cfg.Pipeline.Workers,
		ReuseCache: cfg.Pipeline.ReuseCache || reuseCache,
	},
		cache,
		similarity.NewCosine(),
		projection.NewPCA(),
		graph.NewPalette(cfg.Colors.Default, cfg.Colors.ByLanguage),
		sinks,
		m,
		log,
	)

	ds, runErr := svc.Run(ctx)
	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(config.Expand(cfg.Metrics.Textfile)); err != nil {
			log.WithError(err).Warn("metrics textfile not written")
		}
	}
	if runErr != nil {
		log.Fatalf("pipeline failed: %v", runErr)
	}

	if inspect {
		runInspector(ds, cfg.Inspector, log)
	}
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.Level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.Warnf("unknown log level %q, using info", cfg.Level)
	}
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

func runInspector(ds *domain.GraphDataset, cfg config.InspectorConfig, log *logrus.Logger) {
	m := tui.New(graph.NewExplorer(ds, cfg.EdgeThreshold), cfg.TopK)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
