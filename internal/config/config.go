package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LangPlaceholder is replaced by a language code in path templates.
const LangPlaceholder = "{lang}"

// LanguageConfig is one language's curated vocabulary.
type LanguageConfig struct {
	Code  string   `yaml:"code"`
	Words []string `yaml:"words"`
}

// PathsConfig locates the corpora and the generated files.
type PathsConfig struct {
	CorpusTemplate  string `yaml:"corpus_template"`
	CacheTemplate   string `yaml:"cache_template"`
	Dataset         string `yaml:"dataset"`
	DatasetVariable string `yaml:"dataset_variable"`
}

// ColorsConfig maps language codes to node colors.
type ColorsConfig struct {
	Default    string            `yaml:"default"`
	ByLanguage map[string]string `yaml:"by_language"`
}

// PipelineConfig tunes extraction.
type PipelineConfig struct {
	Workers    int  `yaml:"workers"`
	ReuseCache bool `yaml:"reuse_cache"`
}

// ExportConfig enables optional dataset sinks.
type ExportConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// MetricsConfig controls the Prometheus textfile output.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// InspectorConfig configures the terminal dataset browser.
type InspectorConfig struct {
	TopK          int     `yaml:"top_k"`
	EdgeThreshold float64 `yaml:"edge_threshold"`
}

// LogConfig selects log level and output format ("text" or "json").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Languages []LanguageConfig `yaml:"languages"`
	Paths     PathsConfig      `yaml:"paths"`
	Colors    ColorsConfig     `yaml:"colors"`
	Pipeline  PipelineConfig   `yaml:"pipeline"`
	Export    ExportConfig     `yaml:"export"`
	Metrics   MetricsConfig    `yaml:"metrics"`
	Inspector InspectorConfig  `yaml:"inspector"`
	Log       LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	// seeded so an explicit edge_threshold of 0 survives decoding
	cfg := AppConfig{Inspector: defaultConfig().Inspector}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./embedgraph.yaml first, then ~/.config/embedgraph/config.yaml.
// If neither exists, it writes defaults to ~/.config/embedgraph/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "embedgraph.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the settings the pipeline cannot run without.
func (c *AppConfig) Validate() error {
	if len(c.Languages) == 0 {
		return errors.New("no languages configured")
	}
	seen := make(map[string]struct{}, len(c.Languages))
	for _, l := range c.Languages {
		code := strings.ToLower(strings.TrimSpace(l.Code))
		if code == "" {
			return errors.New("language with empty code")
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("language %q configured twice", l.Code)
		}
		seen[code] = struct{}{}
	}
	if !strings.Contains(c.Paths.CorpusTemplate, LangPlaceholder) {
		return fmt.Errorf("paths.corpus_template %q has no %s placeholder", c.Paths.CorpusTemplate, LangPlaceholder)
	}
	if !strings.Contains(c.Paths.CacheTemplate, LangPlaceholder) {
		return fmt.Errorf("paths.cache_template %q has no %s placeholder", c.Paths.CacheTemplate, LangPlaceholder)
	}
	if c.Paths.Dataset == "" {
		return errors.New("paths.dataset is empty")
	}
	if c.Inspector.EdgeThreshold < -1 || c.Inspector.EdgeThreshold > 1 {
		return fmt.Errorf("inspector.edge_threshold must be within [-1, 1], got %g", c.Inspector.EdgeThreshold)
	}
	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("pipeline.workers must not be negative, got %d", c.Pipeline.Workers)
	}
	return nil
}

// Codes returns the configured language codes in order.
func (c *AppConfig) Codes() []string {
	out := make([]string, len(c.Languages))
	for i, l := range c.Languages {
		out[i] = l.Code
	}
	return out
}

// CorpusPath returns the corpus file of lang.
func (c *AppConfig) CorpusPath(lang string) string {
	return Expand(strings.ReplaceAll(c.Paths.CorpusTemplate, LangPlaceholder, lang))
}

// Expand replaces a leading "~/" with the user's home directory.
func Expand(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "embedgraph", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Languages: defaultLanguages(),
		Paths: PathsConfig{
			CorpusTemplate:  "~/Downloads/wiki.{lang}.align.vec",
			CacheTemplate:   "smaller/{lang}_300_small_wiki.vec",
			Dataset:         "web/data.js",
			DatasetVariable: "data2",
		},
		Colors: ColorsConfig{
			Default:    "lightblue",
			ByLanguage: map[string]string{"af": "#F51AA4", "en": "pink", "de": "#7CFFCB"},
		},
		Inspector: InspectorConfig{TopK: 10, EdgeThreshold: 0.4},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if len(cfg.Languages) == 0 {
		cfg.Languages = def.Languages
	}
	if cfg.Paths.CorpusTemplate == "" {
		cfg.Paths.CorpusTemplate = def.Paths.CorpusTemplate
	}
	if cfg.Paths.CacheTemplate == "" {
		cfg.Paths.CacheTemplate = def.Paths.CacheTemplate
	}
	if cfg.Paths.Dataset == "" {
		cfg.Paths.Dataset = def.Paths.Dataset
	}
	if cfg.Paths.DatasetVariable == "" {
		cfg.Paths.DatasetVariable = def.Paths.DatasetVariable
	}
	if cfg.Colors.Default == "" {
		cfg.Colors.Default = def.Colors.Default
	}
	if cfg.Colors.ByLanguage == nil {
		cfg.Colors.ByLanguage = def.Colors.ByLanguage
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("EMBEDGRAPH_CORPUS_TEMPLATE"); v != "" {
		cfg.Paths.CorpusTemplate = v
	}
	if v := os.Getenv("EMBEDGRAPH_CACHE_TEMPLATE"); v != "" {
		cfg.Paths.CacheTemplate = v
	}
	if v := os.Getenv("EMBEDGRAPH_DATASET"); v != "" {
		cfg.Paths.Dataset = v
	}
	if v := os.Getenv("EMBEDGRAPH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
