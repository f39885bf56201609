package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"embedgraph/internal/atomicfile"
	"embedgraph/internal/corpus"
	"embedgraph/internal/vectorstore"
	"embedgraph/internal/vectorstore/memory"
)

// LangPlaceholder is replaced by the language code in path templates.
const LangPlaceholder = "{lang}"

// Storage keeps one subset cache file per language in the corpus text format.
type Storage struct {
	template string
}

// NewStorage creates a storage whose file paths come from template, e.g.
// "smaller/{lang}_300_small_wiki.vec".
func NewStorage(template string) (*Storage, error) {
	if !strings.Contains(template, LangPlaceholder) {
		return nil, fmt.Errorf("cache template %q has no %s placeholder", template, LangPlaceholder)
	}
	return &Storage{template: template}, nil
}

// Path returns the cache file path for lang.
func (s *Storage) Path(lang string) string {
	return strings.ReplaceAll(s.template, LangPlaceholder, lang)
}

func (s *Storage) Exists(lang string) bool {
	info, err := os.Stat(s.Path(lang))
	return err == nil && !info.IsDir()
}

// Save overwrites the cache file of lang. The file is written next to its
// destination and renamed into place once complete.
func (s *Storage) Save(ctx context.Context, lang string, subset *memory.Subset) error {
	if subset == nil {
		return errors.New("nil subset")
	}
	path := s.Path(lang)
	return atomicfile.Write(path, func(w *bufio.Writer) error {
		if err := corpus.WriteHeader(w, corpus.Header{Count: subset.Len(), Dimension: subset.Dimension()}); err != nil {
			return err
		}
		for _, e := range subset.Entries() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := corpus.WriteRow(w, e.Word, e.Vector); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads the cache file of lang.
func (s *Storage) Load(ctx context.Context, lang string) (*memory.Subset, error) {
	path := s.Path(lang)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := corpus.NewScanner(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	subset := memory.NewSubset(sc.Header().Dimension)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := sc.Vector()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := subset.Set(sc.Word(), vec); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return subset, nil
}

var _ vectorstore.Storage = (*Storage)(nil)
