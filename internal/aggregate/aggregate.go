// Package aggregate merges per-language subsets into one ordered collection
// keyed by (word, language).
package aggregate

import (
	"fmt"
	"strings"

	"embedgraph/internal/domain"
	"embedgraph/internal/vectorstore/memory"
)

// Input is one language's resolved subset.
type Input struct {
	Language string
	Subset   *memory.Subset
}

// CompositeKey returns word + "_" + the upper-cased language tag.
func CompositeKey(word, lang string) string {
	return word + "_" + strings.ToUpper(lang)
}

// Collect appends every subset entry in input order, then subset order.
// Empty subsets contribute nothing. All non-empty subsets must share one
// dimension.
func Collect(inputs []Input) (domain.Collection, error) {
	var out domain.Collection
	seen := make(map[string]struct{})
	for _, in := range inputs {
		if in.Language == "" {
			return domain.Collection{}, fmt.Errorf("subset without language tag")
		}
		if in.Subset == nil || in.Subset.Len() == 0 {
			continue
		}
		if out.Dimension == 0 {
			out.Dimension = in.Subset.Dimension()
		} else if in.Subset.Dimension() != out.Dimension {
			return domain.Collection{}, fmt.Errorf("language %s has dimension %d, want %d", in.Language, in.Subset.Dimension(), out.Dimension)
		}
		for _, e := range in.Subset.Entries() {
			key := CompositeKey(e.Word, in.Language)
			if _, dup := seen[key]; dup {
				return domain.Collection{}, fmt.Errorf("duplicate entry %s", key)
			}
			seen[key] = struct{}{}
			out.Entries = append(out.Entries, domain.TaggedEntry{
				Key:      key,
				Word:     e.Word,
				Language: in.Language,
				Vector:   e.Vector,
			})
		}
	}
	return out, nil
}
