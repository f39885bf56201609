package vectorstore

import (
	"context"

	"embedgraph/internal/vectorstore/memory"
)

// Storage persists per-language subsets so later runs can skip the corpus scan.
type Storage interface {
	Save(ctx context.Context, lang string, subset *memory.Subset) error
	Load(ctx context.Context, lang string) (*memory.Subset, error)
	Exists(lang string) bool
}
