// Package corpus streams pretrained embedding tables in the fastText text
// format and resolves a vocabulary against them in a single pass.
package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"embedgraph/internal/domain"
	"embedgraph/internal/vectorstore/memory"
	"embedgraph/internal/vocab"
)

// Result is the outcome of resolving one language's vocabulary.
type Result struct {
	Subset      *memory.Subset
	Missing     []string
	RowsScanned int
}

// Open opens a corpus file. Paths ending in ".gz" are decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open gzip corpus %s: %w", path, err)
	}
	return &gzipFile{Reader: zr, file: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return zerr
}

// Resolve looks up every word of words in the corpus read from r. For each
// word the first row, in file order, whose leading token has the same fold
// (see vocab.Fold) wins. The corpus is read once; reading stops as soon as
// every word is found. Words never found are returned in Missing and left out
// of the subset, whose order follows the deduplicated vocabulary.
func Resolve(ctx context.Context, r io.Reader, words []string) (*Result, error) {
	sc, err := NewScanner(r)
	if err != nil {
		return nil, err
	}
	targets := vocab.Dedupe(words)
	outstanding := make(map[string]int, len(targets))
	for i, w := range targets {
		outstanding[vocab.Fold(w)] = i
	}
	matchedWord := make([]string, len(targets))
	matchedVec := make([]domain.Vector, len(targets))

	rows := 0
	for len(outstanding) > 0 && sc.Scan() {
		rows++
		if rows%8192 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		fold := vocab.Fold(sc.Word())
		idx, ok := outstanding[fold]
		if !ok {
			continue
		}
		vec, err := sc.Vector()
		if err != nil {
			return nil, err
		}
		matchedWord[idx] = sc.Word()
		matchedVec[idx] = vec
		delete(outstanding, fold)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	res := &Result{Subset: memory.NewSubset(sc.Header().Dimension), RowsScanned: rows}
	for i, w := range targets {
		if matchedVec[i] == nil {
			res.Missing = append(res.Missing, w)
			continue
		}
		if err := res.Subset.Set(matchedWord[i], matchedVec[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// ResolveFile opens path and resolves words against it.
func ResolveFile(ctx context.Context, path string, words []string) (*Result, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	res, err := Resolve(ctx, rc, words)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
