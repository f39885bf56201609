// Package export writes finished datasets to their external destinations.
package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"embedgraph/internal/atomicfile"
	"embedgraph/internal/domain"
)

// DefaultVariable is the name the web renderer reads the dataset from.
const DefaultVariable = "data2"

var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// JSWriter writes the dataset as a single JavaScript constant assignment.
type JSWriter struct {
	path     string
	variable string
}

func NewJSWriter(path, variable string) (*JSWriter, error) {
	if path == "" {
		return nil, errors.New("dataset path is empty")
	}
	if variable == "" {
		variable = DefaultVariable
	}
	if !identRe.MatchString(variable) {
		return nil, fmt.Errorf("invalid variable name %q", variable)
	}
	return &JSWriter{path: path, variable: variable}, nil
}

func (w *JSWriter) Name() string { return "js" }

func (w *JSWriter) Path() string { return w.path }

// Write replaces the dataset file with `const <variable> = <json>;`.
// Undefined similarities are written as null.
func (w *JSWriter) Write(ctx context.Context, _ domain.RunInfo, ds *domain.GraphDataset) error {
	if ds == nil {
		return errors.New("nil dataset")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return atomicfile.Write(w.path, func(bw *bufio.Writer) error {
		if _, err := fmt.Fprintf(bw, "const %s = ", w.variable); err != nil {
			return err
		}
		if _, err := bw.Write(payload); err != nil {
			return err
		}
		_, err := bw.WriteString(";\n")
		return err
	})
}

var assignRe = regexp.MustCompile(`^\s*(?:const|let|var)\s+[A-Za-z_$][A-Za-z0-9_$]*\s*=\s*`)

// ReadJS parses a dataset file written by JSWriter.
func ReadJS(path string) (*domain.GraphDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loc := assignRe.FindIndex(data)
	if loc == nil {
		return nil, fmt.Errorf("%s: no variable assignment found", path)
	}
	body := bytes.TrimRight(bytes.TrimSpace(data[loc[1]:]), ";")
	var ds domain.GraphDataset
	if err := json.Unmarshal(body, &ds); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(ds.Dists) != len(ds.Nodes) {
		return nil, fmt.Errorf("%s: %d nodes but %d similarity rows", path, len(ds.Nodes), len(ds.Dists))
	}
	return &ds, nil
}

var _ domain.Sink = (*JSWriter)(nil)
