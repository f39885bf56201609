package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"embedgraph/internal/atomicfile"
	"embedgraph/internal/domain"
)

const schema = `
CREATE TABLE runs (
	run_id     TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	languages  TEXT NOT NULL,
	node_count INTEGER NOT NULL
);
CREATE TABLE nodes (
	id    INTEGER PRIMARY KEY,
	label TEXT NOT NULL,
	color TEXT NOT NULL,
	x     REAL NOT NULL,
	y     REAL NOT NULL
);
CREATE TABLE similarities (
	i     INTEGER NOT NULL,
	j     INTEGER NOT NULL,
	score REAL,
	PRIMARY KEY (i, j)
);
CREATE INDEX idx_similarities_j ON similarities(j);
`

// SQLiteWriter stores the dataset in a fresh SQLite database: one row per
// node and one row per unordered pair (i < j). Undefined scores are NULL.
type SQLiteWriter struct {
	path string
}

func NewSQLiteWriter(path string) (*SQLiteWriter, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}
	return &SQLiteWriter{path: path}, nil
}

func (w *SQLiteWriter) Name() string { return "sqlite" }

// Write builds the database next to its destination and renames it into
// place, replacing any previous export.
func (w *SQLiteWriter) Write(ctx context.Context, run domain.RunInfo, ds *domain.GraphDataset) (err error) {
	if ds == nil {
		return errors.New("nil dataset")
	}
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", filepath.Base(w.path), time.Now().UnixNano()))
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	db, err := sql.Open("sqlite", tmp)
	if err != nil {
		return err
	}
	if err := fill(ctx, db, run, ds); err != nil {
		_ = db.Close()
		return err
	}
	if err := db.Close(); err != nil {
		return err
	}
	return atomicfile.Replace(tmp, w.path)
}

func fill(ctx context.Context, db *sql.DB, run domain.RunInfo, ds *domain.GraphDataset) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO runs(run_id, started_at, languages, node_count) VALUES(?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339), strings.Join(run.Languages, ","), len(ds.Nodes)); err != nil {
		return err
	}

	nodeStmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes(id, label, color, x, y) VALUES(?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer nodeStmt.Close()
	for _, n := range ds.Nodes {
		if _, err := nodeStmt.ExecContext(ctx, n.ID, n.Label, n.Color, n.X, n.Y); err != nil {
			return err
		}
	}

	simStmt, err := tx.PrepareContext(ctx, `INSERT INTO similarities(i, j, score) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer simStmt.Close()
	for i, row := range ds.Dists {
		for j := i + 1; j < len(row); j++ {
			var score any
			if row[j].Defined() {
				score = float64(row[j])
			}
			if _, err := simStmt.ExecContext(ctx, i, j, score); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

var _ domain.Sink = (*SQLiteWriter)(nil)
