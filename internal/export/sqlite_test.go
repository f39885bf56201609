package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"embedgraph/internal/domain"
)

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "graph.db")
	w, err := NewSQLiteWriter(path)
	require.NoError(t, err)

	run := domain.RunInfo{ID: "run-1", StartedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Languages: []string{"en", "af"}}
	ctx := context.Background()
	require.NoError(t, w.Write(ctx, run, sampleDataset()))
	// a second run replaces the first one
	run.ID = "run-2"
	require.NoError(t, w.Write(ctx, run, sampleDataset()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var runID, langs string
	var nodeCount int
	require.NoError(t, db.QueryRow(`SELECT run_id, languages, node_count FROM runs`).Scan(&runID, &langs, &nodeCount))
	assert.Equal(t, "run-2", runID)
	assert.Equal(t, "en,af", langs)
	assert.Equal(t, 3, nodeCount)

	var label, color string
	var x float64
	require.NoError(t, db.QueryRow(`SELECT label, color, x FROM nodes WHERE id = 2`).Scan(&label, &color, &x))
	assert.Equal(t, "hond_AF", label)
	assert.Equal(t, "#F51AA4", color)

	var pairs, nulls int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*), SUM(CASE WHEN score IS NULL THEN 1 ELSE 0 END) FROM similarities`).Scan(&pairs, &nulls))
	assert.Equal(t, 3, pairs)
	assert.Equal(t, 2, nulls)

	var score float64
	require.NoError(t, db.QueryRow(`SELECT score FROM similarities WHERE i = 0 AND j = 1`).Scan(&score))
	assert.InDelta(t, 0.25, score, 1e-12)
}

func TestNewSQLiteWriterNeedsPath(t *testing.T) {
	_, err := NewSQLiteWriter("")
	assert.Error(t, err)
}
