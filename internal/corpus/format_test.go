package corpus

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"embedgraph/internal/domain"
)

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader("2519370 300")
	require.NoError(t, err)
	assert.Equal(t, Header{Count: 2519370, Dimension: 300}, h)

	h, err = ParseHeader("  4 2 \r")
	require.NoError(t, err)
	assert.Equal(t, 2, h.Dimension)
}

func TestWriteRowParsesBack(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, WriteHeader(w, Header{Count: 1, Dimension: 3}))
	require.NoError(t, WriteRow(w, "könig", domain.Vector{0.1, -2.5e-7, 3}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "1 3\nkönig 0.1 -2.5e-07 3\n", buf.String())

	sc, err := NewScanner(&buf)
	require.NoError(t, err)
	require.True(t, sc.Scan())
	assert.Equal(t, "könig", sc.Word())
	v, err := sc.Vector()
	require.NoError(t, err)
	assert.Equal(t, domain.Vector{0.1, -2.5e-7, 3}, v)
	assert.False(t, sc.Scan())
	assert.NoError(t, sc.Err())
}

func TestScannerSkipsBlankLinesAndTrailingSpace(t *testing.T) {
	sc, err := NewScanner(bytes.NewBufferString("2 2\n\nman 1 2 \r\nwoman 3 4"))
	require.NoError(t, err)
	var words []string
	for sc.Scan() {
		words = append(words, sc.Word())
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []string{"man", "woman"}, words)
	assert.Equal(t, 4, sc.Line())
}
