package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"embedgraph/internal/domain"
	"embedgraph/internal/vectorstore/memory"
)

func subset(t *testing.T, dim int, words ...string) *memory.Subset {
	t.Helper()
	s := memory.NewSubset(dim)
	for i, w := range words {
		v := make(domain.Vector, dim)
		v[0] = float64(i + 1)
		require.NoError(t, s.Set(w, v))
	}
	return s
}

func TestCollectKeepsLanguageThenSubsetOrder(t *testing.T) {
	c, err := Collect([]Input{
		{Language: "af", Subset: subset(t, 2, "hond", "man")},
		{Language: "en", Subset: subset(t, 2, "dog", "man")},
	})
	require.NoError(t, err)

	keys := make([]string, 0, c.Len())
	for _, e := range c.Entries {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"hond_AF", "man_AF", "dog_EN", "man_EN"}, keys)
	assert.Equal(t, "en", c.Entries[3].Language)
	assert.Equal(t, "man", c.Entries[3].Word)
	assert.Equal(t, 2, c.Dimension)
	assert.Len(t, c.Vectors(), 4)
}

func TestCollectSkipsEmptySubsets(t *testing.T) {
	c, err := Collect([]Input{
		{Language: "af", Subset: memory.NewSubset(5)},
		{Language: "en", Subset: subset(t, 2, "king")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Dimension)
}

func TestCollectNothing(t *testing.T) {
	c, err := Collect(nil)
	require.NoError(t, err)
	assert.Zero(t, c.Len())
}

func TestCollectRejectsDimensionMismatch(t *testing.T) {
	_, err := Collect([]Input{
		{Language: "en", Subset: subset(t, 2, "king")},
		{Language: "de", Subset: subset(t, 3, "könig")},
	})
	assert.Error(t, err)
}

func TestCollectRejectsRepeatedLanguage(t *testing.T) {
	_, err := Collect([]Input{
		{Language: "en", Subset: subset(t, 2, "king")},
		{Language: "EN", Subset: subset(t, 2, "king")},
	})
	assert.Error(t, err)
}

func TestCollectIsDeterministic(t *testing.T) {
	build := func() []string {
		c, err := Collect([]Input{
			{Language: "de", Subset: subset(t, 1, "zeit", "person", "jahr")},
			{Language: "en", Subset: subset(t, 1, "time", "person", "year")},
		})
		require.NoError(t, err)
		var keys []string
		for _, e := range c.Entries {
			keys = append(keys, e.Key)
		}
		return keys
	}
	assert.Equal(t, build(), build())
}
