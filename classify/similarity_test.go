package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityEditDistance(t *testing.T) {
	// one insertion over seven characters
	assert.InDelta(t, 1-1.0/7.0, similarity("celuar", "celular"), 1e-9)
	// two substitutions over six characters
	assert.InDelta(t, 1-2.0/6.0, similarity("laptop", "lapsap"), 1e-9)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("laptop", "laptop"))
	assert.Equal(t, 0.95, similarity("laptop dell", "laptop"))
	assert.Equal(t, 0.95, similarity("laptop", "laptop dell"))
	assert.Equal(t, 0.0, similarity("", "laptop"))
	assert.InDelta(t, 1-3.0/7.0, similarity("kitten", "sitting"), 1e-9)
	assert.Equal(t, 0.0, similarity("abc", "xyz"))
}

func TestTokenScore(t *testing.T) {
	score, fuzzy := tokenScore([]string{"pollo", "congelado"}, []string{"pollo", "congelado", "alimentos"})
	assert.Equal(t, 1.0, score)
	assert.False(t, fuzzy)

	// one exact of two: coverage 0.5 times strength 0.5
	score, _ = tokenScore([]string{"laptop", "dell"}, []string{"laptop", "electronica"})
	assert.InDelta(t, 0.25, score, 1e-9)

	// containment counts 0.9
	score, _ = tokenScore([]string{"vitamina"}, []string{"vitaminas", "salud"})
	assert.InDelta(t, 0.9, score, 1e-9)

	score, fuzzy = tokenScore([]string{"televisr"}, []string{"televisor"})
	assert.InDelta(t, (1-1.0/9.0)*0.8, score, 1e-9)
	assert.True(t, fuzzy)

	score, _ = tokenScore(nil, []string{"pollo"})
	assert.Zero(t, score)
}
