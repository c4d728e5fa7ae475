package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sysafari.com/customs/mguard/tariff"
)

func defaultMatcher() *Matcher {
	return NewMatcher(tariff.Default(), DefaultPolicy())
}

func TestFindMatchesFrozenChicken(t *testing.T) {
	res := defaultMatcher().FindMatches("Pollo congelado")

	require.NotNil(t, res.BestMatch)
	assert.Equal(t, "0207.12.00.00", res.BestMatch.Entry.Code)
	assert.Equal(t, 100.0, res.BestMatch.Score)
	assert.Equal(t, KindExact, res.BestMatch.Kind)
	assert.Equal(t, ConfidenceHigh, res.BestMatch.Confidence)
	assert.Contains(t, res.BestMatch.MatchedTerms, "pollo")
	assert.False(t, res.IsAmbiguous)
	assert.False(t, res.NeedsManualReview)
	assert.Empty(t, res.Suggestions)
}

func TestFindMatchesLaptop(t *testing.T) {
	res := defaultMatcher().FindMatches("Laptop Dell")

	require.NotNil(t, res.BestMatch)
	assert.Equal(t, "8471.30.00.00", res.BestMatch.Entry.Code)
	assert.Equal(t, 95.0, res.BestMatch.Score)
	assert.Equal(t, KindExact, res.BestMatch.Kind)
	assert.False(t, res.NeedsManualReview)
}

func TestFindMatchesEmptyDescription(t *testing.T) {
	for _, desc := range []string{"", "   ", "¿?"} {
		res := defaultMatcher().FindMatches(desc)
		assert.Nil(t, res.BestMatch)
		assert.Empty(t, res.Candidates)
		assert.True(t, res.NeedsManualReview)
		assert.NotEmpty(t, res.Suggestions)
	}
}

func TestFindMatchesIsDeterministic(t *testing.T) {
	m := defaultMatcher()
	for _, desc := range []string{"Pollo congelado", "Cigarrillos", "iPhone 15", "Zapatos deportivos"} {
		assert.Equal(t, m.FindMatches(desc), m.FindMatches(desc), desc)
	}
}

func TestFindMatchesVerbatimDescriptionRoundTrip(t *testing.T) {
	m := defaultMatcher()
	for _, e := range tariff.DefaultEntries {
		res := m.FindMatches(e.Description)
		require.NotNil(t, res.BestMatch, e.Description)
		assert.Equal(t, e.Code, res.BestMatch.Entry.Code, e.Description)
		assert.Equal(t, KindExact, res.BestMatch.Kind, e.Description)
		assert.GreaterOrEqual(t, res.BestMatch.Score, 95.0, e.Description)
	}
}

func TestFindMatchesAmbiguousTobacco(t *testing.T) {
	res := defaultMatcher().FindMatches("Cigarrillos")

	require.GreaterOrEqual(t, len(res.Candidates), 2)
	assert.Equal(t, "2402.20.00.00", res.Candidates[0].Entry.Code)
	assert.Equal(t, "8543.40.00.00", res.Candidates[1].Entry.Code)
	assert.True(t, res.IsAmbiguous)
	assert.True(t, res.NeedsManualReview)
	require.NotNil(t, res.BestMatch)
	assert.Equal(t, "2402.20.00.00", res.BestMatch.Entry.Code)
}

func TestFindMatchesCodeAnchor(t *testing.T) {
	res := defaultMatcher().FindMatches("Producto 8471 computadora")

	require.NotNil(t, res.BestMatch)
	assert.Equal(t, "8471.30.00.00", res.BestMatch.Entry.Code)
	assert.Equal(t, 95.0, res.BestMatch.Score)
	assert.Equal(t, KindExact, res.BestMatch.Kind)
}

func TestFindMatchesSynonymBoost(t *testing.T) {
	res := defaultMatcher().FindMatchesMin("iPhone 15", 5)

	require.Len(t, res.Candidates, 1)
	c := res.Candidates[0]
	assert.Equal(t, "8517.13.00.00", c.Entry.Code)
	assert.Equal(t, 10.0, c.Score)
	assert.Equal(t, KindSynonym, c.Kind)
	assert.Equal(t, ConfidenceLow, c.Confidence)
	assert.ElementsMatch(t, []string{"celular", "telefono movil"}, c.MatchedTerms)
	assert.Nil(t, res.BestMatch)
}

func TestSynonymHitsIgnoresShortTokens(t *testing.T) {
	expanded := []string{"carne de res", "celular"}

	assert.Empty(t, synonymHits(expanded, []string{"de", "la"}))
	assert.Equal(t, []string{"celular"}, synonymHits(expanded, []string{"celulares"}))
	assert.Equal(t, []string{"carne de res"}, synonymHits(expanded, []string{"res"}))
}

func TestFindMatchesFuzzyTokens(t *testing.T) {
	store, err := tariff.NewStore([]tariff.Entry{
		{Code: "8528.72.00.00", Description: "Televisor de plasma para sala", Category: "Hogar", Unit: "u"},
	})
	require.NoError(t, err)

	res := NewMatcher(store, DefaultPolicy()).FindMatches("televisr plsma")

	require.Len(t, res.Candidates, 1)
	assert.Equal(t, KindFuzzy, res.Candidates[0].Kind)
	assert.Equal(t, 69.0, res.Candidates[0].Score)
	assert.Equal(t, ConfidenceLow, res.Candidates[0].Confidence)
	assert.Nil(t, res.BestMatch)
	assert.True(t, res.NeedsManualReview)
}

func TestResolve(t *testing.T) {
	m := defaultMatcher()
	cand := func(score float64) Candidate {
		return Candidate{Score: score, Confidence: ConfidenceFor(score)}
	}

	tests := []struct {
		name       string
		scores     []float64
		best       bool
		ambiguous  bool
		review     bool
		suggestion bool
	}{
		{"close top two", []float64{90, 88}, true, true, true, false},
		{"clear winner", []float64{95, 80}, true, false, false, false},
		{"gap exactly ten", []float64{98, 88}, true, false, false, false},
		{"medium best", []float64{88}, true, false, true, false},
		{"below minimum", []float64{80, 79}, false, false, true, true},
		{"second below minimum", []float64{86, 84}, true, false, true, false},
		{"nothing", nil, false, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cs []Candidate
			for _, s := range tt.scores {
				cs = append(cs, cand(s))
			}
			res := m.resolve(cs, DefaultMinScore)
			assert.Equal(t, tt.best, res.BestMatch != nil)
			assert.Equal(t, tt.ambiguous, res.IsAmbiguous)
			assert.Equal(t, tt.review, res.NeedsManualReview)
			assert.Equal(t, tt.suggestion, len(res.Suggestions) > 0)
		})
	}
}

func TestResolveKeepsAtMostMaxCandidates(t *testing.T) {
	m := defaultMatcher()
	var cs []Candidate
	for i := 0; i < 8; i++ {
		cs = append(cs, Candidate{Score: float64(100 - i*5)})
	}
	assert.Len(t, m.resolve(cs, DefaultMinScore).Candidates, DefaultMaxCandidates)
}

func TestConfidenceFor(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, ConfidenceFor(90))
	assert.Equal(t, ConfidenceMedium, ConfidenceFor(89))
	assert.Equal(t, ConfidenceMedium, ConfidenceFor(75))
	assert.Equal(t, ConfidenceLow, ConfidenceFor(74))
}
