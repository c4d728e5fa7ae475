// Package classify maps free-text product descriptions to tariff entries with
// a deterministic token/edit-distance scorer.
package classify

import (
	"math"
	"sort"
	"strings"

	"sysafari.com/customs/mguard/tariff"
	"sysafari.com/customs/mguard/textnorm"
)

// Matcher scores descriptions against a tariff store. It holds no mutable
// state and is safe for concurrent use.
type Matcher struct {
	store   *tariff.Store
	policy  Policy
	targets []target
}

type target struct {
	entry       tariff.Entry
	tokens      []string
	description string
	anchor      string
}

func NewMatcher(store *tariff.Store, policy Policy) *Matcher {
	if policy.MaxCandidates <= 0 {
		policy.MaxCandidates = DefaultMaxCandidates
	}

	m := &Matcher{store: store, policy: policy}
	for _, e := range store.Entries() {
		m.targets = append(m.targets, target{
			entry:       e,
			tokens:      textnorm.Tokenize(e.Description + " " + e.Category),
			description: textnorm.Normalize(e.Description),
			anchor:      codeAnchor(e.Code),
		})
	}
	return m
}

func (m *Matcher) Policy() Policy {
	return m.policy
}

// FindMatches classifies description with the configured minimum score.
func (m *Matcher) FindMatches(description string) Result {
	return m.FindMatchesMin(description, m.policy.MinScore)
}

// FindMatchesMin classifies description with an explicit minimum score.
func (m *Matcher) FindMatchesMin(description string, minScore float64) Result {
	query := textnorm.Normalize(description)
	if query == "" {
		return m.resolve(nil, minScore)
	}

	tokens := textnorm.Tokenize(description)
	expanded := m.store.ExpandTerms(description)
	floor := minScore * m.policy.SuggestionFloor

	var candidates []Candidate
	for _, t := range m.targets {
		c := m.score(query, tokens, expanded, t)
		if c.Score >= floor {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return m.resolve(candidates, minScore)
}

func (m *Matcher) score(query string, tokens, expanded []string, t target) Candidate {
	base, fuzzyOnly := tokenScore(tokens, t.tokens)
	score := base * 100
	kind := KindPartial
	if fuzzyOnly {
		kind = KindFuzzy
	}

	if t.anchor != "" && strings.Contains(query, t.anchor) {
		score = math.Max(score, codeAnchorScore)
		kind = KindExact
	}

	matched := synonymHits(expanded, t.tokens)
	if len(matched) > 0 {
		score = math.Min(100, score+synonymBoost)
		if kind != KindExact {
			kind = KindSynonym
		}
	}

	if sim := similarity(query, t.description); sim > descriptionSim {
		score = math.Max(score, sim*100)
		kind = KindExact
	}

	score = math.Round(score)
	return Candidate{
		Entry:        t.entry,
		Score:        score,
		Kind:         kind,
		Confidence:   ConfidenceFor(score),
		MatchedTerms: matched,
	}
}

func (m *Matcher) resolve(candidates []Candidate, minScore float64) Result {
	if len(candidates) > m.policy.MaxCandidates {
		candidates = candidates[:m.policy.MaxCandidates]
	}

	res := Result{Candidates: candidates}
	if len(candidates) >= 2 &&
		candidates[0].Score >= minScore &&
		candidates[1].Score >= minScore &&
		candidates[0].Score-candidates[1].Score < m.policy.AmbiguityGap {
		res.IsAmbiguous = true
	}
	if len(candidates) > 0 && candidates[0].Score >= minScore {
		best := candidates[0]
		res.BestMatch = &best
	}
	res.NeedsManualReview = res.BestMatch == nil || res.IsAmbiguous || res.BestMatch.Confidence != ConfidenceHigh
	if res.BestMatch == nil {
		res.Suggestions = append([]string(nil), NoMatchSuggestions...)
	}
	return res
}

// synonymHits returns the expanded terms found in the target tokens. A term
// may contain a token only when the token has three or more characters, so
// articles like "de" never fire the boost.
func synonymHits(expanded, tokens []string) []string {
	var hits []string
	for _, term := range expanded {
		for _, tok := range tokens {
			if strings.Contains(tok, term) || (len(tok) >= 3 && strings.Contains(term, tok)) {
				hits = append(hits, term)
				break
			}
		}
	}
	return hits
}

// codeAnchor is the 4-digit heading of a tariff code.
func codeAnchor(code string) string {
	digits := strings.ReplaceAll(textnorm.Normalize(code), " ", "")
	if len(digits) < 4 {
		return ""
	}
	return digits[:4]
}
