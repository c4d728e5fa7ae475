package classify

import "sysafari.com/customs/mguard/tariff"

// MatchKind tells which signal produced a candidate's score.
type MatchKind string

const (
	KindExact   MatchKind = "exact"
	KindFuzzy   MatchKind = "fuzzy"
	KindSynonym MatchKind = "synonym"
	KindPartial MatchKind = "partial"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Candidate is one scored tariff entry for a query.
type Candidate struct {
	Entry        tariff.Entry `json:"entry"`
	Score        float64      `json:"score"`
	Kind         MatchKind    `json:"matchKind"`
	Confidence   Confidence   `json:"confidenceBand"`
	MatchedTerms []string     `json:"matchedTerms"`
}

// Result is the outcome of classifying one description.
type Result struct {
	Candidates        []Candidate `json:"candidates"`
	BestMatch         *Candidate  `json:"bestMatch"`
	IsAmbiguous       bool        `json:"isAmbiguous"`
	NeedsManualReview bool        `json:"needsManualReview"`
	Suggestions       []string    `json:"suggestions"`
}

// Policy holds the matcher thresholds.
type Policy struct {
	// MinScore is the score a best match must reach.
	MinScore float64
	// AmbiguityGap is the score distance under which the top two candidates,
	// both above MinScore, are considered ambiguous.
	AmbiguityGap float64
	// SuggestionFloor scales MinScore to get the lowest score still returned
	// as a candidate.
	SuggestionFloor float64
	MaxCandidates   int
}

const (
	DefaultMinScore        = 85
	DefaultAmbiguityGap    = 10
	DefaultSuggestionFloor = 0.5
	DefaultMaxCandidates   = 5

	HighConfidenceScore   = 90
	MediumConfidenceScore = 75

	codeAnchorScore = 95
	synonymBoost    = 10
	descriptionSim  = 0.8
)

// DefaultPolicy returns the thresholds used by customs operators.
func DefaultPolicy() Policy {
	return Policy{
		MinScore:        DefaultMinScore,
		AmbiguityGap:    DefaultAmbiguityGap,
		SuggestionFloor: DefaultSuggestionFloor,
		MaxCandidates:   DefaultMaxCandidates,
	}
}

// NoMatchSuggestions are returned when nothing reaches MinScore.
var NoMatchSuggestions = []string{
	"Intente con términos más específicos",
	"Use el código arancelario si lo conoce",
	"Busque por categoría de producto",
}

// ConfidenceFor maps a score to its confidence band.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= HighConfidenceScore:
		return ConfidenceHigh
	case score >= MediumConfidenceScore:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
