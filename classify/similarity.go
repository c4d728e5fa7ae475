package classify

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// similarity compares two normalized strings: 1 when equal, 0.95 when one
// contains the other, otherwise 1 - distance/maxLen floored at 0.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.95
	}

	maxLen := max(len(a), len(b))
	sim := 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
	if sim < 0 {
		return 0
	}
	return sim
}

// tokenScore rates how well the query tokens are covered by the target tokens:
// coverage (matched/total) times average strength (sum of best scores/total).
// fuzzyOnly is true when every matched token was matched by edit distance.
func tokenScore(query, target []string) (score float64, fuzzyOnly bool) {
	if len(query) == 0 || len(target) == 0 {
		return 0, false
	}

	var total float64
	matched, fuzzy := 0, 0
	for _, q := range query {
		best, viaEdit := 0.0, false
		for _, t := range target {
			switch {
			case q == t:
				best, viaEdit = 1, false
			case strings.Contains(t, q) || strings.Contains(q, t):
				if best < 0.9 {
					best, viaEdit = 0.9, false
				}
			default:
				if sim := similarity(q, t); sim > 0.7 && sim*0.8 > best {
					best, viaEdit = sim*0.8, true
				}
			}
			if best == 1 {
				break
			}
		}
		if best > 0.5 {
			matched++
			total += best
			if viaEdit {
				fuzzy++
			}
		}
	}

	n := float64(len(query))
	return (float64(matched) / n) * (total / n), matched > 0 && fuzzy == matched
}
