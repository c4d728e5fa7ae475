// Package review is the operator path for fixing a liquidation by hand:
// search the tariff, pick an entry, recompute.
package review

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/regulatory"
	"sysafari.com/customs/mguard/tariff"
	"sysafari.com/customs/mguard/tax"
	"sysafari.com/customs/mguard/textnorm"
)

const (
	MinQueryLength = 2
	MaxSuggestions = 10
)

var (
	ErrNotCalculated = errors.New("liquidation is not calculated")
	ErrAlreadyPaid   = errors.New("liquidation is already paid")
)

type Workflow struct {
	store      *tariff.Store
	engine     *regulatory.Engine
	customsFee float64
}

func NewWorkflow(store *tariff.Store, engine *regulatory.Engine, customsFee float64) *Workflow {
	return &Workflow{store: store, engine: engine, customsFee: customsFee}
}

// Search returns up to MaxSuggestions entries whose description, category or
// code contains query, followed by entries reached through their keywords.
func (w *Workflow) Search(query string) []tariff.Entry {
	raw := strings.TrimSpace(query)
	if utf8.RuneCountInString(raw) < MinQueryLength {
		return []tariff.Entry{}
	}
	q := textnorm.Normalize(raw)

	seen := make(map[string]struct{})
	out := make([]tariff.Entry, 0, MaxSuggestions)
	add := func(e tariff.Entry) {
		if _, ok := seen[e.Code]; ok || len(out) >= MaxSuggestions {
			return
		}
		seen[e.Code] = struct{}{}
		out = append(out, e)
	}

	for _, e := range w.store.Entries() {
		if strings.Contains(e.Code, raw) ||
			(q != "" && (strings.Contains(textnorm.Normalize(e.Description), q) || strings.Contains(textnorm.Normalize(e.Category), q))) {
			add(e)
		}
	}
	for _, code := range w.store.CodesForKeyword(raw) {
		if e, ok := w.store.FindByCode(code); ok {
			add(e)
		}
	}
	return out
}

// Recalculate applies entry to liq with the full cascade. manualCIF replaces
// the CIF when it parses to a positive number. Non-blank lines of observations
// are appended. liq is not modified.
func (w *Workflow) Recalculate(liq liquidation.Liquidation, entry tariff.Entry, manualCIF, observations string) liquidation.Liquidation {
	out := liq.Clone()

	cif := liq.CIFValue
	if v, err := cast.ToFloat64E(strings.TrimSpace(manualCIF)); err == nil && v > 0 {
		cif = v
	}

	out.ApplyCalculation(tax.Calculate(entry, cif))
	out.TariffCode = entry.Code
	out.TariffDescription = entry.Description
	out.ProductCategory = entry.Category
	out.CustomsFee = w.customsFee
	out.AdditionalFees = 0

	out.Restrictions = liquidation.Restrictions(w.engine.RequiredPermits(entry))
	out.HasRestrictions = len(out.Restrictions) > 0

	out.Status = liquidation.StatusCalculated
	out.RequiresManualReview = false
	out.ManualReviewReason = ""

	if out.Observations == nil {
		out.Observations = []string{}
	}
	for _, line := range strings.Split(observations, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out.Observations = append(out.Observations, line)
		}
	}
	return out
}

// CheckReviewable rejects liquidations that can no longer be reclassified.
func CheckReviewable(liq liquidation.Liquidation) error {
	if liq.Status == liquidation.StatusPaid {
		return ErrAlreadyPaid
	}
	return nil
}

// MarkPaid moves a calculated liquidation to paid.
func MarkPaid(liq liquidation.Liquidation) (liquidation.Liquidation, error) {
	if liq.Status != liquidation.StatusCalculated {
		return liq, ErrNotCalculated
	}
	out := liq.Clone()
	out.Status = liquidation.StatusPaid
	return out, nil
}
