package tax

import (
	"strings"

	"sysafari.com/customs/mguard/tariff"
	"sysafari.com/customs/mguard/textnorm"
)

// Band is the customs processing tier of a package.
type Band string

const (
	BandA Band = "A"
	BandB Band = "B"
	BandC Band = "C"
	BandD Band = "D"
)

// DocumentKeywords mark a description as document-class goods.
var DocumentKeywords = []string{"documento", "documentos", "carta", "cartas", "papeles", "contrato", "factura"}

// BandInput is what a band predicate looks at.
type BandInput struct {
	Entry       *tariff.Entry
	Description string
	CIF         float64
}

// BandRule is one row of the band table. The first rule whose Match returns
// true decides the band.
type BandRule struct {
	Band           Band
	Match          func(BandInput) bool
	ApplyCascade   bool
	ChargeFee      bool
	RequiresBroker bool
	Reason         string
}

// BandDecision is the outcome of evaluating a BandPolicy.
type BandDecision struct {
	Band           Band    `json:"band"`
	ApplyCascade   bool    `json:"applyCascade"`
	CustomsFee     float64 `json:"customsFee"`
	RequiresBroker bool    `json:"requiresBroker"`
	Reason         string  `json:"reason"`
}

// BandPolicy holds the band thresholds. A CIF equal to DeMinimis is still
// band B; a CIF equal to HighValue is already band D.
type BandPolicy struct {
	DeMinimis  float64
	HighValue  float64
	CustomsFee float64
	rules      []BandRule
}

func DefaultBandPolicy() *BandPolicy {
	return NewBandPolicy(100, 2000, 2)
}

func NewBandPolicy(deMinimis, highValue, customsFee float64) *BandPolicy {
	p := &BandPolicy{DeMinimis: deMinimis, HighValue: highValue, CustomsFee: customsFee}
	p.rules = []BandRule{
		{
			Band:   BandA,
			Match:  isDocument,
			Reason: "Documentos - exento de tributos",
		},
		{
			Band:      BandB,
			Match:     func(in BandInput) bool { return in.CIF <= p.DeMinimis },
			ChargeFee: true,
			Reason:    "Mínimo - exento de DAI e ITBMS, aplica tasa de manejo",
		},
		{
			Band:         BandC,
			Match:        func(in BandInput) bool { return in.CIF < p.HighValue },
			ApplyCascade: true,
			ChargeFee:    true,
			Reason:       "Valor medio - aplica cálculo completo de tributos",
		},
		{
			Band:           BandD,
			Match:          func(BandInput) bool { return true },
			ChargeFee:      true,
			RequiresBroker: true,
			Reason:         "Alto valor - requiere corredor de aduanas",
		},
	}
	return p
}

// Rules returns the ordered band table.
func (p *BandPolicy) Rules() []BandRule {
	return p.rules
}

// Assign evaluates the band table for one package.
func (p *BandPolicy) Assign(entry *tariff.Entry, description string, cif float64) BandDecision {
	in := BandInput{Entry: entry, Description: description, CIF: cif}
	for _, r := range p.rules {
		if !r.Match(in) {
			continue
		}
		d := BandDecision{
			Band:           r.Band,
			ApplyCascade:   r.ApplyCascade,
			RequiresBroker: r.RequiresBroker,
			Reason:         r.Reason,
		}
		if r.ChargeFee {
			d.CustomsFee = p.CustomsFee
		}
		return d
	}
	// unreachable while the last rule matches everything
	return BandDecision{Band: BandD, RequiresBroker: true}
}

func isDocument(in BandInput) bool {
	if in.Entry != nil && in.Entry.Category == tariff.CategoryDocuments {
		return true
	}
	padded := " " + textnorm.Normalize(in.Description) + " "
	for _, kw := range DocumentKeywords {
		if strings.Contains(padded, " "+kw+" ") {
			return true
		}
	}
	return false
}
