// Package tax computes the customs tax cascade (DAI, ISC, ITBMS) on a CIF
// value and assigns the customs processing band of a package.
package tax

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"sysafari.com/customs/mguard/tariff"
)

const (
	ReasonFullyExempt = "Producto exento de DAI e ITBMS según legislación panameña"
	ReasonVatExempt   = "Exento de ITBMS - Solo aplica DAI"
)

// BreakdownLine is one labeled step of the cascade.
type BreakdownLine struct {
	Label   string  `json:"label"`
	Amount  float64 `json:"amount"`
	Formula string  `json:"formula"`
}

// Calculation is the result of applying a tariff entry to a CIF value.
type Calculation struct {
	CIFValue              float64         `json:"cifValue"`
	DutyPercent           float64         `json:"dutyPercent"`
	DutyAmount            float64         `json:"dutyAmount"`
	ConsumptionTaxPercent float64         `json:"consumptionTaxPercent"`
	ConsumptionTaxAmount  float64         `json:"consumptionTaxAmount"`
	VatBase               float64         `json:"vatBase"`
	VatPercent            float64         `json:"vatPercent"`
	VatAmount             float64         `json:"vatAmount"`
	TotalTaxes            float64         `json:"totalTaxes"`
	TotalPayable          float64         `json:"totalPayable"`
	IsExempt              bool            `json:"isExempt"`
	IsVatExemptOnly       bool            `json:"isVatExemptOnly"`
	ExemptionReason       string          `json:"exemptionReason,omitempty"`
	Breakdown             []BreakdownLine `json:"breakdown"`
}

var hundred = decimal.NewFromInt(100)

// Round rounds to 2 decimals, half away from zero.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func percentOf(base decimal.Decimal, percent float64) decimal.Decimal {
	return base.Mul(decimal.NewFromFloat(percent)).Div(hundred).Round(2)
}

// Calculate applies entry's rates to cif. Every step is rounded to 2 decimals
// before it feeds the next one:
//
//	duty         = cif × DAI%
//	isc          = (cif + duty) × ISC%
//	vatBase      = cif + duty + isc
//	vat          = vatBase × ITBMS%
//	totalTaxes   = duty + isc + vat
//	totalPayable = cif + totalTaxes
func Calculate(entry tariff.Entry, cif float64) Calculation {
	cifD := decimal.NewFromFloat(cif).Round(2)

	duty := percentOf(cifD, entry.DutyPercent)
	isc := percentOf(cifD.Add(duty), entry.ConsumptionTaxPercent)
	vatBase := cifD.Add(duty).Add(isc).Round(2)
	vat := percentOf(vatBase, entry.VatPercent)
	totalTaxes := duty.Add(isc).Add(vat).Round(2)
	totalPayable := cifD.Add(totalTaxes).Round(2)

	calc := Calculation{
		CIFValue:              cifD.InexactFloat64(),
		DutyPercent:           entry.DutyPercent,
		DutyAmount:            duty.InexactFloat64(),
		ConsumptionTaxPercent: entry.ConsumptionTaxPercent,
		ConsumptionTaxAmount:  isc.InexactFloat64(),
		VatBase:               vatBase.InexactFloat64(),
		VatPercent:            entry.VatPercent,
		VatAmount:             vat.InexactFloat64(),
		TotalTaxes:            totalTaxes.InexactFloat64(),
		TotalPayable:          totalPayable.InexactFloat64(),
	}

	switch {
	case entry.DutyPercent == 0 && entry.VatPercent == 0 && entry.ConsumptionTaxPercent == 0:
		calc.IsExempt = true
		calc.ExemptionReason = ReasonFullyExempt
	case entry.VatPercent == 0 && entry.DutyPercent != 0:
		calc.IsVatExemptOnly = true
		calc.ExemptionReason = ReasonVatExempt
	}

	calc.Breakdown = breakdown(calc)
	return calc
}

func breakdown(c Calculation) []BreakdownLine {
	lines := []BreakdownLine{
		{Label: "Valor CIF", Amount: c.CIFValue, Formula: "FOB + Flete + Seguro"},
		{Label: fmt.Sprintf("DAI (%s%%)", pct(c.DutyPercent)), Amount: c.DutyAmount, Formula: fmt.Sprintf("CIF × %s%%", pct(c.DutyPercent))},
	}
	baseFormula := "CIF + DAI"
	taxesFormula := "DAI + ITBMS"
	if c.ConsumptionTaxPercent != 0 {
		lines = append(lines, BreakdownLine{
			Label:   fmt.Sprintf("ISC (%s%%)", pct(c.ConsumptionTaxPercent)),
			Amount:  c.ConsumptionTaxAmount,
			Formula: fmt.Sprintf("(CIF + DAI) × %s%%", pct(c.ConsumptionTaxPercent)),
		})
		baseFormula = "CIF + DAI + ISC"
		taxesFormula = "DAI + ISC + ITBMS"
	}
	return append(lines,
		BreakdownLine{Label: "Base ITBMS", Amount: c.VatBase, Formula: baseFormula},
		BreakdownLine{Label: fmt.Sprintf("ITBMS (%s%%)", pct(c.VatPercent)), Amount: c.VatAmount, Formula: fmt.Sprintf("Base × %s%%", pct(c.VatPercent))},
		BreakdownLine{Label: "Total Tributos", Amount: c.TotalTaxes, Formula: taxesFormula},
		BreakdownLine{Label: "Total a Pagar", Amount: c.TotalPayable, Formula: "CIF + Tributos"},
	)
}

func pct(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
