// Package liquidation turns manifest rows into per-package liquidations:
// classification, permits, tax cascade and customs band.
package liquidation

import (
	"sysafari.com/customs/mguard/tax"
)

type Status string

const (
	StatusPending              Status = "pending"
	StatusCalculated           Status = "calculated"
	StatusRequiresManualReview Status = "requiresManualReview"
	StatusPaid                 Status = "paid"
)

// Restriction is a permit the package needs before release.
type Restriction struct {
	Type      string `json:"type"`
	Authority string `json:"authority"`
	Message   string `json:"message"`
}

// ManifestRow is one package as read from a manifest. Numeric fields are the
// raw cell text.
type ManifestRow struct {
	Tracking       string `json:"tracking"`
	Recipient      string `json:"recipient"`
	Identification string `json:"identification"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Description    string `json:"description"`
	DeclaredValue  string `json:"declaredValue"`
	Freight        string `json:"freight"`
	Insurance      string `json:"insurance"`
	Weight         string `json:"weight"`
	Province       string `json:"province"`
	City           string `json:"city"`
}

type Liquidation struct {
	ID                    string        `json:"id"`
	BatchID               string        `json:"batchId"`
	TrackingGuide         string        `json:"trackingGuide"`
	Recipient             string        `json:"recipient"`
	Identification        string        `json:"identification"`
	Phone                 string        `json:"phone,omitempty"`
	Address               string        `json:"address,omitempty"`
	Description           string        `json:"description"`
	Province              string        `json:"province"`
	City                  string        `json:"city"`
	Weight                float64       `json:"weight"`
	CustomsCategory       tax.Band      `json:"customsCategory"`
	TariffCode            string        `json:"tariffCode,omitempty"`
	TariffDescription     string        `json:"tariffDescription,omitempty"`
	ProductCategory       string        `json:"productCategory,omitempty"`
	FOBValue              float64       `json:"fobValue"`
	FreightValue          float64       `json:"freightValue"`
	InsuranceValue        float64       `json:"insuranceValue"`
	CIFValue              float64       `json:"cifValue"`
	DutyPercent           float64       `json:"dutyPercent"`
	DutyAmount            float64       `json:"dutyAmount"`
	ConsumptionTaxPercent float64       `json:"consumptionTaxPercent"`
	ConsumptionTaxAmount  float64       `json:"consumptionTaxAmount"`
	VatBase               float64       `json:"vatBase"`
	VatPercent            float64       `json:"vatPercent"`
	VatAmount             float64       `json:"vatAmount"`
	CustomsFee            float64       `json:"customsFee"`
	AdditionalFees        float64       `json:"additionalFees"`
	TotalTaxes            float64       `json:"totalTaxes"`
	TotalPayable          float64       `json:"totalPayable"`
	Status                Status        `json:"status"`
	HasRestrictions       bool          `json:"hasRestrictions"`
	Restrictions          []Restriction `json:"restrictions"`
	RequiresManualReview  bool          `json:"requiresManualReview"`
	ManualReviewReason    string        `json:"manualReviewReason,omitempty"`
	RequiresBroker        bool          `json:"requiresBroker"`
	Confidence            float64       `json:"confidence"`
	Observations          []string      `json:"observations"`
}

// Clone returns a deep copy of l.
func (l Liquidation) Clone() Liquidation {
	c := l
	c.Restrictions = append([]Restriction(nil), l.Restrictions...)
	c.Observations = append([]string(nil), l.Observations...)
	return c
}

// ApplyCalculation mirrors the percents and amounts of calc onto l.
func (l *Liquidation) ApplyCalculation(calc tax.Calculation) {
	l.CIFValue = calc.CIFValue
	l.DutyPercent = calc.DutyPercent
	l.DutyAmount = calc.DutyAmount
	l.ConsumptionTaxPercent = calc.ConsumptionTaxPercent
	l.ConsumptionTaxAmount = calc.ConsumptionTaxAmount
	l.VatBase = calc.VatBase
	l.VatPercent = calc.VatPercent
	l.VatAmount = calc.VatAmount
	l.TotalTaxes = calc.TotalTaxes
	l.TotalPayable = calc.TotalPayable
}

// flagReview marks l for manual review, keeping the first reason.
func (l *Liquidation) flagReview(reason string) {
	l.RequiresManualReview = true
	l.Status = StatusRequiresManualReview
	if l.ManualReviewReason == "" {
		l.ManualReviewReason = reason
	}
}
