package liquidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"sysafari.com/customs/mguard/tax"
)

func TestSummarize(t *testing.T) {
	p := newTestProcessor(t)
	liqs := []Liquidation{
		p.ProcessRow("b", 0, ManifestRow{Tracking: "T1", Recipient: "Ana", Description: "Camiseta de algodon", DeclaredValue: "150", Freight: "10", Insurance: "2.5", Weight: "1.2", Province: "panama"}),
		p.ProcessRow("b", 1, ManifestRow{Tracking: "T2", Recipient: "Ana", Description: "Libros", DeclaredValue: "30", Weight: "0.8", Province: "Panamá"}),
		p.ProcessRow("b", 2, ManifestRow{Tracking: "T3", Recipient: "Ana", Description: "Pollo congelado", DeclaredValue: "500", Province: "Colon"}),
		p.ProcessRow("b", 3, ManifestRow{Tracking: "T4", Recipient: "Ana", Description: "xyzzy", DeclaredValue: "10"}),
	}

	s := Summarize(liqs)

	assert.Equal(t, 4, s.Packages)
	assert.Equal(t, 690.0, s.TotalFOB)
	assert.Equal(t, 702.5, s.TotalCIF)
	assert.Equal(t, 1324.38, s.TotalDuty)
	assert.Equal(t, 13.08, s.TotalVat)
	assert.Equal(t, 6.0, s.TotalCustomsFees)
	assert.Equal(t, 1337.46, s.TotalTaxes)
	assert.Equal(t, 2029.96, s.TotalPayable)
	assert.Equal(t, 2.0, s.TotalWeight)

	assert.Equal(t, BandTotals{Count: 2, CIF: 662.5, Taxes: 1337.46, Payable: 1999.96}, s.ByBand[tax.BandC])
	assert.Equal(t, BandTotals{Count: 2, CIF: 40, Taxes: 0, Payable: 30}, s.ByBand[tax.BandB])

	assert.Equal(t, 1, s.WithRestrictions)
	assert.Equal(t, 1, s.RequiringReview)
	assert.Equal(t, 1, s.PendingTariffCode)
	assert.Equal(t, map[string]int{"Ropa": 1, "Libros": 1, "Alimentos": 1}, s.ByCategory)
	assert.Equal(t, map[string]int{"Panamá": 2, "Colón": 1}, s.ByProvince)
}
