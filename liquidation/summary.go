package liquidation

import (
	"github.com/shopspring/decimal"
	"sysafari.com/customs/mguard/tax"
)

type BandTotals struct {
	Count   int     `json:"count"`
	CIF     float64 `json:"cif"`
	Taxes   float64 `json:"taxes"`
	Payable float64 `json:"payable"`
}

type Summary struct {
	Packages            int                     `json:"packages"`
	TotalFOB            float64                 `json:"totalFob"`
	TotalFreight        float64                 `json:"totalFreight"`
	TotalInsurance      float64                 `json:"totalInsurance"`
	TotalCIF            float64                 `json:"totalCif"`
	TotalDuty           float64                 `json:"totalDuty"`
	TotalConsumptionTax float64                 `json:"totalConsumptionTax"`
	TotalVat            float64                 `json:"totalVat"`
	TotalCustomsFees    float64                 `json:"totalCustomsFees"`
	TotalTaxes          float64                 `json:"totalTaxes"`
	TotalPayable        float64                 `json:"totalPayable"`
	TotalWeight         float64                 `json:"totalWeight"`
	ByBand              map[tax.Band]BandTotals `json:"byBand"`
	WithRestrictions    int                     `json:"withRestrictions"`
	RequiringReview     int                     `json:"requiringReview"`
	PendingTariffCode   int                     `json:"pendingTariffCode"`
	RequiringBroker     int                     `json:"requiringBroker"`
	ByCategory          map[string]int          `json:"byCategory"`
	ByProvince          map[string]int          `json:"byProvince"`
}

type bandSums struct {
	count               int
	cif, taxes, payable decimal.Decimal
}

// Summarize aggregates the batch totals. Sums are kept in decimal and rounded
// to 2 places once.
func Summarize(liqs []Liquidation) Summary {
	s := Summary{
		Packages:   len(liqs),
		ByBand:     make(map[tax.Band]BandTotals),
		ByCategory: make(map[string]int),
		ByProvince: make(map[string]int),
	}

	var fob, freight, insurance, cif, duty, isc, vat, fees, taxes, payable, weight decimal.Decimal
	bands := make(map[tax.Band]*bandSums)
	add := func(acc *decimal.Decimal, v float64) { *acc = acc.Add(decimal.NewFromFloat(v)) }

	for _, l := range liqs {
		add(&fob, l.FOBValue)
		add(&freight, l.FreightValue)
		add(&insurance, l.InsuranceValue)
		add(&cif, l.CIFValue)
		add(&duty, l.DutyAmount)
		add(&isc, l.ConsumptionTaxAmount)
		add(&vat, l.VatAmount)
		add(&fees, l.CustomsFee)
		add(&taxes, l.TotalTaxes)
		add(&payable, l.TotalPayable)
		add(&weight, l.Weight)

		if l.CustomsCategory != "" {
			b, ok := bands[l.CustomsCategory]
			if !ok {
				b = &bandSums{}
				bands[l.CustomsCategory] = b
			}
			b.count++
			add(&b.cif, l.CIFValue)
			add(&b.taxes, l.TotalTaxes)
			add(&b.payable, l.TotalPayable)
		}

		if l.HasRestrictions {
			s.WithRestrictions++
		}
		if l.RequiresManualReview {
			s.RequiringReview++
		}
		if l.TariffCode == "" {
			s.PendingTariffCode++
		}
		if l.RequiresBroker {
			s.RequiringBroker++
		}
		if l.ProductCategory != "" {
			s.ByCategory[l.ProductCategory]++
		}
		if l.Province != "" {
			s.ByProvince[l.Province]++
		}
	}

	r := func(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }
	s.TotalFOB, s.TotalFreight, s.TotalInsurance, s.TotalCIF = r(fob), r(freight), r(insurance), r(cif)
	s.TotalDuty, s.TotalConsumptionTax, s.TotalVat = r(duty), r(isc), r(vat)
	s.TotalCustomsFees, s.TotalTaxes, s.TotalPayable, s.TotalWeight = r(fees), r(taxes), r(payable), r(weight)
	for band, b := range bands {
		s.ByBand[band] = BandTotals{Count: b.count, CIF: r(b.cif), Taxes: r(b.taxes), Payable: r(b.payable)}
	}
	return s
}
