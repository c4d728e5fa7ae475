package store

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx/types"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/tax"
)

type liquidationRow struct {
	ID                    string         `db:"id"`
	BatchID               string         `db:"batch_id"`
	TrackingGuide         string         `db:"tracking_guide"`
	Recipient             string         `db:"recipient"`
	Identification        string         `db:"identification"`
	Phone                 string         `db:"phone"`
	Address               string         `db:"address"`
	Description           string         `db:"description"`
	Province              string         `db:"province"`
	City                  string         `db:"city"`
	Weight                float64        `db:"weight"`
	CustomsCategory       string         `db:"customs_category"`
	TariffCode            string         `db:"tariff_code"`
	TariffDescription     string         `db:"tariff_description"`
	ProductCategory       string         `db:"product_category"`
	FOBValue              float64        `db:"fob_value"`
	FreightValue          float64        `db:"freight_value"`
	InsuranceValue        float64        `db:"insurance_value"`
	CIFValue              float64        `db:"cif_value"`
	DutyPercent           float64        `db:"duty_percent"`
	DutyAmount            float64        `db:"duty_amount"`
	ConsumptionTaxPercent float64        `db:"consumption_tax_percent"`
	ConsumptionTaxAmount  float64        `db:"consumption_tax_amount"`
	VatBase               float64        `db:"vat_base"`
	VatPercent            float64        `db:"vat_percent"`
	VatAmount             float64        `db:"vat_amount"`
	CustomsFee            float64        `db:"customs_fee"`
	AdditionalFees        float64        `db:"additional_fees"`
	TotalTaxes            float64        `db:"total_taxes"`
	TotalPayable          float64        `db:"total_payable"`
	Status                string         `db:"status"`
	HasRestrictions       bool           `db:"has_restrictions"`
	Restrictions          types.JSONText `db:"restrictions"`
	RequiresManualReview  bool           `db:"requires_manual_review"`
	ManualReviewReason    string         `db:"manual_review_reason"`
	RequiresBroker        bool           `db:"requires_broker"`
	Confidence            float64        `db:"confidence"`
	Observations          types.JSONText `db:"observations"`
	RowIndex              int            `db:"row_index"`
}

func toRow(l liquidation.Liquidation, index int) (liquidationRow, error) {
	restrictions := l.Restrictions
	if restrictions == nil {
		restrictions = []liquidation.Restriction{}
	}
	rb, err := json.Marshal(restrictions)
	if err != nil {
		return liquidationRow{}, fmt.Errorf("encode restrictions of %s: %w", l.TrackingGuide, err)
	}
	observations := l.Observations
	if observations == nil {
		observations = []string{}
	}
	ob, err := json.Marshal(observations)
	if err != nil {
		return liquidationRow{}, fmt.Errorf("encode observations of %s: %w", l.TrackingGuide, err)
	}

	return liquidationRow{
		ID:                    l.ID,
		BatchID:               l.BatchID,
		TrackingGuide:         l.TrackingGuide,
		Recipient:             l.Recipient,
		Identification:        l.Identification,
		Phone:                 l.Phone,
		Address:               l.Address,
		Description:           l.Description,
		Province:              l.Province,
		City:                  l.City,
		Weight:                l.Weight,
		CustomsCategory:       string(l.CustomsCategory),
		TariffCode:            l.TariffCode,
		TariffDescription:     l.TariffDescription,
		ProductCategory:       l.ProductCategory,
		FOBValue:              l.FOBValue,
		FreightValue:          l.FreightValue,
		InsuranceValue:        l.InsuranceValue,
		CIFValue:              l.CIFValue,
		DutyPercent:           l.DutyPercent,
		DutyAmount:            l.DutyAmount,
		ConsumptionTaxPercent: l.ConsumptionTaxPercent,
		ConsumptionTaxAmount:  l.ConsumptionTaxAmount,
		VatBase:               l.VatBase,
		VatPercent:            l.VatPercent,
		VatAmount:             l.VatAmount,
		CustomsFee:            l.CustomsFee,
		AdditionalFees:        l.AdditionalFees,
		TotalTaxes:            l.TotalTaxes,
		TotalPayable:          l.TotalPayable,
		Status:                string(l.Status),
		HasRestrictions:       l.HasRestrictions,
		Restrictions:          types.JSONText(rb),
		RequiresManualReview:  l.RequiresManualReview,
		ManualReviewReason:    l.ManualReviewReason,
		RequiresBroker:        l.RequiresBroker,
		Confidence:            l.Confidence,
		Observations:          types.JSONText(ob),
		RowIndex:              index,
	}, nil
}

func (r liquidationRow) toLiquidation() (liquidation.Liquidation, error) {
	l := liquidation.Liquidation{
		ID:                    r.ID,
		BatchID:               r.BatchID,
		TrackingGuide:         r.TrackingGuide,
		Recipient:             r.Recipient,
		Identification:        r.Identification,
		Phone:                 r.Phone,
		Address:               r.Address,
		Description:           r.Description,
		Province:              r.Province,
		City:                  r.City,
		Weight:                r.Weight,
		CustomsCategory:       tax.Band(r.CustomsCategory),
		TariffCode:            r.TariffCode,
		TariffDescription:     r.TariffDescription,
		ProductCategory:       r.ProductCategory,
		FOBValue:              r.FOBValue,
		FreightValue:          r.FreightValue,
		InsuranceValue:        r.InsuranceValue,
		CIFValue:              r.CIFValue,
		DutyPercent:           r.DutyPercent,
		DutyAmount:            r.DutyAmount,
		ConsumptionTaxPercent: r.ConsumptionTaxPercent,
		ConsumptionTaxAmount:  r.ConsumptionTaxAmount,
		VatBase:               r.VatBase,
		VatPercent:            r.VatPercent,
		VatAmount:             r.VatAmount,
		CustomsFee:            r.CustomsFee,
		AdditionalFees:        r.AdditionalFees,
		TotalTaxes:            r.TotalTaxes,
		TotalPayable:          r.TotalPayable,
		Status:                liquidation.Status(r.Status),
		HasRestrictions:       r.HasRestrictions,
		RequiresManualReview:  r.RequiresManualReview,
		ManualReviewReason:    r.ManualReviewReason,
		RequiresBroker:        r.RequiresBroker,
		Confidence:            r.Confidence,
	}
	if err := r.Restrictions.Unmarshal(&l.Restrictions); err != nil {
		return l, fmt.Errorf("decode restrictions of %s: %w", r.ID, err)
	}
	if err := r.Observations.Unmarshal(&l.Observations); err != nil {
		return l, fmt.Errorf("decode observations of %s: %w", r.ID, err)
	}
	return l, nil
}
