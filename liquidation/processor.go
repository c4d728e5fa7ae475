package liquidation

import (
	"fmt"

	"github.com/google/uuid"
	"sysafari.com/customs/mguard/classify"
	"sysafari.com/customs/mguard/regulatory"
	"sysafari.com/customs/mguard/subvaluation"
	"sysafari.com/customs/mguard/tariff"
	"sysafari.com/customs/mguard/tax"
)

const (
	defaultChunkSize = 100
	defaultWorkers   = 4
)

// Processor runs the per-package pipeline. It holds only immutable tables and
// is safe for concurrent use.
type Processor struct {
	matcher   *classify.Matcher
	engine    *regulatory.Engine
	bands     *tax.BandPolicy
	detector  *subvaluation.Detector
	chunkSize int
	workers   int
}

type Option func(*Processor)

func WithChunkSize(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithDetector enables the under-declaration check on every row.
func WithDetector(d *subvaluation.Detector) Option {
	return func(p *Processor) {
		p.detector = d
	}
}

func NewProcessor(matcher *classify.Matcher, engine *regulatory.Engine, bands *tax.BandPolicy, opts ...Option) *Processor {
	p := &Processor{
		matcher:   matcher,
		engine:    engine,
		bands:     bands,
		chunkSize: defaultChunkSize,
		workers:   defaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) Matcher() *classify.Matcher {
	return p.matcher
}

func (p *Processor) Engine() *regulatory.Engine {
	return p.engine
}

func (p *Processor) Bands() *tax.BandPolicy {
	return p.bands
}

// Classification is the answer to a single product lookup.
type Classification struct {
	Result      classify.Result    `json:"result"`
	Alerts      []regulatory.Alert `json:"alerts"`
	Calculation *tax.Calculation   `json:"calculation,omitempty"`
	Band        *tax.BandDecision  `json:"band,omitempty"`
}

// ClassifyProduct matches description and, for the best match, derives its
// permits and, when cif is positive, its tax cascade and band.
func (p *Processor) ClassifyProduct(description string, cif float64) Classification {
	c := Classification{Result: p.matcher.FindMatches(description), Alerts: []regulatory.Alert{}}
	if c.Result.BestMatch == nil {
		return c
	}
	entry := c.Result.BestMatch.Entry
	c.Alerts = p.engine.RequiredPermits(entry)
	if cif > 0 {
		calc := tax.Calculate(entry, cif)
		band := p.bands.Assign(&entry, description, cif)
		c.Calculation = &calc
		c.Band = &band
	}
	return c
}

// Restrictions converts permit alerts into liquidation restrictions.
func Restrictions(alerts []regulatory.Alert) []Restriction {
	out := make([]Restriction, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, Restriction{Type: a.Requirement, Authority: a.EntityCode, Message: a.Description})
	}
	return out
}

// ProcessRow runs one manifest row through the pipeline. Data problems never
// fail the row: defaults are substituted and an observation is recorded.
func (p *Processor) ProcessRow(batchID string, index int, row ManifestRow) Liquidation {
	l := Liquidation{
		ID:             uuid.NewString(),
		BatchID:        batchID,
		TrackingGuide:  CleanTracking(row.Tracking),
		Recipient:      CleanText(row.Recipient),
		Identification: CleanIdentification(row.Identification),
		Phone:          CleanPhone(row.Phone),
		Address:        CleanText(row.Address),
		Description:    CleanText(row.Description),
		Province:       NormalizeProvince(CleanText(row.Province)),
		City:           CleanText(row.City),
		Status:         StatusPending,
		Restrictions:   []Restriction{},
		Observations:   []string{},
	}

	if l.TrackingGuide == "" {
		l.TrackingGuide = fmt.Sprintf("SIN-GUIA-%05d", index+1)
		l.observe("Número de guía vacío, se asignó " + l.TrackingGuide)
	}
	if l.Recipient == "" {
		l.observe("Destinatario vacío")
	}

	l.FOBValue = parseField(&l, "Valor declarado", row.DeclaredValue, true)
	l.FreightValue = parseField(&l, "Flete", row.Freight, false)
	l.InsuranceValue = parseField(&l, "Seguro", row.Insurance, false)
	l.Weight = parseField(&l, "Peso", row.Weight, false)
	l.CIFValue = tax.Round(l.FOBValue + l.FreightValue + l.InsuranceValue)
	if l.FOBValue <= 0 {
		l.observe("Valor declarado es 0 o negativo")
	}

	if l.Description == "" {
		l.observe("Descripción vacía")
		l.CustomsCategory = p.bands.Assign(nil, "", l.CIFValue).Band
		l.flagReview("Descripción de producto vacía")
		return l
	}

	res := p.matcher.FindMatches(l.Description)
	if res.BestMatch == nil {
		l.CustomsCategory = p.bands.Assign(nil, l.Description, l.CIFValue).Band
		if len(res.Candidates) > 0 {
			l.Confidence = res.Candidates[0].Score
			l.flagReview(fmt.Sprintf("Clasificación no concluyente (mejor puntaje %.0f)", res.Candidates[0].Score))
		} else {
			l.flagReview("Sin coincidencias en el arancel")
		}
		return l
	}

	best := res.BestMatch
	entry := best.Entry
	l.TariffCode = entry.Code
	l.TariffDescription = entry.Description
	l.ProductCategory = entry.Category
	l.Confidence = best.Score

	l.Restrictions = Restrictions(p.engine.RequiredPermits(entry))
	l.HasRestrictions = len(l.Restrictions) > 0

	p.applyBand(&l, entry)

	if res.IsAmbiguous {
		l.flagReview(fmt.Sprintf("Clasificación ambigua entre %s y %s", res.Candidates[0].Entry.Code, res.Candidates[1].Entry.Code))
	} else if res.NeedsManualReview {
		l.flagReview(fmt.Sprintf("Confianza %s en la clasificación (puntaje %.0f)", best.Confidence, best.Score))
	}

	if p.detector != nil {
		sv := p.detector.AnalyzeOne(subvaluation.Package{ID: l.ID, Tracking: l.TrackingGuide, Description: l.Description, DeclaredValue: l.FOBValue})
		if sv.State == subvaluation.StateUnderdeclared || sv.State == subvaluation.StateSuspicious {
			l.observe(sv.Message)
		}
		if sv.IsBlocked {
			l.flagReview("Bloqueado por subvaluación")
		}
	}

	if l.Status == StatusPending {
		l.Status = StatusCalculated
	}
	return l
}

func (p *Processor) applyBand(l *Liquidation, entry tariff.Entry) {
	d := p.bands.Assign(&entry, l.Description, l.CIFValue)
	l.CustomsCategory = d.Band
	l.CustomsFee = d.CustomsFee
	l.RequiresBroker = d.RequiresBroker

	// rates are recorded even when the band waives the cascade
	l.DutyPercent = entry.DutyPercent
	l.ConsumptionTaxPercent = entry.ConsumptionTaxPercent
	l.VatPercent = entry.VatPercent

	switch {
	case d.ApplyCascade:
		l.ApplyCalculation(tax.Calculate(entry, l.CIFValue))
	case d.RequiresBroker:
		l.VatBase = l.CIFValue
		l.TotalPayable = l.CIFValue
		l.flagReview(d.Reason)
	default:
		l.VatBase = l.CIFValue
		l.TotalPayable = l.CIFValue
		l.observe(d.Reason)
	}
}

func parseField(l *Liquidation, field, raw string, required bool) float64 {
	if raw == "" {
		if required {
			l.observe(field + " vacío, se asumió 0")
		}
		return 0
	}
	v, ok := ParseAmount(raw)
	if !ok {
		l.observe(fmt.Sprintf("%s inválido (%q), se asumió 0", field, raw))
		return 0
	}
	return v
}

func (l *Liquidation) observe(note string) {
	l.Observations = append(l.Observations, note)
}
