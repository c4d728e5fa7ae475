// Package subvaluation flags packages whose declared value is below the
// market reference price of the detected product.
package subvaluation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"sysafari.com/customs/mguard/textnorm"
)

type State string

const (
	StateOK                   State = "OK"
	StateSuspicious           State = "SOSPECHOSO"
	StateUnderdeclared        State = "SUBVALUADO"
	StateRequiresManualReview State = "REVISION_MANUAL"
)

type AlertLevel string

const (
	AlertNone     AlertLevel = "none"
	AlertWarning  AlertLevel = "warning"
	AlertCritical AlertLevel = "critical"
)

const (
	DefaultWarningPercent = 30.0
	DefaultBlockPercent   = 70.0
	topProducts           = 5
)

// Package is the part of a manifest row the detector looks at.
type Package struct {
	ID            string  `json:"id"`
	Tracking      string  `json:"tracking"`
	Description   string  `json:"description"`
	DeclaredValue float64 `json:"declaredValue"`
}

type Result struct {
	PackageID         string     `json:"packageId"`
	TrackingNumber    string     `json:"trackingNumber"`
	DeclaredValue     float64    `json:"declaredValue"`
	Description       string     `json:"description"`
	DetectedProduct   string     `json:"detectedProduct,omitempty"`
	ReferenceMinPrice *float64   `json:"referenceMinPrice,omitempty"`
	DifferencePercent *float64   `json:"differencePercent,omitempty"`
	State             State      `json:"state"`
	AlertLevel        AlertLevel `json:"alertLevel"`
	Message           string     `json:"message"`
	RequiredAction    string     `json:"requiredAction"`
	IsBlocked         bool       `json:"isBlocked"`
}

type reference struct {
	product  ReferenceProduct
	name     string
	category string
	keywords []string
}

// Detector is immutable once built and safe for concurrent use.
type Detector struct {
	refs           []reference
	warningPercent float64
	blockPercent   float64
}

// NewDetector builds a detector. blockPercent must exceed warningPercent;
// otherwise it is raised to warningPercent.
func NewDetector(products []ReferenceProduct, warningPercent, blockPercent float64) *Detector {
	if blockPercent < warningPercent {
		blockPercent = warningPercent
	}
	d := &Detector{warningPercent: warningPercent, blockPercent: blockPercent}
	for _, p := range products {
		r := reference{
			product:  p,
			name:     textnorm.Normalize(p.ProductName),
			category: textnorm.Normalize(p.Category),
		}
		for _, k := range p.Keywords {
			if n := textnorm.Normalize(k); n != "" {
				r.keywords = append(r.keywords, n)
			}
		}
		d.refs = append(d.refs, r)
	}
	return d
}

func Default() *Detector {
	return NewDetector(DefaultReferences, DefaultWarningPercent, DefaultBlockPercent)
}

// Match finds the reference product for description: by product name first,
// then by keyword, then by category.
func (d *Detector) Match(description string) (ReferenceProduct, bool) {
	desc := " " + textnorm.Normalize(description)
	if strings.TrimSpace(desc) == "" {
		return ReferenceProduct{}, false
	}
	for _, r := range d.refs {
		if hasWord(desc, r.name) {
			return r.product, true
		}
	}
	for _, r := range d.refs {
		for _, k := range r.keywords {
			if hasWord(desc, k) {
				return r.product, true
			}
		}
	}
	for _, r := range d.refs {
		if hasWord(desc, r.category) {
			return r.product, true
		}
	}
	return ReferenceProduct{}, false
}

func hasWord(paddedDesc, term string) bool {
	return term != "" && strings.Contains(paddedDesc, " "+term)
}

func (d *Detector) Analyze(packages []Package) []Result {
	results := make([]Result, 0, len(packages))
	for _, p := range packages {
		results = append(results, d.AnalyzeOne(p))
	}
	return results
}

func (d *Detector) AnalyzeOne(p Package) Result {
	res := Result{
		PackageID:      p.ID,
		TrackingNumber: p.Tracking,
		DeclaredValue:  p.DeclaredValue,
		Description:    p.Description,
	}

	ref, ok := d.Match(p.Description)
	if !ok {
		res.State = StateRequiresManualReview
		res.AlertLevel = AlertWarning
		res.Message = "Producto sin precio de referencia"
		res.RequiredAction = "Verificar valor con factura comercial"
		return res
	}
	res.DetectedProduct = ref.ProductName
	minPrice := ref.MinPrice
	res.ReferenceMinPrice = &minPrice

	if p.DeclaredValue < 0 || ref.MinPrice <= 0 {
		res.State = StateRequiresManualReview
		res.AlertLevel = AlertWarning
		res.Message = "Valor declarado no utilizable para comparación"
		res.RequiredAction = "Solicitar factura comercial"
		return res
	}

	diff := decimal.NewFromFloat(ref.MinPrice).Sub(decimal.NewFromFloat(p.DeclaredValue)).
		Div(decimal.NewFromFloat(ref.MinPrice)).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()

	switch {
	case diff <= 0:
		res.State = StateOK
		res.AlertLevel = AlertNone
		res.Message = "Valor dentro del rango de mercado"
		return res
	case diff < d.warningPercent:
		res.State = StateSuspicious
		res.AlertLevel = AlertWarning
		res.Message = fmt.Sprintf("Valor %.0f%% por debajo del mínimo de mercado ($%.2f)", diff, ref.MinPrice)
		res.RequiredAction = "Revisar factura comercial"
	default:
		res.State = StateUnderdeclared
		res.AlertLevel = AlertCritical
		res.Message = fmt.Sprintf("Posible subvaluación: %.0f%% por debajo del mínimo de mercado ($%.2f)", diff, ref.MinPrice)
		res.RequiredAction = "Solicitar comprobante de pago y corregir valor"
		res.IsBlocked = diff > d.blockPercent
	}
	res.DifferencePercent = &diff
	return res
}

// ProductDifference aggregates the under-declared amount of one product.
type ProductDifference struct {
	Product     string  `json:"product"`
	Difference  float64 `json:"difference"`
	Occurrences int     `json:"occurrences"`
}

type Summary struct {
	Total                int                 `json:"total"`
	OK                   int                 `json:"ok"`
	Suspicious           int                 `json:"suspicious"`
	Underdeclared        int                 `json:"underdeclared"`
	RequiresManualReview int                 `json:"requiresManualReview"`
	Blocked              int                 `json:"blocked"`
	TotalDeclared        float64             `json:"totalDeclared"`
	TotalReference       float64             `json:"totalReference"`
	TotalDifference      float64             `json:"totalDifference"`
	TopProducts          []ProductDifference `json:"topProducts"`
}

// Summarize aggregates results. Rows without a reference price contribute
// their declared value to TotalReference.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results), TopProducts: []ProductDifference{}}
	declared, reference, difference := decimal.Zero, decimal.Zero, decimal.Zero

	byProduct := make(map[string]int)
	for _, r := range results {
		switch r.State {
		case StateOK:
			s.OK++
		case StateSuspicious:
			s.Suspicious++
		case StateUnderdeclared:
			s.Underdeclared++
		case StateRequiresManualReview:
			s.RequiresManualReview++
		}
		if r.IsBlocked {
			s.Blocked++
		}

		dv := decimal.NewFromFloat(r.DeclaredValue)
		declared = declared.Add(dv)
		if r.ReferenceMinPrice == nil {
			reference = reference.Add(dv)
			continue
		}
		ref := decimal.NewFromFloat(*r.ReferenceMinPrice)
		reference = reference.Add(ref)

		gap := ref.Sub(dv)
		if r.DifferencePercent == nil || !gap.IsPositive() {
			continue
		}
		difference = difference.Add(gap)

		i, ok := byProduct[r.DetectedProduct]
		if !ok {
			i = len(s.TopProducts)
			byProduct[r.DetectedProduct] = i
			s.TopProducts = append(s.TopProducts, ProductDifference{Product: r.DetectedProduct})
		}
		s.TopProducts[i].Difference = decimal.NewFromFloat(s.TopProducts[i].Difference).Add(gap).Round(2).InexactFloat64()
		s.TopProducts[i].Occurrences++
	}

	s.TotalDeclared = declared.Round(2).InexactFloat64()
	s.TotalReference = reference.Round(2).InexactFloat64()
	s.TotalDifference = difference.Round(2).InexactFloat64()

	sort.SliceStable(s.TopProducts, func(i, j int) bool {
		return s.TopProducts[i].Difference > s.TopProducts[j].Difference
	})
	if len(s.TopProducts) > topProducts {
		s.TopProducts = s.TopProducts[:topProducts]
	}
	return s
}
