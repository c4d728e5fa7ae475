package tax

import (
	"fmt"
	"regexp"

	"sysafari.com/customs/mguard/tariff"
)

var codePattern = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}\.\d{2}$`)

// Validation limits.
const (
	MaxDutyPercent     = 300.0
	MaxVatPercent      = 15.0
	HighDutyPercent    = 100.0
	HighValueCIFNotice = 50000.0
)

// Validation collects blocking errors and non-blocking warnings for a
// tariff assignment.
type Validation struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateCodeFormat reports whether code has the canonical dddd.dd.dd.dd form.
func ValidateCodeFormat(code string) bool {
	return codePattern.MatchString(code)
}

// Validate checks entry against store and the legal rate limits.
func Validate(store *tariff.Store, entry tariff.Entry, cif float64) Validation {
	v := Validation{Errors: []string{}, Warnings: []string{}}

	if !ValidateCodeFormat(entry.Code) {
		v.Errors = append(v.Errors, fmt.Sprintf("Formato de código arancelario inválido: %s", entry.Code))
	} else if _, ok := store.FindByCode(entry.Code); !ok {
		v.Errors = append(v.Errors, fmt.Sprintf("Código arancelario no encontrado: %s", entry.Code))
	}

	if entry.DutyPercent < 0 || entry.DutyPercent > MaxDutyPercent {
		v.Errors = append(v.Errors, fmt.Sprintf("Porcentaje DAI fuera de rango (0-%s%%): %s%%", pct(MaxDutyPercent), pct(entry.DutyPercent)))
	}
	if entry.VatPercent < 0 || entry.VatPercent > MaxVatPercent {
		v.Errors = append(v.Errors, fmt.Sprintf("Porcentaje ITBMS fuera de rango (0-%s%%): %s%%", pct(MaxVatPercent), pct(entry.VatPercent)))
	}
	if cif < 0 {
		v.Errors = append(v.Errors, "El valor CIF no puede ser negativo")
	}

	if entry.Category == tariff.CategoryTobacco {
		v.Warnings = append(v.Warnings, "Producto de tabaco: requiere permiso MINSA")
	}
	if entry.DutyPercent > HighDutyPercent {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Arancel elevado (%s%%): verificar clasificación", pct(entry.DutyPercent)))
	}
	if entry.Unit != "" && !tariff.IsKnownUnit(entry.Unit) {
		v.Warnings = append(v.Warnings, fmt.Sprintf("Unidad de medida inusual: %s", entry.Unit))
	}
	if cif > HighValueCIFNotice {
		v.Warnings = append(v.Warnings, "Valor CIF elevado: verificar declaración")
	}

	v.IsValid = len(v.Errors) == 0
	return v
}
