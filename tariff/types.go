package tariff

// Entry is one line of the tariff schedule. Entries are loaded once and never
// mutated; callers share them by value or by pointer into the Store.
type Entry struct {
	Code                  string   `json:"code" mapstructure:"code"`
	Description           string   `json:"description" mapstructure:"description"`
	Category              string   `json:"category" mapstructure:"category"`
	DutyPercent           float64  `json:"dutyPercent" mapstructure:"duty"`
	ConsumptionTaxPercent float64  `json:"consumptionTaxPercent" mapstructure:"consumption"`
	VatPercent            float64  `json:"vatPercent" mapstructure:"vat"`
	Unit                  string   `json:"unit" mapstructure:"unit"`
	Keywords              []string `json:"keywords" mapstructure:"keywords"`
}

// Units lists the measurement units the customs authority accepts.
var Units = []string{"u", "kg", "l", "par", "m2", "m3", "gal", "g"}

// Categories referenced by the regulatory rules and the band policy.
const (
	CategoryPharma      = "Farmacéuticos"
	CategorySupplements = "Suplementos"
	CategoryMedical     = "Médico"
	CategoryPets        = "Mascotas"
	CategoryElectronics = "Electrónica"
	CategoryToys        = "Juguetes"
	CategoryTobacco     = "Tabaco"
	CategoryDocuments   = "Documentos"
)

// IsKnownUnit reports whether unit is in Units.
func IsKnownUnit(unit string) bool {
	for _, u := range Units {
		if u == unit {
			return true
		}
	}
	return false
}
