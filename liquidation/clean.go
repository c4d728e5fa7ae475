package liquidation

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"
	"sysafari.com/customs/mguard/textnorm"
)

var (
	spaces       = regexp.MustCompile(`\s+`)
	nonNumeric   = regexp.MustCompile(`[^0-9.\-]`)
	nonIDChars   = regexp.MustCompile(`[^0-9A-Za-z\-]`)
	nonPhoneChar = regexp.MustCompile(`[^0-9+\-() ]`)
)

// CleanTracking removes all whitespace and upper-cases a tracking guide.
func CleanTracking(v string) string {
	return strings.ToUpper(spaces.ReplaceAllString(v, ""))
}

// CleanText collapses runs of whitespace and trims.
func CleanText(v string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(v, " "))
}

func CleanIdentification(v string) string {
	return strings.ToUpper(nonIDChars.ReplaceAllString(v, ""))
}

func CleanPhone(v string) string {
	return strings.TrimSpace(nonPhoneChar.ReplaceAllString(v, ""))
}

// ParseAmount strips currency symbols and separators before parsing. ok is
// false when nothing numeric is left.
func ParseAmount(raw string) (float64, bool) {
	s := nonNumeric.ReplaceAllString(strings.TrimSpace(raw), "")
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return f, true
}

// provinces is keyed on textnorm.Normalize output.
var provinces = map[string]string{
	"panama":              "Panamá",
	"panama oeste":        "Panamá Oeste",
	"colon":               "Colón",
	"chiriqui":            "Chiriquí",
	"veraguas":            "Veraguas",
	"herrera":             "Herrera",
	"los santos":          "Los Santos",
	"cocle":               "Coclé",
	"darien":              "Darién",
	"bocas del toro":      "Bocas del Toro",
	"comarca ngabe bugle": "Comarca Ngäbe-Buglé",
	"ngabe bugle":         "Comarca Ngäbe-Buglé",
	"comarca kuna yala":   "Comarca Guna Yala",
	"comarca guna yala":   "Comarca Guna Yala",
	"guna yala":           "Comarca Guna Yala",
	"comarca embera":      "Comarca Emberá",
}

// NormalizeProvince maps known spellings to the official province name and
// returns anything else unchanged.
func NormalizeProvince(v string) string {
	if p, ok := provinces[textnorm.Normalize(v)]; ok {
		return p
	}
	return v
}
