package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"sysafari.com/customs/mguard/tariff"
)

func TestValidateCodeFormat(t *testing.T) {
	assert.True(t, ValidateCodeFormat("8471.30.00.00"))
	assert.False(t, ValidateCodeFormat("8471.30"))
	assert.False(t, ValidateCodeFormat("8471300000"))
	assert.False(t, ValidateCodeFormat("847a.30.00.00"))
}

func TestValidate(t *testing.T) {
	store := tariff.Default()

	tests := []struct {
		name     string
		entry    tariff.Entry
		cif      float64
		valid    bool
		errors   int
		warnings int
	}{
		{"laptop", entry(t, "8471.30.00.00"), 500, true, 0, 0},
		{"chicken high duty", entry(t, "0207.12.00.00"), 100, true, 0, 1},
		{"cigarettes", entry(t, "2402.20.00.00"), 100, true, 0, 1},
		{"bad format", tariff.Entry{Code: "84713"}, 10, false, 1, 0},
		{"unknown code", tariff.Entry{Code: "0000.00.00.00"}, 10, false, 1, 0},
		{"duty out of range", tariff.Entry{Code: "8471.30.00.00", DutyPercent: 301}, 10, false, 1, 1},
		{"vat out of range", tariff.Entry{Code: "8471.30.00.00", VatPercent: 16}, 10, false, 1, 0},
		{"negative cif", entry(t, "8471.30.00.00"), -1, false, 1, 0},
		{"odd unit", tariff.Entry{Code: "8471.30.00.00", Unit: "caja"}, 10, true, 0, 1},
		{"very high cif", entry(t, "8471.30.00.00"), 50000.01, true, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Validate(store, tt.entry, tt.cif)
			assert.Equal(t, tt.valid, v.IsValid)
			assert.Len(t, v.Errors, tt.errors)
			assert.Len(t, v.Warnings, tt.warnings)
		})
	}
}
