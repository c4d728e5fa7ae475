package liquidation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"150", 150, true},
		{"$1,234.50", 1234.5, true},
		{" 12.5 USD ", 12.5, true},
		{"-3", -3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestCleaners(t *testing.T) {
	assert.Equal(t, "AB123", CleanTracking(" ab 12\t3 "))
	assert.Equal(t, "Juan Perez", CleanText("  Juan \n Perez "))
	assert.Equal(t, "8-123-456", CleanIdentification("8-123-456 "))
	assert.Equal(t, "PE12", CleanIdentification("pe#12"))
	assert.Equal(t, "+507 6000-0000", CleanPhone(" +507 6000-0000 ext"))
}

func TestNormalizeProvince(t *testing.T) {
	assert.Equal(t, "Colón", NormalizeProvince("  COLON "))
	assert.Equal(t, "Panamá Oeste", NormalizeProvince("panama oeste"))
	assert.Equal(t, "Comarca Guna Yala", NormalizeProvince("Comarca Kuna Yala"))
	assert.Equal(t, "Otra", NormalizeProvince("Otra"))

	for _, in := range []string{"Comarca Ngäbe-Buglé", "COMARCA NGABE BUGLE", "ngäbe-buglé"} {
		assert.Equal(t, "Comarca Ngäbe-Buglé", NormalizeProvince(in), in)
	}
	assert.Equal(t, "Panamá Oeste", NormalizeProvince("PANAMA-OESTE"))
	assert.Equal(t, "Chiriquí", NormalizeProvince("Chiriquí."))
	assert.Equal(t, "Darién", NormalizeProvince(CleanText("  darién ")))
}
