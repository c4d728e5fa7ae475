package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"sysafari.com/customs/mguard/tariff"
)

func TestAssignBoundaries(t *testing.T) {
	p := DefaultBandPolicy()
	shirt := tariff.Entry{Code: "6109.10.00.00", Category: "Ropa"}

	tests := []struct {
		cif  float64
		band Band
	}{
		{0, BandB},
		{99.99, BandB},
		{100, BandB},
		{100.01, BandC},
		{1999.99, BandC},
		{2000, BandD},
		{15000, BandD},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.band, p.Assign(&shirt, "Camiseta", tt.cif).Band, "cif %v", tt.cif)
	}
}

func TestAssignDecisions(t *testing.T) {
	p := DefaultBandPolicy()

	b := p.Assign(nil, "Camiseta", 50)
	assert.False(t, b.ApplyCascade)
	assert.Equal(t, 2.0, b.CustomsFee)
	assert.False(t, b.RequiresBroker)

	c := p.Assign(nil, "Camiseta", 500)
	assert.True(t, c.ApplyCascade)
	assert.False(t, c.RequiresBroker)

	d := p.Assign(nil, "Camiseta", 5000)
	assert.False(t, d.ApplyCascade)
	assert.True(t, d.RequiresBroker)
}

func TestAssignDocuments(t *testing.T) {
	p := DefaultBandPolicy()
	docs := tariff.Entry{Code: "4911.99.00.00", Category: tariff.CategoryDocuments}

	a := p.Assign(&docs, "Papeleria", 5000)
	assert.Equal(t, BandA, a.Band)
	assert.Equal(t, 0.0, a.CustomsFee)
	assert.False(t, a.ApplyCascade)

	assert.Equal(t, BandA, p.Assign(nil, "Sobre con DOCUMENTOS legales", 30).Band)
	assert.Equal(t, BandA, p.Assign(nil, "Contrato firmado", 30).Band)
	assert.Equal(t, BandB, p.Assign(nil, "Cartera de cuero", 30).Band)
}

func TestCustomThresholds(t *testing.T) {
	p := NewBandPolicy(200, 1000, 3.5)

	assert.Equal(t, BandB, p.Assign(nil, "Reloj", 200).Band)
	assert.Equal(t, 3.5, p.Assign(nil, "Reloj", 200).CustomsFee)
	assert.Equal(t, BandC, p.Assign(nil, "Reloj", 999.99).Band)
	assert.Equal(t, BandD, p.Assign(nil, "Reloj", 1000).Band)
	assert.Len(t, p.Rules(), 4)
}
