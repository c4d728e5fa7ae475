package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func manifestWorkbook(t *testing.T, rows [][]string) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, r := range rows {
		for j, v := range r {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellStr("Sheet1", name, v))
		}
	}
	return f
}

func TestReadManifestFile(t *testing.T) {
	f := manifestWorkbook(t, [][]string{
		{},
		{"Número de Guía", "Destinatario", "Cédula", "Descripción", "Valor (USD)", "Flete", "Peso KG", "Provincia"},
		{"PA-001", "Ana Pérez", "8-123-456", "Camiseta de algodón", "45.00", "5", "0.4", "Panamá"},
		{},
		{"PA-002", "Luis Gómez", "", "Libros", "$30", "", "", "Colón"},
	})
	path := filepath.Join(t.TempDir(), "manifest.xlsx")
	require.NoError(t, f.SaveAs(path))

	rows, err := ReadManifestFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "PA-001", rows[0].Tracking)
	assert.Equal(t, "Ana Pérez", rows[0].Recipient)
	assert.Equal(t, "8-123-456", rows[0].Identification)
	assert.Equal(t, "Camiseta de algodón", rows[0].Description)
	assert.Equal(t, "45.00", rows[0].DeclaredValue)
	assert.Equal(t, "5", rows[0].Freight)
	assert.Equal(t, "0.4", rows[0].Weight)
	assert.Equal(t, "", rows[0].Insurance)

	assert.Equal(t, "PA-002", rows[1].Tracking)
	assert.Equal(t, "$30", rows[1].DeclaredValue)
	assert.Equal(t, "Colón", rows[1].Province)
}

func TestReadManifestMissingColumn(t *testing.T) {
	f := manifestWorkbook(t, [][]string{
		{"Guia", "Descripcion"},
		{"PA-001", "Libros"},
	})
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ReadManifest(&buf)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "valor")
}

func TestReadManifestEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, excelize.NewFile().Write(&buf))

	rows, err := ReadManifest(&buf)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestResolveColumnsKeepsFirstMatch(t *testing.T) {
	index := resolveColumns([]string{"Tracking", "Valor", "FOB", "DESCRIPTION"})
	assert.Equal(t, 0, index[colTracking])
	assert.Equal(t, 1, index[colDeclaredValue])
	assert.Equal(t, 3, index[colDescription])
	_, ok := index[colPhone]
	assert.False(t, ok)
}
