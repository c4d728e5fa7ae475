package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/textnorm"
)

// ErrMissingColumn is returned when a required manifest column has no header.
var ErrMissingColumn = errors.New("manifest column not found")

type column int

const (
	colTracking column = iota
	colRecipient
	colIdentification
	colPhone
	colAddress
	colDescription
	colDeclaredValue
	colFreight
	colInsurance
	colWeight
	colProvince
	colCity
)

// HeaderAliases lists the accepted header texts per column, compared after
// normalization.
var HeaderAliases = map[column][]string{
	colTracking:       {"tracking", "tracking number", "guia", "numero de guia", "hawb", "awb"},
	colRecipient:      {"destinatario", "consignatario", "recipient", "consignee", "nombre"},
	colIdentification: {"identificacion", "cedula", "ruc", "id", "identification"},
	colPhone:          {"telefono", "phone", "tel"},
	colAddress:        {"direccion", "address"},
	colDescription:    {"descripcion", "description", "producto", "contenido"},
	colDeclaredValue:  {"valor", "valor usd", "valor declarado", "valor fob", "fob", "value", "declared value"},
	colFreight:        {"flete", "freight"},
	colInsurance:      {"seguro", "insurance"},
	colWeight:         {"peso", "peso kg", "weight"},
	colProvince:       {"provincia", "province"},
	colCity:           {"ciudad", "city"},
}

var requiredColumns = []struct {
	col  column
	name string
}{
	{colTracking, "tracking"},
	{colDescription, "descripcion"},
	{colDeclaredValue, "valor"},
}

// ReadManifestFile reads the first sheet of an xlsx manifest.
func ReadManifestFile(path string) ([]liquidation.ManifestRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("Close manifest %s failed: %v", path, err)
		}
	}()
	return readManifest(f)
}

func ReadManifest(r io.Reader) ([]liquidation.ManifestRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return readManifest(f)
}

func readManifest(f *excelize.File) ([]liquidation.ManifestRow, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	header := -1
	for i, r := range rows {
		if !blank(r) {
			header = i
			break
		}
	}
	if header < 0 {
		return []liquidation.ManifestRow{}, nil
	}

	index := resolveColumns(rows[header])
	for _, req := range requiredColumns {
		if _, ok := index[req.col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, req.name)
		}
	}

	out := make([]liquidation.ManifestRow, 0, len(rows)-header-1)
	for _, r := range rows[header+1:] {
		if blank(r) {
			continue
		}
		cell := func(c column) string {
			i, ok := index[c]
			if !ok || i >= len(r) {
				return ""
			}
			return strings.TrimSpace(r[i])
		}
		out = append(out, liquidation.ManifestRow{
			Tracking:       cell(colTracking),
			Recipient:      cell(colRecipient),
			Identification: cell(colIdentification),
			Phone:          cell(colPhone),
			Address:        cell(colAddress),
			Description:    cell(colDescription),
			DeclaredValue:  cell(colDeclaredValue),
			Freight:        cell(colFreight),
			Insurance:      cell(colInsurance),
			Weight:         cell(colWeight),
			Province:       cell(colProvince),
			City:           cell(colCity),
		})
	}
	log.Debugf("Manifest sheet %s: %d rows", sheet, len(out))
	return out, nil
}

// resolveColumns maps each known column to the first header cell matching one
// of its aliases.
func resolveColumns(header []string) map[column]int {
	lookup := make(map[string]column)
	for col, aliases := range HeaderAliases {
		for _, a := range aliases {
			lookup[a] = col
		}
	}
	index := make(map[column]int)
	for i, h := range header {
		col, ok := lookup[textnorm.Normalize(h)]
		if !ok {
			continue
		}
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}
	return index
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
