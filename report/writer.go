// Package report reads manifest workbooks and writes the consolidated
// liquidation workbook.
package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/subvaluation"
	"sysafari.com/customs/mguard/tax"
	"sysafari.com/customs/mguard/utils"
)

const (
	TimeLayout        = "20060102150405"
	SummarySheet      = "Resumen"
	DetailSheet       = "Liquidaciones"
	AmountPlaces      = 2
	detailHeaderRow   = 1
	detailFirstRow    = 2
	filenamePrefix    = "LIQ"
	filenameExtension = ".xlsx"
)

var unsafeChars = regexp.MustCompile(`[^0-9A-Za-z\-]+`)

// Consolidated is everything the consolidated workbook shows for a batch.
type Consolidated struct {
	ManifestNumber string
	Liquidations   []liquidation.Liquidation
	Summary        liquidation.Summary
	Subvaluation   *subvaluation.Summary
}

// Writer saves consolidated workbooks under Dir/<year>/<month>.
type Writer struct {
	Dir      string
	Template string
}

// BandLabels describes each customs band on the summary sheet.
var BandLabels = []struct {
	Band  tax.Band
	Label string
}{
	{tax.BandA, "A - Documentos (Exento)"},
	{tax.BandB, "B - Mínimo (Exento, tasa de manejo)"},
	{tax.BandC, "C - Valor medio"},
	{tax.BandD, "D - Alto valor (Requiere Corredor)"},
}

var detailHeaders = []string{
	"Guía", "Destinatario", "Identificación", "Provincia", "Descripción", "Código Arancelario",
	"Descripción Arancelaria", "Categoría", "FOB", "Flete", "Seguro", "CIF", "DAI %", "DAI",
	"ISC %", "ISC", "Base ITBMS", "ITBMS %", "ITBMS", "Tasa Aduanera", "Total Tributos",
	"Total a Pagar", "Estado", "Restricciones", "Revisión Manual", "Observaciones", "Teléfono",
}

var border = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

type countLine struct {
	label string
	count int
}

type styles struct {
	text, amount, header, title int
}

// Write builds the workbook and returns its file name. The name ends with the
// creation timestamp, which ResolvePath uses to find the file again.
func (w *Writer) Write(c Consolidated, now time.Time) (string, error) {
	path, err := w.prepare(c.ManifestNumber, now)
	if err != nil {
		return "", err
	}

	var f *excelize.File
	if w.Template != "" {
		if f, err = excelize.OpenFile(path); err != nil {
			return "", fmt.Errorf("open report %s: %w", path, err)
		}
	} else {
		f = excelize.NewFile()
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("Close report %s failed: %v", path, err)
		}
	}()

	if f.GetSheetName(0) != SummarySheet {
		f.SetSheetName(f.GetSheetName(0), SummarySheet)
	}
	f.NewSheet(DetailSheet)
	f.SetActiveSheet(0)

	st, err := newStyles(f)
	if err != nil {
		return "", fmt.Errorf("create report styles: %w", err)
	}
	if err = fillSummary(f, st, c, now); err != nil {
		return "", fmt.Errorf("fill summary sheet: %w", err)
	}
	if err = fillDetail(f, st, c.Liquidations); err != nil {
		return "", fmt.Errorf("fill detail sheet: %w", err)
	}
	if err = f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report %s: %w", path, err)
	}

	log.Infof("Consolidated report for manifest %s written to %s", c.ManifestNumber, path)
	return filepath.Base(path), nil
}

// prepare creates the dated directory and, when a template is configured,
// copies it to the report path.
func (w *Writer) prepare(manifestNumber string, now time.Time) (string, error) {
	if w.Template != "" && !utils.IsExists(w.Template) {
		return "", fmt.Errorf("template file %s does not exist", w.Template)
	}
	saveDir := filepath.Join(w.Dir, strconv.Itoa(now.Year()), strconv.Itoa(int(now.Month())))
	if !utils.IsDir(saveDir) && !utils.CreateDir(saveDir) {
		return "", fmt.Errorf("create report dir %s failed", saveDir)
	}

	name := strings.Trim(unsafeChars.ReplaceAllString(manifestNumber, "-"), "-")
	if name == "" {
		name = "SIN-MANIFIESTO"
	}
	path := filepath.Join(saveDir, fmt.Sprintf("%s_%s_%s%s", filenamePrefix, name, now.Format(TimeLayout), filenameExtension))

	if w.Template != "" {
		if err := utils.Copy(w.Template, path); err != nil {
			return "", fmt.Errorf("copy template %s to %s: %w", w.Template, path, err)
		}
	}
	return path, nil
}

// ResolvePath finds a report written by Write from its file name.
func ResolvePath(rootDir, filename string) (string, error) {
	if filename == "" || filepath.Base(filename) != filename || !strings.HasSuffix(filename, filenameExtension) {
		return "", fmt.Errorf("invalid report filename %q", filename)
	}
	parts := strings.Split(strings.TrimSuffix(filename, filenameExtension), "_")
	timestamp := parts[len(parts)-1]
	if len(parts) < 2 || timestamp == "" {
		return "", errors.New("report filename " + filename + " has no timestamp")
	}
	t, err := time.Parse(TimeLayout, timestamp)
	if err != nil {
		return "", fmt.Errorf("report filename %s: %w", filename, err)
	}
	return filepath.Join(rootDir, strconv.Itoa(t.Year()), strconv.Itoa(int(t.Month())), filename), nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error
	if st.text, err = f.NewStyle(&excelize.Style{Border: border}); err != nil {
		return st, err
	}
	if st.amount, err = f.NewStyle(&excelize.Style{Border: border, NumFmt: 4}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return st, err
	}
	st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	return st, err
}

func fillSummary(f *excelize.File, st styles, c Consolidated, now time.Time) error {
	s := c.Summary
	sheet := SummarySheet
	row := 1

	if err := addStringCell(f, sheet, "A1", "Reporte Consolidado de Liquidación", st.title); err != nil {
		return err
	}
	row += 2
	pairs := [][2]string{
		{"Manifiesto", c.ManifestNumber},
		{"Fecha de generación", now.Format("2006-01-02 15:04:05")},
		{"Total de paquetes", strconv.Itoa(s.Packages)},
	}
	for _, p := range pairs {
		if err := addRow(f, sheet, row, st.text, p[0], p[1]); err != nil {
			return err
		}
		row++
	}

	row++
	if err := addStringCell(f, sheet, cell("A", row), "Totales financieros", st.header); err != nil {
		return err
	}
	if err := addStringCell(f, sheet, cell("B", row), "USD", st.header); err != nil {
		return err
	}
	row++
	totals := []struct {
		label string
		value float64
	}{
		{"Total FOB", s.TotalFOB},
		{"Total Flete", s.TotalFreight},
		{"Total Seguro", s.TotalInsurance},
		{"Total CIF", s.TotalCIF},
		{"Total DAI", s.TotalDuty},
		{"Total ISC", s.TotalConsumptionTax},
		{"Total ITBMS", s.TotalVat},
		{"Total Tributos", s.TotalTaxes},
		{"Tasas Aduaneras", s.TotalCustomsFees},
		{"Total a Pagar", s.TotalPayable},
	}
	for _, t := range totals {
		if err := addStringCell(f, sheet, cell("A", row), t.label, st.text); err != nil {
			return err
		}
		if err := addFloatCell(f, sheet, cell("B", row), t.value, st.amount); err != nil {
			return err
		}
		row++
	}

	row++
	for i, h := range []string{"Categoría aduanera", "Paquetes", "CIF", "Tributos", "Total a Pagar"} {
		if err := addStringCell(f, sheet, cellAt(i+1, row), h, st.header); err != nil {
			return err
		}
	}
	row++
	for _, b := range BandLabels {
		t := s.ByBand[b.Band]
		if err := addStringCell(f, sheet, cell("A", row), b.Label, st.text); err != nil {
			return err
		}
		if err := f.SetCellInt(sheet, cell("B", row), t.Count); err != nil {
			return err
		}
		for i, v := range []float64{t.CIF, t.Taxes, t.Payable} {
			if err := addFloatCell(f, sheet, cellAt(i+3, row), v, st.amount); err != nil {
				return err
			}
		}
		row++
	}

	row++
	if err := addRow(f, sheet, row, st.header, "Alertas", "Paquetes"); err != nil {
		return err
	}
	row++
	alerts := []countLine{
		{"Con restricciones", s.WithRestrictions},
		{"Requieren revisión manual", s.RequiringReview},
		{"Sin código arancelario", s.PendingTariffCode},
		{"Requieren corredor", s.RequiringBroker},
	}
	if sv := c.Subvaluation; sv != nil {
		alerts = append(alerts,
			countLine{"Subvaluados", sv.Underdeclared},
			countLine{"Valor sospechoso", sv.Suspicious},
			countLine{"Bloqueados por subvaluación", sv.Blocked},
		)
	}
	for _, a := range alerts {
		if err := addStringCell(f, sheet, cell("A", row), a.label, st.text); err != nil {
			return err
		}
		if err := f.SetCellInt(sheet, cell("B", row), a.count); err != nil {
			return err
		}
		row++
	}

	return f.SetColWidth(sheet, "A", "A", 40)
}

func fillDetail(f *excelize.File, st styles, liqs []liquidation.Liquidation) error {
	sheet := DetailSheet
	for i, h := range detailHeaders {
		if err := addStringCell(f, sheet, cellAt(i+1, detailHeaderRow), h, st.header); err != nil {
			return err
		}
	}

	for i, l := range liqs {
		row := detailFirstRow + i
		texts := map[int]string{
			1:  l.TrackingGuide,
			2:  l.Recipient,
			3:  l.Identification,
			4:  l.Province,
			5:  l.Description,
			6:  l.TariffCode,
			7:  l.TariffDescription,
			8:  string(l.CustomsCategory),
			23: string(l.Status),
			24: restrictionsText(l.Restrictions),
			25: yesNo(l.RequiresManualReview, l.ManualReviewReason),
			26: strings.Join(l.Observations, "; "),
			27: l.Phone,
		}
		amounts := map[int]float64{
			9:  l.FOBValue,
			10: l.FreightValue,
			11: l.InsuranceValue,
			12: l.CIFValue,
			13: l.DutyPercent,
			14: l.DutyAmount,
			15: l.ConsumptionTaxPercent,
			16: l.ConsumptionTaxAmount,
			17: l.VatBase,
			18: l.VatPercent,
			19: l.VatAmount,
			20: l.CustomsFee,
			21: l.TotalTaxes,
			22: l.TotalPayable,
		}
		for col, v := range texts {
			if err := addStringCell(f, sheet, cellAt(col, row), v, st.text); err != nil {
				return err
			}
		}
		for col, v := range amounts {
			if err := addFloatCell(f, sheet, cellAt(col, row), v, st.amount); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(sheet, "A", "AA", 16)
}

func restrictionsText(rs []liquidation.Restriction) string {
	parts := make([]string, 0, len(rs))
	for _, r := range rs {
		parts = append(parts, r.Authority+": "+r.Type)
	}
	return strings.Join(parts, "; ")
}

func yesNo(b bool, reason string) string {
	if !b {
		return "No"
	}
	if reason == "" {
		return "Sí"
	}
	return "Sí - " + reason
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func cellAt(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func addRow(f *excelize.File, sheet string, row, styleID int, a, b string) error {
	if err := addStringCell(f, sheet, cell("A", row), a, styleID); err != nil {
		return err
	}
	return addStringCell(f, sheet, cell("B", row), b, styleID)
}

func addStringCell(f *excelize.File, sheet, cellName, value string, styleID int) error {
	if err := f.SetCellStr(sheet, cellName, value); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellName, cellName, styleID)
}

func addFloatCell(f *excelize.File, sheet, cellName string, value float64, styleID int) error {
	if err := f.SetCellFloat(sheet, cellName, value, AmountPlaces, 64); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellName, cellName, styleID)
}
