package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
	"sysafari.com/customs/mguard/classify"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/regulatory"
	"sysafari.com/customs/mguard/review"
	"sysafari.com/customs/mguard/store"
	"sysafari.com/customs/mguard/subvaluation"
	"sysafari.com/customs/mguard/tariff"
	"sysafari.com/customs/mguard/tax"
)

type fixture struct {
	e         *echo.Echo
	store     *store.Store
	reportDir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	engine, err := regulatory.NewDefaultEngine()
	require.NoError(t, err)
	tariffs := tariff.Default()
	processor := liquidation.NewProcessor(classify.NewMatcher(tariffs, classify.DefaultPolicy()), engine, tax.DefaultBandPolicy())

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	db := sqlx.NewDb(sqlDB, "sqlite3")
	t.Cleanup(func() { _ = db.Close() })
	s := store.New(db)
	require.NoError(t, s.Migrate(context.Background()))

	liqs := []liquidation.Liquidation{
		{ID: "l1", BatchID: "b1", TrackingGuide: "TRK1", Description: "Camiseta de algodon", CustomsCategory: tax.BandC,
			TariffCode: "6109.10.00.00", FOBValue: 150, CIFValue: 150, Status: liquidation.StatusCalculated,
			Restrictions: []liquidation.Restriction{}, Observations: []string{}},
		{ID: "l2", BatchID: "b1", TrackingGuide: "TRK2", Description: "xyzzy", CustomsCategory: tax.BandB,
			FOBValue: 10, CIFValue: 10, Status: liquidation.StatusRequiresManualReview, RequiresManualReview: true,
			ManualReviewReason: "Sin coincidencias en el arancel", Restrictions: []liquidation.Restriction{}, Observations: []string{}},
	}
	m := store.NewManifest("b1", "MAWB-1", liqs, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveBatch(context.Background(), m, liqs))

	dir := t.TempDir()
	h := NewHandler(processor, tariffs, review.NewWorkflow(tariffs, engine, 2), subvaluation.Default(), s, dir)
	e := echo.New()
	h.Register(e)
	return fixture{e: e, store: s, reportDir: dir}
}

func (f fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestClassify(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/classify", `{"description":"Pollo congelado","cif":100}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got liquidation.Classification
	decode(t, rec, &got)
	require.NotNil(t, got.Result.BestMatch)
	assert.Equal(t, "0207.12.00.00", got.Result.BestMatch.Entry.Code)
	require.NotNil(t, got.Calculation)
	assert.Equal(t, 260.0, got.Calculation.TotalTaxes)
	assert.Equal(t, 360.0, got.Calculation.TotalPayable)
	assert.NotEmpty(t, got.Alerts)
}

func TestClassifyRejectsNegativeCIF(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/classify", `{"description":"Laptop","cif":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaxes(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/taxes", `{"code":"8471.30.00.00","cif":1000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got TaxResponse
	decode(t, rec, &got)
	assert.True(t, got.Validation.IsValid)
	require.NotNil(t, got.Calculation)
	assert.Equal(t, 70.0, got.Calculation.VatAmount)
	assert.Equal(t, 1070.0, got.Calculation.TotalPayable)
	assert.Equal(t, tax.BandC, got.Band.Band)
}

func TestTaxesErrors(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/v1/taxes", `{"code":"8471","cif":10}`).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/v1/taxes", `{"code":"1111.11.11.11","cif":10}`).Code)

	rec := f.do(t, http.MethodPost, "/v1/taxes", `{"code":"8471.30.00.00","cif":-5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var got TaxResponse
	decode(t, rec, &got)
	assert.False(t, got.Validation.IsValid)
	assert.Nil(t, got.Calculation)
}

func TestSearchTariffs(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/v1/tariffs?q=laptop", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []tariff.Entry
	decode(t, rec, &got)
	require.NotEmpty(t, got)
	assert.Equal(t, "8471.30.00.00", got[0].Code)

	rec = f.do(t, http.MethodGet, "/v1/tariffs?q=l", "")
	decode(t, rec, &got)
	assert.Empty(t, got)
}

func TestSubvaluation(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/subvaluation",
		`{"packages":[{"id":"p1","description":"iPhone 15 Pro","declaredValue":50},{"id":"p2","description":"Camisa","declaredValue":20}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got SubvaluationResponse
	decode(t, rec, &got)
	require.Len(t, got.Results, 2)
	assert.Equal(t, subvaluation.StateUnderdeclared, got.Results[0].State)
	assert.Equal(t, 2, got.Summary.Total)
}

func TestListLiquidations(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/v1/batches/b1/liquidations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []liquidation.Liquidation
	decode(t, rec, &got)
	require.Len(t, got, 2)
	assert.Equal(t, "TRK1", got[0].TrackingGuide)
}

func TestReviewAndPay(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/batches/b1/liquidations/TRK2/review",
		`{"code":"6109.10.00.00","manualCif":"100","observations":"Factura adjunta"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got liquidation.Liquidation
	decode(t, rec, &got)
	assert.Equal(t, liquidation.StatusCalculated, got.Status)
	assert.False(t, got.RequiresManualReview)
	assert.Equal(t, 100.0, got.CIFValue)
	assert.Equal(t, 23.05, got.TotalTaxes)
	assert.Equal(t, 123.05, got.TotalPayable)
	assert.Equal(t, []string{"Factura adjunta"}, got.Observations)

	stored, err := f.store.FindLiquidation(context.Background(), "b1", "TRK2")
	require.NoError(t, err)
	assert.Equal(t, "6109.10.00.00", stored.TariffCode)

	rec = f.do(t, http.MethodPost, "/v1/batches/b1/liquidations/TRK2/paid", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Equal(t, liquidation.StatusPaid, got.Status)

	rec = f.do(t, http.MethodPost, "/v1/batches/b1/liquidations/TRK2/paid", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReviewRejectsPaid(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/v1/batches/b1/liquidations/TRK1/paid", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/v1/batches/b1/liquidations/TRK1/review", `{"code":"6109.10.00.00"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var e ErrorResponse
	decode(t, rec, &e)
	assert.Equal(t, review.ErrAlreadyPaid.Error(), e.Error)

	stored, err := f.store.FindLiquidation(context.Background(), "b1", "TRK1")
	require.NoError(t, err)
	assert.Equal(t, liquidation.StatusPaid, stored.Status)
}

func TestReviewErrors(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusBadRequest,
		f.do(t, http.MethodPost, "/v1/batches/b1/liquidations/TRK2/review", `{"code":"0000.00.00.00"}`).Code)
	assert.Equal(t, http.StatusNotFound,
		f.do(t, http.MethodPost, "/v1/batches/b1/liquidations/NOPE/review", `{"code":"6109.10.00.00"}`).Code)
}

func TestBatchEndpointsWithoutStore(t *testing.T) {
	engine, err := regulatory.NewDefaultEngine()
	require.NoError(t, err)
	tariffs := tariff.Default()
	h := NewHandler(nil, tariffs, review.NewWorkflow(tariffs, engine, 2), subvaluation.Default(), nil, t.TempDir())
	e := echo.New()
	h.Register(e)

	req := httptest.NewRequest(http.MethodGet, "/v1/batches/b1/liquidations", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDownloadReport(t *testing.T) {
	f := newFixture(t)
	name := "LIQ_MAWB-1_20261015093000.xlsx"
	dir := filepath.Join(f.reportDir, "2026", "10")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("xlsx"), 0o644))

	rec := f.do(t, http.MethodGet, "/report/"+name+"?download=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "xlsx", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/report/LIQ_X_20250101000000.xlsx", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/report/notes.txt", "").Code)
}
