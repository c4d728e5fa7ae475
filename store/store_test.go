package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/tax"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	db := sqlx.NewDb(sqlDB, "sqlite3")
	t.Cleanup(func() { _ = db.Close() })

	s := New(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleLiquidations(batchID string) []liquidation.Liquidation {
	return []liquidation.Liquidation{
		{
			ID: batchID + "-l1", BatchID: batchID, TrackingGuide: "TRK1", Recipient: "Ana Gomez", Identification: "8-123-456",
			Phone: "+507 6000-0000", Address: "Calle 50, Obarrio",
			Description: "Camiseta de algodon", Province: "Panamá", Weight: 0.5, CustomsCategory: tax.BandC,
			TariffCode: "6109.10.00.00", TariffDescription: "Camiseta de algodon", ProductCategory: "Ropa",
			FOBValue: 150, FreightValue: 10, InsuranceValue: 2.5, CIFValue: 162.5, DutyPercent: 15, DutyAmount: 24.38,
			VatBase: 186.88, VatPercent: 7, VatAmount: 13.08, CustomsFee: 2, TotalTaxes: 37.46, TotalPayable: 199.96,
			Status: liquidation.StatusCalculated, Restrictions: []liquidation.Restriction{}, Observations: []string{}, Confidence: 100,
		},
		{
			ID: batchID + "-l2", BatchID: batchID, TrackingGuide: "TRK2", Recipient: "Ana Gomez", Identification: "8-123-456",
			Description: "Pollo congelado", Province: "Panamá", Weight: 2, CustomsCategory: tax.BandC,
			TariffCode: "0207.12.00.00", FOBValue: 500, CIFValue: 500, DutyPercent: 260, DutyAmount: 1300,
			VatBase: 1800, TotalTaxes: 1300, TotalPayable: 1800, Status: liquidation.StatusCalculated,
			HasRestrictions: true,
			Restrictions:    []liquidation.Restriction{{Type: "Registro sanitario", Authority: "MINSA", Message: "Requiere registro"}},
			Observations:    []string{},
		},
		{
			ID: batchID + "-l3", BatchID: batchID, TrackingGuide: "TRK3", Recipient: "Luis Ruiz", Description: "xyzzy",
			FOBValue: 10, CIFValue: 10, CustomsCategory: tax.BandB, Status: liquidation.StatusRequiresManualReview,
			RequiresManualReview: true, ManualReviewReason: "Sin coincidencias en el arancel",
			Restrictions: []liquidation.Restriction{}, Observations: []string{"Destinatario vacío"},
		},
	}
}

func saveSample(t *testing.T, s *Store, id string) Manifest {
	t.Helper()
	liqs := sampleLiquidations(id)
	m := NewManifest(id, "MAWB-"+id, liqs, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, s.SaveBatch(context.Background(), m, liqs))
	return m
}

func TestNewManifest(t *testing.T) {
	m := NewManifest("b1", "230-1234", sampleLiquidations("b1"), time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	assert.Equal(t, "2026-03-01T10:00:00Z", m.ProcessedAt)
	assert.Equal(t, 3, m.TotalRows)
	assert.Equal(t, 2, m.ValidRows)
	assert.Equal(t, 1, m.RowsWithErrors)
	assert.Equal(t, 660.0, m.TotalValue)
	assert.Equal(t, 2.5, m.TotalWeight)
	assert.Equal(t, ManifestProcessed, m.Status)
}

func TestSaveBatchRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	m := saveSample(t, s, "b1")

	got, err := s.FindManifest(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, m, got)

	liqs, err := s.ListByBatch(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, sampleLiquidations("b1"), liqs)

	l, err := s.FindLiquidation(ctx, "b1", "TRK2")
	require.NoError(t, err)
	assert.Equal(t, "MINSA", l.Restrictions[0].Authority)

	l, err = s.FindLiquidation(ctx, "b1", "TRK1")
	require.NoError(t, err)
	assert.Equal(t, "+507 6000-0000", l.Phone)
	assert.Equal(t, "Calle 50, Obarrio", l.Address)

	consignees, err := s.ListConsignees(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, consignees, 2)
	assert.Equal(t, "Ana Gomez", consignees[0].Name)
	assert.Equal(t, 2, consignees[0].Packages)
	assert.Equal(t, 650.0, consignees[0].TotalValue)
	assert.JSONEq(t, `["TRK1","TRK2"]`, consignees[0].Trackings.String())
}

func TestSaveBatchRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	liqs := sampleLiquidations("b1")
	liqs[2].ID = liqs[0].ID
	m := NewManifest("b1", "MAWB", liqs, time.Now())

	require.Error(t, s.SaveBatch(ctx, m, liqs))

	_, err := s.FindManifest(ctx, "b1")
	assert.ErrorIs(t, err, ErrNotFound)
	stored, err := s.ListByBatch(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, stored)
	consignees, err := s.ListConsignees(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, consignees)
}

func TestFindMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.FindManifest(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindLiquidation(ctx, "nope", "TRK1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateLiquidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	saveSample(t, s, "b1")

	l, err := s.FindLiquidation(ctx, "b1", "TRK3")
	require.NoError(t, err)
	l.TariffCode = "4901.99.00.00"
	l.Status = liquidation.StatusCalculated
	l.RequiresManualReview = false
	l.ManualReviewReason = ""
	l.Observations = append(l.Observations, "Revisado")
	require.NoError(t, s.UpdateLiquidation(ctx, l))

	got, err := s.FindLiquidation(ctx, "b1", "TRK3")
	require.NoError(t, err)
	assert.Equal(t, l, got)

	l.ID = "missing"
	assert.ErrorIs(t, s.UpdateLiquidation(ctx, l), ErrNotFound)
}

func TestUpdateManifestStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	saveSample(t, s, "b1")

	require.NoError(t, s.UpdateManifestStatus(ctx, "b1", ManifestExported))
	m, err := s.FindManifest(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, ManifestExported, m.Status)

	assert.ErrorIs(t, s.UpdateManifestStatus(ctx, "b1", "lost"), ErrInvalidStatus)
	assert.ErrorIs(t, s.UpdateManifestStatus(ctx, "nope", ManifestArchived), ErrNotFound)
}

func TestDeleteBatchAndStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	saveSample(t, s, "b1")
	saveSample(t, s, "b2")
	require.NoError(t, s.UpdateManifestStatus(ctx, "b2", ManifestReviewed))

	ms, err := s.ListManifests(ctx)
	require.NoError(t, err)
	assert.Len(t, ms, 2)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Manifests)
	assert.Equal(t, 6, st.Packages)
	assert.Equal(t, 1320.0, st.TotalValue)
	assert.Equal(t, map[ManifestStatus]int{ManifestProcessed: 1, ManifestReviewed: 1}, st.ByStatus)

	require.NoError(t, s.DeleteBatch(ctx, "b1"))
	_, err = s.FindManifest(ctx, "b1")
	assert.ErrorIs(t, err, ErrNotFound)
	liqs, err := s.ListByBatch(ctx, "b1")
	require.NoError(t, err)
	assert.Empty(t, liqs)

	st, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Manifests)
	assert.Equal(t, 3, st.Packages)
}

func TestGroupConsignees(t *testing.T) {
	liqs := []liquidation.Liquidation{
		{TrackingGuide: "A", Identification: "X1", Recipient: "Ana", FOBValue: 10.1, Weight: 1},
		{TrackingGuide: "B", Recipient: "Luis", FOBValue: 5},
		{TrackingGuide: "C", Identification: "X1", Recipient: "Ana G.", FOBValue: 0.2, Weight: 0.5},
		{TrackingGuide: "D"},
		{TrackingGuide: "E"},
	}
	cs := GroupConsignees("m1", liqs)

	require.Len(t, cs, 4)
	assert.Equal(t, "Ana", cs[0].Name)
	assert.Equal(t, 2, cs[0].Packages)
	assert.Equal(t, 10.3, cs[0].TotalValue)
	assert.Equal(t, 1.5, cs[0].TotalWeight)
	assert.JSONEq(t, `["A","C"]`, cs[0].Trackings.String())
	assert.Equal(t, "m1", cs[3].ManifestID)
	assert.Equal(t, 1, cs[3].Packages)
}
