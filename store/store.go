// Package store persists manifests, their liquidations and consignees.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	log "github.com/sirupsen/logrus"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/tax"
)

type ManifestStatus string

const (
	ManifestProcessed ManifestStatus = "processed"
	ManifestReviewed  ManifestStatus = "reviewed"
	ManifestExported  ManifestStatus = "exported"
	ManifestArchived  ManifestStatus = "archived"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidStatus = errors.New("invalid manifest status")
)

// Manifest is the header of one processed batch. Its ID is the batch id of
// its liquidations.
type Manifest struct {
	ID             string         `json:"id" db:"id"`
	ManifestNumber string         `json:"manifestNumber" db:"manifest_number"`
	ProcessedAt    string         `json:"processedAt" db:"processed_at"`
	TotalRows      int            `json:"totalRows" db:"total_rows"`
	ValidRows      int            `json:"validRows" db:"valid_rows"`
	RowsWithErrors int            `json:"rowsWithErrors" db:"rows_with_errors"`
	TotalValue     float64        `json:"totalValue" db:"total_value"`
	TotalWeight    float64        `json:"totalWeight" db:"total_weight"`
	Status         ManifestStatus `json:"status" db:"status"`
}

// NewManifest builds the header for liqs. Rows flagged for manual review count
// as rows with errors.
func NewManifest(id, manifestNumber string, liqs []liquidation.Liquidation, at time.Time) Manifest {
	m := Manifest{
		ID:             id,
		ManifestNumber: manifestNumber,
		ProcessedAt:    at.UTC().Format(time.RFC3339),
		TotalRows:      len(liqs),
		Status:         ManifestProcessed,
	}
	s := liquidation.Summarize(liqs)
	m.TotalValue = s.TotalFOB
	m.TotalWeight = s.TotalWeight
	m.RowsWithErrors = s.RequiringReview
	m.ValidRows = m.TotalRows - m.RowsWithErrors
	return m
}

// Consignee groups the packages of one recipient inside a manifest.
type Consignee struct {
	ID             string         `json:"id" db:"id"`
	ManifestID     string         `json:"manifestId" db:"manifest_id"`
	Name           string         `json:"name" db:"name"`
	Identification string         `json:"identification" db:"identification"`
	Province       string         `json:"province" db:"province"`
	Packages       int            `json:"packages" db:"packages"`
	TotalValue     float64        `json:"totalValue" db:"total_value"`
	TotalWeight    float64        `json:"totalWeight" db:"total_weight"`
	Trackings      types.JSONText `json:"trackings" db:"trackings"`
}

type Stats struct {
	Manifests   int                    `json:"manifests" db:"manifests"`
	Packages    int                    `json:"packages"`
	TotalValue  float64                `json:"totalValue" db:"total_value"`
	TotalWeight float64                `json:"totalWeight" db:"total_weight"`
	ByStatus    map[ManifestStatus]int `json:"byStatus"`
}

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SaveBatch writes the manifest, every liquidation and the grouped consignees
// in one transaction. Nothing is written if any insert fails.
func (s *Store) SaveBatch(ctx context.Context, m Manifest, liqs []liquidation.Liquidation) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save of manifest %s: %w", m.ID, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Errorf("Rollback of manifest %s failed: %v", m.ID, rbErr)
			}
		}
	}()

	if _, err = tx.NamedExecContext(ctx, InsertManifest, m); err != nil {
		return fmt.Errorf("insert manifest %s: %w", m.ID, err)
	}
	for i, l := range liqs {
		var row liquidationRow
		if row, err = toRow(l, i); err != nil {
			return err
		}
		if _, err = tx.NamedExecContext(ctx, InsertLiquidation, row); err != nil {
			return fmt.Errorf("insert liquidation %s of manifest %s: %w", l.TrackingGuide, m.ID, err)
		}
	}
	for _, c := range GroupConsignees(m.ID, liqs) {
		if _, err = tx.NamedExecContext(ctx, InsertConsignee, c); err != nil {
			return fmt.Errorf("insert consignee %s of manifest %s: %w", c.Name, m.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit manifest %s: %w", m.ID, err)
	}
	log.Infof("Manifest %s (%s) saved with %d liquidations", m.ID, m.ManifestNumber, len(liqs))
	return nil
}

func (s *Store) FindManifest(ctx context.Context, id string) (Manifest, error) {
	var m Manifest
	err := s.db.GetContext(ctx, &m, QueryManifest, id)
	if errors.Is(err, sql.ErrNoRows) {
		return m, fmt.Errorf("manifest %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return m, fmt.Errorf("query manifest %s: %w", id, err)
	}
	return m, nil
}

func (s *Store) ListManifests(ctx context.Context) ([]Manifest, error) {
	ms := []Manifest{}
	if err := s.db.SelectContext(ctx, &ms, QueryManifests); err != nil {
		return nil, fmt.Errorf("query manifests: %w", err)
	}
	return ms, nil
}

// ListByBatch returns the liquidations of a batch in manifest row order.
func (s *Store) ListByBatch(ctx context.Context, batchID string) ([]liquidation.Liquidation, error) {
	var rows []liquidationRow
	if err := s.db.SelectContext(ctx, &rows, QueryLiquidationsByBatch, batchID); err != nil {
		return nil, fmt.Errorf("query liquidations of %s: %w", batchID, err)
	}
	liqs := make([]liquidation.Liquidation, 0, len(rows))
	for _, r := range rows {
		l, err := r.toLiquidation()
		if err != nil {
			return nil, err
		}
		liqs = append(liqs, l)
	}
	return liqs, nil
}

// FindLiquidation returns the first liquidation of batchID with the tracking guide.
func (s *Store) FindLiquidation(ctx context.Context, batchID, trackingGuide string) (liquidation.Liquidation, error) {
	var r liquidationRow
	err := s.db.GetContext(ctx, &r, QueryLiquidation, batchID, trackingGuide)
	if errors.Is(err, sql.ErrNoRows) {
		return liquidation.Liquidation{}, fmt.Errorf("liquidation %s/%s: %w", batchID, trackingGuide, ErrNotFound)
	}
	if err != nil {
		return liquidation.Liquidation{}, fmt.Errorf("query liquidation %s/%s: %w", batchID, trackingGuide, err)
	}
	return r.toLiquidation()
}

// UpdateLiquidation stores the classification, amounts, status and notes of l.
func (s *Store) UpdateLiquidation(ctx context.Context, l liquidation.Liquidation) error {
	var count int
	if err := s.db.GetContext(ctx, &count, QueryLiquidationExists, l.ID); err != nil {
		return fmt.Errorf("query liquidation %s: %w", l.ID, err)
	}
	if count == 0 {
		return fmt.Errorf("liquidation %s: %w", l.ID, ErrNotFound)
	}
	row, err := toRow(l, 0)
	if err != nil {
		return err
	}
	if _, err := s.db.NamedExecContext(ctx, UpdateLiquidation, row); err != nil {
		return fmt.Errorf("update liquidation %s: %w", l.ID, err)
	}
	return nil
}

func (s *Store) UpdateManifestStatus(ctx context.Context, id string, status ManifestStatus) error {
	switch status {
	case ManifestProcessed, ManifestReviewed, ManifestExported, ManifestArchived:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if _, err := s.FindManifest(ctx, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, UpdateManifestStatus, string(status), id); err != nil {
		return fmt.Errorf("update status of manifest %s: %w", id, err)
	}
	return nil
}

// DeleteBatch removes a manifest with its liquidations and consignees.
func (s *Store) DeleteBatch(ctx context.Context, id string) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete of manifest %s: %w", id, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{DeleteLiquidations, DeleteConsignees, DeleteManifest} {
		if _, err = tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("delete manifest %s: %w", id, err)
		}
	}
	return tx.Commit()
}

func (s *Store) ListConsignees(ctx context.Context, manifestID string) ([]Consignee, error) {
	cs := []Consignee{}
	if err := s.db.SelectContext(ctx, &cs, QueryConsignees, manifestID); err != nil {
		return nil, fmt.Errorf("query consignees of %s: %w", manifestID, err)
	}
	return cs, nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.GetContext(ctx, &st, QueryManifestTotals); err != nil {
		return st, fmt.Errorf("query manifest totals: %w", err)
	}
	if err := s.db.GetContext(ctx, &st.Packages, QueryPackageCount); err != nil {
		return st, fmt.Errorf("query package count: %w", err)
	}

	var byStatus []struct {
		Status ManifestStatus `db:"status"`
		Count  int            `db:"count"`
	}
	if err := s.db.SelectContext(ctx, &byStatus, QueryManifestsByStatus); err != nil {
		return st, fmt.Errorf("query manifests by status: %w", err)
	}
	st.ByStatus = make(map[ManifestStatus]int, len(byStatus))
	for _, b := range byStatus {
		st.ByStatus[b.Status] = b.Count
	}
	return st, nil
}

// GroupConsignees groups liqs by identification, falling back to the
// recipient name and then to the row position.
func GroupConsignees(manifestID string, liqs []liquidation.Liquidation) []Consignee {
	type group struct {
		c         Consignee
		trackings []string
	}
	var order []string
	groups := make(map[string]*group)

	for i, l := range liqs {
		key := l.Identification
		if key == "" {
			key = l.Recipient
		}
		if key == "" {
			key = fmt.Sprintf("SIN_ID_%d", i)
		}
		g, ok := groups[key]
		if !ok {
			g = &group{c: Consignee{
				ID:             uuid.NewString(),
				ManifestID:     manifestID,
				Name:           l.Recipient,
				Identification: l.Identification,
				Province:       l.Province,
			}}
			groups[key] = g
			order = append(order, key)
		}
		g.c.Packages++
		g.c.TotalValue = tax.Round(g.c.TotalValue + l.FOBValue)
		g.c.TotalWeight = tax.Round(g.c.TotalWeight + l.Weight)
		g.trackings = append(g.trackings, l.TrackingGuide)
	}

	out := make([]Consignee, 0, len(order))
	for _, key := range order {
		g := groups[key]
		b, _ := json.Marshal(g.trackings)
		g.c.Trackings = types.JSONText(b)
		out = append(out, g.c)
	}
	return out
}
