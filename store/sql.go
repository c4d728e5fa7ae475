package store

// Schema is valid for both MySQL and SQLite.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS manifests (
    id               VARCHAR(64)  NOT NULL PRIMARY KEY,
    manifest_number  VARCHAR(64)  NOT NULL,
    processed_at     VARCHAR(40)  NOT NULL,
    total_rows       INTEGER      NOT NULL,
    valid_rows       INTEGER      NOT NULL,
    rows_with_errors INTEGER      NOT NULL,
    total_value      DOUBLE       NOT NULL,
    total_weight     DOUBLE       NOT NULL,
    status           VARCHAR(16)  NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS liquidations (
    id                      VARCHAR(64)  NOT NULL PRIMARY KEY,
    batch_id                VARCHAR(64)  NOT NULL,
    tracking_guide          VARCHAR(64)  NOT NULL,
    recipient               VARCHAR(255) NOT NULL,
    identification          VARCHAR(64)  NOT NULL,
    phone                   VARCHAR(32)  NOT NULL,
    address                 VARCHAR(255) NOT NULL,
    description             TEXT         NOT NULL,
    province                VARCHAR(64)  NOT NULL,
    city                    VARCHAR(128) NOT NULL,
    weight                  DOUBLE       NOT NULL,
    customs_category        VARCHAR(2)   NOT NULL,
    tariff_code             VARCHAR(16)  NOT NULL,
    tariff_description      VARCHAR(255) NOT NULL,
    product_category        VARCHAR(64)  NOT NULL,
    fob_value               DOUBLE       NOT NULL,
    freight_value           DOUBLE       NOT NULL,
    insurance_value         DOUBLE       NOT NULL,
    cif_value               DOUBLE       NOT NULL,
    duty_percent            DOUBLE       NOT NULL,
    duty_amount             DOUBLE       NOT NULL,
    consumption_tax_percent DOUBLE       NOT NULL,
    consumption_tax_amount  DOUBLE       NOT NULL,
    vat_base                DOUBLE       NOT NULL,
    vat_percent             DOUBLE       NOT NULL,
    vat_amount              DOUBLE       NOT NULL,
    customs_fee             DOUBLE       NOT NULL,
    additional_fees         DOUBLE       NOT NULL,
    total_taxes             DOUBLE       NOT NULL,
    total_payable           DOUBLE       NOT NULL,
    status                  VARCHAR(32)  NOT NULL,
    has_restrictions        TINYINT(1)   NOT NULL,
    restrictions            TEXT         NOT NULL,
    requires_manual_review  TINYINT(1)   NOT NULL,
    manual_review_reason    VARCHAR(255) NOT NULL,
    requires_broker         TINYINT(1)   NOT NULL,
    confidence              DOUBLE       NOT NULL,
    observations            TEXT         NOT NULL,
    row_index               INTEGER      NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS consignees (
    id             VARCHAR(64)  NOT NULL PRIMARY KEY,
    manifest_id    VARCHAR(64)  NOT NULL,
    name           VARCHAR(255) NOT NULL,
    identification VARCHAR(64)  NOT NULL,
    province       VARCHAR(64)  NOT NULL,
    packages       INTEGER      NOT NULL,
    total_value    DOUBLE       NOT NULL,
    total_weight   DOUBLE       NOT NULL,
    trackings      TEXT         NOT NULL
)`,
}

// SQL
const (
	InsertManifest string = `INSERT INTO manifests (id, manifest_number, processed_at, total_rows, valid_rows,
                       rows_with_errors, total_value, total_weight, status)
VALUES (:id, :manifest_number, :processed_at, :total_rows, :valid_rows,
        :rows_with_errors, :total_value, :total_weight, :status)`

	InsertLiquidation string = `INSERT INTO liquidations (id, batch_id, tracking_guide, recipient, identification, phone, address, description,
                          province, city, weight, customs_category, tariff_code, tariff_description,
                          product_category, fob_value, freight_value, insurance_value, cif_value,
                          duty_percent, duty_amount, consumption_tax_percent, consumption_tax_amount,
                          vat_base, vat_percent, vat_amount, customs_fee, additional_fees, total_taxes,
                          total_payable, status, has_restrictions, restrictions, requires_manual_review,
                          manual_review_reason, requires_broker, confidence, observations, row_index)
VALUES (:id, :batch_id, :tracking_guide, :recipient, :identification, :phone, :address, :description,
        :province, :city, :weight, :customs_category, :tariff_code, :tariff_description,
        :product_category, :fob_value, :freight_value, :insurance_value, :cif_value,
        :duty_percent, :duty_amount, :consumption_tax_percent, :consumption_tax_amount,
        :vat_base, :vat_percent, :vat_amount, :customs_fee, :additional_fees, :total_taxes,
        :total_payable, :status, :has_restrictions, :restrictions, :requires_manual_review,
        :manual_review_reason, :requires_broker, :confidence, :observations, :row_index)`

	InsertConsignee string = `INSERT INTO consignees (id, manifest_id, name, identification, province, packages,
                        total_value, total_weight, trackings)
VALUES (:id, :manifest_id, :name, :identification, :province, :packages,
        :total_value, :total_weight, :trackings)`

	QueryManifest string = `SELECT id, manifest_number, processed_at, total_rows, valid_rows, rows_with_errors,
       total_value, total_weight, status
FROM manifests
WHERE id = ?`

	QueryManifests string = `SELECT id, manifest_number, processed_at, total_rows, valid_rows, rows_with_errors,
       total_value, total_weight, status
FROM manifests
ORDER BY processed_at DESC, id`

	QueryLiquidationsByBatch string = `SELECT * FROM liquidations WHERE batch_id = ? ORDER BY row_index`

	QueryLiquidation string = `SELECT * FROM liquidations WHERE batch_id = ? AND tracking_guide = ? ORDER BY row_index LIMIT 1`

	QueryLiquidationExists string = `SELECT COUNT(*) FROM liquidations WHERE id = ?`

	QueryConsignees string = `SELECT * FROM consignees WHERE manifest_id = ? ORDER BY packages DESC, name`

	UpdateLiquidation string = `UPDATE liquidations
SET customs_category        = :customs_category,
    tariff_code             = :tariff_code,
    tariff_description      = :tariff_description,
    product_category        = :product_category,
    cif_value               = :cif_value,
    duty_percent            = :duty_percent,
    duty_amount             = :duty_amount,
    consumption_tax_percent = :consumption_tax_percent,
    consumption_tax_amount  = :consumption_tax_amount,
    vat_base                = :vat_base,
    vat_percent             = :vat_percent,
    vat_amount              = :vat_amount,
    customs_fee             = :customs_fee,
    additional_fees         = :additional_fees,
    total_taxes             = :total_taxes,
    total_payable           = :total_payable,
    status                  = :status,
    has_restrictions        = :has_restrictions,
    restrictions            = :restrictions,
    requires_manual_review  = :requires_manual_review,
    manual_review_reason    = :manual_review_reason,
    observations            = :observations
WHERE id = :id`

	UpdateManifestStatus string = `UPDATE manifests SET status = ? WHERE id = ?`

	DeleteManifest     string = `DELETE FROM manifests WHERE id = ?`
	DeleteLiquidations string = `DELETE FROM liquidations WHERE batch_id = ?`
	DeleteConsignees   string = `DELETE FROM consignees WHERE manifest_id = ?`

	QueryManifestTotals string = `SELECT COUNT(*) AS manifests, COALESCE(SUM(total_value), 0) AS total_value,
       COALESCE(SUM(total_weight), 0) AS total_weight
FROM manifests`

	QueryPackageCount string = `SELECT COUNT(*) FROM liquidations`

	QueryManifestsByStatus string = `SELECT status, COUNT(*) AS count FROM manifests GROUP BY status`
)
