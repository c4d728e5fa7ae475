// Package web exposes classification, taxes, subvaluation, review and report
// download over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/report"
	"sysafari.com/customs/mguard/review"
	"sysafari.com/customs/mguard/store"
	"sysafari.com/customs/mguard/subvaluation"
	"sysafari.com/customs/mguard/tariff"
	"sysafari.com/customs/mguard/tax"
	"sysafari.com/customs/mguard/utils"
)

// LiquidationStore is the part of the store the review endpoints need.
type LiquidationStore interface {
	ListByBatch(ctx context.Context, batchID string) ([]liquidation.Liquidation, error)
	FindLiquidation(ctx context.Context, batchID, trackingGuide string) (liquidation.Liquidation, error)
	UpdateLiquidation(ctx context.Context, l liquidation.Liquidation) error
}

type Handler struct {
	processor *liquidation.Processor
	tariffs   *tariff.Store
	workflow  *review.Workflow
	detector  *subvaluation.Detector
	store     LiquidationStore
	reportDir string
}

// NewHandler wires the handlers. store may be nil, in which case the batch
// endpoints answer 503.
func NewHandler(p *liquidation.Processor, tariffs *tariff.Store, w *review.Workflow, d *subvaluation.Detector,
	s LiquidationStore, reportDir string) *Handler {
	return &Handler{processor: p, tariffs: tariffs, workflow: w, detector: d, store: s, reportDir: reportDir}
}

// Register mounts every route on e.
func (h *Handler) Register(e *echo.Echo) {
	v1 := e.Group("/v1")
	v1.POST("/classify", h.Classify)
	v1.POST("/taxes", h.Taxes)
	v1.GET("/tariffs", h.SearchTariffs)
	v1.POST("/subvaluation", h.Subvaluation)
	v1.GET("/batches/:id/liquidations", h.ListLiquidations)
	v1.POST("/batches/:id/liquidations/:guide/review", h.Review)
	v1.POST("/batches/:id/liquidations/:guide/paid", h.MarkPaid)

	e.GET("/report/:filename", h.DownloadReport)
}

type ClassifyRequest struct {
	Description string  `json:"description"`
	CIF         float64 `json:"cif"`
}

type TaxRequest struct {
	Code string  `json:"code"`
	CIF  float64 `json:"cif"`
}

type TaxResponse struct {
	Entry       tariff.Entry     `json:"entry"`
	Validation  tax.Validation   `json:"validation"`
	Calculation *tax.Calculation `json:"calculation,omitempty"`
	Band        tax.BandDecision `json:"band"`
}

type SubvaluationRequest struct {
	Packages []subvaluation.Package `json:"packages"`
}

type SubvaluationResponse struct {
	Results []subvaluation.Result `json:"results"`
	Summary subvaluation.Summary  `json:"summary"`
}

type ReviewRequest struct {
	Code         string `json:"code"`
	ManualCIF    string `json:"manualCif"`
	Observations string `json:"observations"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Classify
// @Summary      Classify a product description
// @Description  Fuzzy match against the tariff table, regulatory alerts, band and taxes
// @Tags         classification
// @Accept       json
// @Produce      json
// @Param        request  body      ClassifyRequest  true  "Description and CIF"
// @Success      200      {object}  liquidation.Classification
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/classify [post]
func (h *Handler) Classify(c echo.Context) error {
	var req ClassifyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body: %v", err)
	}
	if req.CIF < 0 {
		return badRequest(c, "cif must not be negative")
	}
	return c.JSON(http.StatusOK, h.processor.ClassifyProduct(req.Description, req.CIF))
}

// Taxes
// @Summary      Calculate the taxes of a tariff code
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Param        request  body      TaxRequest  true  "Tariff code and CIF"
// @Success      200      {object}  TaxResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /v1/taxes [post]
func (h *Handler) Taxes(c echo.Context) error {
	var req TaxRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body: %v", err)
	}
	code := strings.TrimSpace(req.Code)
	if !tax.ValidateCodeFormat(code) {
		return badRequest(c, "tariff code %q is not in dddd.dd.dd.dd form", code)
	}
	entry, ok := h.tariffs.FindByCode(code)
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("tariff code %s not found", code)})
	}

	res := TaxResponse{
		Entry:      entry,
		Validation: tax.Validate(h.tariffs, entry, req.CIF),
		Band:       h.processor.Bands().Assign(&entry, entry.Description, req.CIF),
	}
	if res.Validation.IsValid {
		calc := tax.Calculate(entry, req.CIF)
		res.Calculation = &calc
	}
	return c.JSON(http.StatusOK, res)
}

// SearchTariffs
// @Summary      Search tariff entries
// @Description  Matches code, description, category and keywords; at most 10 results
// @Tags         review
// @Produce      json
// @Param        q    query     string  true  "Search text, at least 2 characters"
// @Success      200  {array}   tariff.Entry
// @Router       /v1/tariffs [get]
func (h *Handler) SearchTariffs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.workflow.Search(c.QueryParam("q")))
}

// Subvaluation
// @Summary      Detect under-declared packages
// @Tags         subvaluation
// @Accept       json
// @Produce      json
// @Param        request  body      SubvaluationRequest  true  "Packages"
// @Success      200      {object}  SubvaluationResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/subvaluation [post]
func (h *Handler) Subvaluation(c echo.Context) error {
	var req SubvaluationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body: %v", err)
	}
	results := h.detector.Analyze(req.Packages)
	return c.JSON(http.StatusOK, SubvaluationResponse{Results: results, Summary: subvaluation.Summarize(results)})
}

// ListLiquidations
// @Summary      List the liquidations of a batch
// @Tags         review
// @Produce      json
// @Param        id   path      string  true  "Batch id"
// @Success      200  {array}   liquidation.Liquidation
// @Failure      503  {object}  ErrorResponse
// @Router       /v1/batches/{id}/liquidations [get]
func (h *Handler) ListLiquidations(c echo.Context) error {
	if h.store == nil {
		return unavailable(c)
	}
	liqs, err := h.store.ListByBatch(c.Request().Context(), c.Param("id"))
	if err != nil {
		log.Errorf("List liquidations of batch %s failed: %v", c.Param("id"), err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, liqs)
}

// Review
// @Summary      Apply a manual classification
// @Description  Recalculates the liquidation with the chosen tariff code and optional CIF override
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        id       path      string         true  "Batch id"
// @Param        guide    path      string         true  "Tracking guide"
// @Param        request  body      ReviewRequest  true  "Chosen code, CIF override, observations"
// @Success      200      {object}  liquidation.Liquidation
// @Failure      400      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /v1/batches/{id}/liquidations/{guide}/review [post]
func (h *Handler) Review(c echo.Context) error {
	if h.store == nil {
		return unavailable(c)
	}
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body: %v", err)
	}
	entry, ok := h.tariffs.FindByCode(strings.TrimSpace(req.Code))
	if !ok {
		return badRequest(c, "tariff code %q not found", req.Code)
	}

	ctx := c.Request().Context()
	liq, err := h.store.FindLiquidation(ctx, c.Param("id"), c.Param("guide"))
	if err != nil {
		return storeError(c, err)
	}
	if err = review.CheckReviewable(liq); err != nil {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	updated := h.workflow.Recalculate(liq, entry, req.ManualCIF, req.Observations)
	if err = h.store.UpdateLiquidation(ctx, updated); err != nil {
		return storeError(c, err)
	}
	log.Infof("Liquidation %s of batch %s reclassified to %s", updated.TrackingGuide, updated.BatchID, entry.Code)
	return c.JSON(http.StatusOK, updated)
}

// MarkPaid
// @Summary      Mark a calculated liquidation as paid
// @Tags         review
// @Produce      json
// @Param        id     path      string  true  "Batch id"
// @Param        guide  path      string  true  "Tracking guide"
// @Success      200    {object}  liquidation.Liquidation
// @Failure      404    {object}  ErrorResponse
// @Failure      409    {object}  ErrorResponse
// @Router       /v1/batches/{id}/liquidations/{guide}/paid [post]
func (h *Handler) MarkPaid(c echo.Context) error {
	if h.store == nil {
		return unavailable(c)
	}
	ctx := c.Request().Context()
	liq, err := h.store.FindLiquidation(ctx, c.Param("id"), c.Param("guide"))
	if err != nil {
		return storeError(c, err)
	}
	paid, err := review.MarkPaid(liq)
	if err != nil {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	}
	if err = h.store.UpdateLiquidation(ctx, paid); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, paid)
}

// DownloadReport
// @Summary      Download a consolidated report
// @Tags         report
// @Produce      octet-stream
// @Param        filename  path   string  true   "Report filename"
// @Param        download  query  int     false  "Download file"
// @Success      200
// @Failure      400
// @Failure      404
// @Router       /report/{filename} [get]
func (h *Handler) DownloadReport(c echo.Context) error {
	if !utils.IsDir(h.reportDir) {
		return c.String(http.StatusInternalServerError, fmt.Sprintf("The report root directory: %s does not exist.", h.reportDir))
	}
	filename := c.Param("filename")
	path, err := report.ResolvePath(h.reportDir, filename)
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("The filename: %s format not supported.", filename))
	}
	if !utils.IsExists(path) {
		return c.String(http.StatusNotFound, fmt.Sprintf("The file: %s not found.", filename))
	}

	if c.QueryParam("download") == "1" {
		return c.Attachment(path, filename)
	}
	return c.File(path)
}

func badRequest(c echo.Context, format string, args ...interface{}) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf(format, args...)})
}

func unavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "liquidation store not configured"})
}

func storeError(c echo.Context, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	log.Errorf("Liquidation store failed: %v", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
