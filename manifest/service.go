// Package manifest runs a manifest workbook through classification,
// liquidation, persistence and the consolidated report.
package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/report"
	"sysafari.com/customs/mguard/store"
	"sysafari.com/customs/mguard/subvaluation"
)

// BatchSaver persists a processed batch.
type BatchSaver interface {
	SaveBatch(ctx context.Context, m store.Manifest, liqs []liquidation.Liquidation) error
}

// Publisher delivers a response, typically to the response queue.
type Publisher func(res *Response) error

type Service struct {
	processor *liquidation.Processor
	detector  *subvaluation.Detector
	saver     BatchSaver
	writer    *report.Writer
	publish   Publisher
	progress  liquidation.Progress
	now       func() time.Time
}

// NewService wires the pipeline. saver and publish may be nil: the batch is
// then not persisted or not published.
func NewService(p *liquidation.Processor, d *subvaluation.Detector, saver BatchSaver, w *report.Writer, publish Publisher) *Service {
	return &Service{processor: p, detector: d, saver: saver, writer: w, publish: publish, now: time.Now}
}

// WithProgress reports batch progress to p in addition to the debug log.
func (s *Service) WithProgress(p liquidation.Progress) *Service {
	s.progress = p
	return s
}

// HandleMessage decodes a queued request, processes it and publishes the
// response. It never returns an error; failures are reported in the response.
func (s *Service) HandleMessage(ctx context.Context, data string) {
	response := &Response{Status: StatusFailed}

	req, err := deserializeRequest(data)
	if err != nil {
		response.Error = fmt.Sprintf("Deserialization of MQ message failed, err:%v", err)
	} else {
		response = s.Process(ctx, req)
	}

	if s.publish == nil {
		return
	}
	if err := s.publish(response); err != nil {
		log.Errorf("Publish response of manifest %s failed: %v", response.ManifestNumber, err)
	}
}

// Process reads req.File and runs the whole pipeline.
func (s *Service) Process(ctx context.Context, req Request) *Response {
	response := &Response{Status: StatusFailed, ManifestNumber: req.ManifestNumber}
	if req.File == "" {
		response.Error = "manifest file must be provided"
		return response
	}

	rows, err := report.ReadManifestFile(req.File)
	if err != nil {
		response.Error = fmt.Sprintf("Read manifest failed, err:%v", err)
		return response
	}
	return s.ProcessRows(ctx, req, rows)
}

// ProcessRows runs already-read rows through the pipeline.
func (s *Service) ProcessRows(ctx context.Context, req Request, rows []liquidation.ManifestRow) *Response {
	batchID := req.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}
	response := &Response{Status: StatusFailed, ManifestNumber: req.ManifestNumber, ManifestID: batchID}
	log.Infof("Processing manifest %s as batch %s: %d rows", req.ManifestNumber, batchID, len(rows))

	result, err := s.processor.Process(ctx, batchID, rows, func(done, total int) {
		log.Debugf("Manifest %s: %d/%d", req.ManifestNumber, done, total)
		if s.progress != nil {
			s.progress(done, total)
		}
	})
	if errors.Is(err, liquidation.ErrCancelled) {
		response.Error = fmt.Sprintf("Processing cancelled after %d of %d rows", len(result.Liquidations), len(rows))
		response.Summary = &result.Summary
		return response
	}
	if err != nil {
		response.Error = fmt.Sprintf("Process manifest failed, err:%v", err)
		return response
	}
	response.Summary = &result.Summary

	var sv *subvaluation.Summary
	if s.detector != nil {
		summary := subvaluation.Summarize(s.detector.Analyze(packages(result.Liquidations)))
		sv = &summary
		response.Subvaluation = sv
	}

	now := s.now()
	if s.saver != nil {
		m := store.NewManifest(batchID, req.ManifestNumber, result.Liquidations, now)
		if err = s.saver.SaveBatch(ctx, m, result.Liquidations); err != nil {
			response.Error = fmt.Sprintf("Save manifest failed, err:%v", err)
			return response
		}
	}

	if s.writer != nil {
		filename, err := s.writer.Write(report.Consolidated{
			ManifestNumber: req.ManifestNumber,
			Liquidations:   result.Liquidations,
			Summary:        result.Summary,
			Subvaluation:   sv,
		}, now)
		if err != nil {
			response.Error = fmt.Sprintf("Generate report failed, err:%v", err)
			return response
		}
		response.ReportFilename = filename
	}

	response.Status = StatusSuccess
	log.Infof("Manifest %s processed: %d packages, total payable %.2f", req.ManifestNumber,
		result.Summary.Packages, result.Summary.TotalPayable)
	return response
}

func packages(liqs []liquidation.Liquidation) []subvaluation.Package {
	out := make([]subvaluation.Package, 0, len(liqs))
	for _, l := range liqs {
		out = append(out, subvaluation.Package{
			ID:            l.ID,
			Tracking:      l.TrackingGuide,
			Description:   l.Description,
			DeclaredValue: l.FOBValue,
		})
	}
	return out
}

// deserializeRequest accepts the JSON object itself or a quoted JSON string.
func deserializeRequest(message string) (Request, error) {
	log.Infof("Deserialize request: %v", message)

	req := Request{}
	if msg, err := strconv.Unquote(message); err == nil {
		message = msg
	}
	if err := json.Unmarshal([]byte(message), &req); err != nil {
		return req, err
	}
	return req, nil
}
