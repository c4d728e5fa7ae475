package manifest

import (
	"sysafari.com/customs/mguard/liquidation"
	"sysafari.com/customs/mguard/subvaluation"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Request asks for one manifest workbook to be processed. BatchID is optional;
// a new one is generated when empty.
type Request struct {
	ManifestNumber string `json:"manifestNumber"`
	File           string `json:"file"`
	BatchID        string `json:"batchId,omitempty"`
}

// Response is published once the request has been handled.
type Response struct {
	Status         string                `json:"status"`
	ManifestNumber string                `json:"manifestNumber"`
	ManifestID     string                `json:"manifestId"`
	ReportFilename string                `json:"reportFilename"`
	Summary        *liquidation.Summary  `json:"summary,omitempty"`
	Subvaluation   *subvaluation.Summary `json:"subvaluation,omitempty"`
	Error          string                `json:"errors"`
}
