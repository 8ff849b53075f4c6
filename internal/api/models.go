package api

import "github.com/yourorg/financiero/internal/finance"

// HeaderCorrelationID carries the request correlation id in both directions.
const HeaderCorrelationID = "X-Correlation-Id"

// ErrorBody is the JSON shape of every non-2xx response.
type ErrorBody struct {
	Code      string                `json:"code"`
	Message   string                `json:"message"`
	CorrId    string                `json:"corrId"`
	Retryable bool                  `json:"retryable"`
	Errors    []ValidationErrorItem `json:"errors,omitempty"`
}

// ValidationErrorItem points at one offending input.
type ValidationErrorItem struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// CalculationRequest is the body of POST /calculations/{domain}.
type CalculationRequest struct {
	Fields finance.Fields `json:"fields"`
}

// CalculationResponse is returned when a calculation succeeds.
type CalculationResponse struct {
	Record finance.Record `json:"record"`
}

// HistoryResponse lists the records of one domain, oldest first.
type HistoryResponse struct {
	Domain  finance.Domain   `json:"domain"`
	Label   string           `json:"label"`
	Count   int              `json:"count"`
	Records []finance.Record `json:"records"`
}

// CategoriesResponse lists the calculable categories.
type CategoriesResponse struct {
	Categories []finance.Category `json:"categories"`
}

// CategoryDetail describes one category screen.
type CategoryDetail struct {
	Domain     finance.Domain `json:"domain"`
	Title      string         `json:"title"`
	Calculable bool           `json:"calculable"`
	Fields     []string       `json:"fields,omitempty"`
}

// VerifyResponse reports the integrity of every history log.
type VerifyResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
