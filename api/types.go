// Package api - Request and response DTOs
package api

import "labquote/internal/errors"

// EstimateRequest is the live-estimate input from the quote form
type EstimateRequest struct {
	// ServiceKey identifies the service to price
	ServiceKey string `json:"serviceKey"`

	// Samples is the sample count
	Samples int `json:"samples"`

	// DNAIsolation requests the per-sample isolation add-on
	DNAIsolation bool `json:"dnaIsolation"`

	// QuickStart requests the flat quick-start fee
	QuickStart bool `json:"quickStart"`
}

// EstimateResponse is the price breakdown for the sticky estimate box.
// Amounts are formatted to two decimal places at this boundary.
type EstimateResponse struct {
	OK             bool   `json:"ok"`
	ServiceDisplay string `json:"serviceDisplay"`
	Currency       string `json:"currency"`
	PricePerSample string `json:"pricePerSample"`
	Base           string `json:"base"`
	Iso            string `json:"iso"`
	QS             string `json:"qs"`
	Total          string `json:"total"`
}

// QuoteResponse acknowledges an accepted quote request
type QuoteResponse struct {
	OK       bool   `json:"ok"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// ServiceInfo describes one service for the form's service picker
type ServiceInfo struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Currency    string `json:"currency"`
}

// ErrorResponse is the uniform failure envelope
type ErrorResponse struct {
	OK     bool                `json:"ok"`
	Kind   string              `json:"kind"`
	Error  string              `json:"error"`
	Fields []errors.FieldError `json:"fields,omitempty"`
}
