// Package catalog - Pricing catalog data model
// The catalog is an immutable description of the lab services on
// offer: per-sample tier pricing, add-on prices, and global fees.
// It is loaded once by an external loader and treated as read-only
// by the quote engine.
package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO-4217-like currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Tier maps an inclusive sample-count range to a per-sample price
type Tier struct {
	// Min is the lowest sample count covered by this tier (>= 1)
	Min int `json:"min"`

	// Max is the highest sample count covered by this tier (>= Min)
	Max int `json:"max"`

	// PricePerSample is the unit price within this tier
	PricePerSample decimal.Decimal `json:"pricePerSample"`
}

// Contains reports whether a sample count falls inside this tier
func (t Tier) Contains(samples int) bool {
	return samples >= t.Min && samples <= t.Max
}

// Addons holds the optional priced features of a service
type Addons struct {
	// DNAIsolationPerSample is charged per sample when DNA
	// isolation is requested
	DNAIsolationPerSample decimal.Decimal `json:"dnaIsolationPerSample"`

	// QuickStartOneOff is a flat one-off fee, not scaled by
	// sample count
	QuickStartOneOff decimal.Decimal `json:"quickStartOneOff"`
}

// AckTexts holds acknowledgement texts echoed into confirmations
type AckTexts struct {
	// RUO is the research-use-only acknowledgement
	RUO string `json:"ruo,omitempty"`

	// TAT is the turnaround-time acknowledgement
	TAT string `json:"tat,omitempty"`
}

// Service describes one priced lab service
type Service struct {
	// DisplayName is the human-readable service name
	DisplayName string `json:"displayName"`

	// Currency is the currency all amounts are denominated in
	Currency Currency `json:"currency"`

	// Tiers is the ordered sequence of non-overlapping pricing tiers
	Tiers []Tier `json:"tiers"`

	// Addons are the optional priced features
	Addons Addons `json:"addons"`

	// AckTexts are optional acknowledgement texts for confirmations
	AckTexts AckTexts `json:"ackTexts,omitempty"`
}

// Fees holds catalog-wide fees
type Fees struct {
	// ReplaceSampleFee is charged per failed sample when the
	// customer opts to replace failed samples. Surfaced in
	// confirmations only; never part of a computed total.
	ReplaceSampleFee decimal.Decimal `json:"replaceSampleFee"`
}

// Catalog is the root pricing document
type Catalog struct {
	// Services maps service key (e.g. "cytoscan-750k-ruo") to service
	Services map[string]Service `json:"services"`

	// Fees are catalog-wide fees
	Fees Fees `json:"fees"`
}

// Service returns the service for a key
func (c *Catalog) Service(key string) (Service, bool) {
	svc, ok := c.Services[key]
	return svc, ok
}

// Keys returns all service keys in sorted order
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.Services))
	for k := range c.Services {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
