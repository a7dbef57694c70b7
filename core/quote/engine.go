// Package quote - Quote computation engine
// Resolves the applicable pricing tier for a sample count and
// computes the itemized price breakdown. Pure functions of their
// inputs: no side effects, no shared state, safe for concurrent use.
package quote

import (
	"github.com/shopspring/decimal"

	"labquote/core/catalog"
	"labquote/internal/errors"
)

// Breakdown is the itemized decomposition of a quoted total.
// All amounts are exact decimals; formatting to two decimal places
// happens only at the presentation boundary.
type Breakdown struct {
	// ServiceDisplay is the human-readable service name
	ServiceDisplay string `json:"serviceDisplay"`

	// Currency is the currency all amounts are denominated in
	Currency catalog.Currency `json:"currency"`

	// Base is samples x tier price per sample
	Base decimal.Decimal `json:"base"`

	// Iso is the DNA isolation add-on (samples x per-sample price),
	// zero when not requested
	Iso decimal.Decimal `json:"iso"`

	// QS is the flat quick-start fee, zero when not requested
	QS decimal.Decimal `json:"qs"`

	// Total is Base + Iso + QS exactly
	Total decimal.Decimal `json:"total"`
}

// ResolveTier finds the tier covering a sample count.
// Tiers are scanned in catalog order and the first match wins; a
// validated catalog has non-overlapping tiers so the choice is
// unambiguous. Returns NO_TIER_FOR_SAMPLE_COUNT when the count falls
// below the lowest minimum, above the highest maximum, or in a gap.
func ResolveTier(svc catalog.Service, serviceKey string, samples int) (catalog.Tier, error) {
	for _, tier := range svc.Tiers {
		if tier.Contains(samples) {
			return tier, nil
		}
	}
	return catalog.Tier{}, errors.NoTier(serviceKey, samples)
}

// ComputeTotal computes the price breakdown for a request.
// Fails with UNKNOWN_SERVICE when the key is absent from the catalog
// and NO_TIER_FOR_SAMPLE_COUNT when no tier covers the sample count.
func ComputeTotal(cat *catalog.Catalog, serviceKey string, samples int, dnaIsolation, quickStart bool) (Breakdown, error) {
	svc, ok := cat.Service(serviceKey)
	if !ok {
		return Breakdown{}, errors.UnknownService(serviceKey)
	}

	tier, err := ResolveTier(svc, serviceKey, samples)
	if err != nil {
		return Breakdown{}, err
	}

	n := decimal.NewFromInt(int64(samples))

	base := n.Mul(tier.PricePerSample)

	iso := decimal.Zero
	if dnaIsolation {
		iso = n.Mul(svc.Addons.DNAIsolationPerSample)
	}

	qs := decimal.Zero
	if quickStart {
		qs = svc.Addons.QuickStartOneOff
	}

	return Breakdown{
		ServiceDisplay: svc.DisplayName,
		Currency:       svc.Currency,
		Base:           base,
		Iso:            iso,
		QS:             qs,
		Total:          base.Add(iso).Add(qs),
	}, nil
}
