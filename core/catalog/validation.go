// Package catalog - Catalog integrity checks
// Run once at load time so a malformed catalog fails fast instead of
// surfacing a wrong price at request time.
package catalog

import (
	"labquote/internal/errors"
)

// Validate checks the structural integrity of the catalog.
// It returns a CONFIG_ERROR naming the first offending service and
// tier; a nil error means every service is safe to price against.
func (c *Catalog) Validate() error {
	if len(c.Services) == 0 {
		return errors.Config("catalog defines no services")
	}

	for _, key := range c.Keys() {
		svc := c.Services[key]
		if err := validateService(key, svc); err != nil {
			return err
		}
	}

	if c.Fees.ReplaceSampleFee.IsNegative() {
		return errors.Config("fees.replaceSampleFee must not be negative")
	}

	return nil
}

func validateService(key string, svc Service) error {
	if svc.DisplayName == "" {
		return errors.Configf("service %s: displayName is required", key)
	}
	if len(svc.Currency) != 3 {
		return errors.Configf("service %s: currency must be a 3-letter code, got %q", key, svc.Currency)
	}
	if len(svc.Tiers) == 0 {
		return errors.Configf("service %s: at least one tier is required", key)
	}

	for i, tier := range svc.Tiers {
		if tier.Min < 1 {
			return errors.Configf("service %s: tier %d: min must be >= 1, got %d", key, i, tier.Min)
		}
		if tier.Max < tier.Min {
			return errors.Configf("service %s: tier %d: max %d is below min %d", key, i, tier.Max, tier.Min)
		}
		if tier.PricePerSample.IsNegative() {
			return errors.Configf("service %s: tier %d: pricePerSample must not be negative", key, i)
		}

		// Tiers must be sorted ascending and pairwise non-overlapping;
		// gaps between tiers are allowed.
		if i > 0 {
			prev := svc.Tiers[i-1]
			if tier.Min <= prev.Max {
				return errors.Configf("service %s: tier %d [%d..%d] overlaps or is out of order with tier %d [%d..%d]",
					key, i, tier.Min, tier.Max, i-1, prev.Min, prev.Max)
			}
		}
	}

	if svc.Addons.DNAIsolationPerSample.IsNegative() {
		return errors.Configf("service %s: addons.dnaIsolationPerSample must not be negative", key)
	}
	if svc.Addons.QuickStartOneOff.IsNegative() {
		return errors.Configf("service %s: addons.quickStartOneOff must not be negative", key)
	}

	return nil
}
