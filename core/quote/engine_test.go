package quote

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"labquote/core/catalog"
	"labquote/internal/errors"
)

// refCatalog is the single-tier reference catalog: 1..10 samples at
// 100 per sample, isolation 20 per sample, quick start 150, EUR.
func refCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Services: map[string]catalog.Service{
			"cytoscan-750k-ruo": {
				DisplayName: "CytoScan 750K (RUO)",
				Currency:    catalog.CurrencyEUR,
				Tiers: []catalog.Tier{
					{Min: 1, Max: 10, PricePerSample: decimal.NewFromInt(100)},
				},
				Addons: catalog.Addons{
					DNAIsolationPerSample: decimal.NewFromInt(20),
					QuickStartOneOff:      decimal.NewFromInt(150),
				},
			},
		},
		Fees: catalog.Fees{ReplaceSampleFee: decimal.NewFromInt(50)},
	}
}

// multiTierCatalog has three tiers with a deliberate gap at 21..24
func multiTierCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Services: map[string]catalog.Service{
			"cytoscan-hd-ruo": {
				DisplayName: "CytoScan HD (RUO)",
				Currency:    catalog.CurrencyEUR,
				Tiers: []catalog.Tier{
					{Min: 1, Max: 10, PricePerSample: decimal.RequireFromString("120.50")},
					{Min: 11, Max: 20, PricePerSample: decimal.RequireFromString("110.25")},
					{Min: 25, Max: 100, PricePerSample: decimal.NewFromInt(95)},
				},
				Addons: catalog.Addons{
					DNAIsolationPerSample: decimal.RequireFromString("19.99"),
					QuickStartOneOff:      decimal.RequireFromString("149.50"),
				},
			},
		},
	}
}

func TestComputeTotalReference(t *testing.T) {
	bd, err := ComputeTotal(refCatalog(), "cytoscan-750k-ruo", 5, true, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := bd.Base.String(), "500"; got != want {
		t.Errorf("base = %s, want %s", got, want)
	}
	if got, want := bd.Iso.String(), "100"; got != want {
		t.Errorf("iso = %s, want %s", got, want)
	}
	if !bd.QS.IsZero() {
		t.Errorf("qs = %s, want 0", bd.QS)
	}
	if got, want := bd.Total.String(), "600"; got != want {
		t.Errorf("total = %s, want %s", got, want)
	}
	if bd.Currency != catalog.CurrencyEUR {
		t.Errorf("currency = %s, want EUR", bd.Currency)
	}
	if bd.ServiceDisplay != "CytoScan 750K (RUO)" {
		t.Errorf("serviceDisplay = %q", bd.ServiceDisplay)
	}
}

func TestComputeTotalUnknownService(t *testing.T) {
	_, err := ComputeTotal(refCatalog(), "cytoscan-hd-ruo", 5, false, false)
	if err == nil {
		t.Fatal("expected error for unknown service")
	}
	if !errors.IsType(err, errors.TypeUnknownService) {
		t.Errorf("error = %v, want UNKNOWN_SERVICE", err)
	}
}

func TestComputeTotalTierBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		wantErr bool
		base    string
	}{
		{name: "below lowest minimum", samples: 0, wantErr: true},
		{name: "lowest minimum", samples: 1, base: "120.5"},
		{name: "first tier maximum", samples: 10, base: "1205"},
		{name: "second tier minimum", samples: 11, base: "1212.75"},
		{name: "second tier maximum", samples: 20, base: "2205"},
		{name: "inside gap", samples: 22, wantErr: true},
		{name: "third tier minimum", samples: 25, base: "2375"},
		{name: "highest maximum", samples: 100, base: "9500"},
		{name: "above highest maximum", samples: 101, wantErr: true},
	}

	cat := multiTierCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd, err := ComputeTotal(cat, "cytoscan-hd-ruo", tt.samples, false, false)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %d samples", tt.samples)
				}
				if !errors.IsType(err, errors.TypeNoTier) {
					t.Errorf("error = %v, want NO_TIER_FOR_SAMPLE_COUNT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := bd.Base.String(); got != tt.base {
				t.Errorf("base = %s, want %s", got, tt.base)
			}
			if !bd.Total.Equal(bd.Base) {
				t.Errorf("total = %s, want base %s with no add-ons", bd.Total, bd.Base)
			}
		})
	}
}

func TestQuickStartIsFlat(t *testing.T) {
	cat := refCatalog()
	for _, samples := range []int{1, 5, 10} {
		without, err := ComputeTotal(cat, "cytoscan-750k-ruo", samples, false, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		with, err := ComputeTotal(cat, "cytoscan-750k-ruo", samples, false, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		delta := with.Total.Sub(without.Total)
		if got, want := delta.String(), "150"; got != want {
			t.Errorf("samples=%d: quick start delta = %s, want %s", samples, got, want)
		}
	}
}

func TestDNAIsolationScalesWithSamples(t *testing.T) {
	cat := refCatalog()
	for _, samples := range []int{1, 5, 10} {
		bd, err := ComputeTotal(cat, "cytoscan-750k-ruo", samples, true, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := decimal.NewFromInt(int64(samples)).Mul(decimal.NewFromInt(20))
		if !bd.Iso.Equal(want) {
			t.Errorf("samples=%d: iso = %s, want %s", samples, bd.Iso, want)
		}
	}
}

// TestTotalIsExactSum checks total = base + iso + qs exactly across
// randomized inputs, with non-integer prices that would drift under
// float arithmetic.
func TestTotalIsExactSum(t *testing.T) {
	cat := multiTierCatalog()
	rng := rand.New(rand.NewSource(42))

	covered := func(n int) bool {
		return (n >= 1 && n <= 20) || (n >= 25 && n <= 100)
	}

	checked := 0
	for checked < 1000 {
		samples := rng.Intn(100) + 1
		if !covered(samples) {
			continue
		}
		iso := rng.Intn(2) == 0
		qs := rng.Intn(2) == 0

		bd, err := ComputeTotal(cat, "cytoscan-hd-ruo", samples, iso, qs)
		if err != nil {
			t.Fatalf("samples=%d: unexpected error: %v", samples, err)
		}

		sum := bd.Base.Add(bd.Iso).Add(bd.QS)
		if !bd.Total.Equal(sum) {
			t.Fatalf("samples=%d iso=%v qs=%v: total %s != base+iso+qs %s", samples, iso, qs, bd.Total, sum)
		}

		// Same inputs must always yield the same breakdown.
		again, err := ComputeTotal(cat, "cytoscan-hd-ruo", samples, iso, qs)
		if err != nil {
			t.Fatalf("samples=%d: unexpected error on recompute: %v", samples, err)
		}
		if !again.Total.Equal(bd.Total) {
			t.Fatalf("samples=%d: recompute total %s != %s", samples, again.Total, bd.Total)
		}

		checked++
	}
}

// TestMonotonicWithinTier checks the base price never decreases as
// the sample count grows inside one tier.
func TestMonotonicWithinTier(t *testing.T) {
	cat := multiTierCatalog()
	prev := decimal.Zero
	for samples := 1; samples <= 10; samples++ {
		bd, err := ComputeTotal(cat, "cytoscan-hd-ruo", samples, false, false)
		if err != nil {
			t.Fatalf("samples=%d: unexpected error: %v", samples, err)
		}
		if bd.Base.LessThan(prev) {
			t.Errorf("samples=%d: base %s decreased from %s", samples, bd.Base, prev)
		}
		prev = bd.Base
	}
}

// TestFirstMatchingTierWins documents the resolution policy for a
// misconfigured catalog with overlapping tiers: the first match in
// definition order is used. Validated catalogs cannot overlap.
func TestFirstMatchingTierWins(t *testing.T) {
	cat := &catalog.Catalog{
		Services: map[string]catalog.Service{
			"overlapping": {
				DisplayName: "Overlapping",
				Currency:    catalog.CurrencyEUR,
				Tiers: []catalog.Tier{
					{Min: 1, Max: 10, PricePerSample: decimal.NewFromInt(100)},
					{Min: 5, Max: 20, PricePerSample: decimal.NewFromInt(50)},
				},
			},
		},
	}

	bd, err := ComputeTotal(cat, "overlapping", 7, false, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := bd.Base.String(), "700"; got != want {
		t.Errorf("base = %s, want %s (first tier price)", got, want)
	}
}
