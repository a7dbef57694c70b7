// Package catalogfile loads the pricing catalog from disk.
// Two document formats are supported: the JSON shape served to the
// quote form, and an HCL shape for operators who keep pricing next
// to their infrastructure code. Both run the catalog integrity check
// before the catalog is handed to the engine, so a malformed
// document fails at load time, not at quote time.
package catalogfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"labquote/core/catalog"
	"labquote/internal/errors"
)

// Load reads, decodes, and validates a catalog document.
// The format is chosen by file extension (.json or .hcl).
func Load(path string) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cat, err = loadJSON(path)
	case ".hcl":
		cat, err = loadHCL(path)
	default:
		return nil, errors.Configf("unsupported catalog format: %s", path)
	}
	if err != nil {
		return nil, err
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func loadJSON(path string) (*catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to read catalog", err)
	}

	var cat catalog.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to decode catalog JSON", err)
	}
	return &cat, nil
}

// HCL wire shape. Prices are HCL numbers; they are converted to
// decimals through their shortest decimal representation.
type hclRoot struct {
	Fees     *hclFees     `hcl:"fees,block"`
	Services []hclService `hcl:"service,block"`
}

type hclFees struct {
	ReplaceSampleFee float64 `hcl:"replace_sample_fee"`
}

type hclService struct {
	Key         string     `hcl:"key,label"`
	DisplayName string     `hcl:"display_name"`
	Currency    string     `hcl:"currency"`
	Tiers       []hclTier  `hcl:"tier,block"`
	Addons      *hclAddons `hcl:"addons,block"`
	AckTexts    *hclAck    `hcl:"ack_texts,block"`
}

type hclTier struct {
	Min            int     `hcl:"min"`
	Max            int     `hcl:"max"`
	PricePerSample float64 `hcl:"price_per_sample"`
}

type hclAddons struct {
	DNAIsolationPerSample float64 `hcl:"dna_isolation_per_sample"`
	QuickStartOneOff      float64 `hcl:"quick_start_one_off"`
}

type hclAck struct {
	RUO string `hcl:"ruo,optional"`
	TAT string `hcl:"tat,optional"`
}

func loadHCL(path string) (*catalog.Catalog, error) {
	var root hclRoot
	if err := hclsimple.DecodeFile(path, nil, &root); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to decode catalog HCL", err)
	}

	cat := &catalog.Catalog{
		Services: make(map[string]catalog.Service, len(root.Services)),
	}
	if root.Fees != nil {
		cat.Fees.ReplaceSampleFee = decimal.NewFromFloat(root.Fees.ReplaceSampleFee)
	}

	for _, svc := range root.Services {
		if _, dup := cat.Services[svc.Key]; dup {
			return nil, errors.Configf("duplicate service block: %s", svc.Key)
		}

		out := catalog.Service{
			DisplayName: svc.DisplayName,
			Currency:    catalog.Currency(svc.Currency),
			Tiers:       make([]catalog.Tier, len(svc.Tiers)),
		}
		for i, t := range svc.Tiers {
			out.Tiers[i] = catalog.Tier{
				Min:            t.Min,
				Max:            t.Max,
				PricePerSample: decimal.NewFromFloat(t.PricePerSample),
			}
		}
		if svc.Addons != nil {
			out.Addons = catalog.Addons{
				DNAIsolationPerSample: decimal.NewFromFloat(svc.Addons.DNAIsolationPerSample),
				QuickStartOneOff:      decimal.NewFromFloat(svc.Addons.QuickStartOneOff),
			}
		}
		if svc.AckTexts != nil {
			out.AckTexts = catalog.AckTexts{RUO: svc.AckTexts.RUO, TAT: svc.AckTexts.TAT}
		}

		cat.Services[svc.Key] = out
	}

	return cat, nil
}
