// Package cmd - estimate command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"labquote/adapters/catalogfile"
	"labquote/core/quote"
)

var (
	estimateService   string
	estimateSamples   int
	estimateIsolation bool
	estimateQuick     bool
	estimateJSON      bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Compute a price breakdown for a service and sample count",
	Long: `Resolve the pricing tier for a sample count and print the itemized
price breakdown.

Examples:
  labquote estimate --service cytoscan-750k-ruo --samples 5
  labquote estimate --service cytoscan-hd-ruo --samples 24 --dna-isolation --quick-start
  labquote estimate --service cytoscan-750k-ruo --samples 5 --json`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&estimateService, "service", "s", "", "service key (required)")
	estimateCmd.Flags().IntVarP(&estimateSamples, "samples", "n", 0, "sample count (required)")
	estimateCmd.Flags().BoolVar(&estimateIsolation, "dna-isolation", false, "include the per-sample DNA isolation add-on")
	estimateCmd.Flags().BoolVar(&estimateQuick, "quick-start", false, "include the one-off quick start fee")
	estimateCmd.Flags().BoolVar(&estimateJSON, "json", false, "emit machine-readable JSON")
	_ = estimateCmd.MarkFlagRequired("service")
	_ = estimateCmd.MarkFlagRequired("samples")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cat, err := catalogfile.Load(resolveCatalogPath())
	if err != nil {
		return err
	}

	breakdown, err := quote.ComputeTotal(cat, estimateService, estimateSamples, estimateIsolation, estimateQuick)
	if err != nil {
		return err
	}

	if estimateJSON {
		return json.NewEncoder(os.Stdout).Encode(breakdown)
	}

	fmt.Printf("%s (%d samples)\n\n", breakdown.ServiceDisplay, estimateSamples)
	fmt.Printf("  Base          %10s %s\n", breakdown.Base.StringFixed(2), breakdown.Currency)
	fmt.Printf("  DNA isolation %10s %s\n", breakdown.Iso.StringFixed(2), breakdown.Currency)
	fmt.Printf("  Quick start   %10s %s\n", breakdown.QS.StringFixed(2), breakdown.Currency)
	fmt.Printf("  Total         %10s %s\n", breakdown.Total.StringFixed(2), breakdown.Currency)
	return nil
}
