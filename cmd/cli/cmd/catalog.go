// Package cmd - catalog commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"labquote/adapters/catalogfile"
)

// catalogCmd groups catalog management commands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the pricing catalog",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// catalogCheckCmd validates a catalog document
var catalogCheckCmd = &cobra.Command{
	Use:   "check [catalog-file]",
	Short: "Check a catalog document for integrity violations",
	Long: `Load a catalog document and run the integrity check: tiers sorted,
non-overlapping, min <= max, and no negative prices.

Examples:
  labquote catalog check service-config.json
  labquote catalog check pricing.hcl`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogCheck,
}

func init() {
	catalogCmd.AddCommand(catalogCheckCmd)
}

func runCatalogCheck(cmd *cobra.Command, args []string) error {
	cat, err := catalogfile.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Catalog is valid: %d services\n", len(cat.Services))
	for _, key := range cat.Keys() {
		svc := cat.Services[key]
		fmt.Printf("  %s: %s, %d tiers, %s\n", key, svc.DisplayName, len(svc.Tiers), svc.Currency)
	}
	return nil
}
