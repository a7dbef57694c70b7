// Package cmd - validate command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"labquote/core/request"
	"labquote/internal/errors"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [payload.json]",
	Short: "Validate a quote request payload",
	Long: `Check a raw quote request payload against the request schema and
print every field violation.

Examples:
  labquote validate request.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read payload: %w", err)
	}

	req, err := request.ValidateJSON(raw)
	if err != nil {
		if fields := errors.FieldsOf(err); len(fields) > 0 {
			fmt.Printf("Payload is invalid (%d violations):\n", len(fields))
			for _, f := range fields {
				fmt.Printf("  %s: %s\n", f.Path, f.Reason)
			}
			return err
		}
		return err
	}

	fmt.Printf("Payload is valid: %d samples for %s (%s)\n", req.Samples, req.Institution, req.SampleType)
	return nil
}
