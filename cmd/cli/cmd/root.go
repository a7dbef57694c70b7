// Package cmd provides the CLI commands for labquote.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"labquote/internal/config"
	"labquote/internal/logging"
)

var (
	cfgFile     string
	catalogPath string
	verbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "labquote",
	Short: "Price and validate lab-testing quote requests",
	Long: `labquote quotes a lab-testing service from a tiered pricing catalog
and validates incoming quote requests before they reach fulfillment.

Examples:
  labquote estimate --service cytoscan-750k-ruo --samples 5 --dna-isolation
  labquote validate request.json
  labquote catalog check service-config.json`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog document (.json or .hcl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// resolveCatalogPath prefers the --catalog flag over the config file
func resolveCatalogPath() string {
	if catalogPath != "" {
		return catalogPath
	}
	return config.Get().Catalog.Path
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("labquote version 1.0.0")
	},
}
