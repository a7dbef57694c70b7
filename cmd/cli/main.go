// Package main is the entry point for the labquote CLI.
package main

import (
	"os"

	"labquote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
