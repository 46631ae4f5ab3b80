// Package main is the entry point for the smartmedia-cost CLI.
package main

import (
	"os"

	"smartmedia-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
