// Package main provides the CLI entry point for longform.
package main

import (
	"os"

	"github.com/uncharted-distil/longform/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
