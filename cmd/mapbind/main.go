// Package main provides the mapbind CLI.
package main

import (
	"os"

	"github.com/mapbind-labs/mapbind/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
