// Package main is the entry point for the orcado CLI.
package main

import (
	"os"

	"github.com/orcado/orcado/cmd/orcado/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
