// Package main is the entry point for the parley CLI.
//
// Usage:
//
//	parley [flags] <command> [subcommand] [args]
//
// Commands:
//
//	run       - Run a scenario (agents, clock, bus, recording)
//	episodes  - Inspect stored episodes (list, show, export)
//	version   - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/parleylab/parley/cmd/parley/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
