// Package main is the entry point for the rollcall CLI/TUI.
package main

import (
	"os"

	"github.com/rollcall-io/rollcall/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
