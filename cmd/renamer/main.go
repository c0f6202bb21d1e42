// Package main provides the CLI entry point for renamer.
package main

import (
	"os"

	"renamer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
