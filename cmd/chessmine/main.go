// Package main is the entry point for the chessmine CLI tool.
package main

import (
	"os"

	"github.com/chessmine/chessmine/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
