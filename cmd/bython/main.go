// Package main provides the bython command-line tool.
package main

import (
	"os"

	"github.com/leapstack-labs/bython/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
