/*
PURPOSE:
  Entry point for the bench-plot application.
  Initializes the CLI root command and executes it.

ERROR HANDLING:
  - Explicit error check on Execute(); exit code 1 on failure.

IMPLEMENTATION RULES:
  - Keep main() minimal. All logic belongs in internal/ packages.

USAGE:
  go build -o bench-plot ./cmd/bench-plot
  ./bench-plot [command] [flags]

RELATED FILES:
  - internal/cli/root.go - The actual root command definition.
*/

package main

import (
	"fmt"
	"os"

	"github.com/daryltucker/bench-plot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
