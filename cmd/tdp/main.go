// Command tdp drives an interactive spectrum-based fault-localization
// session: init against a spectrum directory, run the test/diagnose/plan
// loop, and inspect the resulting diagnosis set.
package main

import (
	"fmt"
	"os"

	"github.com/example/tdp-finder/cmd/tdp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
