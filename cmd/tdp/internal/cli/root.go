// Package cli implements the tdp command-line front end over the
// tdp/... core.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tdp",
	Short: "Interactive fault-localization engine (Test, Diagnose, Plan)",
	Long: `tdp drives an interactive fault-localization loop over a spectrum-based
test suite. Given a set of program elements, executed tests, and a
coverage matrix, it produces ranked diagnoses (minimal sets of elements
whose joint failure explains every observed failure) and iteratively
selects the next test to run to maximize expected information gain.

WORKFLOW:
  1. tdp init <spectra-dir> -- <test-command>
  2. tdp run
  3. tdp status   (check current diagnoses and entropy)
  4. tdp list     (review the full diagnosis set)
  5. tdp reset    (cleanup)

EXAMPLES:
  # Initialize against a GZoltar-style spectrum directory
  tdp init .gzoltar/sfl/txt -- go test ./...

  # Drive the loop to completion or iter_max
  tdp run

  # Check current progress
  tdp status

  # Reset and start over
  tdp reset`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}

// workDir returns the directory the session is rooted at.
func workDir() (string, error) {
	return os.Getwd()
}
