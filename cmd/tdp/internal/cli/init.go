package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/example/tdp-finder/cmd/tdp/internal/session"
	"github.com/example/tdp-finder/cmd/tdp/internal/ui"
	"github.com/example/tdp-finder/tdp/domain"
	"github.com/spf13/cobra"
)

var (
	candidatesPath    string
	traceFile         string
	interactiveExec   bool
	formula           string
	maxSetSize        int
	maxDiagnoses      int
	sizePenalty       float64
	minWeight         float64
	maxIterations     int
	coverageThreshold float64
	fallbackTopK      int
)

var initCmd = &cobra.Command{
	Use:   "init <spectra-dir> [-- <test-command>]",
	Short: "Initialize a new TDP session against a spectrum directory",
	Long: `Initialize a new fault-localization session.

spectra-dir must contain spectra.csv, tests.csv, and matrix.txt in the
GZoltar on-disk format. The test command, given after "--", is run once
per candidate test the planner selects; it must write the set of
elements it actually covered (one id per line) to --trace-file.

Without a test command, pass --interactive to drive the loop by
prompting for each test's pass/fail verdict on the terminal instead.

EXAMPLES:
  # Initialize against a GZoltar-style spectrum directory
  tdp init .gzoltar/sfl/txt --candidates candidates.json -- go test -run {{test}} ./...

  # Interactive mode, no shell command required
  tdp init .gzoltar/sfl/txt --candidates candidates.json --interactive

CONFIGURATION:
  --formula:             ochiai | tarantula | barinel (default: barinel)
  --max-set-size:        largest hitting-set size the enumerator tries (default: 3)
  --max-diagnoses:       cap on hitting sets returned at the first successful size (default: 20)
  --size-penalty:        Occam's-razor exponent base for diagnoses of size > 1 (default: 0.5)
  --min-weight:          prune threshold for posterior weights (default: 0.001)
  --max-iterations:      loop bound on the controller (default: 10)
  --coverage-threshold:  universal-coverage cutoff for the component filter (default: 0.8)
  --fallback-top-k:      size of the fallback diagnosis set (default: 3)`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&candidatesPath, "candidates", "candidates.json", "path to the candidate test manifest (JSON)")
	initCmd.Flags().StringVar(&traceFile, "trace-file", "trace.txt", "path the test command writes its coverage trace to")
	initCmd.Flags().BoolVarP(&interactiveExec, "interactive", "i", false, "prompt for pass/fail instead of running a shell command")
	initCmd.Flags().StringVar(&formula, "formula", "", "suspiciousness formula: ochiai, tarantula, barinel")
	initCmd.Flags().IntVar(&maxSetSize, "max-set-size", 0, "largest hitting-set size to try")
	initCmd.Flags().IntVar(&maxDiagnoses, "max-diagnoses", 0, "cap on hitting sets returned at the first successful size")
	initCmd.Flags().Float64Var(&sizePenalty, "size-penalty", 0, "Occam's-razor exponent base")
	initCmd.Flags().Float64Var(&minWeight, "min-weight", 0, "posterior weight prune threshold")
	initCmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "controller loop bound")
	initCmd.Flags().Float64Var(&coverageThreshold, "coverage-threshold", 0, "universal-coverage filter cutoff")
	initCmd.Flags().IntVar(&fallbackTopK, "fallback-top-k", 0, "size of the fallback diagnosis set")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	if session.Exists(dir) {
		return fmt.Errorf("a tdp session is already active\n" +
			"Use 'tdp status' to check it, or 'tdp reset' to start over")
	}

	spectraDir := args[0]

	testCommand := ""
	for i, a := range os.Args {
		if a == "--" && i+1 < len(os.Args) {
			testCommand = strings.Join(os.Args[i+1:], " ")
			break
		}
	}
	if testCommand == "" && !interactiveExec {
		return fmt.Errorf("test command required after '--', or pass --interactive\n" +
			"Example: tdp init .gzoltar/sfl/txt -- go test ./...")
	}

	ui.PrintHeader("Initializing TDP Session")

	cfg := domain.Config{
		Formula:           domain.Formula(formula),
		MaxSetSize:        maxSetSize,
		MaxDiagnoses:      maxDiagnoses,
		SizePenalty:       sizePenalty,
		MinWeight:         minWeight,
		MaxIterations:     maxIterations,
		CoverageThreshold: coverageThreshold,
		FallbackTopK:      fallbackTopK,
	}.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sess := session.New(spectraDir, candidatesPath, testCommand, traceFile, interactiveExec, cfg)
	if err := sess.Save(dir); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	ui.PrintInfo(fmt.Sprintf("Session ID: %s", sess.ID))
	ui.PrintInfo(fmt.Sprintf("Spectra directory: %s", spectraDir))
	ui.PrintInfo("Configuration:")
	ui.PrintInfo(fmt.Sprintf("  Formula: %s", cfg.Formula))
	ui.PrintInfo(fmt.Sprintf("  Max set size: %d", cfg.MaxSetSize))
	ui.PrintInfo(fmt.Sprintf("  Max diagnoses: %d", cfg.MaxDiagnoses))
	ui.PrintInfo(fmt.Sprintf("  Max iterations: %d", cfg.MaxIterations))
	ui.PrintInfo("")
	ui.PrintSuccess("Session initialized successfully!")
	ui.PrintInfo("")
	ui.PrintInfo("Next steps:")
	ui.PrintInfo("  1. Run 'tdp run' to drive the loop")
	ui.PrintInfo("  2. Use 'tdp status' to check progress")

	return nil
}
