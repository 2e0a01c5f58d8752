package cli

import (
	"fmt"

	"github.com/example/tdp-finder/cmd/tdp/internal/ui"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the version of tdp.`,
	Run:   runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	ui.PrintInfo(fmt.Sprintf("tdp version %s", version))
	ui.PrintInfo("Interactive spectrum-based fault localization (Test, Diagnose, Plan)")
	ui.PrintInfo("")
	ui.PrintInfo("For help: tdp --help")
}
