package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "schtrace",
	Short: "schtrace - KiCad schematic connectivity tools",
	Long: `schtrace analyzes KiCad schematic files (.kicad_sch):
  - electrical connectivity inference (nets, pin-to-pin connections)
  - selection-scoped connection reports
  - structured distillation for downstream tooling

Examples:
  schtrace info board.kicad_sch            # Show schematic summary
  schtrace nets board.kicad_sch            # List inferred nets
  schtrace connect board.kicad_sch -r 90,40,20,60
  schtrace distill board.kicad_sch -o out.json`,
	Version: "0.3.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
