package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"schtrace/pkg/kicad/schematic"
	"schtrace/pkg/kicad/schematic/connectivity"
	"schtrace/pkg/kicad/sexp"
)

var connectRegion string

var connectCmd = &cobra.Command{
	Use:   "connect <schematic_file>",
	Short: "Report pin-to-pin connections for a selection region",
	Long: `Report the deduplicated pin-to-pin connections touching a selection
region, the way a zone-drag in the viewer would.

The region is given as X,Y,W,H in schematic millimeters; without it the
whole schematic is selected.`,
	Args: cobra.ExactArgs(1),
	RunE: runConnect,
}

func init() {
	rootCmd.AddCommand(connectCmd)
	connectCmd.Flags().StringVarP(&connectRegion, "region", "r", "", "selection region X,Y,W,H in mm")
}

func runConnect(cmd *cobra.Command, args []string) error {
	sch, err := schematic.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	region := sch.GetBoundingBox()
	if connectRegion != "" {
		region, err = parseRegion(connectRegion)
		if err != nil {
			return err
		}
	}

	res := connectivity.Analyze(sch, region)

	if verbose {
		fmt.Printf("Selected: %d symbols, %d wires, %d sheets\n\n",
			len(res.Selected.Symbols), len(res.Selected.Wires), len(res.Selected.Sheets))
	}

	if len(res.Connections) == 0 {
		fmt.Println("No connections in region")
		return nil
	}

	for _, c := range res.Connections {
		line := fmt.Sprintf("%s pin %s -> %s pin %s", c.From, c.FromPin, c.To, c.ToPin)
		if c.NetName != "" {
			line += fmt.Sprintf("  [%s]", c.NetName)
		}
		fmt.Println(line)
	}
	return nil
}

func parseRegion(s string) (sexp.BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return sexp.BoundingBox{}, fmt.Errorf("invalid region %q, expected X,Y,W,H", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return sexp.BoundingBox{}, fmt.Errorf("invalid region value %q: %w", p, err)
		}
		vals[i] = v
	}
	return sexp.Box(vals[0], vals[1], vals[2], vals[3]), nil
}
