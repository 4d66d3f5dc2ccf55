package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"schtrace/pkg/kicad/schematic"
	"schtrace/pkg/kicad/schematic/connectivity"
)

var netsPin string

var netsCmd = &cobra.Command{
	Use:   "nets <schematic_file>",
	Short: "List inferred electrical nets",
	Long: `Infer connectivity for a schematic and list the resulting nets.

With --pin REF:NUMBER, shows only the net that pin belongs to.`,
	Args: cobra.ExactArgs(1),
	RunE: runNets,
}

func init() {
	rootCmd.AddCommand(netsCmd)
	netsCmd.Flags().StringVarP(&netsPin, "pin", "p", "", "show the net for one pin (REF:NUMBER)")
}

func runNets(cmd *cobra.Command, args []string) error {
	sch, err := schematic.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	analyzer := connectivity.NewAnalyzer(sch)

	if netsPin != "" {
		ref, number, ok := strings.Cut(netsPin, ":")
		if !ok {
			return fmt.Errorf("invalid pin %q, expected REF:NUMBER", netsPin)
		}
		net, found := analyzer.NetForPin(ref, number)
		if !found {
			return fmt.Errorf("pin %s:%s not found", ref, number)
		}
		printNet(net, 0)
		return nil
	}

	nets := analyzer.Nets()
	fmt.Printf("Nets: %d\n\n", len(nets))
	for i, net := range nets {
		printNet(net, i+1)
	}
	return nil
}

func printNet(net connectivity.Net, index int) {
	name := net.Name
	if name == "" {
		name = "(unnamed)"
	}
	if index > 0 {
		fmt.Printf("Net %d: %s\n", index, name)
	} else {
		fmt.Printf("Net: %s\n", name)
	}
	for _, pin := range net.Pins {
		fmt.Printf("  %s pin %s\n", pin.Reference, pin.Number)
	}
	fmt.Println()
}
