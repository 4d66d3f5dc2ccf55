package connectivity

import (
	"schtrace/pkg/kicad/schematic"
	"schtrace/pkg/kicad/sexp"
)

// Connection is one reported pin-to-pin link. From is always a selected
// endpoint; To may be outside the selection. NetName is empty when no
// label names the net.
type Connection struct {
	From    string `json:"from"`
	FromPin string `json:"fromPin"`
	To      string `json:"to"`
	ToPin   string `json:"toPin"`
	NetName string `json:"netName,omitempty"`
}

// Result is the output of one selection analysis.
type Result struct {
	Connections []Connection
	Selected    SelectedItems
}

// Analyze builds the partition for the schematic and extracts the
// connections touching the region. One-shot convenience; reuse an Analyzer
// when querying the same schematic repeatedly.
func Analyze(sch *schematic.Schematic, region sexp.BoundingBox) Result {
	return NewAnalyzer(sch).Analyze(region)
}

// Analyze reports the connections touching the selection region, plus the
// raw entities inside it. Output is deterministic for a fixed schematic
// and region.
//
// The report is selection-scoped, not a netlist dump: every connection has
// at least one selected endpoint, the selected endpoint is always From,
// power pseudo-symbols are dropped, and pins sharing a reference never
// connect to each other (multi-unit parts would otherwise report their
// internal wiring).
func (a *Analyzer) Analyze(region sexp.BoundingBox) Result {
	sel := selectItems(a.sch, region)
	selected := sel.selectedReferences()

	var conns []Connection
	emitted := make(map[Connection]bool)

	order, groups := a.pinGroups()
	for _, root := range order {
		pins := groups[root]
		netName := a.netNames[root]
		for i := 0; i < len(pins); i++ {
			for j := i + 1; j < len(pins); j++ {
				from, to := pins[i], pins[j]

				if IsPowerReference(from.Reference) || IsPowerReference(to.Reference) {
					continue
				}
				if from.Reference == to.Reference {
					continue
				}

				fromSel := selected[from.Reference]
				toSel := selected[to.Reference]
				if !fromSel && !toSel {
					continue
				}
				if !fromSel {
					from, to = to, from
				}

				conn := Connection{
					From:    from.Reference,
					FromPin: from.Number,
					To:      to.Reference,
					ToPin:   to.Number,
					NetName: netName,
				}
				key := conn
				key.NetName = ""
				if emitted[key] {
					continue
				}
				emitted[key] = true
				conns = append(conns, conn)
			}
		}
	}

	return Result{Connections: conns, Selected: sel}
}
