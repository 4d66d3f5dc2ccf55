// Package connectivity infers electrical connectivity for a parsed
// schematic. It reconciles three independent connection mechanisms into one
// partition: geometric coincidence (wire endpoints and pins that land on
// the same canonical point), textual net names (labels with the same text),
// and hierarchical sheet pins (same pin name on different sheets). The
// partition is then queried for whole-document nets or for a
// selection-scoped connection report.
package connectivity

import (
	"strings"

	"schtrace/pkg/kicad/schematic"
)

// PinID identifies a physical pin by reference designator and pin number.
// The reference alone is not unique (multi-unit components share one), so
// the pair is the smallest stable identity.
type PinID struct {
	Reference string
	Number    string
}

// Net is one equivalence class of the partition: the pins that are
// electrically the same node, plus the inferred name if any label sits on
// the net.
type Net struct {
	Name string // empty when no label names the net
	Pins []PinID
}

type pinNode struct {
	id  PinID
	key nodeKey
}

// Analyzer holds the fully-built partition for one schematic snapshot. It
// is immutable after construction; concurrent reads are safe, but the
// schematic must not be mutated while an Analyzer built from it is in use.
type Analyzer struct {
	sch *schematic.Schematic
	uf  *unionFind

	// pins in document encounter order; drives deterministic output
	pins []pinNode

	// net name per class root, first label text seen wins
	netNames map[nodeKey]string
}

// NewAnalyzer builds the connectivity partition for the whole schematic.
// The build runs every step to completion before the Analyzer is usable:
// wire chaining, pin registration, sheet-pin and label grouping, then the
// group merges that join geometrically separate nets by name.
func NewAnalyzer(sch *schematic.Schematic) *Analyzer {
	a := &Analyzer{
		sch:      sch,
		uf:       newUnionFind(),
		netNames: make(map[nodeKey]string),
	}
	a.build()
	return a
}

func (a *Analyzer) build() {
	// Wires and buses chain consecutive polyline points into one class.
	for i := range a.sch.Wires {
		a.chainPoints(a.sch.Wires[i].Points)
	}
	for i := range a.sch.Buses {
		a.chainPoints(a.sch.Buses[i].Points)
	}

	// Register every symbol pin at its world position. Pins with broken
	// coordinates are dropped here and contribute nothing downstream.
	for i := range a.sch.Symbols {
		sym := &a.sch.Symbols[i]
		ref := sym.Reference()
		pins := a.sch.SymbolPins(sym)
		for j := range pins {
			world := PinWorldPosition(sym, &pins[j])
			key, ok := positionKey(world)
			if !ok {
				continue
			}
			a.uf.find(key)
			a.pins = append(a.pins, pinNode{
				id:  PinID{Reference: ref, Number: pins[j].Number},
				key: key,
			})
		}
	}

	// Sheet pins with the same name are one logical net across sheets,
	// wire or no wire. Collect keys per name, merge each group below.
	var sheetPinNames []string
	sheetPinKeys := make(map[string][]nodeKey)
	for i := range a.sch.Sheets {
		sheet := &a.sch.Sheets[i]
		for j := range sheet.Pins {
			key, ok := positionKey(sheet.Pins[j].Position)
			if !ok {
				continue
			}
			a.uf.find(key)
			name := sheet.Pins[j].Name
			if _, seen := sheetPinKeys[name]; !seen {
				sheetPinNames = append(sheetPinNames, name)
			}
			sheetPinKeys[name] = append(sheetPinKeys[name], key)
		}
	}

	// Labels: same text means same net. Sheet-pin names and label texts
	// are separate namespaces; a label "CLK" does not merge with a sheet
	// pin "CLK".
	type labeledKey struct {
		key  nodeKey
		text string
	}
	var labeled []labeledKey
	var labelTexts []string
	labelKeys := make(map[string][]nodeKey)
	addLabel := func(text string, pos schematic.Position) {
		key, ok := positionKey(pos)
		if !ok {
			return
		}
		a.uf.find(key)
		labeled = append(labeled, labeledKey{key: key, text: text})
		if _, seen := labelKeys[text]; !seen {
			labelTexts = append(labelTexts, text)
		}
		labelKeys[text] = append(labelKeys[text], key)
	}
	for i := range a.sch.Labels {
		addLabel(a.sch.Labels[i].Text, a.sch.Labels[i].Position)
	}
	for i := range a.sch.GlobalLabels {
		addLabel(a.sch.GlobalLabels[i].Text, a.sch.GlobalLabels[i].Position)
	}
	for i := range a.sch.HierLabels {
		addLabel(a.sch.HierLabels[i].Text, a.sch.HierLabels[i].Position)
	}

	for _, name := range sheetPinNames {
		a.mergeGroup(sheetPinKeys[name])
	}
	for _, text := range labelTexts {
		a.mergeGroup(labelKeys[text])
	}

	// Net names resolve against the final partition. First label seen on
	// a class names it; later labels on the same class lose.
	for _, lk := range labeled {
		root := a.uf.find(lk.key)
		if _, named := a.netNames[root]; !named {
			a.netNames[root] = lk.text
		}
	}
}

// chainPoints unions each polyline point with its predecessor. Non-finite
// points are skipped; the chain continues across them so the remaining
// points still join.
func (a *Analyzer) chainPoints(points []schematic.Position) {
	havePrev := false
	var prev nodeKey
	for _, p := range points {
		key, ok := positionKey(p)
		if !ok {
			continue
		}
		a.uf.find(key)
		if havePrev {
			a.uf.union(prev, key)
		}
		prev = key
		havePrev = true
	}
}

// mergeGroup unions every key in the group into one class.
func (a *Analyzer) mergeGroup(keys []nodeKey) {
	for i := 1; i < len(keys); i++ {
		a.uf.union(keys[0], keys[i])
	}
}

// pinGroups returns pins grouped by their class root, groups and members
// both in document encounter order.
func (a *Analyzer) pinGroups() ([]nodeKey, map[nodeKey][]PinID) {
	var order []nodeKey
	groups := make(map[nodeKey][]PinID)
	for _, pn := range a.pins {
		root := a.uf.find(pn.key)
		if _, seen := groups[root]; !seen {
			order = append(order, root)
		}
		groups[root] = append(groups[root], pn.id)
	}
	return order, groups
}

// Nets returns every net that has at least one pin on it, in document
// order. Classes made only of bare wire points are not reported.
func (a *Analyzer) Nets() []Net {
	order, groups := a.pinGroups()
	nets := make([]Net, 0, len(order))
	for _, root := range order {
		nets = append(nets, Net{
			Name: a.netNames[root],
			Pins: groups[root],
		})
	}
	return nets
}

// NetForPin reports the net a pin belongs to. ok is false when the pin is
// unknown (bad reference, bad number, or dropped for non-finite
// coordinates).
func (a *Analyzer) NetForPin(ref, number string) (Net, bool) {
	var target nodeKey
	found := false
	for _, pn := range a.pins {
		if pn.id.Reference == ref && pn.id.Number == number {
			target = a.uf.find(pn.key)
			found = true
			break
		}
	}
	if !found {
		return Net{}, false
	}

	net := Net{Name: a.netNames[target]}
	for _, pn := range a.pins {
		if a.uf.find(pn.key) == target {
			net.Pins = append(net.Pins, pn.id)
		}
	}
	return net, true
}

// AreConnected reports whether two pins sit on the same net. Unknown pins
// are connected to nothing, including themselves.
func (a *Analyzer) AreConnected(refA, pinA, refB, pinB string) bool {
	keyA, okA := a.pinKey(refA, pinA)
	keyB, okB := a.pinKey(refB, pinB)
	if !okA || !okB {
		return false
	}
	return a.uf.find(keyA) == a.uf.find(keyB)
}

func (a *Analyzer) pinKey(ref, number string) (nodeKey, bool) {
	for _, pn := range a.pins {
		if pn.id.Reference == ref && pn.id.Number == number {
			return pn.key, true
		}
	}
	return nodeKey{}, false
}

// IsPowerReference reports whether a reference designator names a power
// pseudo-symbol rather than a real component. KiCad power symbols carry
// "#PWR" references; "PWR?" covers unannotated ones in any case.
func IsPowerReference(ref string) bool {
	if strings.HasPrefix(ref, "#PWR") {
		return true
	}
	return len(ref) >= 4 && strings.EqualFold(ref[:4], "PWR?")
}
