package connectivity

import (
	"schtrace/pkg/kicad/schematic"
	"schtrace/pkg/kicad/sexp"
)

// SelectedItems holds the raw schematic entities intersecting a selection
// region. Pointers index into the schematic the Analyzer was built from.
type SelectedItems struct {
	Symbols      []*schematic.Symbol
	Sheets       []*schematic.Sheet
	Wires        []*schematic.Wire
	Buses        []*schematic.Bus
	Labels       []*schematic.Label
	GlobalLabels []*schematic.GlobalLabel
	HierLabels   []*schematic.HierLabel
	Junctions    []*schematic.Junction
}

// symbolBounds is the symbol origin expanded by its pin world positions.
// Graphic body outlines are not parsed, so pins are the usable extent.
func symbolBounds(sch *schematic.Schematic, sym *schematic.Symbol) sexp.BoundingBox {
	bbox := sexp.NewBoundingBox()
	bbox.Expand(sym.Position)
	for _, pin := range sch.SymbolPins(sym) {
		bbox.Expand(PinWorldPosition(sym, &pin))
	}
	return bbox
}

func sheetBounds(sheet *schematic.Sheet) sexp.BoundingBox {
	return sexp.Box(sheet.Position.X, sheet.Position.Y, sheet.Size.Width, sheet.Size.Height)
}

func pointsBounds(points []schematic.Position) sexp.BoundingBox {
	bbox := sexp.NewBoundingBox()
	for _, p := range points {
		bbox.Expand(p)
	}
	return bbox
}

// selectItems collects every entity that intersects the region. Symbols and
// sheets intersect by bounding box, wires and buses by their extent, point
// entities by containment.
func selectItems(sch *schematic.Schematic, region sexp.BoundingBox) SelectedItems {
	var sel SelectedItems

	for i := range sch.Symbols {
		if symbolBounds(sch, &sch.Symbols[i]).Intersects(region) {
			sel.Symbols = append(sel.Symbols, &sch.Symbols[i])
		}
	}
	for i := range sch.Sheets {
		if sheetBounds(&sch.Sheets[i]).Intersects(region) {
			sel.Sheets = append(sel.Sheets, &sch.Sheets[i])
		}
	}
	for i := range sch.Wires {
		if pointsBounds(sch.Wires[i].Points).Intersects(region) {
			sel.Wires = append(sel.Wires, &sch.Wires[i])
		}
	}
	for i := range sch.Buses {
		if pointsBounds(sch.Buses[i].Points).Intersects(region) {
			sel.Buses = append(sel.Buses, &sch.Buses[i])
		}
	}
	for i := range sch.Labels {
		if region.Contains(sch.Labels[i].Position) {
			sel.Labels = append(sel.Labels, &sch.Labels[i])
		}
	}
	for i := range sch.GlobalLabels {
		if region.Contains(sch.GlobalLabels[i].Position) {
			sel.GlobalLabels = append(sel.GlobalLabels, &sch.GlobalLabels[i])
		}
	}
	for i := range sch.HierLabels {
		if region.Contains(sch.HierLabels[i].Position) {
			sel.HierLabels = append(sel.HierLabels, &sch.HierLabels[i])
		}
	}
	for i := range sch.Junctions {
		if region.Contains(sch.Junctions[i].Position) {
			sel.Junctions = append(sel.Junctions, &sch.Junctions[i])
		}
	}

	return sel
}

// selectedReferences is the set of reference designators whose symbols
// intersect the region.
func (sel *SelectedItems) selectedReferences() map[string]bool {
	refs := make(map[string]bool)
	for _, sym := range sel.Symbols {
		if ref := sym.Reference(); ref != "" {
			refs[ref] = true
		}
	}
	return refs
}
