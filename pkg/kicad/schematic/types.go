// Package schematic provides the document model and parser for KiCad
// schematic files (.kicad_sch)
package schematic

import (
	"schtrace/pkg/kicad/sexp"
)

// Re-export shared types from sexp package for convenience
type Position = sexp.Position
type Angle = sexp.Angle
type PositionAngle = sexp.PositionAngle
type Size = sexp.Size
type UUID = sexp.UUID
type Property = sexp.Property

// Schematic represents a complete KiCad schematic file
type Schematic struct {
	Version        int             // File format version
	Generator      string          // Generator info (e.g., "eeschema")
	GeneratorVer   string          // Generator version
	UUID           UUID            // Schematic UUID
	Paper          string          // Paper size (e.g., "A4")
	TitleBlock     TitleBlock      // Title block information
	LibSymbols     []LibSymbol     // Embedded library symbols
	Symbols        []Symbol        // Symbol instances on the schematic
	Wires          []Wire          // Wire connections
	Buses          []Bus           // Bus connections
	BusEntries     []BusEntry      // Bus entry points
	Junctions      []Junction      // Wire junctions
	NoConnects     []NoConnect     // No-connect markers
	Labels         []Label         // Local labels
	GlobalLabels   []GlobalLabel   // Global labels
	HierLabels     []HierLabel     // Hierarchical labels
	Sheets         []Sheet         // Hierarchical sheet references
	SheetInstances []SheetInstance // Sheet instance paths
}

// TitleBlock contains schematic title block information
type TitleBlock struct {
	Title    string
	Date     string
	Revision string
	Company  string
}

// LibSymbol represents an embedded library symbol definition
type LibSymbol struct {
	Name  string       // Symbol name (e.g., "Device:R")
	Pins  []Pin        // All pin definitions (flattened across units)
	Units []SymbolUnit // Symbol units (for multi-unit symbols)
}

// SymbolUnit represents a unit of a multi-unit symbol.
// Unit names follow the KiCad convention "<name>_<unit>_<bodystyle>";
// unit 0 holds pins shared by every unit.
type SymbolUnit struct {
	Name string // Unit name
	Unit int    // Unit number parsed from the name (0 = common)
	Pins []Pin  // Unit pins
}

// Pin represents a symbol pin definition
type Pin struct {
	Type     string   // Pin type (input, output, bidirectional, etc.)
	Style    string   // Pin style (line, inverted, clock, etc.)
	Position Position // Pin position relative to the symbol origin
	Angle    Angle    // Pin angle (0, 90, 180, 270)
	Length   float64  // Pin length
	Name     string   // Pin name
	Number   string   // Pin number
	Hide     bool     // Hidden pin
}

// Symbol represents a symbol instance placed on the schematic
type Symbol struct {
	LibID      string     // Library identifier (e.g., "Device:R")
	Position   Position   // Position on schematic
	Angle      Angle      // Rotation angle in degrees
	Mirror     string     // Mirror mode (x, y, xy, or empty)
	Unit       int        // Unit number (for multi-unit symbols)
	UUID       UUID       // Instance UUID
	Properties []Property // Instance properties (Reference, Value, etc.)
	Pins       []PinRef   // Pin references
}

// PinRef represents a pin reference in a symbol instance
type PinRef struct {
	Number string // Pin number
	UUID   UUID   // Pin UUID
}

// Wire represents a wire connection
type Wire struct {
	Points []Position // Wire points (at least 2)
	UUID   UUID       // Wire UUID
}

// Bus represents a bus connection
type Bus struct {
	Points []Position // Bus points
	UUID   UUID       // Bus UUID
}

// BusEntry represents a bus entry point
type BusEntry struct {
	Position Position // Entry position
	Size     Size     // Entry size
	UUID     UUID     // Entry UUID
}

// Junction represents a wire junction
type Junction struct {
	Position Position // Junction position
	Diameter float64  // Junction diameter
	UUID     UUID     // Junction UUID
}

// NoConnect represents a no-connect marker
type NoConnect struct {
	Position Position // Marker position
	UUID     UUID     // Marker UUID
}

// Label represents a local wire label
type Label struct {
	Text     string   // Label text
	Position Position // Label position
	Angle    Angle    // Label rotation
	UUID     UUID     // Label UUID
}

// GlobalLabel represents a global label (visible across sheets)
type GlobalLabel struct {
	Text     string   // Label text
	Shape    string   // Label shape (input, output, bidirectional, etc.)
	Position Position // Label position
	Angle    Angle    // Label rotation
	UUID     UUID     // Label UUID
}

// HierLabel represents a hierarchical label (connects to sheet pins)
type HierLabel struct {
	Text     string   // Label text
	Shape    string   // Label shape
	Position Position // Label position
	Angle    Angle    // Label rotation
	UUID     UUID     // Label UUID
}

// Sheet represents a hierarchical sheet reference
type Sheet struct {
	Position   Position   // Sheet position
	Size       Size       // Sheet size
	UUID       UUID       // Sheet UUID
	Name       string     // Sheet name
	FileName   string     // Sheet file name
	Pins       []SheetPin // Hierarchical pins
	Properties []Property // Additional sheet properties
}

// Identity returns a stable identifier for the sheet: the first non-empty
// of name, file name, or uuid.
func (s *Sheet) Identity() string {
	if s.Name != "" {
		return s.Name
	}
	if s.FileName != "" {
		return s.FileName
	}
	return string(s.UUID)
}

// SheetPin represents a hierarchical pin on a sheet
type SheetPin struct {
	Name     string   // Pin name
	Shape    string   // Pin shape
	Position Position // Pin position
	UUID     UUID     // Pin UUID
}

// SheetInstance represents a sheet instance path
type SheetInstance struct {
	Path string // Instance path
	Page string // Page number
}

// PropertyValue returns the value of the named instance property
func (sym *Symbol) PropertyValue(key string) string {
	for _, prop := range sym.Properties {
		if prop.Key == key {
			return prop.Value
		}
	}
	return ""
}

// Reference returns the symbol's reference designator (e.g., "R1")
func (sym *Symbol) Reference() string {
	return sym.PropertyValue("Reference")
}

// Value returns the symbol's Value property (e.g., "10k")
func (sym *Symbol) Value() string {
	return sym.PropertyValue("Value")
}

// GetSymbol returns the first symbol with the given reference designator.
// References are not unique for multi-unit components; use Units of the
// returned symbol's library definition when all units are needed.
func (s *Schematic) GetSymbol(ref string) *Symbol {
	for i := range s.Symbols {
		if s.Symbols[i].Reference() == ref {
			return &s.Symbols[i]
		}
	}
	return nil
}

// GetLibSymbol returns the embedded library symbol definition for a lib id
func (s *Schematic) GetLibSymbol(libID string) *LibSymbol {
	for i := range s.LibSymbols {
		if s.LibSymbols[i].Name == libID {
			return &s.LibSymbols[i]
		}
	}
	return nil
}

// GetAllReferences returns all reference designators (deduplicated, so a
// multi-unit component appears once)
func (s *Schematic) GetAllReferences() []string {
	seen := make(map[string]bool)
	var refs []string
	for i := range s.Symbols {
		ref := s.Symbols[i].Reference()
		if ref != "" && !seen[ref] {
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// GetLabels returns all label names (local + global + hierarchical)
func (s *Schematic) GetLabels() []string {
	seen := make(map[string]bool)
	var labels []string

	for _, l := range s.Labels {
		if !seen[l.Text] {
			seen[l.Text] = true
			labels = append(labels, l.Text)
		}
	}
	for _, l := range s.GlobalLabels {
		if !seen[l.Text] {
			seen[l.Text] = true
			labels = append(labels, l.Text)
		}
	}
	for _, l := range s.HierLabels {
		if !seen[l.Text] {
			seen[l.Text] = true
			labels = append(labels, l.Text)
		}
	}

	return labels
}

// GetBoundingBox calculates the bounding box of all elements in the schematic
func (s *Schematic) GetBoundingBox() sexp.BoundingBox {
	bbox := sexp.NewBoundingBox()

	for _, wire := range s.Wires {
		for _, pt := range wire.Points {
			bbox.Expand(pt)
		}
	}

	for _, bus := range s.Buses {
		for _, pt := range bus.Points {
			bbox.Expand(pt)
		}
	}

	for _, sym := range s.Symbols {
		bbox.Expand(sym.Position)
	}

	for _, label := range s.Labels {
		bbox.Expand(label.Position)
	}
	for _, label := range s.GlobalLabels {
		bbox.Expand(label.Position)
	}
	for _, label := range s.HierLabels {
		bbox.Expand(label.Position)
	}

	for _, sheet := range s.Sheets {
		bbox.Expand(sheet.Position)
		bbox.Expand(Position{
			X: sheet.Position.X + sheet.Size.Width,
			Y: sheet.Position.Y + sheet.Size.Height,
		})
	}

	for _, junc := range s.Junctions {
		bbox.Expand(junc.Position)
	}

	for _, nc := range s.NoConnects {
		bbox.Expand(nc.Position)
	}

	return bbox
}
