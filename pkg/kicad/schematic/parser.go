package schematic

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"schtrace/pkg/kicad/sexp"
)

// Minimum supported KiCad version for schematics (6.0 = 20211014)
const MinSupportedVersion = 20211014

// ParseFile reads and parses a KiCad schematic file
func ParseFile(filename string) (*Schematic, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads and parses a KiCad schematic from an io.Reader
func Parse(r io.Reader) (*Schematic, error) {
	sexps, err := sexp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}

	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	// The root should be a (kicad_sch ...) expression
	root := sexps[0]

	rootName, err := sexp.GetNodeName(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get root node name: %w", err)
	}

	if rootName != "kicad_sch" {
		return nil, fmt.Errorf("not a KiCad schematic file: expected 'kicad_sch', got '%s'", rootName)
	}

	sch := &Schematic{}

	if err := parseHeader(root, sch); err != nil {
		return nil, fmt.Errorf("failed to parse header: %w", err)
	}

	if uuidNode, found := sexp.FindNode(root, "uuid"); found {
		uuid, err := sexp.GetUUID(uuidNode)
		if err == nil {
			sch.UUID = uuid
		}
	}

	if paperNode, found := sexp.FindNode(root, "paper"); found {
		paper, err := sexp.GetString(paperNode, 1)
		if err == nil {
			sch.Paper = paper
		}
	}

	if titleBlockNode, found := sexp.FindNode(root, "title_block"); found {
		sch.TitleBlock = parseTitleBlock(titleBlockNode)
	}

	if libSymbolsNode, found := sexp.FindNode(root, "lib_symbols"); found {
		sch.LibSymbols = parseLibSymbols(libSymbolsNode)
	}

	sch.Symbols = parseSymbols(root)
	sch.Wires = parseWires(root)
	sch.Buses = parseBuses(root)
	sch.BusEntries = parseBusEntries(root)
	sch.Junctions = parseJunctions(root)
	sch.NoConnects = parseNoConnects(root)
	sch.Labels = parseLabels(root)
	sch.GlobalLabels = parseGlobalLabels(root)
	sch.HierLabels = parseHierLabels(root)
	sch.Sheets = parseSheets(root)

	if instancesNode, found := sexp.FindNode(root, "sheet_instances"); found {
		sch.SheetInstances = parseSheetInstances(instancesNode)
	}

	return sch, nil
}

// parseHeader extracts version and generator information
func parseHeader(root sexp.Sexp, sch *Schematic) error {
	versionNode, found := sexp.FindNode(root, "version")
	if !found {
		return fmt.Errorf("missing required 'version' field")
	}

	ver, err := sexp.GetInt(versionNode, 1)
	if err != nil {
		return fmt.Errorf("failed to parse version: %w", err)
	}

	if ver < MinSupportedVersion {
		return fmt.Errorf("unsupported KiCad version: %d (minimum required: %d / KiCad 6.0)", ver, MinSupportedVersion)
	}
	sch.Version = ver

	if genNode, found := sexp.FindNode(root, "generator"); found {
		gen, err := sexp.GetString(genNode, 1)
		if err == nil {
			sch.Generator = gen
		}
	}

	if genVerNode, found := sexp.FindNode(root, "generator_version"); found {
		genVer, err := sexp.GetString(genVerNode, 1)
		if err == nil {
			sch.GeneratorVer = genVer
		}
	}

	return nil
}

// parseTitleBlock extracts title block information
func parseTitleBlock(node sexp.Sexp) TitleBlock {
	tb := TitleBlock{}

	if titleNode, found := sexp.FindNode(node, "title"); found {
		tb.Title, _ = sexp.GetString(titleNode, 1)
	}
	if dateNode, found := sexp.FindNode(node, "date"); found {
		tb.Date, _ = sexp.GetString(dateNode, 1)
	}
	if revNode, found := sexp.FindNode(node, "rev"); found {
		tb.Revision, _ = sexp.GetString(revNode, 1)
	}
	if companyNode, found := sexp.FindNode(node, "company"); found {
		tb.Company, _ = sexp.GetString(companyNode, 1)
	}

	return tb
}

// parseLibSymbols parses embedded library symbols
func parseLibSymbols(node sexp.Sexp) []LibSymbol {
	symbolNodes := sexp.FindAllNodes(node, "symbol")
	symbols := make([]LibSymbol, 0, len(symbolNodes))

	for _, symNode := range symbolNodes {
		symbols = append(symbols, parseLibSymbol(symNode))
	}

	return symbols
}

// parseLibSymbol parses a single library symbol definition
func parseLibSymbol(node sexp.Sexp) LibSymbol {
	sym := LibSymbol{}

	sym.Name, _ = sexp.GetString(node, 1)

	// Nested symbol units hold the actual pins
	unitNodes := sexp.FindAllNodes(node, "symbol")
	for _, unitNode := range unitNodes {
		unit := parseSymbolUnit(unitNode)
		sym.Units = append(sym.Units, unit)

		// Also collect pins at the top level for easier access
		sym.Pins = append(sym.Pins, unit.Pins...)
	}

	return sym
}

// parseSymbolUnit parses a nested symbol unit
func parseSymbolUnit(node sexp.Sexp) SymbolUnit {
	unit := SymbolUnit{}

	unit.Name, _ = sexp.GetString(node, 1)
	unit.Unit = unitNumber(unit.Name)

	pinNodes := sexp.FindAllNodes(node, "pin")
	for _, pn := range pinNodes {
		unit.Pins = append(unit.Pins, parsePin(pn))
	}

	return unit
}

// unitNumber extracts the unit number from a unit name such as "R_0_1"
// (format "<name>_<unit>_<bodystyle>"). Names without the suffix are
// treated as unit 0 (common to all units).
func unitNumber(name string) int {
	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return 0
	}
	n, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0
	}
	return n
}

// parsePin parses a pin definition
func parsePin(node sexp.Sexp) Pin {
	pin := Pin{}

	pin.Type, _ = sexp.GetString(node, 1)
	pin.Style, _ = sexp.GetString(node, 2)

	if atNode, found := sexp.FindNode(node, "at"); found {
		pos, _ := getPosition(atNode)
		pin.Position = pos.Position
		pin.Angle = pos.Angle
	}

	if lenNode, found := sexp.FindNode(node, "length"); found {
		pin.Length, _ = sexp.GetFloat(lenNode, 1)
	}

	if nameNode, found := sexp.FindNode(node, "name"); found {
		pin.Name, _ = sexp.GetString(nameNode, 1)
	}

	if numNode, found := sexp.FindNode(node, "number"); found {
		pin.Number, _ = sexp.GetString(numNode, 1)
	}

	pin.Hide = sexp.HasSymbol(node, "hide")

	return pin
}

// parseSymbols parses symbol instances
func parseSymbols(root sexp.Sexp) []Symbol {
	symbolNodes := sexp.FindAllNodes(root, "symbol")
	symbols := make([]Symbol, 0, len(symbolNodes))

	for _, symNode := range symbolNodes {
		symbols = append(symbols, parseSymbol(symNode))
	}

	return symbols
}

// parseSymbol parses a single symbol instance
func parseSymbol(node sexp.Sexp) Symbol {
	sym := Symbol{Unit: 1}

	if libNode, found := sexp.FindNode(node, "lib_id"); found {
		sym.LibID, _ = sexp.GetString(libNode, 1)
	}

	if atNode, found := sexp.FindNode(node, "at"); found {
		pos, _ := getPosition(atNode)
		sym.Position = pos.Position
		sym.Angle = pos.Angle
	}

	if mirrorNode, found := sexp.FindNode(node, "mirror"); found {
		sym.Mirror, _ = sexp.GetString(mirrorNode, 1)
	}

	if unitNode, found := sexp.FindNode(node, "unit"); found {
		sym.Unit, _ = sexp.GetInt(unitNode, 1)
	}

	if uuidNode, found := sexp.FindNode(node, "uuid"); found {
		sym.UUID, _ = sexp.GetUUID(uuidNode)
	}

	propNodes := sexp.FindAllNodes(node, "property")
	for _, pn := range propNodes {
		prop, err := sexp.GetProperty(pn)
		if err == nil {
			sym.Properties = append(sym.Properties, prop)
		}
	}

	pinNodes := sexp.FindAllNodes(node, "pin")
	for _, pn := range pinNodes {
		ref := PinRef{}
		ref.Number, _ = sexp.GetString(pn, 1)
		if uuidNode, found := sexp.FindNode(pn, "uuid"); found {
			ref.UUID, _ = sexp.GetUUID(uuidNode)
		}
		sym.Pins = append(sym.Pins, ref)
	}

	return sym
}

// parsePoints parses the (pts (xy ...) ...) node of a wire or bus
func parsePoints(node sexp.Sexp) []Position {
	var points []Position

	if ptsNode, found := sexp.FindNode(node, "pts"); found {
		xyNodes := sexp.FindAllNodes(ptsNode, "xy")
		for _, xy := range xyNodes {
			pos, err := getPositionXY(xy)
			if err == nil {
				points = append(points, pos)
			}
		}
	}

	return points
}

// parseWires parses wire connections
func parseWires(root sexp.Sexp) []Wire {
	wireNodes := sexp.FindAllNodes(root, "wire")
	wires := make([]Wire, 0, len(wireNodes))

	for _, wn := range wireNodes {
		wire := Wire{Points: parsePoints(wn)}

		if uuidNode, found := sexp.FindNode(wn, "uuid"); found {
			wire.UUID, _ = sexp.GetUUID(uuidNode)
		}

		wires = append(wires, wire)
	}

	return wires
}

// parseBuses parses bus connections
func parseBuses(root sexp.Sexp) []Bus {
	busNodes := sexp.FindAllNodes(root, "bus")
	buses := make([]Bus, 0, len(busNodes))

	for _, bn := range busNodes {
		bus := Bus{Points: parsePoints(bn)}

		if uuidNode, found := sexp.FindNode(bn, "uuid"); found {
			bus.UUID, _ = sexp.GetUUID(uuidNode)
		}

		buses = append(buses, bus)
	}

	return buses
}

// parseBusEntries parses bus entry points
func parseBusEntries(root sexp.Sexp) []BusEntry {
	entryNodes := sexp.FindAllNodes(root, "bus_entry")
	entries := make([]BusEntry, 0, len(entryNodes))

	for _, en := range entryNodes {
		entry := BusEntry{}

		if atNode, found := sexp.FindNode(en, "at"); found {
			pos, _ := getPosition(atNode)
			entry.Position = pos.Position
		}

		if sizeNode, found := sexp.FindNode(en, "size"); found {
			entry.Size, _ = getSize(sizeNode)
		}

		if uuidNode, found := sexp.FindNode(en, "uuid"); found {
			entry.UUID, _ = sexp.GetUUID(uuidNode)
		}

		entries = append(entries, entry)
	}

	return entries
}

// parseJunctions parses wire junctions
func parseJunctions(root sexp.Sexp) []Junction {
	juncNodes := sexp.FindAllNodes(root, "junction")
	junctions := make([]Junction, 0, len(juncNodes))

	for _, jn := range juncNodes {
		junc := Junction{}

		if atNode, found := sexp.FindNode(jn, "at"); found {
			pos, _ := getPosition(atNode)
			junc.Position = pos.Position
		}

		if diamNode, found := sexp.FindNode(jn, "diameter"); found {
			junc.Diameter, _ = sexp.GetFloat(diamNode, 1)
		}

		if uuidNode, found := sexp.FindNode(jn, "uuid"); found {
			junc.UUID, _ = sexp.GetUUID(uuidNode)
		}

		junctions = append(junctions, junc)
	}

	return junctions
}

// parseNoConnects parses no-connect markers
func parseNoConnects(root sexp.Sexp) []NoConnect {
	ncNodes := sexp.FindAllNodes(root, "no_connect")
	ncs := make([]NoConnect, 0, len(ncNodes))

	for _, ncn := range ncNodes {
		nc := NoConnect{}

		if atNode, found := sexp.FindNode(ncn, "at"); found {
			pos, _ := getPosition(atNode)
			nc.Position = pos.Position
		}

		if uuidNode, found := sexp.FindNode(ncn, "uuid"); found {
			nc.UUID, _ = sexp.GetUUID(uuidNode)
		}

		ncs = append(ncs, nc)
	}

	return ncs
}

// parseLabels parses local wire labels
func parseLabels(root sexp.Sexp) []Label {
	labelNodes := sexp.FindAllNodes(root, "label")
	labels := make([]Label, 0, len(labelNodes))

	for _, ln := range labelNodes {
		label := Label{}

		label.Text, _ = sexp.GetString(ln, 1)

		if atNode, found := sexp.FindNode(ln, "at"); found {
			pos, _ := getPosition(atNode)
			label.Position = pos.Position
			label.Angle = pos.Angle
		}

		if uuidNode, found := sexp.FindNode(ln, "uuid"); found {
			label.UUID, _ = sexp.GetUUID(uuidNode)
		}

		labels = append(labels, label)
	}

	return labels
}

// parseGlobalLabels parses global labels
func parseGlobalLabels(root sexp.Sexp) []GlobalLabel {
	labelNodes := sexp.FindAllNodes(root, "global_label")
	labels := make([]GlobalLabel, 0, len(labelNodes))

	for _, ln := range labelNodes {
		label := GlobalLabel{}

		label.Text, _ = sexp.GetString(ln, 1)

		if shapeNode, found := sexp.FindNode(ln, "shape"); found {
			label.Shape, _ = sexp.GetString(shapeNode, 1)
		}

		if atNode, found := sexp.FindNode(ln, "at"); found {
			pos, _ := getPosition(atNode)
			label.Position = pos.Position
			label.Angle = pos.Angle
		}

		if uuidNode, found := sexp.FindNode(ln, "uuid"); found {
			label.UUID, _ = sexp.GetUUID(uuidNode)
		}

		labels = append(labels, label)
	}

	return labels
}

// parseHierLabels parses hierarchical labels
func parseHierLabels(root sexp.Sexp) []HierLabel {
	labelNodes := sexp.FindAllNodes(root, "hierarchical_label")
	labels := make([]HierLabel, 0, len(labelNodes))

	for _, ln := range labelNodes {
		label := HierLabel{}

		label.Text, _ = sexp.GetString(ln, 1)

		if shapeNode, found := sexp.FindNode(ln, "shape"); found {
			label.Shape, _ = sexp.GetString(shapeNode, 1)
		}

		if atNode, found := sexp.FindNode(ln, "at"); found {
			pos, _ := getPosition(atNode)
			label.Position = pos.Position
			label.Angle = pos.Angle
		}

		if uuidNode, found := sexp.FindNode(ln, "uuid"); found {
			label.UUID, _ = sexp.GetUUID(uuidNode)
		}

		labels = append(labels, label)
	}

	return labels
}

// parseSheets parses hierarchical sheet references
func parseSheets(root sexp.Sexp) []Sheet {
	sheetNodes := sexp.FindAllNodes(root, "sheet")
	sheets := make([]Sheet, 0, len(sheetNodes))

	for _, sn := range sheetNodes {
		sheet := Sheet{}

		if atNode, found := sexp.FindNode(sn, "at"); found {
			pos, _ := getPosition(atNode)
			sheet.Position = pos.Position
		}

		if sizeNode, found := sexp.FindNode(sn, "size"); found {
			sheet.Size, _ = getSize(sizeNode)
		}

		if uuidNode, found := sexp.FindNode(sn, "uuid"); found {
			sheet.UUID, _ = sexp.GetUUID(uuidNode)
		}

		propNodes := sexp.FindAllNodes(sn, "property")
		for _, pn := range propNodes {
			prop, err := sexp.GetProperty(pn)
			if err != nil {
				continue
			}
			switch prop.Key {
			case "Sheetname":
				sheet.Name = prop.Value
			case "Sheetfile":
				sheet.FileName = prop.Value
			default:
				sheet.Properties = append(sheet.Properties, prop)
			}
		}

		pinNodes := sexp.FindAllNodes(sn, "pin")
		for _, pn := range pinNodes {
			pin := SheetPin{}
			pin.Name, _ = sexp.GetString(pn, 1)
			pin.Shape, _ = sexp.GetString(pn, 2)

			if atNode, found := sexp.FindNode(pn, "at"); found {
				pos, _ := getPosition(atNode)
				pin.Position = pos.Position
			}
			if uuidNode, found := sexp.FindNode(pn, "uuid"); found {
				pin.UUID, _ = sexp.GetUUID(uuidNode)
			}

			sheet.Pins = append(sheet.Pins, pin)
		}

		sheets = append(sheets, sheet)
	}

	return sheets
}

// parseSheetInstances parses sheet instance paths
func parseSheetInstances(node sexp.Sexp) []SheetInstance {
	pathNodes := sexp.FindAllNodes(node, "path")
	instances := make([]SheetInstance, 0, len(pathNodes))

	for _, pn := range pathNodes {
		inst := SheetInstance{}
		inst.Path, _ = sexp.GetString(pn, 1)

		if pageNode, found := sexp.FindNode(pn, "page"); found {
			inst.Page, _ = sexp.GetString(pageNode, 1)
		}

		instances = append(instances, inst)
	}

	return instances
}
