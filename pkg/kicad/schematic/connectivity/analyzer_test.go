package connectivity

import (
	"math"
	"reflect"
	"testing"

	"schtrace/pkg/kicad/schematic"
	"schtrace/pkg/kicad/sexp"
)

// resistorLib is a two-pin part in the standard KiCad footprint: pin 1 at
// local (0, 3.81), pin 2 at (0, -3.81).
func resistorLib() schematic.LibSymbol {
	return schematic.LibSymbol{
		Name: "Device:R",
		Units: []schematic.SymbolUnit{
			{
				Name: "R_1_1",
				Unit: 1,
				Pins: []schematic.Pin{
					{Number: "1", Name: "~", Position: sexp.Position{X: 0, Y: 3.81}},
					{Number: "2", Name: "~", Position: sexp.Position{X: 0, Y: -3.81}},
				},
			},
		},
	}
}

func gndLib() schematic.LibSymbol {
	return schematic.LibSymbol{
		Name: "power:GND",
		Units: []schematic.SymbolUnit{
			{
				Name: "GND_1_1",
				Unit: 1,
				Pins: []schematic.Pin{
					{Number: "1", Name: "GND", Position: sexp.Position{}, Hide: true},
				},
			},
		},
	}
}

func placed(libID, ref string, x, y, angle float64) schematic.Symbol {
	return schematic.Symbol{
		LibID:    libID,
		Position: sexp.Position{X: x, Y: y},
		Angle:    schematic.Angle(angle),
		Unit:     1,
		Properties: []schematic.Property{
			{Key: "Reference", Value: ref},
		},
	}
}

func wire(points ...sexp.Position) schematic.Wire {
	return schematic.Wire{Points: points}
}

// dividerSchematic is R1 over R2 with GND below, all in one column:
// R1 pin 1 at (100, 83.81), R1 pin 2 wired to R2 pin 1, R2 pin 2 wired
// to the GND pseudo-symbol at (100, 50).
func dividerSchematic() *schematic.Schematic {
	return &schematic.Schematic{
		LibSymbols: []schematic.LibSymbol{resistorLib(), gndLib()},
		Symbols: []schematic.Symbol{
			placed("Device:R", "R1", 100, 80, 0),
			placed("Device:R", "R2", 100, 60, 0),
			placed("power:GND", "#PWR01", 100, 50, 0),
		},
		Wires: []schematic.Wire{
			wire(sexp.Position{X: 100, Y: 76.19}, sexp.Position{X: 100, Y: 63.81}),
			wire(sexp.Position{X: 100, Y: 56.19}, sexp.Position{X: 100, Y: 50}),
		},
	}
}

func TestNets(t *testing.T) {
	a := NewAnalyzer(dividerSchematic())

	// {R1/1}, {R1/2 R2/1}, {R2/2 #PWR01/1}
	nets := a.Nets()
	if len(nets) != 3 {
		t.Fatalf("got %d nets, want 3", len(nets))
	}

	// R1 pin 2 and R2 pin 1 share the middle wire
	found := false
	for _, net := range nets {
		if len(net.Pins) == 2 {
			want := []PinID{
				{Reference: "R1", Number: "2"},
				{Reference: "R2", Number: "1"},
			}
			if reflect.DeepEqual(net.Pins, want) {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("middle net {R1/2, R2/1} not found in %+v", nets)
	}
}

func TestNetForPin(t *testing.T) {
	a := NewAnalyzer(dividerSchematic())

	net, ok := a.NetForPin("R2", "2")
	if !ok {
		t.Fatal("NetForPin(R2, 2) not found")
	}
	want := []PinID{
		{Reference: "R2", Number: "2"},
		{Reference: "#PWR01", Number: "1"},
	}
	if !reflect.DeepEqual(net.Pins, want) {
		t.Errorf("net pins = %+v, want %+v", net.Pins, want)
	}

	if _, ok := a.NetForPin("R9", "1"); ok {
		t.Error("NetForPin on unknown reference should report not found")
	}
	if _, ok := a.NetForPin("R1", "9"); ok {
		t.Error("NetForPin on unknown pin number should report not found")
	}
}

func TestAreConnected(t *testing.T) {
	a := NewAnalyzer(dividerSchematic())

	if !a.AreConnected("R1", "2", "R2", "1") {
		t.Error("R1/2 and R2/1 share a wire, should be connected")
	}
	if a.AreConnected("R1", "1", "R2", "2") {
		t.Error("R1/1 and R2/2 are on different nets")
	}
	if a.AreConnected("R1", "1", "R9", "1") {
		t.Error("unknown pin should not be connected to anything")
	}
}

func TestEmptySchematic(t *testing.T) {
	a := NewAnalyzer(&schematic.Schematic{})

	if nets := a.Nets(); len(nets) != 0 {
		t.Errorf("empty schematic produced %d nets", len(nets))
	}
	res := a.Analyze(sexp.Box(0, 0, 1000, 1000))
	if len(res.Connections) != 0 {
		t.Errorf("empty schematic produced %d connections", len(res.Connections))
	}
}

func TestNonFinitePinExcluded(t *testing.T) {
	sch := dividerSchematic()
	sch.Symbols = append(sch.Symbols, placed("Device:R", "R3", math.NaN(), 60, 0))

	a := NewAnalyzer(sch)
	if _, ok := a.NetForPin("R3", "1"); ok {
		t.Error("pin with NaN world position should be excluded from the index")
	}
	// The rest of the document is unaffected
	if !a.AreConnected("R1", "2", "R2", "1") {
		t.Error("finite pins should still resolve")
	}
}

func TestLabelNamesNet(t *testing.T) {
	sch := dividerSchematic()
	sch.Labels = []schematic.Label{
		{Text: "VOUT", Position: sexp.Position{X: 100, Y: 70}},
	}
	// Wire vertex at the label so the key exists in the middle net
	sch.Wires[0] = wire(
		sexp.Position{X: 100, Y: 76.19},
		sexp.Position{X: 100, Y: 70},
		sexp.Position{X: 100, Y: 63.81},
	)

	a := NewAnalyzer(sch)
	net, ok := a.NetForPin("R1", "2")
	if !ok {
		t.Fatal("NetForPin(R1, 2) not found")
	}
	if net.Name != "VOUT" {
		t.Errorf("net name = %q, want %q", net.Name, "VOUT")
	}
}

func TestGlobalLabelMergesDisjointWires(t *testing.T) {
	sch := &schematic.Schematic{
		LibSymbols: []schematic.LibSymbol{resistorLib()},
		Symbols: []schematic.Symbol{
			placed("Device:R", "R1", 100, 80, 0),
			placed("Device:R", "R2", 200, 80, 0),
		},
		Wires: []schematic.Wire{
			wire(sexp.Position{X: 100, Y: 83.81}, sexp.Position{X: 100, Y: 90}),
			wire(sexp.Position{X: 200, Y: 83.81}, sexp.Position{X: 200, Y: 90}),
		},
		GlobalLabels: []schematic.GlobalLabel{
			{Text: "VCC", Position: sexp.Position{X: 100, Y: 90}},
			{Text: "VCC", Position: sexp.Position{X: 200, Y: 90}},
		},
	}

	a := NewAnalyzer(sch)
	if !a.AreConnected("R1", "1", "R2", "1") {
		t.Error("two wires labeled VCC should be one net")
	}
	net, _ := a.NetForPin("R1", "1")
	if net.Name != "VCC" {
		t.Errorf("net name = %q, want %q", net.Name, "VCC")
	}
	// The unlabeled pins stay apart
	if a.AreConnected("R1", "2", "R2", "2") {
		t.Error("pin 2 nets must remain disjoint")
	}
}

func TestSheetPinNameLinking(t *testing.T) {
	sch := &schematic.Schematic{
		LibSymbols: []schematic.LibSymbol{resistorLib()},
		Symbols: []schematic.Symbol{
			placed("Device:R", "R1", 100, 80, 0),
			placed("Device:R", "R2", 200, 80, 0),
		},
		Wires: []schematic.Wire{
			wire(sexp.Position{X: 100, Y: 83.81}, sexp.Position{X: 100, Y: 90}),
			wire(sexp.Position{X: 200, Y: 83.81}, sexp.Position{X: 200, Y: 90}),
		},
		Sheets: []schematic.Sheet{
			{
				Name:     "left",
				Position: sexp.Position{X: 90, Y: 90},
				Size:     sexp.Size{Width: 20, Height: 20},
				Pins: []schematic.SheetPin{
					{Name: "DATA", Position: sexp.Position{X: 100, Y: 90}},
				},
			},
			{
				Name:     "right",
				Position: sexp.Position{X: 190, Y: 90},
				Size:     sexp.Size{Width: 20, Height: 20},
				Pins: []schematic.SheetPin{
					{Name: "DATA", Position: sexp.Position{X: 200, Y: 90}},
				},
			},
		},
	}

	a := NewAnalyzer(sch)
	if !a.AreConnected("R1", "1", "R2", "1") {
		t.Error("same-named sheet pins on different sheets should link their nets")
	}
	// Sheet pin names do not act as net names
	net, _ := a.NetForPin("R1", "1")
	if net.Name != "" {
		t.Errorf("net name = %q, want empty (no label on net)", net.Name)
	}
}

func TestSheetPinDoesNotMergeWithLabelText(t *testing.T) {
	sch := &schematic.Schematic{
		LibSymbols: []schematic.LibSymbol{resistorLib()},
		Symbols: []schematic.Symbol{
			placed("Device:R", "R1", 100, 80, 0),
			placed("Device:R", "R2", 200, 80, 0),
		},
		Labels: []schematic.Label{
			{Text: "CLK", Position: sexp.Position{X: 100, Y: 83.81}},
		},
		Sheets: []schematic.Sheet{
			{
				Name:     "sub",
				Position: sexp.Position{X: 190, Y: 80},
				Size:     sexp.Size{Width: 20, Height: 20},
				Pins: []schematic.SheetPin{
					{Name: "CLK", Position: sexp.Position{X: 200, Y: 83.81}},
				},
			},
		},
	}

	a := NewAnalyzer(sch)
	if a.AreConnected("R1", "1", "R2", "1") {
		t.Error("a label and a sheet pin sharing text are separate namespaces")
	}
}

func TestIsPowerReference(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"#PWR01", true},
		{"#PWR0123", true},
		{"PWR?", true},
		{"pwr?1", true},
		{"R1", false},
		{"#FLG01", false},
		{"PWRX", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPowerReference(tt.ref); got != tt.want {
			t.Errorf("IsPowerReference(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
