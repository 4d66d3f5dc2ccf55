package distill

import (
	"math"
	"strconv"
	"strings"

	"schtrace/pkg/kicad/schematic"
	"schtrace/pkg/kicad/schematic/connectivity"
)

// CategoryPair keys a weight multiplier for an unordered component pair.
// Lookups try both orders.
type CategoryPair struct {
	A Category
	B Category
}

// DefaultWeightMultipliers boost common design intent, chiefly decoupling
// capacitors sitting near ICs.
func DefaultWeightMultipliers() map[CategoryPair]float64 {
	return map[CategoryPair]float64{
		{CategoryCapacitor, CategoryIC}:    2.0,
		{CategoryCapacitor, CategoryOther}: 1.2,
	}
}

// Config controls distillation.
type Config struct {
	// ProximityRadiusMM is the cutoff for proximity edges. IC-capacitor
	// pairs get 1.5x this radius.
	ProximityRadiusMM float64

	// WeightMultipliers scales proximity scores per category pair.
	// Nil selects DefaultWeightMultipliers.
	WeightMultipliers map[CategoryPair]float64
}

// DefaultConfig matches the editor's decoupling-analysis defaults.
func DefaultConfig() Config {
	return Config{
		ProximityRadiusMM: 20.0,
		WeightMultipliers: DefaultWeightMultipliers(),
	}
}

// Distill condenses the schematic: real components with pin-to-net
// mapping, nets keyed by label name or a Net-N fallback, and the
// proximity graph.
func Distill(sch *schematic.Schematic, cfg Config) Result {
	if cfg.ProximityRadiusMM == 0 {
		cfg.ProximityRadiusMM = DefaultConfig().ProximityRadiusMM
	}
	if cfg.WeightMultipliers == nil {
		cfg.WeightMultipliers = DefaultWeightMultipliers()
	}

	analyzer := connectivity.NewAnalyzer(sch)
	nets := analyzer.Nets()

	// Anonymous nets get stable positional fallback names.
	pinNet := make(map[connectivity.PinID]string)
	netsOut := make(map[string]Net, len(nets))
	for i, net := range nets {
		name := net.Name
		if name == "" {
			name = "Net-" + strconv.Itoa(i+1)
		}
		out := make(Net)
		for _, pin := range net.Pins {
			pinNet[pin] = name
			out[pin.Reference] = append(out[pin.Reference], pin.Number)
		}
		netsOut[name] = out
	}

	var components []Component
	for i := range sch.Symbols {
		sym := &sch.Symbols[i]
		if !isRealSymbol(sym) {
			continue
		}
		components = append(components, distillComponent(sch, sym, pinNet))
	}

	return Result{
		Components:  components,
		Nets:        netsOut,
		Proximities: computeProximities(components, cfg),
	}
}

func distillComponent(sch *schematic.Schematic, sym *schematic.Symbol, pinNet map[connectivity.PinID]string) Component {
	ref := sym.Reference()

	var pins []Pin
	for _, pin := range sch.SymbolPins(sym) {
		name := pin.Name
		if name == "~" {
			name = ""
		}
		pins = append(pins, Pin{
			Number: pin.Number,
			Name:   name,
			Net:    pinNet[connectivity.PinID{Reference: ref, Number: pin.Number}],
		})
	}

	props := make(map[string]string, len(sym.Properties))
	for _, p := range sym.Properties {
		if p.Value != "" {
			props[p.Key] = p.Value
		}
	}

	return Component{
		Reference:  ref,
		LibID:      sym.LibID,
		Value:      sym.Value(),
		Footprint:  sym.PropertyValue("Footprint"),
		Properties: props,
		Position:   Point{X: sym.Position.X, Y: sym.Position.Y},
		Category:   Classify(sym),
		Pins:       pins,
	}
}

// Classify assigns a coarse category from the reference prefix and lib id.
func Classify(sym *schematic.Symbol) Category {
	ref := strings.ToUpper(sym.Reference())
	lib := strings.ToLower(sym.LibID)

	switch {
	case strings.HasPrefix(ref, "C") || strings.Contains(lib, "cap"):
		return CategoryCapacitor
	case strings.HasPrefix(ref, "U") || strings.Contains(lib, "mcu") || strings.Contains(lib, "ic"):
		return CategoryIC
	case strings.HasPrefix(ref, "R") || strings.Contains(lib, "res"):
		return CategoryResistor
	case strings.HasPrefix(ref, "L") || strings.Contains(lib, "ind"):
		return CategoryInductor
	case strings.HasPrefix(ref, "Q") || strings.Contains(lib, "transistor"):
		return CategoryTransistor
	}
	return CategoryOther
}

// isRealSymbol rejects power and net-label pseudo-symbols.
func isRealSymbol(sym *schematic.Symbol) bool {
	ref := strings.ToUpper(sym.Reference())
	if strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "NET-") {
		return false
	}
	lib := strings.ToLower(sym.LibID)
	if strings.HasPrefix(lib, "power:") || strings.HasPrefix(lib, "net:") {
		return false
	}
	return true
}

func computeProximities(components []Component, cfg Config) []ProximityEdge {
	var edges []ProximityEdge
	for i := range components {
		for j := i + 1; j < len(components); j++ {
			a, b := &components[i], &components[j]

			dist := math.Hypot(a.Position.X-b.Position.X, a.Position.Y-b.Position.Y)
			radius := cfg.ProximityRadiusMM
			if isICCapPair(a, b) {
				radius *= 1.5
			}
			if dist > radius {
				continue
			}

			weight := pairWeight(a, b, cfg.WeightMultipliers)
			base := math.Max(0, (cfg.ProximityRadiusMM-dist)/cfg.ProximityRadiusMM)
			edges = append(edges, ProximityEdge{
				RefA:       a.Reference,
				RefB:       b.Reference,
				DistanceMM: dist,
				Score:      base * weight,
				CategoryA:  a.Category,
				CategoryB:  b.Category,
				Weight:     weight,
			})
		}
	}
	return edges
}

func pairWeight(a, b *Component, multipliers map[CategoryPair]float64) float64 {
	weight, ok := multipliers[CategoryPair{a.Category, b.Category}]
	if !ok {
		weight, ok = multipliers[CategoryPair{b.Category, a.Category}]
	}
	if !ok {
		weight = 1.0
	}

	// Decoupling intent: a capacitor next to a U-prefixed IC matters more
	if isICCapPair(a, b) &&
		(strings.HasPrefix(strings.ToUpper(a.Reference), "U") ||
			strings.HasPrefix(strings.ToUpper(b.Reference), "U")) {
		weight *= 3.0
	}

	return weight
}

func isICCapPair(a, b *Component) bool {
	return (a.Category == CategoryIC && b.Category == CategoryCapacitor) ||
		(a.Category == CategoryCapacitor && b.Category == CategoryIC)
}
