package schematic

// Pin resolution for symbol instances.
//
// A placed symbol carries no pin geometry of its own: pins live on the
// embedded library definition, split across units. Unit 0 is shared by
// every instance; unit N belongs only to instances with Unit == N.

// UnitPins returns the pins that apply to the given unit of a library
// symbol: the common (unit 0) pins plus the pins of the requested unit.
func (ls *LibSymbol) UnitPins(unit int) []Pin {
	if len(ls.Units) == 0 {
		return ls.Pins
	}

	var pins []Pin
	for _, u := range ls.Units {
		if u.Unit == 0 || u.Unit == unit {
			pins = append(pins, u.Pins...)
		}
	}
	return pins
}

// SymbolPins resolves the pin list for a placed symbol instance from its
// embedded library definition. Returns nil when the definition is missing.
func (s *Schematic) SymbolPins(sym *Symbol) []Pin {
	lib := s.GetLibSymbol(sym.LibID)
	if lib == nil {
		return nil
	}
	return lib.UnitPins(sym.Unit)
}
