package connectivity

import (
	"math"

	"schtrace/pkg/kicad/schematic"
	"schtrace/pkg/kicad/sexp"
)

// PinWorldPosition maps a pin's symbol-local position into schematic
// coordinates. Mirror applies before rotation: mirror x negates the local
// Y axis, mirror y negates X, mirror xy negates both. Rotation is a plain
// 2D rotation by the symbol's angle in degrees; arbitrary angles are
// accepted, not just the editor's 90-degree steps.
func PinWorldPosition(sym *schematic.Symbol, pin *schematic.Pin) sexp.Position {
	lx := pin.Position.X
	ly := pin.Position.Y

	switch sym.Mirror {
	case "x":
		ly = -ly
	case "y":
		lx = -lx
	case "xy":
		lx = -lx
		ly = -ly
	}

	theta := float64(sym.Angle) * math.Pi / 180
	sin, cos := math.Sincos(theta)

	return sexp.Position{
		X: sym.Position.X + lx*cos - ly*sin,
		Y: sym.Position.Y + lx*sin + ly*cos,
	}
}
