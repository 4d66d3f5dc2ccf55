package connectivity

import (
	"math"

	"schtrace/pkg/kicad/sexp"
)

// nodeKey is the canonical identity of a point in the schematic. Coordinates
// are quantized to micrometers (three decimal places in mm), so any two
// points that round to the same thousandth collapse onto one node.
//
// The quantization is per-axis rounding, not a true epsilon radius: two
// points 0.0009mm apart that straddle a rounding boundary stay distinct.
// That matches how junction snapping behaves in the editor itself.
type nodeKey struct {
	X int64
	Y int64
}

// positionKey converts a point to its canonical key. Points with non-finite
// coordinates have no key and report ok=false; callers must skip them.
func positionKey(p sexp.Position) (nodeKey, bool) {
	if !isFinite(p.X) || !isFinite(p.Y) {
		return nodeKey{}, false
	}
	return nodeKey{
		X: quantize(p.X),
		Y: quantize(p.Y),
	}, true
}

func quantize(v float64) int64 {
	return int64(math.Round(v * 1000))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
