package schematic

import (
	"fmt"

	"schtrace/pkg/kicad/sexp"
)

// Schematic-specific parsing helpers. Schematic files store coordinates
// in millimeters and angles in plain degrees.

// getPosition extracts position and angle from an (at X Y [angle]) node
func getPosition(s sexp.Sexp) (sexp.PositionAngle, error) {
	key, err := sexp.GetString(s, 0)
	if err != nil {
		return sexp.PositionAngle{}, err
	}
	if key != "at" {
		return sexp.PositionAngle{}, fmt.Errorf("expected 'at', got %q", key)
	}

	x, err := sexp.GetFloat(s, 1)
	if err != nil {
		return sexp.PositionAngle{}, fmt.Errorf("failed to parse X coordinate: %w", err)
	}

	y, err := sexp.GetFloat(s, 2)
	if err != nil {
		return sexp.PositionAngle{}, fmt.Errorf("failed to parse Y coordinate: %w", err)
	}

	result := sexp.PositionAngle{
		Position: sexp.Position{X: x, Y: y},
	}

	// Angle is optional
	if angle, err := sexp.GetFloat(s, 3); err == nil {
		result.Angle = sexp.Angle(angle)
	}

	return result, nil
}

// getPositionXY extracts just X,Y from a (keyword X Y) node such as
// (xy ...), (start ...), or (end ...)
func getPositionXY(s sexp.Sexp) (sexp.Position, error) {
	x, err := sexp.GetFloat(s, 1)
	if err != nil {
		return sexp.Position{}, fmt.Errorf("failed to parse X: %w", err)
	}

	y, err := sexp.GetFloat(s, 2)
	if err != nil {
		return sexp.Position{}, fmt.Errorf("failed to parse Y: %w", err)
	}

	return sexp.Position{X: x, Y: y}, nil
}

// getSize extracts width and height from a (size W H) node
func getSize(s sexp.Sexp) (sexp.Size, error) {
	w, err := sexp.GetFloat(s, 1)
	if err != nil {
		return sexp.Size{}, fmt.Errorf("failed to parse width: %w", err)
	}

	h, err := sexp.GetFloat(s, 2)
	if err != nil {
		return sexp.Size{}, fmt.Errorf("failed to parse height: %w", err)
	}

	return sexp.Size{Width: w, Height: h}, nil
}
