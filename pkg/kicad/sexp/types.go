// Package sexp provides the typed accessors shared by the KiCad loaders on
// top of the raw kicadsexp tree, together with unit conversion.
//
// Board files store lengths in millimetres. Everything handed to the rest of
// the module is converted to integer nanometres.
package sexp

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
)

// Unit conversion constants
const (
	NanometersToMM = 1e-6
	MMToNanometers = 1e6
)

// MM converts a millimetre value from a file into nanometres.
func MM(v float64) int64 {
	return int64(math.Round(v * MMToNanometers))
}

// ToMM converts nanometres to millimetres.
func ToMM(nm int64) float64 {
	return float64(nm) * NanometersToMM
}

// PositionAngle is an (at x y [angle]) value.
type PositionAngle struct {
	geometry.Point
	Angle float64 // degrees
}

// Stroke is the outline width and style of a drawing.
type Stroke struct {
	Width int64  // nm
	Type  string // solid, dash, ...
}

// DefaultStrokeWidth is used when a drawing omits its width.
const DefaultStrokeWidth = 150_000
