package laser

import (
	"math"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
)

// nmPerMM is the number of internal units in a millimetre.
const nmPerMM = 1e6

// ToMM converts internal units (nanometres) to millimetres.
func ToMM(nm int64) float64 {
	return float64(nm) / nmPerMM
}

// MirrorX reflects x about the vertical line through centerX.
func MirrorX(x, centerX int64) int64 {
	return 2*centerX - x
}

// Transform maps board coordinates to document coordinates. The zero value
// is the identity. A mirroring transform reflects X about a vertical axis;
// Y is never changed.
type Transform struct {
	mirror bool
	// axis is twice the mirror center, so half-unit centers stay exact.
	axis int64
}

// Identity returns the transform that leaves coordinates unchanged.
func Identity() Transform {
	return Transform{}
}

// MirrorAbout returns a transform that reflects X about the horizontal
// center of r.
func MirrorAbout(r geometry.Rect) Transform {
	return Transform{mirror: true, axis: r.Min.X + r.Max.X}
}

// Mirrored reports whether the transform reflects X.
func (t Transform) Mirrored() bool {
	return t.mirror
}

// X maps an X coordinate.
func (t Transform) X(x int64) int64 {
	if !t.mirror {
		return x
	}
	return t.axis - x
}

// Point maps a point.
func (t Transform) Point(p geometry.Point) geometry.Point {
	return geometry.Point{X: t.X(p.X), Y: p.Y}
}

// Rect maps a rectangle, keeping Min <= Max.
func (t Transform) Rect(r geometry.Rect) geometry.Rect {
	if !t.mirror || r.IsEmpty() {
		return r
	}
	return geometry.Rect{
		Min: geometry.Point{X: t.X(r.Max.X), Y: r.Min.Y},
		Max: geometry.Point{X: t.X(r.Min.X), Y: r.Max.Y},
	}
}

// formatCoord renders a millimetre coordinate with six decimals.
func formatCoord(nm int64) string {
	return strconv.FormatFloat(ToMM(nm), 'f', 6, 64)
}

// formatLength renders a fractional nanometre length in millimetres with
// six decimals.
func formatLength(nm float64) string {
	return strconv.FormatFloat(nm/nmPerMM, 'f', 6, 64)
}

// formatNumber renders v as the shortest decimal that reads back exactly,
// always with a fractional part or an exponent ("20.0", "-0.05", "5e-05").
func formatNumber(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
