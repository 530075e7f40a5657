package laser

import (
	"fmt"
	"strconv"
)

// Colors understood by the laser software's layer mapping.
const (
	ColorContour    = "#00ff00" // board outline, cut through
	ColorEngrave    = "#000000" // isolation and via holes
	ColorPadHole    = "#ff7f56" // plated pad holes
	ColorMask       = "#ffff00" // solder-mask openings
	ColorComment    = "#00befe" // annotation scoring
	ColorNone       = "none"
	FillRuleEvenOdd = "evenodd"
)

// Style holds the presentation attributes of one SVG element. Empty fields
// are omitted from the output. StrokeWidth is the literal attribute value
// in millimetres.
type Style struct {
	Fill        string
	FillRule    string
	Stroke      string
	StrokeWidth string
}

// Styles used by the composer.
var (
	EdgeStyle      = Style{Fill: ColorNone, Stroke: ColorContour, StrokeWidth: "0.1"}
	IsolationStyle = Style{Fill: ColorEngrave, FillRule: FillRuleEvenOdd}
	MaskStyle      = Style{Fill: ColorMask, FillRule: FillRuleEvenOdd}
	PadHoleStyle   = Style{Fill: ColorPadHole}
	ViaHoleStyle   = Style{Fill: ColorEngrave}
)

// CommentStyle returns the stroke style of an annotation drawn with the
// given pen width in nanometres.
func CommentStyle(widthNM int64) Style {
	return Style{
		Fill:        ColorNone,
		Stroke:      ColorComment,
		StrokeWidth: fmt.Sprintf("%.3f", ToMM(widthNM)),
	}
}

// StrokeWidthMM returns the stroke width in millimetres, or 0 when unset.
func (s Style) StrokeWidthMM() float64 {
	v, err := strconv.ParseFloat(s.StrokeWidth, 64)
	if err != nil {
		return 0
	}
	return v
}
