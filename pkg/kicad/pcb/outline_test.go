package pcb

import (
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutlineWithCutout(t *testing.T) {
	board, err := Parse(strings.NewReader(`(kicad_pcb (version 20221018)
		(gr_rect (start 0 0) (end 30 20) (stroke (width 0.1)) (fill none) (layer "Edge.Cuts"))
		(gr_circle (center 15 10) (end 17 10) (stroke (width 0.1)) (layer "Edge.Cuts"))
		(gr_poly (pts (xy 2 2) (xy 5 2) (xy 5 5)) (stroke (width 0.1)) (layer "Edge.Cuts"))
	)`))
	require.NoError(t, err)

	out := board.Outline
	require.Equal(t, 1, out.OutlineCount())
	assert.Equal(t, 2, out.HoleCount(0))
	assert.Equal(t, 600.0*mm*mm, out.Outline(0).Area())
}

func TestOutlineChainsArcs(t *testing.T) {
	// A 10 mm slot: two straight edges closed by half circles.
	board, err := Parse(strings.NewReader(`(kicad_pcb (version 20221018)
		(gr_line (start 0 0) (end 10 0) (layer "Edge.Cuts"))
		(gr_arc (start 10 0) (mid 12 2) (end 10 4) (layer "Edge.Cuts"))
		(gr_line (start 0 4) (end 10 4) (layer "Edge.Cuts"))
		(gr_arc (start 0 4) (mid -2 2) (end 0 0) (layer "Edge.Cuts"))
	)`))
	require.NoError(t, err)

	require.Equal(t, 1, board.Outline.OutlineCount())
	b := board.Outline.Bounds()
	assert.Equal(t, geometry.Rect{Min: geometry.Pt(-2*mm, 0), Max: geometry.Pt(12*mm, 4*mm)}, b)
}

func TestOutlineUnclosedDropped(t *testing.T) {
	board, err := Parse(strings.NewReader(`(kicad_pcb (version 20221018)
		(gr_line (start 0 0) (end 10 0) (layer "Edge.Cuts"))
		(gr_line (start 10 0) (end 10 10) (layer "Edge.Cuts"))
	)`))
	require.NoError(t, err)

	// Falls back to the bounding box of the items.
	require.Equal(t, 1, board.Outline.OutlineCount())
	assert.Equal(t, board.BBox, board.Outline.Bounds())
}

func TestOutlineFallbackToBoundingBox(t *testing.T) {
	board, err := Parse(strings.NewReader(`(kicad_pcb (version 20221018)
		(segment (start 1 1) (end 9 1) (width 0.2) (layer "F.Cu"))
		(via (at 5 5) (size 1) (drill 0.5) (layers "F.Cu" "B.Cu"))
	)`))
	require.NoError(t, err)

	want := geometry.Rect{Min: geometry.Pt(900_000, 900_000), Max: geometry.Pt(9_100_000, 5_500_000)}
	assert.Equal(t, want, board.BBox)
	require.Equal(t, 1, board.Outline.OutlineCount())
	assert.Equal(t, want, board.Outline.Bounds())
}
