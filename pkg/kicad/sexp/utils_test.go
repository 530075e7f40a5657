package sexp

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp/kicadsexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, s string) kicadsexp.Sexp {
	t.Helper()
	exprs, err := kicadsexp.ParseString(s)
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	return exprs[0]
}

func TestMM(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{1, 1_000_000},
		{0.2, 200_000},
		{-12.7, -12_700_000},
		{1.0000001, 1_000_000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MM(tt.in), "MM(%v)", tt.in)
	}
	assert.InDelta(t, 12.7, ToMM(12_700_000), 1e-12)
}

func TestFindNodes(t *testing.T) {
	root := parseOne(t, `(footprint "R" (pad "1" smd rect) (pad "2" smd rect) (at 1 2 90))`)

	pads := FindAllNodes(root, "pad")
	require.Len(t, pads, 2)
	num, err := GetString(pads[1], 1)
	require.NoError(t, err)
	assert.Equal(t, "2", num)

	_, ok := FindNode(root, "missing")
	assert.False(t, ok)

	at, ok := FindNode(root, "at")
	require.True(t, ok)
	pos, err := GetPosition(at)
	require.NoError(t, err)
	assert.Equal(t, geometry.Pt(1_000_000, 2_000_000), pos.Point)
	assert.Equal(t, 90.0, pos.Angle)
}

func TestGetPoints(t *testing.T) {
	pts := parseOne(t, `(pts (xy 0 0) (xy 1.5 0) (arc (start 1 1) (mid 2 2) (end 3 3)) (xy 1.5 2))`)
	got, err := GetPoints(pts)
	require.NoError(t, err)
	assert.Equal(t, []geometry.Point{{X: 0, Y: 0}, {X: 1_500_000, Y: 0}, {X: 1_500_000, Y: 2_000_000}}, got)
}

func TestGetStroke(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Stroke
	}{
		{"kicad6", `(gr_line (stroke (width 0.2) (type dash)))`, Stroke{Width: 200_000, Type: "dash"}},
		{"legacy width", `(gr_line (width 0.05))`, Stroke{Width: 50_000, Type: "solid"}},
		{"default", `(gr_line)`, Stroke{Width: DefaultStrokeWidth, Type: "solid"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetStroke(parseOne(t, tt.in)))
		})
	}
}

func TestGetStringErrorsCarryPosition(t *testing.T) {
	node := parseOne(t, "\n  (net)")
	_, err := GetInt(node, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2:3")
}
