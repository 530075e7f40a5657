package laser

import (
	"testing"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/pathdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x, y, size int64) geometry.Contour {
	return geometry.Rect{Min: geometry.Pt(x, y), Max: geometry.Pt(x+size, y+size)}.Contour()
}

func TestEmitPath(t *testing.T) {
	frame := geometry.Polygon{
		Outline: square(0, 0, 10*mm),
		Holes:   []geometry.Contour{square(2*mm, 2*mm, mm)},
	}
	tests := []struct {
		name string
		ps   geometry.PolygonSet
		xf   Transform
		want string
	}{
		{
			name: "empty",
			ps:   geometry.PolygonSet{},
			want: "",
		},
		{
			name: "single outline",
			ps:   geometry.NewPolygonSet(square(0, 0, mm)),
			want: "M 0.000000 0.000000 L 1.000000 0.000000 L 1.000000 1.000000 L 0.000000 1.000000 Z",
		},
		{
			name: "outline with hole",
			ps:   geometry.PolygonSet{Polygons: []geometry.Polygon{frame}},
			want: "M 0.000000 0.000000 L 10.000000 0.000000 L 10.000000 10.000000 L 0.000000 10.000000 Z " +
				"M 2.000000 2.000000 L 3.000000 2.000000 L 3.000000 3.000000 L 2.000000 3.000000 Z",
		},
		{
			name: "sub-micron precision",
			ps:   geometry.NewPolygonSet(geometry.Contour{{X: 1, Y: -1}, {X: 1_234_567, Y: 0}, {X: 0, Y: 999}}),
			want: "M 0.000001 -0.000001 L 1.234567 0.000000 L 0.000000 0.000999 Z",
		},
		{
			name: "mirrored",
			ps:   geometry.NewPolygonSet(square(0, 0, mm)),
			xf:   MirrorAbout(geometry.Rect{Max: geometry.Pt(10*mm, 10*mm)}),
			want: "M 10.000000 0.000000 L 9.000000 0.000000 L 9.000000 1.000000 L 10.000000 1.000000 Z",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EmitPath(tt.ps, tt.xf))
		})
	}
}

func TestEmitPathRoundTrip(t *testing.T) {
	ps := geometry.PolygonSet{Polygons: []geometry.Polygon{
		{
			Outline: geometry.Circle(geometry.Pt(5*mm, 5*mm), 3*mm, geometry.DefaultMaxError),
			Holes:   []geometry.Contour{square(4*mm, 4*mm, mm)},
		},
		{Outline: geometry.Segment(geometry.Pt(12*mm, 1*mm), geometry.Pt(18*mm, 2*mm), mm/4, geometry.DefaultMaxError)},
	}}

	for _, xf := range []Transform{Identity(), MirrorAbout(geometry.Rect{Max: geometry.Pt(20*mm, 10*mm)})} {
		path, err := pathdata.Parse(EmitPath(ps, xf))
		require.NoError(t, err)

		var want []geometry.Contour
		for _, p := range ps.Polygons {
			want = append(want, p.Outline)
			want = append(want, p.Holes...)
		}
		require.Len(t, path.Rings, len(want))
		for i, ring := range path.Rings {
			assert.True(t, ring.Closed)
			require.Len(t, ring.Points, len(want[i]))
			for j, pt := range ring.Points {
				src := want[i][j]
				assert.InDelta(t, ToMM(xf.X(src.X)), pt.X, 1e-6)
				assert.InDelta(t, ToMM(src.Y), pt.Y, 1e-6)
			}
		}
	}
}
