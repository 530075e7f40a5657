package laser

import (
	"strings"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
)

// EmitPath renders a polygon set as SVG path data in millimetres. Each
// outline becomes "M x y L x y ... Z", followed by its holes in the same
// form. The transform is applied before formatting. An empty set yields "".
func EmitPath(ps geometry.PolygonSet, xf Transform) string {
	var sb strings.Builder
	for _, poly := range ps.Polygons {
		writeRing(&sb, poly.Outline, xf)
		for _, hole := range poly.Holes {
			writeRing(&sb, hole, xf)
		}
	}
	return sb.String()
}

func writeRing(sb *strings.Builder, c geometry.Contour, xf Transform) {
	if len(c) == 0 {
		return
	}
	for i, p := range c {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString("L ")
		}
		sb.WriteString(formatCoord(xf.X(p.X)))
		sb.WriteByte(' ')
		sb.WriteString(formatCoord(p.Y))
	}
	sb.WriteString(" Z")
}
