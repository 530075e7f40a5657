package pcb

import (
	"log/slog"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
)

// EdgeCutsLayer holds the board outline.
const EdgeCutsLayer = "Edge.Cuts"

// chainTolerance is how far apart two Edge.Cuts endpoints may be and still
// count as connected.
const chainTolerance = 1000

// buildOutline assembles the Edge.Cuts drawings into a polygon set. Lines
// and arcs are chained end to end into closed contours; rectangles, circles
// and polygons are closed already. Contours inside other contours become
// holes. Chains that never close are reported and dropped.
func buildOutline(drawings []Drawing, maxError int64, log *slog.Logger) geometry.PolygonSet {
	var closed []geometry.Contour
	var open [][]geometry.Point

	for _, d := range drawings {
		if d.Layer != EdgeCutsLayer {
			continue
		}
		if c := d.Contour(maxError); c != nil {
			closed = append(closed, c)
			continue
		}
		if pl := d.Polyline(maxError); len(pl) >= 2 {
			open = append(open, pl)
		}
	}

	rings, leftover := chainSegments(open)
	closed = append(closed, rings...)
	if leftover > 0 {
		log.Warn("board outline has unclosed edges", "segments", leftover)
	}
	return geometry.Nest(closed)
}

func near(a, b geometry.Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx >= -chainTolerance && dx <= chainTolerance &&
		dy >= -chainTolerance && dy <= chainTolerance
}

func reversed(pts []geometry.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// chainSegments joins polylines that share endpoints into closed rings. It
// returns the rings and the number of polylines left in unclosed chains.
func chainSegments(parts [][]geometry.Point) ([]geometry.Contour, int) {
	used := make([]bool, len(parts))
	var rings []geometry.Contour
	leftover := 0

	for i := range parts {
		if used[i] {
			continue
		}
		used[i] = true
		chain := append([]geometry.Point(nil), parts[i]...)
		members := 1

		for !near(chain[0], chain[len(chain)-1]) {
			tail := chain[len(chain)-1]
			next := -1
			for j := range parts {
				if used[j] {
					continue
				}
				switch {
				case near(parts[j][0], tail):
					next = j
				case near(parts[j][len(parts[j])-1], tail):
					parts[j] = reversed(parts[j])
					next = j
				}
				if next >= 0 {
					break
				}
			}
			if next < 0 {
				break
			}
			used[next] = true
			members++
			chain = append(chain, parts[next][1:]...)
		}

		if len(chain) >= 4 && near(chain[0], chain[len(chain)-1]) {
			rings = append(rings, geometry.Contour(chain[:len(chain)-1]))
		} else {
			leftover += members
		}
	}
	return rings, leftover
}
