package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultMaxError is the chord error, in nanometres, used when turning arcs
// into straight segments.
const DefaultMaxError = 10000

// minCircleSegments is the lowest segment count for a full circle.
const minCircleSegments = 8

// ArcSegmentCount returns how many straight segments approximate an arc of
// the given radius and sweep (degrees) while keeping the chord deviation
// below maxError. Full circles never drop below eight segments and any arc
// gets at least two.
func ArcSegmentCount(radius, maxError int64, degrees float64) int {
	radius = max(radius, 1)
	maxError = max(maxError, 1)

	rel := math.Min(float64(maxError)/float64(radius), 2)
	inc := 2 * math.Acos(1-rel) * 180 / math.Pi
	inc = math.Min(inc, 360.0/minCircleSegments)

	n := int(math.Round(math.Abs(degrees) / inc))
	return max(n, 2)
}

// rotate turns v by deg degrees counter-clockwise as seen on a Y-down
// screen, matching the orientation convention of board files.
func rotate(v r2.Vec, deg float64) r2.Vec {
	if deg == 0 {
		return v
	}
	return r2.Rotate(v, -deg*math.Pi/180, r2.Vec{})
}

func vec(p Point) r2.Vec {
	return r2.Vec{X: float64(p.X), Y: float64(p.Y)}
}

func toPoint(v r2.Vec) Point {
	return Point{X: int64(math.Round(v.X)), Y: int64(math.Round(v.Y))}
}

// place rotates the local vertices about the origin, moves them to center
// and rounds to nanometres.
func place(center Point, deg float64, local []r2.Vec) Contour {
	c := vec(center)
	out := make(Contour, 0, len(local))
	for _, v := range local {
		pt := toPoint(r2.Add(c, rotate(v, deg)))
		if n := len(out); n > 0 && out[n-1] == pt {
			continue
		}
		out = append(out, pt)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// arcPoints appends points on a circle of radius r around the origin from
// angle start sweeping by sweep (radians, math orientation), both ends
// included.
func arcPoints(dst []r2.Vec, center r2.Vec, r, start, sweep float64, segs int) []r2.Vec {
	for i := 0; i <= segs; i++ {
		a := start + sweep*float64(i)/float64(segs)
		dst = append(dst, r2.Add(center, r2.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)}))
	}
	return dst
}

// Circle approximates a circle with vertices on its circumference.
func Circle(center Point, radius, maxError int64) Contour {
	if radius <= 0 {
		return nil
	}
	n := max(ArcSegmentCount(radius, maxError, 360), minCircleSegments)
	pts := make([]r2.Vec, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = r2.Vec{X: float64(radius) * math.Cos(a), Y: float64(radius) * math.Sin(a)}
	}
	return place(center, 0, pts)
}

// RegularPolygon returns n vertices evenly spaced on a circle, starting at
// angle zero. Coordinates are truncated towards the center.
func RegularPolygon(center Point, radius int64, n int) Contour {
	if radius <= 0 || n < 3 {
		return nil
	}
	out := make(Contour, n)
	r := float64(radius)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Point{
			X: center.X + int64(r*math.Cos(a)),
			Y: center.Y + int64(r*math.Sin(a)),
		}
	}
	return out
}

// Segment returns the stadium swept by a round pen of the given width moving
// from a to b. A zero-length segment is a circle.
func Segment(a, b Point, width, maxError int64) Contour {
	if width <= 0 {
		return nil
	}
	r := float64(width) / 2
	if a == b {
		return Circle(a, width/2, maxError)
	}
	d := r2.Sub(vec(b), vec(a))
	angle := math.Atan2(d.Y, d.X)
	segs := ArcSegmentCount(width/2, maxError, 180)

	pts := make([]r2.Vec, 0, 2*segs+2)
	pts = arcPoints(pts, vec(b), r, angle-math.Pi/2, math.Pi, segs)
	pts = arcPoints(pts, vec(a), r, angle+math.Pi/2, math.Pi, segs)
	return place(Point{}, 0, pts)
}

// Box returns a w by h rectangle centered on center and rotated by deg.
func Box(center Point, w, h int64, deg float64) Contour {
	if w <= 0 || h <= 0 {
		return nil
	}
	hw, hh := float64(w)/2, float64(h)/2
	return place(center, deg, []r2.Vec{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	})
}

// RoundRect returns a rectangle whose corners are rounded with radius.
func RoundRect(center Point, w, h, radius int64, deg float64, maxError int64) Contour {
	radius = min(radius, w/2, h/2)
	if radius <= 0 {
		return Box(center, w, h, deg)
	}
	hw, hh := float64(w)/2-float64(radius), float64(h)/2-float64(radius)
	r := float64(radius)
	segs := max(ArcSegmentCount(radius, maxError, 90), 1)

	pts := make([]r2.Vec, 0, 4*(segs+1))
	pts = arcPoints(pts, r2.Vec{X: hw, Y: hh}, r, 0, math.Pi/2, segs)
	pts = arcPoints(pts, r2.Vec{X: -hw, Y: hh}, r, math.Pi/2, math.Pi/2, segs)
	pts = arcPoints(pts, r2.Vec{X: -hw, Y: -hh}, r, math.Pi, math.Pi/2, segs)
	pts = arcPoints(pts, r2.Vec{X: hw, Y: -hh}, r, 3*math.Pi/2, math.Pi/2, segs)
	return place(center, deg, pts)
}

// Oval returns a stadium fitting a w by h box, rounded along its shorter
// side.
func Oval(center Point, w, h int64, deg float64, maxError int64) Contour {
	if w == h {
		return Circle(center, w/2, maxError)
	}
	var a, b r2.Vec
	width := min(w, h)
	if w > h {
		a, b = r2.Vec{X: -float64(w-h) / 2}, r2.Vec{X: float64(w-h) / 2}
	} else {
		a, b = r2.Vec{Y: -float64(h-w) / 2}, r2.Vec{Y: float64(h-w) / 2}
	}
	a = r2.Add(vec(center), rotate(a, deg))
	b = r2.Add(vec(center), rotate(b, deg))
	return Segment(toPoint(a), toPoint(b), width, maxError)
}

// Trapezoid returns a w by h quadrilateral whose opposite sides are
// shortened by delta, the way board files describe trapezoidal pads.
func Trapezoid(center Point, w, h int64, delta Point, deg float64) Contour {
	if delta == (Point{}) {
		return Box(center, w, h, deg)
	}
	hw, hh := float64(w)/2, float64(h)/2
	ddx, ddy := float64(delta.X)/2, float64(delta.Y)/2
	return place(center, deg, []r2.Vec{
		{X: -hw - ddy, Y: hh + ddx},
		{X: hw + ddy, Y: hh - ddx},
		{X: hw - ddy, Y: -hh + ddx},
		{X: -hw + ddy, Y: -hh - ddx},
	})
}

// Arc describes a circular arc by center, radius and angles in radians
// (math orientation, applied to Y-down coordinates).
type Arc struct {
	Center r2.Vec
	Radius float64
	Start  float64
	Sweep  float64
}

// ArcThrough returns the arc starting at start, passing through mid and
// ending at end. Collinear points yield ok == false.
func ArcThrough(start, mid, end Point) (arc Arc, ok bool) {
	a, b, c := vec(start), vec(mid), vec(end)
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-9 {
		return Arc{}, false
	}
	a2, b2, c2 := a.X*a.X+a.Y*a.Y, b.X*b.X+b.Y*b.Y, c.X*c.X+c.Y*c.Y
	center := r2.Vec{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
	sa := angleOf(r2.Sub(a, center))
	ma := normAngle(angleOf(r2.Sub(b, center)) - sa)
	ea := normAngle(angleOf(r2.Sub(c, center)) - sa)
	sweep := ea
	if ma > ea {
		sweep = ea - 2*math.Pi
	}
	return Arc{Center: center, Radius: r2.Norm(r2.Sub(a, center)), Start: sa, Sweep: sweep}, true
}

// Points returns the arc as a polyline honouring maxError, endpoints
// included.
func (a Arc) Points(maxError int64) []Point {
	segs := ArcSegmentCount(int64(a.Radius), maxError, a.Sweep*180/math.Pi)
	vs := arcPoints(nil, a.Center, a.Radius, a.Start, a.Sweep, segs)
	out := make([]Point, len(vs))
	for i, v := range vs {
		out[i] = toPoint(v)
	}
	return out
}

// ArcBand returns the outline swept by a round pen of the given width along
// the arc.
func ArcBand(a Arc, width, maxError int64) Contour {
	if width <= 0 {
		return nil
	}
	hw := float64(width) / 2
	outer := a.Radius + hw
	inner := math.Max(a.Radius-hw, 0)
	segs := ArcSegmentCount(int64(outer), maxError, a.Sweep*180/math.Pi)
	capSegs := ArcSegmentCount(width/2, maxError, 180)

	end := a.Start + a.Sweep
	dir := 1.0
	if a.Sweep < 0 {
		dir = -1
	}
	endPt := r2.Add(a.Center, r2.Vec{X: a.Radius * math.Cos(end), Y: a.Radius * math.Sin(end)})
	startPt := r2.Add(a.Center, r2.Vec{X: a.Radius * math.Cos(a.Start), Y: a.Radius * math.Sin(a.Start)})

	pts := make([]r2.Vec, 0, 2*segs+2*capSegs+4)
	pts = arcPoints(pts, a.Center, outer, a.Start, a.Sweep, segs)
	pts = arcPoints(pts, endPt, hw, end, dir*math.Pi, capSegs)
	pts = arcPoints(pts, a.Center, inner, end, -a.Sweep, segs)
	pts = arcPoints(pts, startPt, hw, a.Start+dir*math.Pi, dir*math.Pi, capSegs)
	return place(Point{}, 0, pts)
}

func angleOf(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

func normAngle(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
