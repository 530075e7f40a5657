// Package pathdata reads the path data and SVG files written by the laser
// pipeline back into rings, for inspection and round-trip checks.
package pathdata

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
)

var parser = participle.MustBuild[Data](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
)

// Point is a coordinate in document units (millimetres for laser output).
type Point struct {
	X, Y float64
}

// Ring is one subpath. Closed is set when it ends with a closepath.
type Ring struct {
	Points []Point
	Closed bool
}

// Path is a parsed "d" attribute.
type Path struct {
	Rings []Ring
}

// PointCount returns the number of points over all rings.
func (p *Path) PointCount() int {
	n := 0
	for _, r := range p.Rings {
		n += len(r.Points)
	}
	return n
}

// ParseData returns the raw command list of d.
func ParseData(d string) (*Data, error) {
	data, err := parser.ParseString("", d)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return data, nil
}

// Parse parses path data into rings with absolute coordinates.
func Parse(d string) (*Path, error) {
	if strings.TrimSpace(d) == "" {
		return &Path{}, nil
	}
	data, err := ParseData(d)
	if err != nil {
		return nil, err
	}

	var (
		path    Path
		cur     *Ring
		pos     Point
		start   Point
		started bool
	)
	flush := func() {
		if cur != nil && len(cur.Points) > 0 {
			path.Rings = append(path.Rings, *cur)
		}
		cur = nil
	}
	lineTo := func(p Point) {
		if cur == nil {
			// Drawing after a closepath continues from the subpath start.
			cur = &Ring{Points: []Point{start}}
		}
		cur.Points = append(cur.Points, p)
		pos = p
	}

	for _, cmd := range data.Commands {
		op := cmd.Op
		rel := strings.ToLower(op) == op
		args := cmd.Args

		switch strings.ToUpper(op) {
		case "M":
			if len(args) == 0 || len(args)%2 != 0 {
				return nil, fmt.Errorf("%s: %q expects coordinate pairs, got %d numbers", cmd.Pos, op, len(args))
			}
			flush()
			p := Point{args[0], args[1]}
			if rel && started {
				p = Point{pos.X + p.X, pos.Y + p.Y}
			}
			cur = &Ring{Points: []Point{p}}
			pos, start, started = p, p, true
			// Extra pairs after a moveto are implicit linetos.
			for i := 2; i < len(args); i += 2 {
				lineTo(offset(rel, pos, args[i], args[i+1]))
			}

		case "L":
			if len(args) == 0 || len(args)%2 != 0 {
				return nil, fmt.Errorf("%s: %q expects coordinate pairs, got %d numbers", cmd.Pos, op, len(args))
			}
			if !started {
				return nil, fmt.Errorf("%s: %q before moveto", cmd.Pos, op)
			}
			for i := 0; i < len(args); i += 2 {
				lineTo(offset(rel, pos, args[i], args[i+1]))
			}

		case "H", "V":
			if len(args) == 0 {
				return nil, fmt.Errorf("%s: %q expects at least one number", cmd.Pos, op)
			}
			if !started {
				return nil, fmt.Errorf("%s: %q before moveto", cmd.Pos, op)
			}
			for _, v := range args {
				p := pos
				switch {
				case op == "H":
					p.X = v
				case op == "h":
					p.X += v
				case op == "V":
					p.Y = v
				default:
					p.Y += v
				}
				lineTo(p)
			}

		case "Z":
			if len(args) != 0 {
				return nil, fmt.Errorf("%s: %q takes no arguments", cmd.Pos, op)
			}
			if cur != nil {
				cur.Closed = true
			}
			flush()
			pos = start
		}
	}
	flush()
	return &path, nil
}

func offset(rel bool, from Point, x, y float64) Point {
	if rel {
		return Point{from.X + x, from.Y + y}
	}
	return Point{x, y}
}
