package laser

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Write serializes doc as an SVG file named filename inside dir, creating
// the directory if needed, and returns the written path. Failures wrap
// ErrOutputWrite.
func Write(doc *Document, dir, filename string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory %s: %w", ErrOutputWrite, dir, err)
	}
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create %s: %w", ErrOutputWrite, path, err)
	}
	bw := bufio.NewWriter(f)
	if err := Encode(bw, doc); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: failed to write %s: %w", ErrOutputWrite, path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: failed to write %s: %w", ErrOutputWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: failed to close %s: %w", ErrOutputWrite, path, err)
	}
	return path, nil
}

// Encode writes doc as an SVG document with an XML declaration. Elements
// appear in layer order; attribute values are in millimetres.
func Encode(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	x, y, width, height := doc.ViewBox()
	root := xml.StartElement{
		Name: xml.Name{Space: svgNamespace, Local: "svg"},
		Attr: attrs(
			"version", "1.1",
			"width", formatNumber(width)+"mm",
			"height", formatNumber(height)+"mm",
			"viewBox", formatNumber(x)+" "+formatNumber(y)+" "+formatNumber(width)+" "+formatNumber(height),
		),
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	for _, layer := range doc.Layers {
		for _, el := range layerElements(layer, doc.Transform) {
			if err := enc.EncodeToken(el); err != nil {
				return err
			}
			if err := enc.EncodeToken(el.End()); err != nil {
				return err
			}
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// layerElements converts a rendered layer into SVG start elements.
func layerElements(l RenderedLayer, xf Transform) []xml.StartElement {
	var out []xml.StartElement
	if d := EmitPath(l.Polygons, xf); d != "" {
		out = append(out, element("path", append(attrs("d", d), styleAttrs(l.Style)...)))
	}
	for _, it := range l.Items {
		if el, ok := shapeElement(it, xf); ok {
			out = append(out, el)
		}
	}
	return out
}

func shapeElement(it Item, xf Transform) (xml.StartElement, bool) {
	var a []xml.Attr
	var name string
	switch s := it.Shape.(type) {
	case Segment:
		name = "line"
		a = attrs(
			"x1", formatCoord(xf.X(s.Start.X)),
			"y1", formatCoord(s.Start.Y),
			"x2", formatCoord(xf.X(s.End.X)),
			"y2", formatCoord(s.End.Y),
		)
	case Rectangle:
		name = "rect"
		x1, x2 := xf.X(s.Corner1.X), xf.X(s.Corner2.X)
		a = attrs(
			"x", formatCoord(min(x1, x2)),
			"y", formatCoord(min(s.Corner1.Y, s.Corner2.Y)),
			"width", formatCoord(abs(x2-x1)),
			"height", formatCoord(abs(s.Corner2.Y-s.Corner1.Y)),
		)
	case Circle:
		name = "circle"
		a = attrs(
			"cx", formatCoord(xf.X(s.Center.X)),
			"cy", formatCoord(s.Center.Y),
			"r", formatLength(s.Radius),
		)
	case Ellipse:
		name = "ellipse"
		cx := xf.X(s.Center.X)
		a = attrs(
			"cx", formatCoord(cx),
			"cy", formatCoord(s.Center.Y),
			"rx", formatLength(s.RX),
			"ry", formatLength(s.RY),
		)
		if s.Rotation != 0 {
			a = append(a, attrs("transform", "rotate("+formatNumber(s.Rotation)+" "+
				formatNumber(ToMM(cx))+" "+formatNumber(ToMM(s.Center.Y))+")")...)
		}
	case Polyline:
		d := EmitPath(s.Polygons, xf)
		if d == "" {
			return xml.StartElement{}, false
		}
		name = "path"
		a = attrs("d", d)
	default:
		return xml.StartElement{}, false
	}
	return element(name, append(a, shapeStyleAttrs(it.Style)...)), true
}

// styleAttrs orders presentation attributes for filled or outlined paths.
func styleAttrs(s Style) []xml.Attr {
	return attrs("fill", s.Fill, "stroke", s.Stroke, "stroke-width", s.StrokeWidth, "fill-rule", s.FillRule)
}

// shapeStyleAttrs orders presentation attributes for primitives, stroke
// before fill.
func shapeStyleAttrs(s Style) []xml.Attr {
	return attrs("stroke", s.Stroke, "stroke-width", s.StrokeWidth, "fill", s.Fill, "fill-rule", s.FillRule)
}

func element(name string, a []xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}, Attr: a}
}

// attrs builds an attribute list from name/value pairs, skipping empty
// values.
func attrs(kv ...string) []xml.Attr {
	out := make([]xml.Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		out = append(out, xml.Attr{Name: xml.Name{Local: kv[i]}, Value: kv[i+1]})
	}
	return out
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
