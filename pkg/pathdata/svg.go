package pathdata

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
)

// Element is one drawable element of an SVG document.
type Element struct {
	Name  string
	Attrs map[string]string
	// Path holds the parsed "d" attribute of path elements.
	Path *Path
}

// Attr returns an attribute value, or "" when absent.
func (e Element) Attr(name string) string {
	return e.Attrs[name]
}

// Document is the root attributes and the drawable elements of an SVG file,
// in document order.
type Document struct {
	Width, Height string
	ViewBox       string
	Elements      []Element
}

// ReadSVG decodes an SVG document. Only the root element and its direct
// children are kept; nested groups are flattened.
func ReadSVG(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{}
	seenRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode svg: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		attrs := make(map[string]string, len(se.Attr))
		for _, a := range se.Attr {
			attrs[a.Name.Local] = a.Value
		}
		if !seenRoot {
			if se.Name.Local != "svg" {
				return nil, fmt.Errorf("not an svg document: root element %q", se.Name.Local)
			}
			seenRoot = true
			doc.Width, doc.Height, doc.ViewBox = attrs["width"], attrs["height"], attrs["viewBox"]
			continue
		}
		if se.Name.Local == "g" {
			continue
		}
		el := Element{Name: se.Name.Local, Attrs: attrs}
		if el.Name == "path" {
			p, err := Parse(attrs["d"])
			if err != nil {
				return nil, fmt.Errorf("path %d: %w", len(doc.Elements), err)
			}
			el.Path = p
		}
		doc.Elements = append(doc.Elements, el)
	}
	if !seenRoot {
		return nil, errors.New("empty svg document")
	}
	return doc, nil
}

// ReadSVGFile reads an SVG document from a file.
func ReadSVGFile(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return ReadSVG(f)
}

// PolygonSet converts the closed rings of p from millimetres to nanometres
// and sorts them into outlines and holes.
func (p *Path) PolygonSet() geometry.PolygonSet {
	var rings []geometry.Contour
	for _, r := range p.Rings {
		if !r.Closed || len(r.Points) < 3 {
			continue
		}
		c := make(geometry.Contour, len(r.Points))
		for i, pt := range r.Points {
			c[i] = geometry.Point{X: toNM(pt.X), Y: toNM(pt.Y)}
		}
		rings = append(rings, c)
	}
	return geometry.Nest(rings)
}

func toNM(mm float64) int64 {
	return int64(math.Round(mm * 1e6))
}
