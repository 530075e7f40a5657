// Package preview rasterizes laser documents to PNG so an output can be
// checked without opening the laser software.
package preview

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/laser"
)

// DefaultPixelsPerMM is the raster resolution used when none is given.
const DefaultPixelsPerMM = 20.0

// maxSide bounds the image size in pixels.
const maxSide = 16384

// Options controls rasterization.
type Options struct {
	PixelsPerMM float64
}

func (o Options) scale() float64 {
	if o.PixelsPerMM <= 0 {
		return DefaultPixelsPerMM
	}
	return o.PixelsPerMM
}

// PNGPath returns the preview file name for an SVG output.
func PNGPath(svgPath string) string {
	return strings.TrimSuffix(svgPath, filepath.Ext(svgPath)) + ".png"
}

// renderer maps document millimetres to pixels.
type renderer struct {
	dc     *gg.Context
	xf     laser.Transform
	ppm    float64
	x0, y0 float64
}

func (r *renderer) px(p geometry.Point) (float64, float64) {
	p = r.xf.Point(p)
	return (laser.ToMM(p.X) - r.x0) * r.ppm, (laser.ToMM(p.Y) - r.y0) * r.ppm
}

func (r *renderer) length(nm int64) float64 {
	return laser.ToMM(nm) * r.ppm
}

// radius scales a fractional nanometre radius to pixels.
func (r *renderer) radius(nm float64) float64 {
	return nm / 1e6 * r.ppm
}

// Render draws doc on a white background and returns the context. The
// caller must Close it.
func Render(doc *laser.Document, opts Options) (*gg.Context, error) {
	ppm := opts.scale()
	x0, y0, w, h := doc.ViewBox()
	width := int(math.Ceil(w * ppm))
	height := int(math.Ceil(h * ppm))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("empty canvas %.3fx%.3fmm", w, h)
	}
	if width > maxSide || height > maxSide {
		return nil, fmt.Errorf("preview %dx%d px exceeds %d px limit, lower the resolution", width, height, maxSide)
	}

	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.White)
	r := &renderer{dc: dc, xf: doc.Transform, ppm: ppm, x0: x0, y0: y0}

	for _, layer := range doc.Layers {
		if err := r.polygons(layer.Polygons, layer.Style); err != nil {
			dc.Close()
			return nil, fmt.Errorf("failed to draw %s: %w", layer.Selector.Name(), err)
		}
		for _, it := range layer.Items {
			if err := r.item(it); err != nil {
				dc.Close()
				return nil, fmt.Errorf("failed to draw %s: %w", layer.Selector.Name(), err)
			}
		}
	}
	return dc, nil
}

// Encode renders doc and writes it as PNG.
func Encode(w io.Writer, doc *laser.Document, opts Options) error {
	dc, err := Render(doc, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// WritePNG renders doc to a PNG file.
func WritePNG(doc *laser.Document, path string, opts Options) error {
	dc, err := Render(doc, opts)
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("%w: failed to save %s: %w", laser.ErrOutputWrite, path, err)
	}
	laser.Logger().Debug("wrote preview", "path", path)
	return nil
}

func (r *renderer) ring(c geometry.Contour) {
	for i, p := range c {
		x, y := r.px(p)
		if i == 0 {
			r.dc.MoveTo(x, y)
		} else {
			r.dc.LineTo(x, y)
		}
	}
	r.dc.ClosePath()
}

func (r *renderer) polygons(ps geometry.PolygonSet, s laser.Style) error {
	if ps.IsEmpty() {
		return nil
	}
	trace := func() {
		for _, poly := range ps.Polygons {
			r.ring(poly.Outline)
			for _, h := range poly.Holes {
				r.ring(h)
			}
		}
	}
	return r.paint(trace, s, 0)
}

// paint runs trace once for the fill and once for the stroke. A style
// without a stroke width uses the shape's own pen width.
func (r *renderer) paint(trace func(), s laser.Style, penNM int64) error {
	if s.Fill != "" && s.Fill != laser.ColorNone {
		if s.FillRule == laser.FillRuleEvenOdd {
			r.dc.SetFillRule(gg.FillRuleEvenOdd)
		} else {
			r.dc.SetFillRule(gg.FillRuleNonZero)
		}
		r.dc.SetHexColor(s.Fill)
		trace()
		if err := r.dc.Fill(); err != nil {
			return err
		}
	}
	if s.Stroke != "" && s.Stroke != laser.ColorNone {
		width := s.StrokeWidthMM() * r.ppm
		if width == 0 {
			width = r.length(penNM)
		}
		r.dc.SetHexColor(s.Stroke)
		r.dc.SetLineWidth(max(width, 1))
		trace()
		if err := r.dc.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) item(it laser.Item) error {
	switch s := it.Shape.(type) {
	case laser.Segment:
		return r.paint(func() {
			r.dc.MoveTo(r.px(s.Start))
			r.dc.LineTo(r.px(s.End))
		}, it.Style, s.StrokeWidth)

	case laser.Rectangle:
		return r.paint(func() {
			r.ring(geometry.Rect{Min: s.Corner1, Max: s.Corner1}.Expand(s.Corner2).Contour())
		}, it.Style, s.StrokeWidth)

	case laser.Circle:
		return r.paint(func() {
			x, y := r.px(s.Center)
			r.dc.DrawCircle(x, y, r.radius(s.Radius))
		}, it.Style, s.StrokeWidth)

	case laser.Ellipse:
		x, y := r.px(s.Center)
		r.dc.Push()
		defer r.dc.Pop()
		if s.Rotation != 0 {
			r.dc.RotateAbout(s.Rotation*math.Pi/180, x, y)
		}
		return r.paint(func() {
			r.dc.DrawEllipse(x, y, r.radius(s.RX), r.radius(s.RY))
		}, it.Style, 0)

	case laser.Polyline:
		return r.paint(func() {
			for _, poly := range s.Polygons.Polygons {
				r.ring(poly.Outline)
				for _, h := range poly.Holes {
					r.ring(h)
				}
			}
		}, it.Style, s.StrokeWidth)
	}
	return fmt.Errorf("unsupported shape %T", it.Shape)
}
