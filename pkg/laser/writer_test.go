package laser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/pathdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, doc *Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc))
	return buf.String()
}

func TestEncodeRoot(t *testing.T) {
	doc, err := NewComposer(NewExtractor(loadFixture(t))).Single(EdgeOutline)
	require.NoError(t, err)
	out := encode(t, doc)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	for _, want := range []string{
		`xmlns="http://www.w3.org/2000/svg"`,
		`version="1.1"`,
		`width="20.1mm"`,
		`height="10.1mm"`,
		`viewBox="-0.05 -0.05 20.1 10.1"`,
		`<path d="M 0.000000 0.000000 L 20.000000 0.000000 L 20.000000 10.000000 L 0.000000 10.000000 Z" fill="none" stroke="#00ff00" stroke-width="0.1">`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestEncodeDrillHoles(t *testing.T) {
	c := NewComposer(NewExtractor(loadFixture(t)))

	doc, err := c.Single(DrillHoles)
	require.NoError(t, err)
	out := encode(t, doc)

	assert.Contains(t, out, `<circle cx="5.000000" cy="5.000000" r="0.400000" fill="#ff7f56">`)
	assert.Contains(t, out, `<ellipse cx="15.000000" cy="5.000000" rx="0.600000" ry="0.300000" transform="rotate(90.0 15.0 5.0)" fill="#ff7f56">`)
	assert.Contains(t, out, `<circle cx="3.000000" cy="5.000000" r="0.200000" fill="#000000">`)
}

func TestEncodeMirrored(t *testing.T) {
	doc, err := NewComposer(NewExtractor(loadFixture(t))).Composite(Back)
	require.NoError(t, err)
	out := encode(t, doc)

	assert.Contains(t, out, `<circle cx="17.000000" cy="5.000000" r="0.200000" fill="#000000">`)
	assert.Contains(t, out, `<circle cx="15.000000" cy="5.000000" r="0.400000" fill="#ff7f56">`)
	// Rotation passes through the mirror unchanged.
	assert.Contains(t, out, `<ellipse cx="5.000000" cy="5.000000" rx="0.600000" ry="0.300000" transform="rotate(90.0 5.0 5.0)"`)
	// The mirrored rectangle keeps a positive size.
	assert.Contains(t, out, `<rect x="11.000000" y="8.000000" width="2.000000" height="1.000000" stroke="#00befe" stroke-width="0.150" fill="none">`)
	assert.Contains(t, out, `<line x1="19.000000" y1="1.000000" x2="16.000000" y2="1.000000" stroke="#00befe" stroke-width="0.200" fill="none">`)
}

func TestEncodeComments(t *testing.T) {
	doc, err := NewComposer(NewExtractor(loadFixture(t))).Single(Comments)
	require.NoError(t, err)
	out := encode(t, doc)

	assert.Contains(t, out, `<line x1="1.000000" y1="1.000000" x2="4.000000" y2="1.000000" stroke="#00befe" stroke-width="0.200" fill="none">`)
	assert.Contains(t, out, `<rect x="7.000000" y="8.000000" width="2.000000" height="1.000000" stroke="#00befe" stroke-width="0.150" fill="none">`)
	assert.Contains(t, out, `<circle cx="12.000000" cy="8.000000" r="0.500000" stroke="#00befe" stroke-width="0.150" fill="none">`)
	assert.Contains(t, out, `<path d="M 16.000000 8.000000 L 18.000000 8.000000 L 17.000000 9.000000 Z" stroke="#00befe" stroke-width="0.100" fill="none">`)
}

func TestEncodeReadsBack(t *testing.T) {
	doc, err := NewComposer(NewExtractor(loadFixture(t))).Composite(Front)
	require.NoError(t, err)

	svg, err := pathdata.ReadSVG(strings.NewReader(encode(t, doc)))
	require.NoError(t, err)
	require.Len(t, svg.Elements, doc.ElementCount())

	var names []string
	for _, el := range svg.Elements {
		names = append(names, el.Name)
	}
	assert.Equal(t, []string{
		"path",                        // edge
		"path",                        // isolation
		"circle", "ellipse", "circle", // drill
		"path",                           // mask
		"line", "rect", "circle", "path", // comments
	}, names)

	iso := svg.Elements[1].Path.PolygonSet()
	assert.Equal(t, 1, iso.OutlineCount())
	assert.Equal(t, 4, iso.HoleCount(0))
	assert.Equal(t, "evenodd", svg.Elements[1].Attr("fill-rule"))
	assert.Equal(t, "#ffff00", svg.Elements[5].Attr("fill"))
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	doc := &Document{
		Canvas: geometry.Rect{Max: geometry.Pt(10*mm, 10*mm)},
		Layers: []RenderedLayer{{
			Selector: EdgeOutline,
			Polygons: geometry.NewPolygonSet(square(0, 0, 10*mm)),
			Style:    EdgeStyle,
		}},
	}

	path, err := Write(doc, dir, "edge_cuts.svg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "edge_cuts.svg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `viewBox="0.0 0.0 10.0 10.0"`)
}

func TestWriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Write(&Document{}, filepath.Join(blocker, "out"), "edge_cuts.svg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputWrite))
}
