package preview

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/laser"
)

func composer(t *testing.T) *laser.Composer {
	t.Helper()
	b, err := laser.Load("../testdata/board.kicad_pcb")
	require.NoError(t, err)
	return laser.NewComposer(laser.NewExtractor(b))
}

func TestRenderDrillHoles(t *testing.T) {
	doc, err := composer(t).Single(laser.DrillHoles)
	require.NoError(t, err)

	dc, err := Render(doc, Options{PixelsPerMM: 10})
	require.NoError(t, err)
	defer dc.Close()

	// 20.1 x 10.1 mm at 10 px/mm
	assert.InDelta(t, 201, dc.Width(), 1)
	assert.InDelta(t, 101, dc.Height(), 1)

	img := dc.Image()
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{255, 255, 255}, []uint32{r >> 8, g >> 8, b >> 8}, "background")

	// Pad hole at (5, 5) mm is orange.
	r, g, b, _ = img.At(50, 50).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, g>>8, uint32(180))
	assert.Less(t, b>>8, uint32(140))

	// Via hole at (3, 5) mm is black.
	r, g, b, _ = img.At(30, 50).RGBA()
	assert.Less(t, r>>8+g>>8+b>>8, uint32(60))
}

func TestRenderMirrored(t *testing.T) {
	doc, err := composer(t).Single(laser.DrillHoles)
	require.NoError(t, err)
	doc.Transform = laser.MirrorAbout(doc.Canvas)

	dc, err := Render(doc, Options{PixelsPerMM: 10})
	require.NoError(t, err)
	defer dc.Close()

	img := dc.Image()
	// The via moves from x=3 to x=17.
	r, g, b, _ := img.At(170, 50).RGBA()
	assert.Less(t, r>>8+g>>8+b>>8, uint32(60))
	r, g, b, _ = img.At(30, 50).RGBA()
	assert.Equal(t, []uint32{255, 255, 255}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestRenderComposite(t *testing.T) {
	doc, err := composer(t).Composite(laser.Front)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, doc, Options{PixelsPerMM: 4}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestRenderRejectsHugeCanvas(t *testing.T) {
	doc, err := composer(t).Single(laser.EdgeOutline)
	require.NoError(t, err)

	_, err = Render(doc, Options{PixelsPerMM: 10_000})
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	doc, err := composer(t).Single(laser.EdgeOutline)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "edge_cuts.png")
	require.NoError(t, WritePNG(doc, path, Options{}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPNGPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"out/edge_cuts.svg", "out/edge_cuts.png"},
		{"multi_color_pcb_back.svg", "multi_color_pcb_back.png"},
		{"noext", "noext.png"},
	}
	for _, tt := range tests {
		if got := PNGPath(tt.in); got != tt.want {
			t.Errorf("PNGPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
