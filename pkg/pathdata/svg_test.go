package pathdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1" width="20.1mm" height="10.1mm" viewBox="-0.05 -0.05 20.1 10.1">
  <path d="M 0 0 L 20 0 L 20 10 L 0 10 Z" fill="none" stroke="#00ff00" stroke-width="0.1"></path>
  <circle cx="5.000000" cy="5.000000" r="0.400000" fill="#ff7f56"></circle>
  <g><line x1="1" y1="1" x2="4" y2="1" stroke="#00befe"/></g>
</svg>
`

func TestReadSVG(t *testing.T) {
	doc, err := ReadSVG(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "20.1mm", doc.Width)
	assert.Equal(t, "10.1mm", doc.Height)
	assert.Equal(t, "-0.05 -0.05 20.1 10.1", doc.ViewBox)
	require.Len(t, doc.Elements, 3)

	names := []string{doc.Elements[0].Name, doc.Elements[1].Name, doc.Elements[2].Name}
	assert.Equal(t, []string{"path", "circle", "line"}, names)

	path := doc.Elements[0]
	require.NotNil(t, path.Path)
	assert.Len(t, path.Path.Rings, 1)
	assert.Equal(t, "#00ff00", path.Attr("stroke"))

	assert.Equal(t, "0.400000", doc.Elements[1].Attr("r"))
	assert.Nil(t, doc.Elements[1].Path)
}

func TestReadSVGErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong root", `<html><body/></html>`},
		{"bad path", `<svg><path d="L 1 1"/></svg>`},
		{"malformed xml", `<svg><path d="M 0 0"></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSVG(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
