package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNest(t *testing.T) {
	outer := square(0, 0, 100)
	hole := square(10, 10, 60)
	island := square(20, 20, 20)
	other := square(200, 0, 10)

	ps := Nest([]Contour{hole, outer, island, other})

	require.Equal(t, 3, ps.OutlineCount())
	assert.Equal(t, outer, ps.Outline(0))
	require.Equal(t, 1, ps.HoleCount(0))
	assert.Equal(t, hole, ps.Hole(0, 0))
	assert.Equal(t, island, ps.Outline(1))
	assert.Equal(t, other, ps.Outline(2))
	assert.Equal(t, 0, ps.HoleCount(2))
}

func TestNestTouchingHole(t *testing.T) {
	outer := square(0, 0, 100)
	// Shares the left edge of the outline.
	notch := Contour{Pt(0, 40), Pt(30, 40), Pt(30, 60), Pt(0, 60)}

	ps := Nest([]Contour{outer, notch})
	require.Equal(t, 1, ps.OutlineCount())
	assert.Equal(t, 1, ps.HoleCount(0))
}

func TestNestEmpty(t *testing.T) {
	assert.True(t, Nest(nil).IsEmpty())
}
