package geometry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mm = 1_000_000

func boardSquare() PolygonSet {
	return NewPolygonSet(square(0, 0, 10*mm))
}

func TestSubtractTrackMakesHole(t *testing.T) {
	e := NewEngine()
	track := NewPolygonSet(Segment(Pt(2*mm, 5*mm), Pt(8*mm, 5*mm), mm/5, DefaultMaxError))

	got := e.Subtract(boardSquare(), track)

	require.Equal(t, 1, got.OutlineCount())
	require.Equal(t, 1, got.HoleCount(0))
	assert.InEpsilon(t, 100.0*mm*mm, got.Outline(0).Area(), 1e-9)
	assert.InEpsilon(t, track.Outline(0).Area(), got.Hole(0, 0).Area(), 1e-6)
}

func TestSubtractEdgeCases(t *testing.T) {
	e := NewEngine()
	board := boardSquare()

	t.Run("no copper", func(t *testing.T) {
		got := e.Subtract(board, PolygonSet{})
		if diff := cmp.Diff(board, got); diff != "" {
			t.Errorf("isolation mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("copper covers board", func(t *testing.T) {
		cover := NewPolygonSet(square(-mm, -mm, 12*mm))
		assert.True(t, e.Subtract(board, cover).IsEmpty())
	})

	t.Run("copper is the board", func(t *testing.T) {
		assert.True(t, e.Subtract(board, board).IsEmpty())
	})

	t.Run("two halves make the board", func(t *testing.T) {
		halves := NewPolygonSet(
			Contour{Pt(0, 0), Pt(5*mm, 0), Pt(5*mm, 10*mm), Pt(0, 10*mm)},
			Contour{Pt(5*mm, 0), Pt(10*mm, 0), Pt(10*mm, 10*mm), Pt(5*mm, 10*mm)},
		)
		assert.True(t, e.Subtract(board, halves).IsEmpty())
	})

	t.Run("empty board", func(t *testing.T) {
		assert.True(t, e.Subtract(PolygonSet{}, board).IsEmpty())
	})
}

func TestSubtractIsRepeatable(t *testing.T) {
	e := NewEngine()
	board := boardSquare()
	copper := NewPolygonSet(
		Circle(Pt(3*mm, 3*mm), mm, DefaultMaxError),
		Box(Pt(7*mm, 7*mm), 2*mm, mm, 30),
	)
	before := copper.Clone()

	first := e.Subtract(board, copper)
	second := e.Subtract(board, copper)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated subtraction differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(before, copper); diff != "" {
		t.Errorf("operand mutated (-before +after):\n%s", diff)
	}
}

func TestUnionMergesOverlap(t *testing.T) {
	e := NewEngine()
	a := NewPolygonSet(square(0, 0, 10*mm))
	b := NewPolygonSet(square(5*mm, 5*mm, 10*mm))

	got := e.Union(a, b)
	require.Equal(t, 1, got.OutlineCount())
	assert.Equal(t, 0, got.HoleCount(0))
	assert.InEpsilon(t, 175.0*mm*mm, got.Outline(0).Area(), 1e-9)
}

func TestUnionKeepsDisjointParts(t *testing.T) {
	e := NewEngine()
	a := NewPolygonSet(square(0, 0, mm))
	b := NewPolygonSet(square(5*mm, 0, mm), square(0, 5*mm, mm))

	got := e.Union(a, b)

	require.Equal(t, 3, got.OutlineCount())
	for i := 0; i < got.OutlineCount(); i++ {
		assert.Zero(t, got.HoleCount(i))
		assert.InEpsilon(t, float64(mm)*mm, got.Outline(i).Area(), 1e-9)
	}
}

func TestSubtractSplitsIntoParts(t *testing.T) {
	e := NewEngine()
	// a full-width bar cuts the board in two
	bar := NewPolygonSet(Contour{Pt(-mm, 4*mm), Pt(11*mm, 4*mm), Pt(11*mm, 6*mm), Pt(-mm, 6*mm)})

	got := e.Subtract(boardSquare(), bar)

	require.Equal(t, 2, got.OutlineCount())
	assert.InEpsilon(t, 40.0*mm*mm, got.Outline(0).Area(), 1e-9)
	assert.InEpsilon(t, 40.0*mm*mm, got.Outline(1).Area(), 1e-9)
}

func TestUnionAll(t *testing.T) {
	e := NewEngine()
	var sets []PolygonSet
	for i := int64(0); i < 5; i++ {
		sets = append(sets, NewPolygonSet(square(i*20*mm, 0, 10*mm)))
	}

	got := UnionAll(e, sets)
	assert.Equal(t, 5, got.OutlineCount())
	assert.True(t, UnionAll(e, nil).IsEmpty())
}
