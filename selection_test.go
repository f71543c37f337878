package glifedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionZeroValue(t *testing.T) {
	var s Selection

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(PointRef{}))
	_, ok := s.Live()
	assert.False(t, ok)
	_, ok = s.Selected()
	assert.False(t, ok)
	assert.Empty(t, s.All())
}

func TestSelectionSetMembership(t *testing.T) {
	var s Selection
	ref := PointRef{Contour: 1, Point: 2}

	s.Add(ref)
	assert.True(t, s.Contains(ref))
	assert.True(t, s.PointSelected(ref))
	assert.Equal(t, 1, s.Len())

	s.Add(ref)
	assert.Equal(t, 1, s.Len(), "adding twice must not grow the set")

	s.Remove(ref)
	assert.False(t, s.Contains(ref))
	assert.True(t, s.IsEmpty())
}

func TestSelectionLiveIndependentOfSet(t *testing.T) {
	var s Selection
	live := PointRef{Contour: 0, Point: 3}

	s.SetLive(live)
	assert.False(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len(), "the live point is not a set member")
	assert.False(t, s.Contains(live))
	assert.True(t, s.PointSelected(live))

	got, ok := s.Live()
	require.True(t, ok)
	assert.Equal(t, live, got)

	s.ClearLive()
	assert.True(t, s.IsEmpty())
	assert.False(t, s.PointSelected(live))
}

func TestSelectionSelectedPrefersLive(t *testing.T) {
	var s Selection
	s.Add(PointRef{Contour: 1, Point: 2})
	s.Add(PointRef{Contour: 0, Point: 3})

	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, PointRef{Contour: 0, Point: 3}, got, "lowest (contour, point) wins without a live point")

	s.SetLive(PointRef{Contour: 2, Point: 0})
	got, ok = s.Selected()
	require.True(t, ok)
	assert.Equal(t, PointRef{Contour: 2, Point: 0}, got)
}

func TestSelectionOrderedViews(t *testing.T) {
	var s Selection
	for _, ref := range []PointRef{
		{Contour: 1, Point: 1},
		{Contour: 0, Point: 2},
		{Contour: 1, Point: 0},
		{Contour: 0, Point: 0},
	} {
		s.Add(ref)
	}

	assert.Equal(t, []PointRef{
		{Contour: 0, Point: 0},
		{Contour: 0, Point: 2},
		{Contour: 1, Point: 0},
		{Contour: 1, Point: 1},
	}, s.All())
	assert.Equal(t, []int{0, 2}, s.ContourPoints(0))
	assert.Equal(t, []int{0, 1}, s.ContourPoints(1))
	assert.Empty(t, s.ContourPoints(7))
	assert.Equal(t, []int{0, 1}, s.Contours())
}

func TestSelectionClearVariants(t *testing.T) {
	var s Selection
	s.Add(PointRef{Contour: 0, Point: 1})
	s.SetLive(PointRef{Contour: 0, Point: 2})

	s.ClearSet()
	assert.Equal(t, 0, s.Len())
	_, ok := s.Live()
	assert.True(t, ok, "ClearSet keeps the live point")

	s.Add(PointRef{Contour: 0, Point: 1})
	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestSelectionClone(t *testing.T) {
	var s Selection
	s.Add(PointRef{Contour: 0, Point: 1})
	s.SetLive(PointRef{Contour: 0, Point: 2})

	clone := s.Clone()
	clone.Add(PointRef{Contour: 5, Point: 5})
	clone.ClearLive()

	assert.False(t, s.Contains(PointRef{Contour: 5, Point: 5}), "clone shares the set")
	_, ok := s.Live()
	assert.True(t, ok, "clone shares live state")
}

func TestSelectionBounds(t *testing.T) {
	l := NewLayer("test")
	withHandle := NewPoint(10, 0, TypeCurve)
	withHandle.A = HandleAt(15, 30)
	l.Outline = []Contour{NewContour(NewPoint(0, 0, TypeMove), withHandle)}

	t.Run("handles extend the box", func(t *testing.T) {
		var s Selection
		s.Add(PointRef{Contour: 0, Point: 0})
		s.Add(PointRef{Contour: 0, Point: 1})

		b, ok := s.Bounds(&l)
		require.True(t, ok)
		assert.InDelta(t, 0, float64(b.Min.X), 1e-4)
		assert.InDelta(t, 15, float64(b.Max.X), 1e-4)
		assert.InDelta(t, 30, float64(b.Max.Y), 1e-4)
	})

	t.Run("live point counts", func(t *testing.T) {
		var s Selection
		s.SetLive(PointRef{Contour: 0, Point: 0})

		b, ok := s.Bounds(&l)
		require.True(t, ok)
		assert.Equal(t, float32(0), b.Min.X)
		assert.Equal(t, float32(0), b.Max.X)
	})

	t.Run("dangling references are skipped", func(t *testing.T) {
		var s Selection
		s.Add(PointRef{Contour: 9, Point: 0})
		s.Add(PointRef{Contour: 0, Point: 99})

		_, ok := s.Bounds(&l)
		assert.False(t, ok)
	})

	t.Run("nil layer", func(t *testing.T) {
		var s Selection
		s.Add(PointRef{})
		_, ok := s.Bounds(nil)
		assert.False(t, ok)
	})
}
