package glifedit

import (
	"sort"

	"github.com/mariocaiti/glifedit/geom"
)

// PointRef identifies one skeleton point by contour index and point
// index within the active layer.
type PointRef struct {
	Contour int `json:"contour"`
	Point   int `json:"point"`
}

func refLess(a, b PointRef) bool {
	if a.Contour != b.Contour {
		return a.Contour < b.Contour
	}
	return a.Point < b.Point
}

// Selection tracks the set of selected points plus the live point, the
// one under active manipulation. The live point is independent of the
// set; either may be absent. The zero value is an empty selection.
type Selection struct {
	set     map[PointRef]struct{}
	live    PointRef
	hasLive bool
}

// Len returns the size of the selected set, not counting the live
// point.
func (s *Selection) Len() int { return len(s.set) }

// IsEmpty reports whether neither a set member nor a live point exists.
func (s *Selection) IsEmpty() bool { return len(s.set) == 0 && !s.hasLive }

// Add puts a point into the selected set.
func (s *Selection) Add(ref PointRef) {
	if s.set == nil {
		s.set = make(map[PointRef]struct{})
	}
	s.set[ref] = struct{}{}
}

// Remove takes a point out of the selected set.
func (s *Selection) Remove(ref PointRef) {
	delete(s.set, ref)
}

// Contains reports set membership, ignoring the live point.
func (s *Selection) Contains(ref PointRef) bool {
	_, ok := s.set[ref]
	return ok
}

// PointSelected reports whether the point is the live point or a set
// member.
func (s *Selection) PointSelected(ref PointRef) bool {
	if s.hasLive && s.live == ref {
		return true
	}
	return s.Contains(ref)
}

// SetLive marks the point under active manipulation.
func (s *Selection) SetLive(ref PointRef) {
	s.live = ref
	s.hasLive = true
}

// ClearLive drops the live point, leaving the set untouched.
func (s *Selection) ClearLive() {
	s.live = PointRef{}
	s.hasLive = false
}

// Live returns the live point if one exists.
func (s *Selection) Live() (PointRef, bool) {
	return s.live, s.hasLive
}

// Selected returns the primary selected point: the live point when
// present, otherwise the lowest set member by (contour, point) order.
func (s *Selection) Selected() (PointRef, bool) {
	if s.hasLive {
		return s.live, true
	}
	first := PointRef{}
	found := false
	for ref := range s.set {
		if !found || refLess(ref, first) {
			first, found = ref, true
		}
	}
	return first, found
}

// Clear empties the set and drops the live point.
func (s *Selection) Clear() {
	s.set = nil
	s.ClearLive()
}

// ClearSet empties the set, keeping the live point.
func (s *Selection) ClearSet() {
	s.set = nil
}

// All returns every set member in (contour, point) order. The live
// point is not part of the set.
func (s *Selection) All() []PointRef {
	refs := make([]PointRef, 0, len(s.set))
	for ref := range s.set {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refLess(refs[i], refs[j]) })
	return refs
}

// ContourPoints returns the selected point indices of one contour in
// ascending order.
func (s *Selection) ContourPoints(ci int) []int {
	var idxs []int
	for ref := range s.set {
		if ref.Contour == ci {
			idxs = append(idxs, ref.Point)
		}
	}
	sort.Ints(idxs)
	return idxs
}

// Contours returns the indices of every contour with at least one set
// member, ascending.
func (s *Selection) Contours() []int {
	seen := make(map[int]struct{})
	for ref := range s.set {
		seen[ref.Contour] = struct{}{}
	}
	idxs := make([]int, 0, len(seen))
	for ci := range seen {
		idxs = append(idxs, ci)
	}
	sort.Ints(idxs)
	return idxs
}

// Clone deep-copies the selection.
func (s *Selection) Clone() Selection {
	out := Selection{live: s.live, hasLive: s.hasLive}
	if len(s.set) > 0 {
		out.set = make(map[PointRef]struct{}, len(s.set))
		for ref := range s.set {
			out.set[ref] = struct{}{}
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the selection within
// the layer: every selected point's position plus, for each handle not
// colocated with its point, the handle position. Used as the default
// rotation pivot. Returns false when nothing valid is selected.
func (s *Selection) Bounds(l *Layer) (geom.Rect, bool) {
	var bounds geom.Rect
	found := false

	include := func(p geom.Point) {
		if !found {
			bounds = geom.Rect{Min: p, Max: p}
			found = true
			return
		}
		bounds = bounds.UnionPoint(p)
	}

	visit := func(ref PointRef) {
		if l == nil || ref.Contour < 0 || ref.Contour >= len(l.Outline) {
			return
		}
		c := &l.Outline[ref.Contour]
		if ref.Point < 0 || ref.Point >= c.Len() {
			return
		}
		p := c.Points[ref.Point]
		include(p.Pos())
		if p.A.At {
			include(p.A.Pos(p.Pos()))
		}
		if p.B.At {
			include(p.B.Pos(p.Pos()))
		}
	}

	for ref := range s.set {
		visit(ref)
	}
	if s.hasLive {
		visit(s.live)
	}
	return bounds, found
}
