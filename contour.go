package glifedit

import (
	"encoding/json"

	"github.com/mariocaiti/glifedit/geom"
)

// Contour is an ordered run of skeleton points with an optional
// attached operation. Whether the contour is open or closed is emergent
// from its point types: a contour starting with TypeMove is open.
//
// The segment between consecutive points p and q is a straight line
// when p.A and q.B are both colocated, and a cubic with controls p.A
// and q.B otherwise. Closed contours also have the wrap segment from
// the last point back to the first.
type Contour struct {
	Points []Point
	Op     Operation
}

// NewContour returns a contour over the given points with no operation.
func NewContour(points ...Point) Contour {
	return Contour{Points: points}
}

// Len returns the number of points.
func (c *Contour) Len() int {
	return len(c.Points)
}

// IsOpen reports whether the contour is open. Empty contours count as
// open.
func (c *Contour) IsOpen() bool {
	if len(c.Points) == 0 {
		return true
	}
	return c.Points[0].Type == TypeMove
}

// IsClosed reports whether the contour is closed.
func (c *Contour) IsClosed() bool {
	return !c.IsOpen()
}

// First returns the first point. Panics on empty contours.
func (c *Contour) First() Point {
	return c.Points[0]
}

// Last returns the last point. Panics on empty contours.
func (c *Contour) Last() Point {
	return c.Points[len(c.Points)-1]
}

// Clone returns an independent deep copy of the contour.
func (c *Contour) Clone() Contour {
	points := make([]Point, len(c.Points))
	copy(points, c.Points)
	var op Operation
	if c.Op != nil {
		op = c.Op.Clone()
	}
	return Contour{Points: points, Op: op}
}

// Translate shifts every point and explicit handle by (dx, dy).
func (c *Contour) Translate(dx, dy float32) {
	for i := range c.Points {
		c.Points[i] = c.Points[i].Translate(dx, dy)
	}
}

// Transform maps every point and explicit handle through m.
func (c *Contour) Transform(m geom.Matrix) {
	for i := range c.Points {
		c.Points[i] = c.Points[i].Transform(m)
	}
}

// Bounds returns the control-point bounding box: every on-curve point
// and every explicit handle. Returns ok=false for empty contours.
func (c *Contour) Bounds() (geom.Rect, bool) {
	if len(c.Points) == 0 {
		return geom.Rect{}, false
	}
	first := c.Points[0].Pos()
	bbox := geom.NewRect(first, first)
	for _, p := range c.Points {
		bbox = bbox.UnionPoint(p.Pos())
		if !p.A.IsColocated() {
			bbox = bbox.UnionPoint(geom.Pt(p.A.X, p.A.Y))
		}
		if !p.B.IsColocated() {
			bbox = bbox.UnionPoint(geom.Pt(p.B.X, p.B.Y))
		}
	}
	return bbox, true
}

// Reverse flips the traversal direction in place: point order reverses,
// each point's handles swap roles, and point types rotate so every
// point carries the type of its new incoming segment. Reversing twice
// restores the contour exactly.
func (c *Contour) Reverse() {
	n := len(c.Points)
	if n == 0 {
		return
	}
	open := c.IsOpen()

	types := make([]PointType, n)
	for i, p := range c.Points {
		types[i] = p.Type
	}

	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		c.Points[i], c.Points[j] = c.Points[j], c.Points[i]
	}
	for i := range c.Points {
		c.Points[i].A, c.Points[i].B = c.Points[i].B, c.Points[i].A
	}

	// The segment arriving at a point in the reversed direction is the
	// segment that left it before, whose type its old successor held.
	for i := range c.Points {
		orig := n - 1 - i
		if open {
			if i == 0 {
				c.Points[i].Type = TypeMove
			} else {
				c.Points[i].Type = types[orig+1]
			}
		} else {
			c.Points[i].Type = types[(orig+1)%n]
		}
	}
}

// Spline converts the skeleton to its piecewise cubic form. Open
// contours yield one segment per point pair; closed contours add the
// wrap segment.
func (c *Contour) Spline() geom.Spline {
	n := len(c.Points)
	if n < 2 {
		if n == 1 && c.IsClosed() {
			// A single closed point degenerates to a zero-length segment.
			p := c.Points[0].Pos()
			return geom.Spline{Segs: []geom.CubicBez{geom.LineCubic(p, p)}, Closed: true}
		}
		return geom.Spline{}
	}

	closed := c.IsClosed()
	count := n - 1
	if closed {
		count = n
	}
	segs := make([]geom.CubicBez, 0, count)
	for i := 0; i < count; i++ {
		p := c.Points[i]
		q := c.Points[(i+1)%n]
		segs = append(segs, segmentCubic(p, q))
	}
	return geom.Spline{Segs: segs, Closed: closed}
}

// segmentCubic returns the cubic form of the segment from p to q.
func segmentCubic(p, q Point) geom.CubicBez {
	if p.A.IsColocated() && q.B.IsColocated() {
		return geom.LineCubic(p.Pos(), q.Pos())
	}
	return geom.NewCubicBez(p.Pos(), p.HandleA(), q.HandleB(), q.Pos())
}

// outlineBounds unions the control bounds of every contour: point
// positions plus non-colocated handle positions.
func outlineBounds(outline []Contour) (geom.Rect, bool) {
	var bounds geom.Rect
	found := false
	for i := range outline {
		b, ok := outline[i].Bounds()
		if !ok {
			continue
		}
		if !found {
			bounds, found = b, true
			continue
		}
		bounds = bounds.Union(b)
	}
	return bounds, found
}

// contourFromSpline converts a piecewise cubic back to the point model.
// Cubics whose controls sit at the chord thirds come back as lines with
// colocated handles. Only open splines occur here; the first point is
// typed Move.
func contourFromSpline(s geom.Spline) Contour {
	if s.IsEmpty() {
		return Contour{}
	}
	const thirdEps = 1e-3

	isChordThirds := func(c geom.CubicBez) bool {
		t1 := c.P0.Lerp(c.P3, 1.0/3.0)
		t2 := c.P0.Lerp(c.P3, 2.0/3.0)
		return c.P1.Distance(t1) < thirdEps && c.P2.Distance(t2) < thirdEps
	}

	points := make([]Point, 0, len(s.Segs)+1)
	points = append(points, NewPoint(s.Segs[0].P0.X, s.Segs[0].P0.Y, TypeMove))
	for _, seg := range s.Segs {
		if isChordThirds(seg) {
			points = append(points, NewPoint(seg.P3.X, seg.P3.Y, TypeLine))
			continue
		}
		prev := &points[len(points)-1]
		prev.A = HandleAt(seg.P1.X, seg.P1.Y)
		p := NewPoint(seg.P3.X, seg.P3.Y, TypeCurve)
		p.B = HandleAt(seg.P2.X, seg.P2.Y)
		points = append(points, p)
	}
	return Contour{Points: points}
}

// contourJSON is the serialized form of a contour.
type contourJSON struct {
	Points    []Point         `json:"points"`
	Operation json.RawMessage `json:"operation,omitempty"`
}

// MarshalJSON encodes the contour with its operation behind a kind tag.
func (c Contour) MarshalJSON() ([]byte, error) {
	op, err := marshalOperation(c.Op)
	if err != nil {
		return nil, err
	}
	points := c.Points
	if points == nil {
		points = []Point{}
	}
	return json.Marshal(contourJSON{Points: points, Operation: op})
}

// UnmarshalJSON decodes the contour, resolving the operation kind tag.
func (c *Contour) UnmarshalJSON(data []byte) error {
	var cj contourJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}
	op, err := unmarshalOperation(cj.Operation)
	if err != nil {
		return err
	}
	c.Points = cj.Points
	c.Op = op
	return nil
}
