package glifedit

import (
	"encoding/json"
	"fmt"

	"github.com/mariocaiti/glifedit/geom"
)

// PointType tags a skeleton point with the kind of segment that arrives
// at it. A contour whose first point is TypeMove is open; any other
// first point type makes the contour closed.
type PointType uint8

const (
	// TypeUndefined is the zero value for unset point types.
	TypeUndefined PointType = iota
	// TypeMove marks the start of an open contour.
	TypeMove
	// TypeLine marks a point reached by a straight segment.
	TypeLine
	// TypeCurve marks a point reached by a cubic segment.
	TypeCurve
	// TypeQCurve marks a point reached by a quadratic segment.
	TypeQCurve
	// TypeOffCurve marks a control point in quadratic outlines.
	TypeOffCurve
)

var pointTypeNames = map[PointType]string{
	TypeUndefined: "",
	TypeMove:      "move",
	TypeLine:      "line",
	TypeCurve:     "curve",
	TypeQCurve:    "qcurve",
	TypeOffCurve:  "offcurve",
}

// String returns the serialization name of the point type.
func (pt PointType) String() string {
	if name, ok := pointTypeNames[pt]; ok {
		return name
	}
	return fmt.Sprintf("PointType(%d)", uint8(pt))
}

// MarshalJSON encodes the point type as its name.
func (pt PointType) MarshalJSON() ([]byte, error) {
	name, ok := pointTypeNames[pt]
	if !ok {
		return nil, fmt.Errorf("glifedit: invalid point type %d", uint8(pt))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a point type from its name.
func (pt *PointType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for typ, n := range pointTypeNames {
		if n == name {
			*pt = typ
			return nil
		}
	}
	return fmt.Errorf("glifedit: unknown point type %q", name)
}

// Handle is one control slot of a skeleton point. A colocated handle
// coincides with its parent point and carries no coordinates of its
// own. The zero value is colocated.
type Handle struct {
	X, Y float32
	At   bool
}

// HandleAt returns an explicit handle at (x, y).
func HandleAt(x, y float32) Handle {
	return Handle{X: x, Y: y, At: true}
}

// Colocated returns the colocated handle.
func Colocated() Handle {
	return Handle{}
}

// IsColocated reports whether the handle coincides with its parent point.
func (h Handle) IsColocated() bool {
	return !h.At
}

// Pos returns the handle position, falling back to the parent point
// when colocated.
func (h Handle) Pos(parent geom.Point) geom.Point {
	if !h.At {
		return parent
	}
	return geom.Pt(h.X, h.Y)
}

// Translate returns the handle shifted by (dx, dy). Colocated handles
// follow their parent point and are returned unchanged.
func (h Handle) Translate(dx, dy float32) Handle {
	if !h.At {
		return h
	}
	return Handle{X: h.X + dx, Y: h.Y + dy, At: true}
}

// Transform returns the handle mapped through m. Colocated handles are
// returned unchanged.
func (h Handle) Transform(m geom.Matrix) Handle {
	if !h.At {
		return h
	}
	p := m.TransformPoint(geom.Pt(h.X, h.Y))
	return Handle{X: p.X, Y: p.Y, At: true}
}

type handleJSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// MarshalJSON encodes an explicit handle as its coordinates and a
// colocated handle as null.
func (h Handle) MarshalJSON() ([]byte, error) {
	if !h.At {
		return []byte("null"), nil
	}
	return json.Marshal(handleJSON{X: h.X, Y: h.Y})
}

// UnmarshalJSON decodes null as colocated and an object as explicit
// coordinates.
func (h *Handle) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*h = Handle{}
		return nil
	}
	var hj handleJSON
	if err := json.Unmarshal(data, &hj); err != nil {
		return err
	}
	*h = Handle{X: hj.X, Y: hj.Y, At: true}
	return nil
}

// Point is one skeleton point with its two handle slots. A is the
// outgoing handle toward the next point, B the incoming handle from the
// previous point.
type Point struct {
	X      float32   `json:"x"`
	Y      float32   `json:"y"`
	A      Handle    `json:"a"`
	B      Handle    `json:"b"`
	Type   PointType `json:"type"`
	Name   string    `json:"name,omitempty"`
	Smooth bool      `json:"smooth,omitempty"`
}

// NewPoint returns a point of the given type with both handles colocated.
func NewPoint(x, y float32, typ PointType) Point {
	return Point{X: x, Y: y, Type: typ}
}

// Pos returns the on-curve position of the point.
func (p Point) Pos() geom.Point {
	return geom.Pt(p.X, p.Y)
}

// HandleA returns the outgoing handle position.
func (p Point) HandleA() geom.Point {
	return p.A.Pos(p.Pos())
}

// HandleB returns the incoming handle position.
func (p Point) HandleB() geom.Point {
	return p.B.Pos(p.Pos())
}

// Translate returns the point shifted by (dx, dy) with its explicit
// handles shifted along.
func (p Point) Translate(dx, dy float32) Point {
	p.X += dx
	p.Y += dy
	p.A = p.A.Translate(dx, dy)
	p.B = p.B.Translate(dx, dy)
	return p
}

// Transform returns the point mapped through m with its explicit
// handles mapped along.
func (p Point) Transform(m geom.Matrix) Point {
	pos := m.TransformPoint(p.Pos())
	p.X, p.Y = pos.X, pos.Y
	p.A = p.A.Transform(m)
	p.B = p.B.Transform(m)
	return p
}
