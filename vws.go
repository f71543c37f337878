package glifedit

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mariocaiti/glifedit/geom"
	"github.com/mariocaiti/glifedit/internal/sweep"
)

// CapKind specifies how an open stroke endpoint is closed.
type CapKind uint8

const (
	// CapButt cuts the stroke flat at the endpoint.
	CapButt CapKind = iota
	// CapRound closes the endpoint with a semicircular arc.
	CapRound
	// CapSquare extends the stroke past the endpoint by its half width.
	CapSquare
)

var capKindNames = map[CapKind]string{
	CapButt:   "butt",
	CapRound:  "round",
	CapSquare: "square",
}

func (k CapKind) String() string {
	if name, ok := capKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CapKind(%d)", uint8(k))
}

// MarshalJSON encodes the cap kind as its name.
func (k CapKind) MarshalJSON() ([]byte, error) {
	name, ok := capKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown cap kind %d", uint8(k))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a cap kind from its name.
func (k *CapKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range capKindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown cap kind %q", name)
}

// JoinKind specifies how adjacent stroke segments connect.
type JoinKind uint8

const (
	// JoinBevel connects offset edges directly.
	JoinBevel JoinKind = iota
	// JoinMiter extends offset edges to their intersection.
	JoinMiter
	// JoinRound connects offset edges with an arc.
	JoinRound
)

var joinKindNames = map[JoinKind]string{
	JoinBevel: "bevel",
	JoinMiter: "miter",
	JoinRound: "round",
}

func (k JoinKind) String() string {
	if name, ok := joinKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("JoinKind(%d)", uint8(k))
}

// MarshalJSON encodes the join kind as its name.
func (k JoinKind) MarshalJSON() ([]byte, error) {
	name, ok := joinKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown join kind %d", uint8(k))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a join kind from its name.
func (k *JoinKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range joinKindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown join kind %q", name)
}

// InterpolationKind selects how a width handle blends toward the next
// one along the skeleton.
type InterpolationKind uint8

const (
	// InterpolationNone holds the handle's widths until the next point.
	InterpolationNone InterpolationKind = iota
	// InterpolationLinear blends widths linearly to the next handle.
	InterpolationLinear
)

var interpolationKindNames = map[InterpolationKind]string{
	InterpolationNone:   "none",
	InterpolationLinear: "linear",
}

func (k InterpolationKind) String() string {
	if name, ok := interpolationKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("InterpolationKind(%d)", uint8(k))
}

// MarshalJSON encodes the interpolation kind as its name.
func (k InterpolationKind) MarshalJSON() ([]byte, error) {
	name, ok := interpolationKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown interpolation kind %d", uint8(k))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes an interpolation kind from its name.
func (k *InterpolationKind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for kind, n := range interpolationKindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown interpolation kind %q", name)
}

// WidthHandle is the stroke profile at one skeleton point: half widths
// on each side of the travel direction, a shift along it, and how the
// profile blends toward the next point.
type WidthHandle struct {
	Left          float32           `json:"left_offset"`
	Right         float32           `json:"right_offset"`
	Tangent       float32           `json:"tangent_offset"`
	Interpolation InterpolationKind `json:"interpolation"`
}

// DefaultWidthHandle returns the profile applied where no handle has
// been configured yet.
func DefaultWidthHandle() WidthHandle {
	return WidthHandle{Left: 10, Right: 10, Interpolation: InterpolationLinear}
}

// lerpHandle blends every component of two handles.
func lerpHandle(a, b WidthHandle, t float32) WidthHandle {
	return WidthHandle{
		Left:          geom.Lerp(a.Left, b.Left, t),
		Right:         geom.Lerp(a.Right, b.Right, t),
		Tangent:       geom.Lerp(a.Tangent, b.Tangent, t),
		Interpolation: a.Interpolation,
	}
}

// VariableWidthStroke expands the skeleton into a stroke whose width is
// controlled per point. Handles carries one profile per skeleton point
// and is remapped alongside point-level edits.
type VariableWidthStroke struct {
	Handles        []WidthHandle `json:"handles"`
	StartCap       CapKind       `json:"cap_start"`
	EndCap         CapKind       `json:"cap_end"`
	Join           JoinKind      `json:"join"`
	RemoveInternal bool          `json:"remove_internal,omitempty"`
	RemoveExternal bool          `json:"remove_external,omitempty"`
}

// Kind implements Operation.
func (v *VariableWidthStroke) Kind() OpKind { return OpVariableWidthStroke }

// handleAt returns the profile for point i, padding with the last
// configured handle when the list runs short.
func (v *VariableWidthStroke) handleAt(i int) WidthHandle {
	if i < len(v.Handles) {
		return v.Handles[i]
	}
	if len(v.Handles) > 0 {
		return v.Handles[len(v.Handles)-1]
	}
	return DefaultWidthHandle()
}

func (h WidthHandle) widths() sweep.Widths {
	return sweep.Widths{Left: h.Left, Right: h.Right, Tangent: h.Tangent}
}

// Build implements Operation. The skeleton is swept into one closed
// outline contour when open, or an outer and an inner ring when closed.
func (v *VariableWidthStroke) Build(c *Contour) []Contour {
	if c.Len() == 0 {
		return []Contour{}
	}
	if len(v.Handles) == 0 {
		Logger().Warn("variable width stroke has no width handles",
			slog.Int("points", c.Len()))
		return []Contour{}
	}
	if len(v.Handles) < c.Len() {
		Logger().Warn("variable width stroke handle count lags skeleton",
			slog.Int("handles", len(v.Handles)),
			slog.Int("points", c.Len()))
	}

	spline := c.Spline()
	segs := make([]sweep.Segment, 0, len(spline.Segs))
	for i, cubic := range spline.Segs {
		begin := v.handleAt(i)
		end := v.handleAt((i + 1) % c.Len())
		interp := sweep.InterpNone
		if begin.Interpolation == InterpolationLinear {
			interp = sweep.InterpLinear
		}
		segs = append(segs, sweep.Segment{
			Cubic:  cubic,
			Begin:  begin.widths(),
			End:    end.widths(),
			Interp: interp,
		})
	}

	rings := sweep.Expand(segs, sweep.Options{
		StartCap:   sweepCap(v.StartCap),
		EndCap:     sweepCap(v.EndCap),
		Join:       sweepJoin(v.Join),
		MiterLimit: 4,
		Closed:     c.IsClosed(),
	})
	if len(rings) == 0 {
		return []Contour{}
	}
	if len(rings) == 2 && (v.RemoveInternal || v.RemoveExternal) {
		rings = v.suppressRings(rings)
	}

	out := make([]Contour, 0, len(rings))
	for _, ring := range rings {
		out = append(out, ringContour(ring))
	}
	return out
}

// suppressRings drops the inner or outer ring of a closed stroke. The
// outer ring is identified by area so skeleton orientation does not
// matter.
func (v *VariableWidthStroke) suppressRings(rings [][]geom.Point) [][]geom.Point {
	outer, inner := 0, 1
	if ringArea(rings[1]) > ringArea(rings[0]) {
		outer, inner = 1, 0
	}
	switch {
	case v.RemoveInternal && v.RemoveExternal:
		return nil
	case v.RemoveInternal:
		return rings[outer : outer+1]
	default:
		return rings[inner : inner+1]
	}
}

// ringArea returns the absolute area enclosed by a polygon ring.
func ringArea(ring []geom.Point) float32 {
	var sum float32
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// ringContour wraps an expanded polygon ring as a closed line contour.
func ringContour(ring []geom.Point) Contour {
	points := make([]Point, len(ring))
	for i, p := range ring {
		points[i] = NewPoint(p.X, p.Y, TypeLine)
	}
	return Contour{Points: points}
}

func sweepCap(k CapKind) sweep.Cap {
	switch k {
	case CapRound:
		return sweep.CapRound
	case CapSquare:
		return sweep.CapSquare
	default:
		return sweep.CapButt
	}
}

func sweepJoin(k JoinKind) sweep.Join {
	switch k {
	case JoinMiter:
		return sweep.JoinMiter
	case JoinRound:
		return sweep.JoinRound
	default:
		return sweep.JoinBevel
	}
}

// Sub implements Operation. The handle list is cut to the surviving
// point range.
func (v *VariableWidthStroke) Sub(c *Contour, begin, end int) {
	if begin < 0 {
		begin = 0
	}
	if end > len(v.Handles) {
		end = len(v.Handles)
	}
	if begin >= end {
		v.Handles = nil
		return
	}
	kept := make([]WidthHandle, end-begin)
	copy(kept, v.Handles[begin:end])
	v.Handles = kept
}

// Append implements Operation. The donor fragment's handles join the
// list; a donor without width handles contributes copies of the
// receiver's last handle, one per appended point.
func (v *VariableWidthStroke) Append(appended *Contour) {
	if appended == nil || appended.Len() == 0 {
		return
	}
	if donor, ok := appended.Op.(*VariableWidthStroke); ok && len(donor.Handles) > 0 {
		v.Handles = append(v.Handles, donor.Handles...)
		return
	}
	pad := v.handleAt(len(v.Handles) - 1)
	for i := 0; i < appended.Len(); i++ {
		v.Handles = append(v.Handles, pad)
	}
}

// Insert implements Operation. The new point's handle is the midpoint
// blend of its neighbors, clamped at the contour ends.
func (v *VariableWidthStroke) Insert(c *Contour, idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(v.Handles) {
		idx = len(v.Handles)
	}
	var h WidthHandle
	switch {
	case len(v.Handles) == 0:
		h = DefaultWidthHandle()
	case idx == 0:
		h = v.Handles[0]
	case idx == len(v.Handles):
		h = v.Handles[len(v.Handles)-1]
	default:
		h = lerpHandle(v.Handles[idx-1], v.Handles[idx], 0.5)
	}
	v.Handles = append(v.Handles, WidthHandle{})
	copy(v.Handles[idx+1:], v.Handles[idx:])
	v.Handles[idx] = h
}

// Clone implements Operation.
func (v *VariableWidthStroke) Clone() Operation {
	out := *v
	out.Handles = make([]WidthHandle, len(v.Handles))
	copy(out.Handles, v.Handles)
	return &out
}
