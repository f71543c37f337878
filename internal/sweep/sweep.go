// Package sweep expands a width profile along a skeleton into filled
// outline rings.
//
// This is CPU-side stroke expansion following tiny-skia and kurbo
// patterns, generalized so the stroke radius may differ per side and
// vary along the skeleton. The expansion converts a stroked skeleton
// into fill polygons:
//   - The left offset path goes forward
//   - The right offset path is reversed
//   - Caps connect the endpoints of open skeletons
//   - Joins connect the segments
package sweep

import (
	"github.com/chewxy/math32"

	"github.com/mariocaiti/glifedit/geom"
)

// Widths is the half-stroke profile at one skeleton point. Left and
// Right are measured perpendicular to the travel direction; Tangent
// shifts the sample along it.
type Widths struct {
	Left    float32
	Right   float32
	Tangent float32
}

// Lerp interpolates each component toward o.
func (w Widths) Lerp(o Widths, t float32) Widths {
	return Widths{
		Left:    geom.Lerp(w.Left, o.Left, t),
		Right:   geom.Lerp(w.Right, o.Right, t),
		Tangent: geom.Lerp(w.Tangent, o.Tangent, t),
	}
}

// flip swaps sides for walking the skeleton in reverse.
func (w Widths) flip() Widths {
	return Widths{Left: w.Right, Right: w.Left, Tangent: -w.Tangent}
}

// Interpolation selects how widths blend across one segment.
type Interpolation uint8

const (
	// InterpNone holds the begin widths across the whole segment.
	InterpNone Interpolation = iota
	// InterpLinear blends linearly from begin to end widths.
	InterpLinear
)

// Cap specifies the shape of open skeleton endpoints.
type Cap uint8

const (
	// CapButt cuts the stroke flat at the endpoint.
	CapButt Cap = iota
	// CapRound closes the endpoint with a semicircular arc.
	CapRound
	// CapSquare extends the stroke past the endpoint by its half width.
	CapSquare
)

// Join specifies the shape of segment joins.
type Join uint8

const (
	// JoinBevel connects offset paths directly.
	JoinBevel Join = iota
	// JoinMiter extends offset paths to their intersection.
	JoinMiter
	// JoinRound connects offset paths with an arc.
	JoinRound
)

// Segment pairs one skeleton cubic with its endpoint width profiles.
type Segment struct {
	Cubic  geom.CubicBez
	Begin  Widths
	End    Widths
	Interp Interpolation
}

// widthsAt returns the interpolated profile at parameter t.
func (s Segment) widthsAt(t float32) Widths {
	if s.Interp == InterpLinear {
		return s.Begin.Lerp(s.End, t)
	}
	return s.Begin
}

// Options configure an expansion.
type Options struct {
	StartCap   Cap
	EndCap     Cap
	Join       Join
	MiterLimit float32
	Tolerance  float32
	Closed     bool
}

// Expand sweeps the width profile along the skeleton segments and
// returns the outline rings as closed polygons. Open skeletons yield
// one ring; closed skeletons yield two, the left-side ring first.
// Returns nil when the skeleton has no usable length.
func Expand(segs []Segment, opts Options) [][]geom.Point {
	if opts.Tolerance <= 0 {
		opts.Tolerance = geom.DefaultTolerance
	}
	if opts.MiterLimit <= 0 {
		opts.MiterLimit = 4
	}

	e := &expander{opts: opts}
	for _, seg := range segs {
		e.doSegment(seg)
	}
	if !e.started {
		return nil
	}
	if opts.Closed {
		return e.finishClosed()
	}
	return [][]geom.Point{e.finishOpen()}
}

// expander accumulates the two offset polylines while walking the
// skeleton.
type expander struct {
	opts Options

	forward  []geom.Point
	backward []geom.Point

	started  bool
	startPt  geom.Point
	startTan geom.Vec2
	startW   Widths
	lastPt   geom.Point
	lastTan  geom.Vec2
	lastW    Widths
}

// doSegment flattens one skeleton cubic and extends both offset paths
// chord by chord.
func (e *expander) doSegment(seg Segment) {
	samples := geom.FlattenCubic(seg.Cubic, e.opts.Tolerance)
	for i := 1; i < len(samples); i++ {
		s0, s1 := samples[i-1], samples[i]
		tan := geom.PointToVec2(s1.P.Sub(s0.P))
		if tan.LengthSq() < 1e-12 {
			continue
		}
		unit := tan.Normalize()

		if !e.started {
			w0 := seg.widthsAt(s0.T)
			e.startPt, e.startTan, e.startW = s0.P, unit, w0
			e.emit(w0.apply(s0.P, unit))
			e.started = true
		} else {
			e.doJoin(s0.P, seg.widthsAt(s0.T), unit)
		}

		w1 := seg.widthsAt(s1.T)
		e.emit(w1.apply(s1.P, unit))
		e.lastPt, e.lastTan, e.lastW = s1.P, unit, w1
	}
}

// apply offsets p by the profile relative to the travel direction and
// returns the left and right offset points.
func (w Widths) apply(p geom.Point, unit geom.Vec2) (left, right geom.Point) {
	base := p.Add(unit.Mul(w.Tangent).ToPoint())
	n := unit.Perp()
	left = base.Add(n.Mul(w.Left).ToPoint())
	right = base.Add(n.Mul(-w.Right).ToPoint())
	return left, right
}

// emit appends one point to each offset path.
func (e *expander) emit(left, right geom.Point) {
	e.forward = append(e.forward, left)
	e.backward = append(e.backward, right)
}

// doJoin connects the previous chord to the new travel direction at p.
func (e *expander) doJoin(p geom.Point, w Widths, unit geom.Vec2) {
	cross := e.lastTan.Cross(unit)
	dot := e.lastTan.Dot(unit)

	// Near-straight joins need no treatment; the next chord's endpoints
	// keep the paths continuous enough at the flattening tolerance.
	hypot := math32.Hypot(cross, dot)
	maxW := math32.Max(w.Left, w.Right)
	if maxW > 0 && dot > 0 && math32.Abs(cross) < hypot*2*e.opts.Tolerance/maxW {
		e.emit(w.apply(p, unit))
		return
	}

	switch e.opts.Join {
	case JoinMiter:
		e.addMiter(p, w, unit, cross, dot)
	case JoinRound:
		e.addRoundJoin(p, w, unit, cross, dot)
	}
	// The bevel is implicit: emitting the offsets for the new direction
	// connects them straight across the corner.
	e.emit(w.apply(p, unit))
}

// addMiter extends the outer offset path to the miter point, falling
// back to the implicit bevel past the miter limit.
func (e *expander) addMiter(p geom.Point, w Widths, unit geom.Vec2, cross, dot float32) {
	cosHalf := math32.Sqrt(math32.Max(0, (1+dot)*0.5))
	if cosHalf < 1e-4 || 1/cosHalf > e.opts.MiterLimit {
		return
	}
	bis := e.lastTan.Add(unit).Normalize()
	if bis.IsZero() {
		return
	}

	if cross < 0 {
		// Turning right: the left offsets fan out.
		m := bis.Perp().Mul(w.Left / cosHalf)
		e.forward = append(e.forward, p.Add(m.ToPoint()))
	} else if cross > 0 {
		m := bis.Perp().Neg().Mul(w.Right / cosHalf)
		e.backward = append(e.backward, p.Add(m.ToPoint()))
	}
}

// addRoundJoin arcs the outer offset path around the corner.
func (e *expander) addRoundJoin(p geom.Point, w Widths, unit geom.Vec2, cross, dot float32) {
	angle := math32.Atan2(cross, dot)
	if cross < 0 {
		e.forward = appendArc(e.forward, p, w.Left, w.Left, e.lastTan.Perp(), angle)
	} else if cross > 0 {
		e.backward = appendArc(e.backward, p, w.Right, w.Right, e.lastTan.Perp().Neg(), angle)
	}
}

// finishOpen assembles the single outline ring of an open skeleton.
func (e *expander) finishOpen() []geom.Point {
	ring := make([]geom.Point, 0, len(e.forward)+len(e.backward)+16)
	ring = append(ring, e.forward...)
	ring = appendCap(ring, e.opts.EndCap, e.lastPt, e.lastTan, e.lastW)
	for i := len(e.backward) - 1; i >= 0; i-- {
		ring = append(ring, e.backward[i])
	}
	ring = appendCap(ring, e.opts.StartCap, e.startPt, e.startTan.Neg(), e.startW.flip())
	return ring
}

// finishClosed joins the seam and returns both offset rings.
func (e *expander) finishClosed() [][]geom.Point {
	e.doJoin(e.startPt, e.startW, e.startTan)

	backward := make([]geom.Point, len(e.backward))
	for i, p := range e.backward {
		backward[len(e.backward)-1-i] = p
	}
	return [][]geom.Point{e.forward, backward}
}

// appendCap walks from the left offset of p around the tip to the right
// offset. The tangent points out of the stroke.
func appendCap(ring []geom.Point, c Cap, p geom.Point, tan geom.Vec2, w Widths) []geom.Point {
	base := p.Add(tan.Mul(w.Tangent).ToPoint())
	n := tan.Perp()

	switch c {
	case CapButt:
		// The straight connection to the other side is implicit.

	case CapSquare:
		ext := tan.Mul((w.Left + w.Right) * 0.5)
		left := base.Add(n.Mul(w.Left).ToPoint())
		right := base.Add(n.Mul(-w.Right).ToPoint())
		ring = append(ring, left.Add(ext.ToPoint()), right.Add(ext.ToPoint()))

	case CapRound:
		ring = appendArc(ring, base, w.Left, w.Right, n, -math32.Pi)
	}
	return ring
}

// appendArc samples an arc around center, sweeping from the direction
// dir by sweep radians. The radius blends from r0 to r1 across the
// sweep, which keeps caps watertight when the two sides have different
// widths.
func appendArc(dst []geom.Point, center geom.Point, r0, r1 float32, dir geom.Vec2, sweep float32) []geom.Point {
	steps := int(math32.Ceil(math32.Abs(sweep) / (math32.Pi / 16)))
	if steps < 1 {
		steps = 1
	}
	a0 := dir.Atan2()
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps)
		a := a0 + sweep*t
		r := geom.Lerp(r0, r1, t)
		sin, cos := math32.Sincos(a)
		dst = append(dst, geom.Pt(center.X+r*cos, center.Y+r*sin))
	}
	return dst
}
