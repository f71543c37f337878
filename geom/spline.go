package geom

import (
	"github.com/chewxy/math32"
)

// DefaultTolerance is the curve flattening tolerance in font units.
const DefaultTolerance = 0.1

// maxFlattenDepth bounds recursive subdivision for degenerate curves.
const maxFlattenDepth = 16

// Spline is a connected run of cubic segments, optionally closed.
// Closed splines treat the last segment's endpoint as joined to the
// first segment's start.
type Spline struct {
	Segs   []CubicBez
	Closed bool
}

// IsEmpty returns true if the spline has no segments.
func (s Spline) IsEmpty() bool {
	return len(s.Segs) == 0
}

// Start returns the start point of the spline.
func (s Spline) Start() Point {
	if s.IsEmpty() {
		return Point{}
	}
	return s.Segs[0].P0
}

// End returns the end point of the spline.
func (s Spline) End() Point {
	if s.IsEmpty() {
		return Point{}
	}
	return s.Segs[len(s.Segs)-1].P3
}

// BoundingBox returns the tight bounding box of all segments.
// An empty spline yields the zero rectangle.
func (s Spline) BoundingBox() Rect {
	if s.IsEmpty() {
		return Rect{}
	}
	bbox := s.Segs[0].BoundingBox()
	for _, seg := range s.Segs[1:] {
		bbox = bbox.Union(seg.BoundingBox())
	}
	return bbox
}

// Transform returns the spline with every segment transformed by m.
func (s Spline) Transform(m Matrix) Spline {
	segs := make([]CubicBez, len(s.Segs))
	for i, seg := range s.Segs {
		segs[i] = seg.Transform(m)
	}
	return Spline{Segs: segs, Closed: s.Closed}
}

// Reversed returns the spline traversed in the opposite direction.
func (s Spline) Reversed() Spline {
	segs := make([]CubicBez, len(s.Segs))
	for i, seg := range s.Segs {
		segs[len(s.Segs)-1-i] = seg.Reversed()
	}
	return Spline{Segs: segs, Closed: s.Closed}
}

// Sample is a flattened curve vertex with its source parameter.
type Sample struct {
	T float32
	P Point
}

// FlattenCubic flattens a cubic into line samples including both endpoints.
// Each sample carries the curve parameter it was taken at.
func FlattenCubic(c CubicBez, tol float32) []Sample {
	samples := make([]Sample, 0, 16)
	samples = append(samples, Sample{T: 0, P: c.P0})
	flattenCubicRec(c, 0, 1, tol, 0, &samples)
	return samples
}

// flattenCubicRec recursively subdivides until the control points are
// within tol of the chord.
func flattenCubicRec(c CubicBez, t0, t1, tol float32, depth int, samples *[]Sample) {
	d1 := distanceToLine(c.P1, c.P0, c.P3)
	d2 := distanceToLine(c.P2, c.P0, c.P3)
	if math32.Max(d1, d2) < tol || depth >= maxFlattenDepth {
		*samples = append(*samples, Sample{T: t1, P: c.P3})
		return
	}

	left, right := c.Subdivide()
	tm := (t0 + t1) * 0.5
	flattenCubicRec(left, t0, tm, tol, depth+1, samples)
	flattenCubicRec(right, tm, t1, tol, depth+1, samples)
}

// distanceToLine calculates the perpendicular distance from point p to
// line segment (a, b).
func distanceToLine(p, a, b Point) float32 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-7 {
		return p.Distance(a)
	}

	ap := p.Sub(a)
	t := ap.Dot(ab) / (abLen * abLen)
	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}
	closest := a.Add(ab.Mul(t))
	return p.Distance(closest)
}

// Flatten returns the spline as a polyline including the start point.
func (s Spline) Flatten(tol float32) []Point {
	if s.IsEmpty() {
		return nil
	}
	points := []Point{s.Segs[0].P0}
	for _, seg := range s.Segs {
		samples := FlattenCubic(seg, tol)
		for _, smp := range samples[1:] {
			points = append(points, smp.P)
		}
	}
	return points
}

// measureSample is one flattened vertex with its cumulative arc length.
type measureSample struct {
	dist float32
	seg  int
	t    float32
	p    Point
}

// Measure provides arc-length queries over a spline: total length,
// point and tangent at a distance, and sub-spline extraction. Queries
// interpolate over a flattened approximation computed once up front.
type Measure struct {
	spline  Spline
	samples []measureSample
	total   float32
}

// NewMeasure flattens the spline at the given tolerance and indexes it
// by arc length.
func NewMeasure(s Spline, tol float32) *Measure {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	m := &Measure{spline: s}
	if s.IsEmpty() {
		return m
	}

	dist := float32(0)
	prev := s.Segs[0].P0
	m.samples = append(m.samples, measureSample{dist: 0, seg: 0, t: 0, p: prev})
	for i, seg := range s.Segs {
		samples := FlattenCubic(seg, tol)
		for _, smp := range samples[1:] {
			dist += prev.Distance(smp.P)
			prev = smp.P
			m.samples = append(m.samples, measureSample{dist: dist, seg: i, t: smp.T, p: smp.P})
		}
	}
	m.total = dist
	return m
}

// Length returns the total arc length of the spline.
func (m *Measure) Length() float32 {
	return m.total
}

// At locates the segment index and parameter at the given arc length.
// Distances outside [0, Length] are clamped.
func (m *Measure) At(dist float32) (seg int, t float32) {
	if len(m.samples) == 0 {
		return 0, 0
	}
	if dist <= 0 {
		return m.samples[0].seg, m.samples[0].t
	}
	last := m.samples[len(m.samples)-1]
	if dist >= m.total {
		return last.seg, last.t
	}

	// Binary search for the first sample at or past dist.
	lo, hi := 0, len(m.samples)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if m.samples[mid].dist < dist {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	cur := m.samples[lo]
	if lo == 0 {
		return cur.seg, cur.t
	}
	prev := m.samples[lo-1]

	span := cur.dist - prev.dist
	if span <= 0 {
		return cur.seg, cur.t
	}
	frac := (dist - prev.dist) / span

	// A sample pair can straddle a segment boundary; the left parameter
	// is then 0 in the right sample's segment.
	t0 := prev.t
	if prev.seg != cur.seg {
		t0 = 0
	}
	return cur.seg, Lerp(t0, cur.t, frac)
}

// Point returns the point at the given arc length.
func (m *Measure) Point(dist float32) Point {
	if m.spline.IsEmpty() {
		return Point{}
	}
	seg, t := m.At(dist)
	return m.spline.Segs[seg].Eval(t)
}

// Tangent returns the unit tangent at the given arc length.
func (m *Measure) Tangent(dist float32) Vec2 {
	if m.spline.IsEmpty() {
		return Vec2{}
	}
	seg, t := m.At(dist)
	return m.spline.Segs[seg].Tangent(t).Normalize()
}

// Slice returns the open sub-spline between arc lengths d0 and d1.
// Returns an empty spline when the range is empty.
func (m *Measure) Slice(d0, d1 float32) Spline {
	if m.spline.IsEmpty() || m.total == 0 {
		return Spline{}
	}
	d0 = clamp(d0, 0, m.total)
	d1 = clamp(d1, 0, m.total)
	if d1 <= d0 {
		return Spline{}
	}

	seg0, t0 := m.At(d0)
	seg1, t1 := m.At(d1)

	var segs []CubicBez
	if seg0 == seg1 {
		segs = append(segs, m.spline.Segs[seg0].Subsegment(t0, t1))
	} else {
		if t0 < 1 {
			segs = append(segs, m.spline.Segs[seg0].Subsegment(t0, 1))
		}
		for i := seg0 + 1; i < seg1; i++ {
			segs = append(segs, m.spline.Segs[i])
		}
		if t1 > 0 {
			segs = append(segs, m.spline.Segs[seg1].Subsegment(0, t1))
		}
	}
	return Spline{Segs: segs}
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
