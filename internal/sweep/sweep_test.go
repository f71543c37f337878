package sweep

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/mariocaiti/glifedit/geom"
)

const epsilon = 1e-3

// lineSeg builds a straight skeleton segment with linearly blended
// widths.
func lineSeg(p0, p1 geom.Point, w0, w1 Widths) Segment {
	return Segment{
		Cubic:  geom.LineCubic(p0, p1),
		Begin:  w0,
		End:    w1,
		Interp: InterpLinear,
	}
}

func uniform(w float32) Widths {
	return Widths{Left: w, Right: w}
}

func ringBounds(ring []geom.Point) geom.Rect {
	r := geom.Rect{Min: ring[0], Max: ring[0]}
	for _, p := range ring[1:] {
		r = r.UnionPoint(p)
	}
	return r
}

func ringContains(ring []geom.Point, p geom.Point) bool {
	for _, q := range ring {
		if q.Distance(p) < epsilon {
			return true
		}
	}
	return false
}

func TestExpand_SimpleLine(t *testing.T) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(1), uniform(1)),
	}
	rings := Expand(segs, Options{StartCap: CapButt, EndCap: CapButt, Join: JoinBevel})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	// A butt-capped constant-width line expands to its exact rectangle.
	if len(rings[0]) != 4 {
		t.Errorf("expected 4 ring points, got %d", len(rings[0]))
	}
	b := ringBounds(rings[0])
	want := geom.NewRect(geom.Pt(0, -1), geom.Pt(10, 1))
	if b.Min.Distance(want.Min) > epsilon || b.Max.Distance(want.Max) > epsilon {
		t.Errorf("bounds = %v, want %v", b, want)
	}
}

func TestExpand_VariableWidth(t *testing.T) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(0.5), uniform(2)),
	}
	rings := Expand(segs, Options{Join: JoinBevel})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	if !ringContains(rings[0], geom.Pt(0, 0.5)) {
		t.Error("ring should pass through the narrow begin offset (0, 0.5)")
	}
	if !ringContains(rings[0], geom.Pt(10, 2)) {
		t.Error("ring should pass through the wide end offset (10, 2)")
	}
}

func TestExpand_AsymmetricWidth(t *testing.T) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), Widths{Left: 3, Right: 1}, Widths{Left: 3, Right: 1}),
	}
	rings := Expand(segs, Options{Join: JoinBevel})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	b := ringBounds(rings[0])
	if math32.Abs(b.Max.Y-3) > epsilon {
		t.Errorf("left side should offset to y=3, got %v", b.Max.Y)
	}
	if math32.Abs(b.Min.Y+1) > epsilon {
		t.Errorf("right side should offset to y=-1, got %v", b.Min.Y)
	}
}

func TestExpand_TangentShift(t *testing.T) {
	w := Widths{Left: 1, Right: 1, Tangent: 2}
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), w, w),
	}
	rings := Expand(segs, Options{Join: JoinBevel})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	b := ringBounds(rings[0])
	if math32.Abs(b.Min.X-2) > epsilon || math32.Abs(b.Max.X-12) > epsilon {
		t.Errorf("tangent shift should slide the ring to [2, 12], got [%v, %v]", b.Min.X, b.Max.X)
	}
}

func TestExpand_InterpNone(t *testing.T) {
	seg := lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(1), uniform(5))
	seg.Interp = InterpNone
	rings := Expand([]Segment{seg}, Options{Join: JoinBevel})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	b := ringBounds(rings[0])
	if math32.Abs(b.Max.Y-1) > epsilon {
		t.Errorf("held widths should stay at 1, got max y %v", b.Max.Y)
	}
}

func TestExpand_RoundCap(t *testing.T) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(1), uniform(1)),
	}
	rings := Expand(segs, Options{StartCap: CapRound, EndCap: CapRound, Join: JoinBevel})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	if len(rings[0]) <= 4 {
		t.Errorf("round caps should add arc points, got %d", len(rings[0]))
	}
	// The end cap arc passes through the tip of the stroke.
	if !ringContains(rings[0], geom.Pt(11, 0)) {
		t.Error("end cap should pass through (11, 0)")
	}
	if !ringContains(rings[0], geom.Pt(-1, 0)) {
		t.Error("start cap should pass through (-1, 0)")
	}
}

func TestExpand_SquareCap(t *testing.T) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(1), uniform(1)),
	}
	rings := Expand(segs, Options{StartCap: CapSquare, EndCap: CapSquare, Join: JoinBevel})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	if !ringContains(rings[0], geom.Pt(11, 1)) || !ringContains(rings[0], geom.Pt(11, -1)) {
		t.Error("square end cap should extend to x=11 corners")
	}
	if !ringContains(rings[0], geom.Pt(-1, 1)) || !ringContains(rings[0], geom.Pt(-1, -1)) {
		t.Error("square start cap should extend to x=-1 corners")
	}
}

func TestExpand_MiterJoin(t *testing.T) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(1), uniform(1)),
		lineSeg(geom.Pt(10, 0), geom.Pt(10, 10), uniform(1), uniform(1)),
	}
	rings := Expand(segs, Options{Join: JoinMiter, MiterLimit: 4})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	// A 90 degree left turn miters the outer side to (11, -1).
	if !ringContains(rings[0], geom.Pt(11, -1)) {
		t.Error("miter join should extend the outer side to (11, -1)")
	}
}

func TestExpand_MiterLimit(t *testing.T) {
	// A near-reversal exceeds the limit and falls back to a bevel.
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(1), uniform(1)),
		lineSeg(geom.Pt(10, 0), geom.Pt(0.5, 0.5), uniform(1), uniform(1)),
	}
	rings := Expand(segs, Options{Join: JoinMiter, MiterLimit: 2})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	b := ringBounds(rings[0])
	if b.Max.X > 12 {
		t.Errorf("limited miter should not spike, got max x %v", b.Max.X)
	}
}

func TestExpand_BevelJoin(t *testing.T) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(1), uniform(1)),
		lineSeg(geom.Pt(10, 0), geom.Pt(10, 10), uniform(1), uniform(1)),
	}
	rings := Expand(segs, Options{Join: JoinBevel})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	if ringContains(rings[0], geom.Pt(11, -1)) {
		t.Error("bevel join should not produce the miter point")
	}
	if !ringContains(rings[0], geom.Pt(10, -1)) || !ringContains(rings[0], geom.Pt(11, 0)) {
		t.Error("bevel join should connect the two offset corners directly")
	}
}

func TestExpand_RoundJoin(t *testing.T) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(1), uniform(1)),
		lineSeg(geom.Pt(10, 0), geom.Pt(10, 10), uniform(1), uniform(1)),
	}
	rings := Expand(segs, Options{Join: JoinRound})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	// The join arc passes through the 45 degree sample around (10, 0).
	mid := geom.Pt(10+math32.Sqrt2/2, -math32.Sqrt2/2)
	if !ringContains(rings[0], mid) {
		t.Error("round join should arc through the corner midpoint")
	}
}

func TestExpand_ClosedSkeleton(t *testing.T) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(10, 0), uniform(1), uniform(1)),
		lineSeg(geom.Pt(10, 0), geom.Pt(10, 10), uniform(1), uniform(1)),
		lineSeg(geom.Pt(10, 10), geom.Pt(0, 10), uniform(1), uniform(1)),
		lineSeg(geom.Pt(0, 10), geom.Pt(0, 0), uniform(1), uniform(1)),
	}
	rings := Expand(segs, Options{Join: JoinBevel, Closed: true})

	if len(rings) != 2 {
		t.Fatalf("closed skeleton should produce 2 rings, got %d", len(rings))
	}
	// Counter-clockwise skeleton: the left ring hugs the inside, the
	// right ring the outside.
	inner := ringBounds(rings[0])
	outer := ringBounds(rings[1])
	if outer.Min.X > -1+epsilon || outer.Max.X < 11-epsilon {
		t.Errorf("outer ring bounds = %v, want to reach [-1, 11]", outer)
	}
	if inner.Min.X < -epsilon || inner.Max.X > 10+epsilon {
		t.Errorf("inner ring should stay within the skeleton, got %v", inner)
	}
}

func TestExpand_Empty(t *testing.T) {
	if rings := Expand(nil, Options{}); rings != nil {
		t.Errorf("nil segments should produce nil, got %d rings", len(rings))
	}

	// A zero-length skeleton has no usable chords.
	p := geom.Pt(5, 5)
	segs := []Segment{lineSeg(p, p, uniform(1), uniform(1))}
	if rings := Expand(segs, Options{}); rings != nil {
		t.Errorf("zero-length skeleton should produce nil, got %d rings", len(rings))
	}
}

func TestExpand_CurvedSkeleton(t *testing.T) {
	c := geom.NewCubicBez(geom.Pt(0, 0), geom.Pt(3, 5), geom.Pt(7, 5), geom.Pt(10, 0))
	segs := []Segment{{Cubic: c, Begin: uniform(1), End: uniform(1), Interp: InterpLinear}}
	rings := Expand(segs, Options{Join: JoinRound, Tolerance: 0.05})

	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	if len(rings[0]) < 8 {
		t.Errorf("curved skeleton should flatten to several chords, got %d points", len(rings[0]))
	}
	b := ringBounds(rings[0])
	if b.Max.Y < c.Eval(0.5).Y {
		t.Errorf("ring should clear the curve apex, got max y %v", b.Max.Y)
	}
}

func TestWidths_Lerp(t *testing.T) {
	a := Widths{Left: 1, Right: 2, Tangent: 0}
	b := Widths{Left: 3, Right: 4, Tangent: 2}
	got := a.Lerp(b, 0.5)
	want := Widths{Left: 2, Right: 3, Tangent: 1}
	if got != want {
		t.Errorf("Lerp = %v, want %v", got, want)
	}
}

func BenchmarkExpand_Line(b *testing.B) {
	segs := []Segment{
		lineSeg(geom.Pt(0, 0), geom.Pt(100, 0), uniform(2), uniform(2)),
	}
	opts := Options{StartCap: CapRound, EndCap: CapRound, Join: JoinRound}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Expand(segs, opts)
	}
}

func BenchmarkExpand_Curves(b *testing.B) {
	segs := []Segment{
		{Cubic: geom.NewCubicBez(geom.Pt(0, 50), geom.Pt(25, 0), geom.Pt(75, 100), geom.Pt(100, 50)), Begin: uniform(1), End: uniform(4), Interp: InterpLinear},
		{Cubic: geom.NewCubicBez(geom.Pt(100, 50), geom.Pt(125, 0), geom.Pt(175, 100), geom.Pt(200, 50)), Begin: uniform(4), End: uniform(1), Interp: InterpLinear},
	}
	opts := Options{Join: JoinRound}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Expand(segs, opts)
	}
}
