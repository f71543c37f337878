package geom

import (
	"testing"

	"github.com/chewxy/math32"
)

const epsilon = 1e-4

func pointsEqual(p1, p2 Point, eps float32) bool {
	return math32.Abs(p1.X-p2.X) < eps && math32.Abs(p1.Y-p2.Y) < eps
}

// -------------------------------------------------------------------
// Rect Tests
// -------------------------------------------------------------------

func TestRect_NewRect(t *testing.T) {
	tests := []struct {
		name      string
		p1, p2    Point
		expectMin Point
		expectMax Point
	}{
		{
			name: "normal order",
			p1:   Pt(0, 0), p2: Pt(10, 10),
			expectMin: Pt(0, 0), expectMax: Pt(10, 10),
		},
		{
			name: "reversed order",
			p1:   Pt(10, 10), p2: Pt(0, 0),
			expectMin: Pt(0, 0), expectMax: Pt(10, 10),
		},
		{
			name: "mixed",
			p1:   Pt(5, 0), p2: Pt(0, 5),
			expectMin: Pt(0, 0), expectMax: Pt(5, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(tt.p1, tt.p2)
			if !pointsEqual(r.Min, tt.expectMin, epsilon) {
				t.Errorf("Min = %v, want %v", r.Min, tt.expectMin)
			}
			if !pointsEqual(r.Max, tt.expectMax, epsilon) {
				t.Errorf("Max = %v, want %v", r.Max, tt.expectMax)
			}
		})
	}
}

func TestRect_Center(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(10, 6))
	if !pointsEqual(r.Center(), Pt(5, 3), epsilon) {
		t.Errorf("Center() = %v, want (5, 3)", r.Center())
	}
}

func TestRect_Union(t *testing.T) {
	r1 := NewRect(Pt(0, 0), Pt(5, 5))
	r2 := NewRect(Pt(3, 3), Pt(10, 10))
	u := r1.Union(r2)

	if !pointsEqual(u.Min, Pt(0, 0), epsilon) {
		t.Errorf("Union Min = %v, want (0, 0)", u.Min)
	}
	if !pointsEqual(u.Max, Pt(10, 10), epsilon) {
		t.Errorf("Union Max = %v, want (10, 10)", u.Max)
	}
}

func TestRect_UnionPoint(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(5, 5))
	u := r.UnionPoint(Pt(-2, 8))

	if !pointsEqual(u.Min, Pt(-2, 0), epsilon) {
		t.Errorf("Min = %v, want (-2, 0)", u.Min)
	}
	if !pointsEqual(u.Max, Pt(5, 8), epsilon) {
		t.Errorf("Max = %v, want (5, 8)", u.Max)
	}
}

// -------------------------------------------------------------------
// Line Tests
// -------------------------------------------------------------------

func TestLine_Eval(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(10, 10))

	tests := []struct {
		name   string
		t      float32
		expect Point
	}{
		{"t=0", 0, Pt(0, 0)},
		{"t=1", 1, Pt(10, 10)},
		{"t=0.5", 0.5, Pt(5, 5)},
		{"t=0.25", 0.25, Pt(2.5, 2.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Eval(tt.t)
			if !pointsEqual(got, tt.expect, epsilon) {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, got, tt.expect)
			}
		})
	}
}

func TestLine_Length(t *testing.T) {
	l := NewLine(Pt(0, 0), Pt(3, 4))
	if math32.Abs(l.Length()-5) > epsilon {
		t.Errorf("Length() = %v, want 5", l.Length())
	}
}

// -------------------------------------------------------------------
// QuadBez Tests
// -------------------------------------------------------------------

func TestQuadBez_Eval(t *testing.T) {
	q := NewQuadBez(Pt(0, 0), Pt(5, 10), Pt(10, 0))

	tests := []struct {
		name   string
		t      float32
		expect Point
	}{
		{"start", 0, Pt(0, 0)},
		{"end", 1, Pt(10, 0)},
		{"middle", 0.5, Pt(5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.Eval(tt.t)
			if !pointsEqual(got, tt.expect, epsilon) {
				t.Errorf("Eval(%v) = %v, want %v", tt.t, got, tt.expect)
			}
		})
	}
}

func TestQuadBez_Raise(t *testing.T) {
	q := NewQuadBez(Pt(0, 0), Pt(5, 10), Pt(10, 0))
	c := q.Raise()

	// The raised cubic must trace the same curve.
	for _, tv := range []float32{0, 0.25, 0.5, 0.75, 1} {
		qp := q.Eval(tv)
		cp := c.Eval(tv)
		if !pointsEqual(qp, cp, 1e-3) {
			t.Errorf("at t=%v: quad %v, cubic %v", tv, qp, cp)
		}
	}
}

// -------------------------------------------------------------------
// CubicBez Tests
// -------------------------------------------------------------------

func TestCubicBez_Eval(t *testing.T) {
	c := NewCubicBez(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0))

	if !pointsEqual(c.Eval(0), Pt(0, 0), epsilon) {
		t.Errorf("Eval(0) = %v, want (0, 0)", c.Eval(0))
	}
	if !pointsEqual(c.Eval(1), Pt(10, 0), epsilon) {
		t.Errorf("Eval(1) = %v, want (10, 0)", c.Eval(1))
	}
	mid := c.Eval(0.5)
	if !pointsEqual(mid, Pt(5, 7.5), epsilon) {
		t.Errorf("Eval(0.5) = %v, want (5, 7.5)", mid)
	}
}

func TestCubicBez_SubdivideAt(t *testing.T) {
	c := NewCubicBez(Pt(0, 0), Pt(3, 9), Pt(7, 9), Pt(10, 0))

	tests := []struct {
		name string
		t    float32
	}{
		{"quarter", 0.25},
		{"half", 0.5},
		{"deep", 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, right := c.SubdivideAt(tt.t)
			splitPt := c.Eval(tt.t)

			if !pointsEqual(left.P3, splitPt, epsilon) {
				t.Errorf("left end = %v, want %v", left.P3, splitPt)
			}
			if !pointsEqual(right.P0, splitPt, epsilon) {
				t.Errorf("right start = %v, want %v", right.P0, splitPt)
			}
			// Sampled points on the halves must lie on the original curve.
			if !pointsEqual(left.Eval(0.5), c.Eval(tt.t*0.5), 1e-3) {
				t.Errorf("left half diverges from original")
			}
		})
	}
}

func TestCubicBez_Subsegment(t *testing.T) {
	c := NewCubicBez(Pt(0, 0), Pt(3, 9), Pt(7, 9), Pt(10, 0))
	sub := c.Subsegment(0.25, 0.75)

	if !pointsEqual(sub.P0, c.Eval(0.25), 1e-3) {
		t.Errorf("sub start = %v, want %v", sub.P0, c.Eval(0.25))
	}
	if !pointsEqual(sub.P3, c.Eval(0.75), 1e-3) {
		t.Errorf("sub end = %v, want %v", sub.P3, c.Eval(0.75))
	}
	if !pointsEqual(sub.Eval(0.5), c.Eval(0.5), 1e-3) {
		t.Errorf("sub midpoint = %v, want %v", sub.Eval(0.5), c.Eval(0.5))
	}
}

func TestCubicBez_BoundingBox(t *testing.T) {
	// Arch peaking above both endpoints.
	c := NewCubicBez(Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0))
	bbox := c.BoundingBox()

	if math32.Abs(bbox.Min.Y) > epsilon {
		t.Errorf("Min.Y = %v, want 0", bbox.Min.Y)
	}
	if math32.Abs(bbox.Max.Y-7.5) > 1e-3 {
		t.Errorf("Max.Y = %v, want 7.5", bbox.Max.Y)
	}
	if math32.Abs(bbox.Min.X) > epsilon || math32.Abs(bbox.Max.X-10) > epsilon {
		t.Errorf("X range = [%v, %v], want [0, 10]", bbox.Min.X, bbox.Max.X)
	}
}

func TestCubicBez_Reversed(t *testing.T) {
	c := NewCubicBez(Pt(0, 0), Pt(3, 9), Pt(7, 9), Pt(10, 0))
	r := c.Reversed()

	for _, tv := range []float32{0, 0.3, 0.5, 1} {
		if !pointsEqual(r.Eval(tv), c.Eval(1-tv), 1e-3) {
			t.Errorf("reversed at t=%v: %v, want %v", tv, r.Eval(tv), c.Eval(1-tv))
		}
	}
}

func TestCubicBez_Tangent(t *testing.T) {
	// Straight horizontal cubic: tangent must point along +X everywhere.
	c := LineCubic(Pt(0, 0), Pt(10, 0))
	for _, tv := range []float32{0, 0.5, 1} {
		tan := c.Tangent(tv).Normalize()
		if !tan.Approx(V2(1, 0), 1e-3) {
			t.Errorf("Tangent(%v) = %v, want (1, 0)", tv, tan)
		}
	}
}

func TestLineCubic(t *testing.T) {
	c := LineCubic(Pt(0, 0), Pt(9, 3))
	for _, tv := range []float32{0, 0.25, 0.5, 1} {
		want := Pt(9*tv, 3*tv)
		if !pointsEqual(c.Eval(tv), want, 1e-3) {
			t.Errorf("Eval(%v) = %v, want %v", tv, c.Eval(tv), want)
		}
	}
}
