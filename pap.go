package glifedit

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mariocaiti/glifedit/geom"
)

// PatternCopies selects how many times the pattern is stamped.
type PatternCopies uint8

const (
	// CopiesSingle stamps the pattern once at the start of the path.
	CopiesSingle PatternCopies = iota
	// CopiesRepeated stamps the pattern as often as it fits.
	CopiesRepeated
)

var patternCopiesNames = map[PatternCopies]string{
	CopiesSingle:   "single",
	CopiesRepeated: "repeated",
}

func (c PatternCopies) String() string {
	if name, ok := patternCopiesNames[c]; ok {
		return name
	}
	return fmt.Sprintf("PatternCopies(%d)", uint8(c))
}

// MarshalJSON encodes the copy mode as its name.
func (c PatternCopies) MarshalJSON() ([]byte, error) {
	name, ok := patternCopiesNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown pattern copies %d", uint8(c))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a copy mode from its name.
func (c *PatternCopies) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for mode, n := range patternCopiesNames {
		if n == name {
			*c = mode
			return nil
		}
	}
	return fmt.Errorf("unknown pattern copies %q", name)
}

// PatternAlongPath stamps a pattern outline repeatedly along the
// skeleton. The pattern's x axis is bent along the path by arc length
// and its y axis rides the path normal, so stamps follow curvature.
// Parameters carry no per-point state, so skeleton point edits need no
// remapping.
type PatternAlongPath struct {
	Pattern       []Contour     `json:"pattern"`
	Copies        PatternCopies `json:"copies"`
	Spacing       float32       `json:"spacing"`
	ScaleX        float32       `json:"scale_x,omitempty"`
	ScaleY        float32       `json:"scale_y,omitempty"`
	NormalOffset  float32       `json:"normal_offset,omitempty"`
	TangentOffset float32       `json:"tangent_offset,omitempty"`
	Stretch       bool          `json:"stretch,omitempty"`
	Center        bool          `json:"center_pattern,omitempty"`
	Reverse       bool          `json:"reverse_path,omitempty"`
	Simplify      bool          `json:"simplify,omitempty"`
}

// Kind implements Operation.
func (p *PatternAlongPath) Kind() OpKind { return OpPatternAlongPath }

// Build implements Operation. Every stamp becomes an independent output
// contour; stamps are never merged.
func (p *PatternAlongPath) Build(c *Contour) []Contour {
	if c.Len() == 0 || len(p.Pattern) == 0 {
		return []Contour{}
	}
	bounds, ok := outlineBounds(p.Pattern)
	if !ok || bounds.Width() <= 0 {
		Logger().Warn("pattern along path has a degenerate pattern",
			slog.Int("contours", len(p.Pattern)))
		return []Contour{}
	}

	spline := c.Spline()
	if p.Reverse {
		spline = spline.Reversed()
	}
	m := geom.NewMeasure(spline, geom.DefaultTolerance)
	total := m.Length()
	if total <= 0 {
		return []Contour{}
	}

	sx, sy := p.ScaleX, p.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	width := bounds.Width() * sx
	advance := width + p.Spacing
	if advance <= 0 {
		Logger().Warn("pattern along path advance is not positive",
			slog.Float64("advance", float64(advance)))
		return []Contour{}
	}

	copies := 1
	if p.Copies == CopiesRepeated {
		copies = int(total / advance)
		if copies < 1 {
			return []Contour{}
		}
	}
	if p.Stretch {
		// Rescale so the stamped run covers the path exactly.
		target := total - float32(copies-1)*p.Spacing
		if run := float32(copies) * width; run > 0 && target > 0 {
			sx *= target / run
			width = bounds.Width() * sx
			advance = width + p.Spacing
		}
	}

	start := float32(0)
	if p.Center {
		start = (total - (float32(copies)*advance - p.Spacing)) / 2
	}
	centerY := bounds.Center().Y

	out := make([]Contour, 0, copies*len(p.Pattern))
	for k := 0; k < copies; k++ {
		origin := start + float32(k)*advance + p.TangentOffset
		for _, pat := range p.Pattern {
			stamped := p.stampContour(pat, m, origin, bounds.Min.X, centerY, sx, sy)
			if p.Simplify {
				stamped = mergeCollinear(stamped)
			}
			if stamped.Len() > 0 {
				out = append(out, stamped)
			}
		}
	}
	return out
}

// stampContour warps one pattern contour onto the path. Both point
// positions and explicit handle positions go through the same warp so
// curves bend with the path.
func (p *PatternAlongPath) stampContour(pat Contour, m *geom.Measure, origin, minX, centerY, sx, sy float32) Contour {
	warp := func(x, y float32) geom.Point {
		d := origin + (x-minX)*sx
		ny := (y-centerY)*sy + p.NormalOffset
		base := m.Point(d)
		n := m.Tangent(d).Perp()
		return base.Add(n.Mul(ny).ToPoint())
	}

	points := make([]Point, pat.Len())
	for i, pt := range pat.Points {
		pos := warp(pt.X, pt.Y)
		warped := Point{X: pos.X, Y: pos.Y, Type: pt.Type, Name: pt.Name, Smooth: pt.Smooth}
		if pt.A.At {
			h := warp(pt.A.X, pt.A.Y)
			warped.A = HandleAt(h.X, h.Y)
		}
		if pt.B.At {
			h := warp(pt.B.X, pt.B.Y)
			warped.B = HandleAt(h.X, h.Y)
		}
		points[i] = warped
	}
	return Contour{Points: points}
}

// mergeCollinear drops interior line points that sit on the straight
// line between their neighbors. Curve points and points with explicit
// handles are kept.
func mergeCollinear(c Contour) Contour {
	if c.Len() < 3 {
		return c
	}
	// Perpendicular distance bound so the test is scale free.
	const collinearEps = 1e-2

	removable := func(prev, cur, next Point) bool {
		if cur.Type != TypeLine || cur.A.At || cur.B.At {
			return false
		}
		a, b, p := prev.Pos(), next.Pos(), cur.Pos()
		ab := b.Sub(a)
		abLen := ab.Length()
		if abLen == 0 {
			return true
		}
		ap := p.Sub(a)
		cross := ab.X*ap.Y - ab.Y*ap.X
		dist := cross / abLen
		return dist < collinearEps && dist > -collinearEps
	}

	kept := make([]Point, 0, c.Len())
	n := c.Len()
	for i, cur := range c.Points {
		if c.IsClosed() || (i > 0 && i < n-1) {
			prev := c.Points[(i-1+n)%n]
			next := c.Points[(i+1)%n]
			if removable(prev, cur, next) {
				continue
			}
		}
		kept = append(kept, cur)
	}
	if len(kept) < 2 {
		return c
	}
	return Contour{Points: kept, Op: c.Op}
}

// Sub implements Operation. Pattern parameters carry no per-point
// state, so a skeleton cut needs no remapping.
func (p *PatternAlongPath) Sub(c *Contour, begin, end int) {}

// Append implements Operation. No per-point state to merge.
func (p *PatternAlongPath) Append(appended *Contour) {}

// Insert implements Operation. No per-point state to grow.
func (p *PatternAlongPath) Insert(c *Contour, idx int) {}

// Clone implements Operation.
func (p *PatternAlongPath) Clone() Operation {
	out := *p
	out.Pattern = make([]Contour, len(p.Pattern))
	for i := range p.Pattern {
		out.Pattern[i] = p.Pattern[i].Clone()
	}
	return &out
}
