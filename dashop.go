package glifedit

import (
	"log/slog"

	"github.com/mariocaiti/glifedit/geom"
	"github.com/mariocaiti/glifedit/internal/sweep"
)

// DashAlongPath cuts the skeleton into dashes by arc length. Desc holds
// alternating dash and gap lengths, cycled along the path starting at
// Phase. Each dash is emitted as an open sub-contour, or stroked at
// StrokeWidth when that is positive. Parameters carry no per-point
// state, so skeleton point edits need no remapping.
type DashAlongPath struct {
	Desc        []float32 `json:"dash_desc"`
	Phase       float32   `json:"phase,omitempty"`
	StrokeWidth float32   `json:"stroke_width,omitempty"`
	Cap         CapKind   `json:"paint_cap"`
	Join        JoinKind  `json:"paint_join"`
	CullWidth   float32   `json:"cull_width,omitempty"`
}

// Kind implements Operation.
func (d *DashAlongPath) Kind() OpKind { return OpDashAlongPath }

// descTotal returns the length of one dash/gap cycle, or 0 when the
// description cannot advance.
func (d *DashAlongPath) descTotal() float32 {
	var sum float32
	for _, l := range d.Desc {
		if l < 0 {
			return 0
		}
		sum += l
	}
	return sum
}

// Build implements Operation.
func (d *DashAlongPath) Build(c *Contour) []Contour {
	if c.Len() == 0 {
		return []Contour{}
	}
	if len(d.Desc) == 0 || d.descTotal() <= 0 {
		Logger().Warn("dash along path has an empty dash description",
			slog.Int("entries", len(d.Desc)))
		return []Contour{}
	}

	m := geom.NewMeasure(c.Spline(), geom.DefaultTolerance)
	total := m.Length()
	if total <= 0 {
		return []Contour{}
	}

	out := []Contour{}
	pos := -d.Phase
	for i := 0; pos < total; i++ {
		length := d.Desc[i%len(d.Desc)]
		if i%2 == 0 {
			d0 := pos
			if d0 < 0 {
				d0 = 0
			}
			d1 := pos + length
			if d1 > total {
				d1 = total
			}
			if d1-d0 > 1e-4 && d1-d0 >= d.CullWidth {
				out = append(out, d.emitDash(m, d0, d1)...)
			}
		}
		pos += length
	}
	return out
}

// emitDash converts one arc-length slice into output contours.
func (d *DashAlongPath) emitDash(m *geom.Measure, d0, d1 float32) []Contour {
	piece := m.Slice(d0, d1)
	if piece.IsEmpty() {
		return nil
	}
	if d.StrokeWidth <= 0 {
		return []Contour{contourFromSpline(piece)}
	}

	half := sweep.Widths{Left: d.StrokeWidth / 2, Right: d.StrokeWidth / 2}
	segs := make([]sweep.Segment, len(piece.Segs))
	for i, cubic := range piece.Segs {
		segs[i] = sweep.Segment{Cubic: cubic, Begin: half, End: half}
	}
	rings := sweep.Expand(segs, sweep.Options{
		StartCap:   sweepCap(d.Cap),
		EndCap:     sweepCap(d.Cap),
		Join:       sweepJoin(d.Join),
		MiterLimit: 4,
	})

	out := make([]Contour, 0, len(rings))
	for _, ring := range rings {
		out = append(out, ringContour(ring))
	}
	return out
}

// Sub implements Operation. Dash parameters carry no per-point state,
// so a skeleton cut needs no remapping.
func (d *DashAlongPath) Sub(c *Contour, begin, end int) {}

// Append implements Operation. No per-point state to merge.
func (d *DashAlongPath) Append(appended *Contour) {}

// Insert implements Operation. No per-point state to grow.
func (d *DashAlongPath) Insert(c *Contour, idx int) {}

// Clone implements Operation.
func (d *DashAlongPath) Clone() Operation {
	out := *d
	out.Desc = make([]float32, len(d.Desc))
	copy(out.Desc, d.Desc)
	return &out
}
