package render

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/mariocaiti/glifedit"
	"github.com/mariocaiti/glifedit/geom"
)

// Bounds returns the control-point bounding box of an outline. The
// second return is false when the outline has no points.
func Bounds(outline []glifedit.Contour) (geom.Rect, bool) {
	var bounds geom.Rect
	found := false
	for i := range outline {
		b, ok := outline[i].Bounds()
		if !ok {
			continue
		}
		if !found {
			bounds = b
			found = true
		} else {
			bounds = bounds.Union(b)
		}
	}
	return bounds, found
}

// Fit returns the transform that maps the outline's bounding box onto
// a width-by-height image, centered, leaving margin pixels on each
// side. Font units have y up while images have y down, so the
// transform flips y. An empty outline maps unscaled onto the image
// center.
func Fit(outline []glifedit.Contour, width, height int, margin float32) geom.Matrix {
	cx := float32(width) / 2
	cy := float32(height) / 2

	bounds, ok := Bounds(outline)
	if !ok {
		return geom.Translate(cx, cy).Multiply(geom.Scale(1, -1))
	}

	scale := float32(1)
	availW := float32(width) - 2*margin
	availH := float32(height) - 2*margin
	if availW > 0 && availH > 0 {
		bw, bh := bounds.Width(), bounds.Height()
		switch {
		case bw > 0 && bh > 0:
			scale = min(availW/bw, availH/bh)
		case bw > 0:
			scale = availW / bw
		case bh > 0:
			scale = availH / bh
		}
	}

	center := bounds.Center()
	return geom.Translate(cx, cy).
		Multiply(geom.Scale(scale, -scale)).
		Multiply(geom.Translate(-center.X, -center.Y))
}

// Mask scan-converts an outline into a width-by-height alpha mask.
// Every contour is filled as drawn, with m applied to points and
// handles; open contours close with an implicit chord. Overlaps and
// holes resolve under the non-zero winding rule.
func Mask(outline []glifedit.Contour, width, height int, m geom.Matrix) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return dst
	}

	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Src
	for i := range outline {
		rasterContour(z, &outline[i], m)
	}
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// rasterContour feeds one contour's segments to the rasterizer.
func rasterContour(z *vector.Rasterizer, c *glifedit.Contour, m geom.Matrix) {
	n := c.Len()
	if n < 2 {
		return
	}

	first := m.TransformPoint(c.Points[0].Pos())
	z.MoveTo(first.X, first.Y)

	segs := n - 1
	if c.IsClosed() {
		segs = n
	}
	for s := 0; s < segs; s++ {
		p := c.Points[s]
		q := c.Points[(s+1)%n]
		to := m.TransformPoint(q.Pos())
		if p.A.IsColocated() && q.B.IsColocated() {
			z.LineTo(to.X, to.Y)
			continue
		}
		c1 := m.TransformPoint(p.HandleA())
		c2 := m.TransformPoint(q.HandleB())
		z.CubeTo(c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y)
	}
	z.ClosePath()
}
