// Package fontimport turns glyphs of compiled OpenType fonts into
// editable skeletons.
//
// Outlines come back in font units with y up, quadratic segments
// raised to cubics so every curve edits with two handles. Imported
// contours land on the glyph's foreground layer with no operations
// attached.
package fontimport

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/runenames"

	"github.com/mariocaiti/glifedit"
	"github.com/mariocaiti/glifedit/geom"
)

// ErrMissingGlyph is returned when the font maps a rune to no glyph.
var ErrMissingGlyph = errors.New("fontimport: glyph not in font")

// Parse parses an OpenType font (.ttf or .otf data).
func Parse(data []byte) (*sfnt.Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontimport: parsing font: %w", err)
	}
	return f, nil
}

// Importer extracts glyphs from parsed fonts. It reuses one sfnt
// buffer across extractions, so an Importer must not be shared between
// goroutines.
type Importer struct {
	buf sfnt.Buffer
}

// NewImporter returns an importer with a fresh buffer.
func NewImporter() *Importer {
	return &Importer{}
}

// Glyph extracts the glyph a font maps r to. The result carries the
// glyph's name, advance width, and its outline as closed skeleton
// contours on the foreground layer. Runes without a glyph return
// ErrMissingGlyph.
func (im *Importer) Glyph(f *sfnt.Font, r rune) (*glifedit.Glyph, error) {
	gi, err := f.GlyphIndex(&im.buf, r)
	if err != nil {
		return nil, fmt.Errorf("fontimport: glyph index for %q: %w", r, err)
	}
	if gi == 0 {
		return nil, fmt.Errorf("fontimport: %q: %w", r, ErrMissingGlyph)
	}

	// Loading at ppem == unitsPerEm keeps coordinates in font units.
	ppem := fixed.I(int(f.UnitsPerEm()))
	segments, err := f.LoadGlyph(&im.buf, gi, ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("fontimport: loading glyph for %q: %w", r, err)
	}
	outline := contoursFromSegments(segments)

	advance, err := f.GlyphAdvance(&im.buf, gi, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("fontimport: advance for %q: %w", r, err)
	}

	g := glifedit.NewGlyph(im.glyphName(f, gi, r))
	g.Unicode = []rune{r}
	g.Width = float32(advance) / 64
	g.Layers[0].Outline = outline
	return &g, nil
}

// Glyph extracts a single glyph with a throwaway importer. Use an
// Importer when extracting many glyphs from the same font.
func Glyph(f *sfnt.Font, r rune) (*glifedit.Glyph, error) {
	return NewImporter().Glyph(f, r)
}

// glyphName prefers the font's own glyph name and falls back to the
// Unicode character name for fonts without a name table entry.
func (im *Importer) glyphName(f *sfnt.Font, gi sfnt.GlyphIndex, r rune) string {
	if name, err := f.GlyphName(&im.buf, gi); err == nil && name != "" {
		return name
	}
	return runenames.Name(r)
}

// contoursFromSegments assembles loaded path segments into skeleton
// contours. Font coordinates are y down; skeletons keep y up.
func contoursFromSegments(segments sfnt.Segments) []glifedit.Contour {
	outline := []glifedit.Contour{}
	var run []glifedit.Point

	flush := func() {
		if c, ok := closeRun(run); ok {
			outline = append(outline, c)
		}
		run = nil
	}

	for _, seg := range segments {
		if seg.Op != sfnt.SegmentOpMoveTo && len(run) == 0 {
			continue
		}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			flush()
			to := segPos(seg.Args[0])
			run = append(run, glifedit.NewPoint(to.X, to.Y, glifedit.TypeLine))

		case sfnt.SegmentOpLineTo:
			to := segPos(seg.Args[0])
			run = append(run, glifedit.NewPoint(to.X, to.Y, glifedit.TypeLine))

		case sfnt.SegmentOpQuadTo:
			// Exact degree elevation: the quadratic control point
			// becomes two cubic handles at the third points.
			q := segPos(seg.Args[0])
			to := segPos(seg.Args[1])
			prev := run[len(run)-1].Pos()
			c1 := prev.Lerp(q, 2.0/3.0)
			c2 := to.Lerp(q, 2.0/3.0)
			run[len(run)-1].A = glifedit.HandleAt(c1.X, c1.Y)
			p := glifedit.NewPoint(to.X, to.Y, glifedit.TypeCurve)
			p.B = glifedit.HandleAt(c2.X, c2.Y)
			run = append(run, p)

		case sfnt.SegmentOpCubeTo:
			c1 := segPos(seg.Args[0])
			c2 := segPos(seg.Args[1])
			to := segPos(seg.Args[2])
			run[len(run)-1].A = glifedit.HandleAt(c1.X, c1.Y)
			p := glifedit.NewPoint(to.X, to.Y, glifedit.TypeCurve)
			p.B = glifedit.HandleAt(c2.X, c2.Y)
			run = append(run, p)
		}
	}
	flush()
	return outline
}

// closeRun finishes one contour. Loaded contours return to their start
// point; folding that trailing point into the head turns the run into
// a closed skeleton whose head carries the wrap-around segment.
func closeRun(run []glifedit.Point) (glifedit.Contour, bool) {
	if len(run) < 2 {
		return glifedit.Contour{}, false
	}
	last := run[len(run)-1]
	if samePos(run[0], last) {
		run[0].Type = last.Type
		run[0].B = last.B
		run = run[:len(run)-1]
	}
	if len(run) < 2 {
		return glifedit.Contour{}, false
	}
	return glifedit.Contour{Points: run}, true
}

// samePos reports whether two points coincide. Loaded coordinates are
// 1/64 unit multiples, so a loose epsilon is safe.
func samePos(a, b glifedit.Point) bool {
	const eps = 1e-3
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx < eps && dx > -eps && dy < eps && dy > -eps
}

// segPos converts a loaded 26.6 coordinate into font units, flipping y
// so ascenders are positive.
func segPos(p fixed.Point26_6) geom.Point {
	return geom.Pt(float32(p.X)/64, -float32(p.Y)/64)
}
