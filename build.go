package glifedit

// BuildContour derives the renderable outline of one skeleton contour.
// Without an operation the skeleton passes through as a copy, every
// coordinate, handle, and type preserved. With one, the operation
// generates the outline. The result is always freshly allocated;
// callers may mutate it freely.
func BuildContour(c *Contour) []Contour {
	if c == nil || c.Len() == 0 {
		return []Contour{}
	}
	if c.Op == nil {
		out := c.Clone()
		out.Op = nil
		return []Contour{out}
	}
	derived := c.Op.Build(c)
	if derived == nil {
		return []Contour{}
	}
	return derived
}

// BuildLayer concatenates the derived outlines of every contour in the
// layer, in contour order. Derived outlines are recomputed on every
// call; they are never written back into the skeleton.
func BuildLayer(l *Layer) []Contour {
	if l == nil {
		return []Contour{}
	}
	out := []Contour{}
	for i := range l.Outline {
		out = append(out, BuildContour(&l.Outline[i])...)
	}
	return out
}

// BuildGlyph concatenates the derived outlines of every visible layer.
func BuildGlyph(g *Glyph) []Contour {
	if g == nil {
		return []Contour{}
	}
	out := []Contour{}
	for i := range g.Layers {
		if !g.Layers[i].Visible {
			continue
		}
		out = append(out, BuildLayer(&g.Layers[i])...)
	}
	return out
}
