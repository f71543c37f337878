package glifedit

import (
	"fmt"
	"log/slog"

	"github.com/mariocaiti/glifedit/geom"
)

// partitionContour splits one contour by a keep predicate and returns
// the surviving fragments. Copy keeps the selected points, delete the
// unselected ones; both share this walk.
//
// Each fragment carries a deep copy of the contour's operation,
// notified via Sub with the half-open point range the fragment kept.
// When a closed contour was split, the fragment ending at the last
// point and the fragment starting at the first point are one run
// across the wrap; they merge, with a single Append notification.
// Fragments of a cut contour are open: their first points are retyped
// Move. A contour that survives whole is returned unchanged.
func partitionContour(c *Contour, keep func(pi int) bool) []Contour {
	n := c.Len()
	if n == 0 {
		return nil
	}

	var frags []Contour
	var run []Point
	begin := 0
	dropped := false

	closeRun := func(end int) {
		if len(run) == 0 {
			return
		}
		frag := Contour{Points: run}
		if c.Op != nil {
			op := c.Op.Clone()
			op.Sub(c, begin, end)
			frag.Op = op
		}
		frags = append(frags, frag)
		run = nil
	}

	for pi := 0; pi < n; pi++ {
		if keep(pi) {
			run = append(run, c.Points[pi])
			continue
		}
		closeRun(pi)
		dropped = true
		begin = pi + 1
	}
	closeRun(n)

	if len(frags) > 1 && c.IsClosed() {
		last := &frags[len(frags)-1]
		first := frags[0]
		last.Points = append(last.Points, first.Points...)
		if last.Op != nil {
			last.Op.Append(&first)
		}
		frags[0] = *last
		frags = frags[:len(frags)-1]
	}

	if dropped {
		for i := range frags {
			frags[i].Points[0].Type = TypeMove
		}
	}
	return frags
}

// CopySelection serializes the selected points to the clipboard as a
// layer: the selected runs of every contour, partitioned exactly like
// delete, plus the active layer's images. Neither the glyph nor the
// selection changes.
func (e *Editor) CopySelection() error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	if e.clipboard == nil {
		Logger().Debug("copy without a clipboard")
		return ErrNoClipboard
	}

	var frags []Contour
	for ci := range l.Outline {
		keep := func(pi int) bool {
			return e.selection.PointSelected(PointRef{Contour: ci, Point: pi})
		}
		frags = append(frags, partitionContour(&l.Outline[ci], keep)...)
	}
	if frags == nil {
		frags = []Contour{}
	}

	payload := Layer{
		Name:    "",
		Visible: true,
		Outline: frags,
		Images:  append([]Image(nil), l.Images...),
	}
	text, err := encodeClipboard(&payload, e.pretty)
	if err != nil {
		return err
	}
	if err := e.clipboard.SetText(text); err != nil {
		return fmt.Errorf("glifedit: writing clipboard: %w", err)
	}
	Logger().Debug("copied selection", slog.Int("contours", len(frags)))
	return nil
}

// DeleteSelection removes every selected point from the active layer,
// splitting contours around the removed runs. The selection is cleared
// afterwards.
func (e *Editor) DeleteSelection() error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	if e.selection.IsEmpty() {
		return nil
	}

	e.begin("delete selection")
	defer e.end()

	out := make([]Contour, 0, len(l.Outline))
	for ci := range l.Outline {
		keep := func(pi int) bool {
			return !e.selection.PointSelected(PointRef{Contour: ci, Point: pi})
		}
		out = append(out, partitionContour(&l.Outline[ci], keep)...)
	}
	l.Outline = out
	e.selection.Clear()
	return nil
}

// PasteClipboard appends the clipboard contours to the active layer at
// their copied position.
func (e *Editor) PasteClipboard() error {
	return e.paste(nil)
}

// PasteClipboardAt recenters the clipboard contours on target before
// appending them: every point and non-colocated handle moves by the
// delta between target and the center of the pasted outline's bounds.
func (e *Editor) PasteClipboardAt(target geom.Point) error {
	return e.paste(&target)
}

// paste reads and validates the clipboard, then appends the pasted
// contours and selects their points. Foreign or malformed clipboard
// content is not an error: it logs and leaves all state untouched.
func (e *Editor) paste(target *geom.Point) error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	if e.clipboard == nil {
		Logger().Debug("paste without a clipboard")
		return ErrNoClipboard
	}
	text, err := e.clipboard.GetText()
	if err != nil {
		Logger().Debug("clipboard read failed", slog.String("error", err.Error()))
		return nil
	}
	pasted, err := decodeClipboard(text)
	if err != nil {
		Logger().Debug("rejecting clipboard payload", slog.String("reason", err.Error()))
		return nil
	}
	if len(pasted.Outline) == 0 {
		Logger().Debug("clipboard layer has no contours")
		return nil
	}

	e.begin("paste")
	defer e.end()

	e.selection.ClearLive()
	if target != nil {
		if b, ok := outlineBounds(pasted.Outline); ok {
			delta := target.Sub(b.Center())
			for i := range pasted.Outline {
				pasted.Outline[i].Translate(delta.X, delta.Y)
			}
		}
	}

	base := len(l.Outline)
	for i := range pasted.Outline {
		l.Outline = append(l.Outline, pasted.Outline[i])
		for pi := 0; pi < pasted.Outline[i].Len(); pi++ {
			e.selection.Add(PointRef{Contour: base + i, Point: pi})
		}
	}
	Logger().Debug("pasted contours",
		slog.Int("count", len(pasted.Outline)),
		slog.Int("at", base))
	return nil
}

// SimplifySelection deletes the live point when it is the whole
// selection, splitting its contour around it. Any other selection is
// just cleared.
func (e *Editor) SimplifySelection() error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	live, ok := e.selection.Live()
	if !ok || e.selection.Len() > 0 ||
		live.Contour < 0 || live.Contour >= len(l.Outline) ||
		live.Point < 0 || live.Point >= l.Outline[live.Contour].Len() {
		e.selection.Clear()
		return nil
	}

	e.begin("simplify selection")
	defer e.end()

	frags := partitionContour(&l.Outline[live.Contour], func(pi int) bool {
		return pi != live.Point
	})
	l.Outline = append(l.Outline[:live.Contour], append(frags, l.Outline[live.Contour+1:]...)...)
	e.selection.Clear()
	return nil
}

// ReverseContours reverses the direction of the selected contours: the
// live point's contour when one is set, otherwise every contour with a
// selected point. The live point follows its contour when the contour
// is closed (the first point stays first); on an open contour it is
// dropped. Set members are cleared.
func (e *Editor) ReverseContours() error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}

	var targets []int
	live, hasLive := e.selection.Live()
	if hasLive {
		if live.Contour >= 0 && live.Contour < len(l.Outline) {
			targets = []int{live.Contour}
		}
	} else {
		for _, ci := range e.selection.Contours() {
			if ci >= 0 && ci < len(l.Outline) {
				targets = append(targets, ci)
			}
		}
	}
	if len(targets) == 0 {
		return nil
	}

	e.begin("reverse contours")
	defer e.end()

	for _, ci := range targets {
		l.Outline[ci].Reverse()
	}
	e.selection.ClearSet()

	if hasLive {
		c := &l.Outline[live.Contour]
		switch {
		case !c.IsClosed():
			e.selection.ClearLive()
		case live.Point <= 0 || live.Point >= c.Len():
			e.selection.SetLive(PointRef{Contour: live.Contour, Point: 0})
		default:
			e.selection.SetLive(PointRef{Contour: live.Contour, Point: c.Len() - live.Point})
		}
	}
	return nil
}

// selectedRefs returns the set members plus the live point, deduped,
// in (contour, point) order.
func (e *Editor) selectedRefs() []PointRef {
	refs := e.selection.All()
	if live, ok := e.selection.Live(); ok && !e.selection.Contains(live) {
		refs = append(refs, live)
		for i := len(refs) - 1; i > 0 && refLess(refs[i], refs[i-1]); i-- {
			refs[i], refs[i-1] = refs[i-1], refs[i]
		}
	}
	return refs
}

// NudgeSelection translates every selected point, handles included, by
// (dx, dy).
func (e *Editor) NudgeSelection(dx, dy float32) error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	refs := e.selectedRefs()
	if len(refs) == 0 {
		return nil
	}

	e.begin("nudge selection")
	defer e.end()

	for _, ref := range refs {
		if ref.Contour < 0 || ref.Contour >= len(l.Outline) {
			continue
		}
		c := &l.Outline[ref.Contour]
		if ref.Point < 0 || ref.Point >= c.Len() {
			continue
		}
		c.Points[ref.Point] = c.Points[ref.Point].Translate(dx, dy)
	}
	return nil
}

// RotateSelection rotates the selected points about the selection
// bounds center.
func (e *Editor) RotateSelection(angle float32) error {
	return e.RotateSelectionAbout(angle, e.SelectionCenter())
}

// RotateSelectionAbout rotates the selected points, handles included,
// about the pivot.
func (e *Editor) RotateSelectionAbout(angle float32, pivot geom.Point) error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	refs := e.selectedRefs()
	if len(refs) == 0 {
		return nil
	}

	e.begin("rotate selection")
	defer e.end()

	m := geom.RotateAbout(angle, pivot)
	for _, ref := range refs {
		if ref.Contour < 0 || ref.Contour >= len(l.Outline) {
			continue
		}
		c := &l.Outline[ref.Contour]
		if ref.Point < 0 || ref.Point >= c.Len() {
			continue
		}
		c.Points[ref.Point] = c.Points[ref.Point].Transform(m)
	}
	return nil
}

// StartContour begins a new open contour at (x, y) on the active layer
// and makes its Move point live.
func (e *Editor) StartContour(x, y float32) (PointRef, error) {
	l, err := e.activeLayer()
	if err != nil {
		return PointRef{}, err
	}

	e.begin("start contour")
	defer e.end()

	l.Outline = append(l.Outline, NewContour(NewPoint(x, y, TypeMove)))
	ref := PointRef{Contour: len(l.Outline) - 1, Point: 0}
	e.selection.SetLive(ref)
	return ref, nil
}

// AppendPoint adds a point to the end of a contour and notifies its
// operation.
func (e *Editor) AppendPoint(ci int, x, y float32, typ PointType) error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	if ci < 0 || ci >= len(l.Outline) {
		return ErrNoPoint
	}
	return e.insertPoint(&l.Outline[ci], l.Outline[ci].Len(), x, y, typ, "append point")
}

// PrependPoint adds a point before a contour's first point. On an open
// contour the new point becomes the Move head and the old head takes
// typ as its incoming segment type.
func (e *Editor) PrependPoint(ci int, x, y float32, typ PointType) error {
	return e.InsertPoint(ci, 0, x, y, typ)
}

// InsertPoint adds a point at index idx of a contour, shifting later
// points, and notifies the contour's operation so position-indexed
// parameters grow with the skeleton.
func (e *Editor) InsertPoint(ci, idx int, x, y float32, typ PointType) error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	if ci < 0 || ci >= len(l.Outline) {
		return ErrNoPoint
	}
	if idx < 0 || idx > l.Outline[ci].Len() {
		return ErrNoPoint
	}
	return e.insertPoint(&l.Outline[ci], idx, x, y, typ, "insert point")
}

func (e *Editor) insertPoint(c *Contour, idx int, x, y float32, typ PointType, label string) error {
	e.begin(label)
	defer e.end()

	p := NewPoint(x, y, typ)
	if idx == 0 && c.IsOpen() && c.Len() > 0 {
		// The new point heads the open contour; the old head becomes an
		// interior point reached by a segment of the requested type.
		p.Type = TypeMove
		c.Points[0].Type = typ
	}

	c.Points = append(c.Points, Point{})
	copy(c.Points[idx+1:], c.Points[idx:])
	c.Points[idx] = p
	if c.Op != nil {
		c.Op.Insert(c, idx)
	}
	return nil
}

// SetContourOperation attaches op to a contour, replacing any previous
// operation. A nil op detaches it, leaving a plain skeleton contour.
func (e *Editor) SetContourOperation(ci int, op Operation) error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	if ci < 0 || ci >= len(l.Outline) {
		return ErrNoPoint
	}

	e.begin("set contour operation")
	defer e.end()

	l.Outline[ci].Op = op
	return nil
}

// MovePoint places a point at (x, y), moving its handles with it.
func (e *Editor) MovePoint(ci, pi int, x, y float32) error {
	if err := e.checkPoint(ci, pi); err != nil {
		return err
	}
	l, _ := e.activeLayer()

	e.begin("move point")
	defer e.end()

	p := l.Outline[ci].Points[pi]
	l.Outline[ci].Points[pi] = p.Translate(x-p.X, y-p.Y)
	return nil
}
