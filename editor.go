package glifedit

import (
	"errors"
	"log/slog"

	"github.com/mariocaiti/glifedit/geom"
	"github.com/mariocaiti/glifedit/internal/lru"
)

var (
	// ErrNoLayer is returned when an operation needs a layer the glyph
	// does not have.
	ErrNoLayer = errors.New("glifedit: no such layer")
	// ErrNoPoint is returned when a (contour, point) pair does not
	// address a point of the active layer.
	ErrNoPoint = errors.New("glifedit: no such point")
)

// buildCacheSize bounds the derived-outline cache. Edits bump the
// revision, so old entries age out on their own.
const buildCacheSize = 8

// buildKey addresses one layer's derived outline at one revision.
type buildKey struct {
	layer    int
	revision uint64
}

// Editor owns one glyph under edit: its layers, the selection, the
// history, the derived-outline cache, and the clipboard handle.
//
// The editor is synchronous. Methods are invoked serially from the
// host's input handling; each mutating method runs to completion and
// brackets itself with the history recorder.
type Editor struct {
	glyph  Glyph
	active int

	selection Selection

	clipboard Clipboard
	recorder  Recorder
	hist      *history

	pretty bool

	revision uint64
	builds   *lru.Cache[buildKey, []Contour]
}

// NewEditor creates an editor holding an empty glyph with one
// foreground layer.
func NewEditor(opts ...EditorOption) *Editor {
	o := defaultEditorOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Editor{
		glyph:  NewGlyph("untitled"),
		pretty: o.pretty,
		builds: lru.New[buildKey, []Contour](buildCacheSize),
	}
	if o.hasClipboard {
		e.clipboard = o.clipboard
	} else {
		e.clipboard = &MemClipboard{}
	}
	if o.recorder != nil {
		e.recorder = o.recorder
	} else {
		e.hist = newHistory(e, o.undoDepth)
		e.recorder = e.hist
	}
	return e
}

// SetGlyph attaches a glyph to the editor, replacing the current one.
// Layers with a nil outline get an empty one so structural edits can
// assume a usable slice; a glyph without layers gets one default layer.
// The selection and undo history reset; the clipboard is untouched.
func (e *Editor) SetGlyph(g Glyph) {
	if len(g.Layers) == 0 {
		g.Layers = []Layer{NewLayer("foreground")}
	}
	for i := range g.Layers {
		if g.Layers[i].Outline == nil {
			g.Layers[i].Outline = []Contour{}
		}
	}

	e.glyph = g
	e.active = 0
	e.selection.Clear()
	if e.hist != nil {
		e.hist.undo = nil
		e.hist.redo = nil
		e.hist.open = false
	}
	e.touch()
	Logger().Debug("glyph attached",
		slog.String("name", g.Name),
		slog.Int("layers", len(g.Layers)))
}

// Glyph returns the glyph under edit. The pointer stays valid until
// the next SetGlyph; treat it as read-only and mutate through editor
// operations.
func (e *Editor) Glyph() *Glyph { return &e.glyph }

// Width returns the glyph's advance width.
func (e *Editor) Width() float32 { return e.glyph.Width }

// SetWidth changes the glyph's advance width.
func (e *Editor) SetWidth(w float32) {
	e.begin("set width")
	defer e.end()
	e.glyph.Width = w
}

// Revision counts completed modifications. It keys the build cache and
// lets hosts detect outline changes cheaply.
func (e *Editor) Revision() uint64 { return e.revision }

// ActiveLayerIndex returns the index of the layer edits apply to.
func (e *Editor) ActiveLayerIndex() int { return e.active }

// SetActiveLayer switches which layer edits apply to.
func (e *Editor) SetActiveLayer(i int) error {
	if i < 0 || i >= len(e.glyph.Layers) {
		return ErrNoLayer
	}
	e.active = i
	return nil
}

// ActiveLayer returns the layer edits apply to.
func (e *Editor) ActiveLayer() (*Layer, error) {
	return e.activeLayer()
}

func (e *Editor) activeLayer() (*Layer, error) {
	if e.active < 0 || e.active >= len(e.glyph.Layers) {
		return nil, ErrNoLayer
	}
	return &e.glyph.Layers[e.active], nil
}

// NewLayer appends a layer with an automatic color, makes it active,
// and returns its index.
func (e *Editor) NewLayer(name string) int {
	e.begin("new layer")
	defer e.end()

	e.glyph.Layers = append(e.glyph.Layers, NewLayer(name))
	e.active = len(e.glyph.Layers) - 1
	return e.active
}

// SetLayerVisible toggles a layer in and out of the built glyph
// outline.
func (e *Editor) SetLayerVisible(i int, visible bool) error {
	if i < 0 || i >= len(e.glyph.Layers) {
		return ErrNoLayer
	}
	e.begin("set layer visibility")
	defer e.end()
	e.glyph.Layers[i].Visible = visible
	return nil
}

// begin opens a history bracket around a mutating operation.
func (e *Editor) begin(label string) {
	e.recorder.BeginModification(label)
}

// end closes the bracket and advances the revision so cached outlines
// from before the edit can no longer be served.
func (e *Editor) end() {
	e.recorder.EndModification()
	e.touch()
}

func (e *Editor) touch() {
	e.revision++
}

// Outline returns the derived outline of the active layer, cached per
// revision. Callers must not modify the returned contours.
func (e *Editor) Outline() []Contour {
	l, err := e.activeLayer()
	if err != nil {
		return []Contour{}
	}
	key := buildKey{layer: e.active, revision: e.revision}
	return e.builds.GetOrCreate(key, func() []Contour {
		Logger().Debug("building layer outline",
			slog.Int("layer", e.active),
			slog.Uint64("revision", e.revision))
		return BuildLayer(l)
	})
}

// GlyphOutline returns the derived outline of every visible layer,
// cached per revision. Callers must not modify the returned contours.
func (e *Editor) GlyphOutline() []Contour {
	key := buildKey{layer: -1, revision: e.revision}
	return e.builds.GetOrCreate(key, func() []Contour {
		Logger().Debug("building glyph outline",
			slog.Uint64("revision", e.revision))
		return BuildGlyph(&e.glyph)
	})
}

// Undo restores the glyph to its state before the most recent edit and
// clears the selection. Editors with an external recorder have no
// built-in history; Undo then reports ErrNothingToUndo.
func (e *Editor) Undo() error {
	if e.hist == nil {
		return ErrNothingToUndo
	}
	if _, err := e.hist.Undo(); err != nil {
		return err
	}
	e.selection.Clear()
	e.touch()
	return nil
}

// Redo reapplies the most recently undone edit and clears the
// selection.
func (e *Editor) Redo() error {
	if e.hist == nil {
		return ErrNothingToRedo
	}
	if _, err := e.hist.Redo(); err != nil {
		return err
	}
	e.selection.Clear()
	e.touch()
	return nil
}

// checkPoint verifies that (ci, pi) addresses a point of the active
// layer.
func (e *Editor) checkPoint(ci, pi int) error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	if ci < 0 || ci >= len(l.Outline) || pi < 0 || pi >= l.Outline[ci].Len() {
		return ErrNoPoint
	}
	return nil
}

// SelectPoint adds a point to the selected set.
func (e *Editor) SelectPoint(ci, pi int) error {
	if err := e.checkPoint(ci, pi); err != nil {
		return err
	}
	e.selection.Add(PointRef{Contour: ci, Point: pi})
	return nil
}

// DeselectPoint removes a point from the selected set.
func (e *Editor) DeselectPoint(ci, pi int) {
	e.selection.Remove(PointRef{Contour: ci, Point: pi})
}

// SetLivePoint marks the point under active manipulation.
func (e *Editor) SetLivePoint(ci, pi int) error {
	if err := e.checkPoint(ci, pi); err != nil {
		return err
	}
	e.selection.SetLive(PointRef{Contour: ci, Point: pi})
	return nil
}

// ClearLivePoint drops the live point, keeping the selected set.
func (e *Editor) ClearLivePoint() {
	e.selection.ClearLive()
}

// LivePoint returns the point under active manipulation, if any.
func (e *Editor) LivePoint() (PointRef, bool) {
	return e.selection.Live()
}

// PointSelected reports whether the point is the live point or a
// member of the selected set.
func (e *Editor) PointSelected(ci, pi int) bool {
	return e.selection.PointSelected(PointRef{Contour: ci, Point: pi})
}

// SelectedPoint returns the primary selected point: the live point
// when present, else the lowest selected pair.
func (e *Editor) SelectedPoint() (PointRef, bool) {
	return e.selection.Selected()
}

// SelectedPoints returns the selected set in (contour, point) order.
func (e *Editor) SelectedPoints() []PointRef {
	return e.selection.All()
}

// SelectAll selects every point of the active layer and drops the live
// point.
func (e *Editor) SelectAll() {
	l, err := e.activeLayer()
	if err != nil {
		return
	}
	e.selection.Clear()
	for ci := range l.Outline {
		for pi := 0; pi < l.Outline[ci].Len(); pi++ {
			e.selection.Add(PointRef{Contour: ci, Point: pi})
		}
	}
}

// SelectContour adds every point of one contour to the selected set.
func (e *Editor) SelectContour(ci int) error {
	l, err := e.activeLayer()
	if err != nil {
		return err
	}
	if ci < 0 || ci >= len(l.Outline) {
		return ErrNoPoint
	}
	for pi := 0; pi < l.Outline[ci].Len(); pi++ {
		e.selection.Add(PointRef{Contour: ci, Point: pi})
	}
	return nil
}

// ClearSelection empties the selected set and drops the live point.
func (e *Editor) ClearSelection() {
	e.selection.Clear()
}

// SelectionBounds returns the bounding box over every selected point
// and its non-colocated handles.
func (e *Editor) SelectionBounds() (geom.Rect, bool) {
	l, err := e.activeLayer()
	if err != nil {
		return geom.Rect{}, false
	}
	return e.selection.Bounds(l)
}

// SelectionCenter returns the center of SelectionBounds, or the origin
// for an empty selection.
func (e *Editor) SelectionCenter() geom.Point {
	b, ok := e.SelectionBounds()
	if !ok {
		return geom.Point{}
	}
	return b.Center()
}
