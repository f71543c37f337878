package glifedit

import (
	"errors"
	"log/slog"
)

var (
	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("glifedit: nothing to undo")
	// ErrNothingToRedo is returned by Redo on an empty redo stack.
	ErrNothingToRedo = errors.New("glifedit: nothing to redo")
)

// Recorder observes edit transactions. Every mutating editor operation
// runs between exactly one BeginModification and EndModification pair;
// the label names the edit for history surfaces.
type Recorder interface {
	BeginModification(label string)
	EndModification()
}

// DefaultUndoDepth bounds the built-in history when no other depth is
// configured.
const DefaultUndoDepth = 64

// historyEntry is one undoable edit: the glyph as it was before the
// edit ran.
type historyEntry struct {
	label string
	glyph Glyph
}

// history is the built-in Recorder: a bounded snapshot stack over the
// editor's glyph.
type history struct {
	editor *Editor
	depth  int

	undo []historyEntry
	redo []historyEntry
	open bool
}

func newHistory(e *Editor, depth int) *history {
	if depth <= 0 {
		depth = DefaultUndoDepth
	}
	return &history{editor: e, depth: depth}
}

// BeginModification implements Recorder. The glyph is snapshotted
// before the edit mutates it; a new edit invalidates the redo stack.
func (h *history) BeginModification(label string) {
	if h.open {
		Logger().Warn("modification already open", slog.String("label", label))
		return
	}
	h.open = true
	h.redo = h.redo[:0]
	h.undo = append(h.undo, historyEntry{label: label, glyph: h.editor.glyph.Clone()})
	if len(h.undo) > h.depth {
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:len(h.undo)-1]
	}
	Logger().Debug("modification begun",
		slog.String("label", label),
		slog.Int("undo_depth", len(h.undo)))
}

// EndModification implements Recorder.
func (h *history) EndModification() {
	if !h.open {
		Logger().Warn("modification ended without begin")
		return
	}
	h.open = false
}

// Undo restores the glyph to its state before the most recent edit.
func (h *history) Undo() (string, error) {
	if len(h.undo) == 0 {
		return "", ErrNothingToUndo
	}
	entry := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, historyEntry{label: entry.label, glyph: h.editor.glyph})
	h.editor.glyph = entry.glyph
	Logger().Debug("undo", slog.String("label", entry.label))
	return entry.label, nil
}

// Redo reapplies the most recently undone edit.
func (h *history) Redo() (string, error) {
	if len(h.redo) == 0 {
		return "", ErrNothingToRedo
	}
	entry := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, historyEntry{label: entry.label, glyph: h.editor.glyph})
	h.editor.glyph = entry.glyph
	Logger().Debug("redo", slog.String("label", entry.label))
	return entry.label, nil
}
