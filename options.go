package glifedit

import (
	"github.com/mariocaiti/glifedit/settings"
)

// EditorOption configures an Editor during creation.
// Use functional options to customize Editor behavior.
//
// Example:
//
//	// Default in-process clipboard and built-in history
//	ed := glifedit.NewEditor()
//
//	// System clipboard handle (dependency injection)
//	ed := glifedit.NewEditor(glifedit.WithClipboard(sysClipboard))
type EditorOption func(*editorOptions)

// editorOptions holds optional configuration for Editor creation.
type editorOptions struct {
	clipboard    Clipboard
	hasClipboard bool
	recorder     Recorder
	undoDepth    int
	pretty       bool
}

// defaultEditorOptions returns the default editor options.
func defaultEditorOptions() editorOptions {
	return editorOptions{
		undoDepth: DefaultUndoDepth,
	}
}

// WithClipboard sets the clipboard handle the editor copies to and
// pastes from. Passing nil marks the clipboard unavailable: copy and
// paste become logged no-ops returning ErrNoClipboard.
//
// Example:
//
//	ed := glifedit.NewEditor(glifedit.WithClipboard(platformClipboard))
func WithClipboard(c Clipboard) EditorOption {
	return func(o *editorOptions) {
		o.clipboard = c
		o.hasClipboard = true
	}
}

// WithRecorder sets an external history recorder. The editor brackets
// every mutating operation with it and disables the built-in undo/redo
// stacks.
//
// Example:
//
//	ed := glifedit.NewEditor(glifedit.WithRecorder(appHistory))
func WithRecorder(r Recorder) EditorOption {
	return func(o *editorOptions) {
		o.recorder = r
	}
}

// WithPrettyClipboard controls whether copied layers are serialized
// with indentation. Indented payloads are easier to inspect when
// debugging interchange with other tools.
func WithPrettyClipboard(pretty bool) EditorOption {
	return func(o *editorOptions) {
		o.pretty = pretty
	}
}

// WithUndoDepth bounds the built-in history stack. Depths below one
// are ignored.
func WithUndoDepth(n int) EditorOption {
	return func(o *editorOptions) {
		if n > 0 {
			o.undoDepth = n
		}
	}
}

// WithSettings adopts the loaded preferences that concern the editor:
// undo depth and clipboard pretty-printing.
//
// Example:
//
//	prefs, _ := settings.Load(path)
//	ed := glifedit.NewEditor(glifedit.WithSettings(prefs))
func WithSettings(s settings.Settings) EditorOption {
	return func(o *editorOptions) {
		if s.UndoDepth > 0 {
			o.undoDepth = s.UndoDepth
		}
		o.pretty = s.PrettyClipboard
	}
}
