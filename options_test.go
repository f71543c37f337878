package glifedit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariocaiti/glifedit/settings"
)

func TestDefaultClipboard(t *testing.T) {
	ed := editFixture()
	require.NoError(t, ed.SelectContour(0))
	require.NoError(t, ed.CopySelection())
	require.NoError(t, ed.PasteClipboard(), "editors carry a working in-memory clipboard by default")
}

func TestWithClipboard(t *testing.T) {
	shared := &MemClipboard{}
	ed := NewEditor(WithClipboard(shared))
	_, err := ed.StartContour(0, 0)
	require.NoError(t, err)
	require.NoError(t, ed.AppendPoint(0, 10, 0, TypeLine))
	require.NoError(t, ed.SelectContour(0))
	require.NoError(t, ed.CopySelection())

	text, err := shared.GetText()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, ClipboardMIME), "copies land on the provided clipboard")

	other := NewEditor(WithClipboard(shared))
	other.SetGlyph(NewGlyph("receiver"))
	require.NoError(t, other.PasteClipboard())
	require.Len(t, other.Outline(), 1, "a shared clipboard moves contours between editors")
}

func TestWithClipboardNil(t *testing.T) {
	ed := NewEditor(WithClipboard(nil))
	_, err := ed.StartContour(0, 0)
	require.NoError(t, err)
	require.NoError(t, ed.SelectContour(0))

	assert.ErrorIs(t, ed.CopySelection(), ErrNoClipboard)
	assert.ErrorIs(t, ed.PasteClipboard(), ErrNoClipboard)
}

func TestWithPrettyClipboard(t *testing.T) {
	cb := &MemClipboard{}
	ed := editFixture(WithPrettyClipboard(true), WithClipboard(cb))
	require.NoError(t, ed.SelectContour(0))
	require.NoError(t, ed.CopySelection())

	text, err := cb.GetText()
	require.NoError(t, err)
	assert.Contains(t, text, "\n  ", "pretty mode indents the payload")
}

func TestWithSettings(t *testing.T) {
	s := settings.Default()
	s.UndoDepth = 1
	s.PrettyClipboard = true

	cb := &MemClipboard{}
	ed := NewEditor(WithSettings(s), WithClipboard(cb))
	_, err := ed.StartContour(0, 0)
	require.NoError(t, err)
	require.NoError(t, ed.AppendPoint(0, 10, 0, TypeLine))

	require.NoError(t, ed.Undo())
	assert.ErrorIs(t, ed.Undo(), ErrNothingToUndo, "the configured depth caps the undo stack")

	require.NoError(t, ed.SelectContour(0))
	require.NoError(t, ed.CopySelection())
	text, err := cb.GetText()
	require.NoError(t, err)
	assert.Contains(t, text, "\n  ", "settings carry the clipboard format")
}

func TestWithSettingsZeroDepthKeepsDefault(t *testing.T) {
	s := settings.Default()
	s.UndoDepth = 0

	ed := NewEditor(WithSettings(s))
	for i := 0; i < 10; i++ {
		ed.SetWidth(float32(i))
	}
	for i := 0; i < 10; i++ {
		require.NoError(t, ed.Undo(), "edit %d stays undoable", i)
	}
}

func TestWithRecorder(t *testing.T) {
	rec := &spyRecorder{}
	ed := NewEditor(WithRecorder(rec))
	_, err := ed.StartContour(0, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, ed.Undo(), ErrNothingToUndo, "an external recorder replaces the built-in history")
	assert.Equal(t, []string{"start contour"}, rec.begins)
}

func TestWithUndoDepth(t *testing.T) {
	ed := NewEditor(WithUndoDepth(2))
	for i := 0; i < 5; i++ {
		ed.SetWidth(float32(i + 1))
	}
	require.NoError(t, ed.Undo())
	require.NoError(t, ed.Undo())
	assert.ErrorIs(t, ed.Undo(), ErrNothingToUndo)
	assert.Equal(t, float32(3), ed.Width(), "older snapshots were evicted")
}
