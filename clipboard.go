package glifedit

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ClipboardMIME tags clipboard payloads written by this package. The
// full frame is the tag, one tab character, then the JSON-serialized
// layer.
const ClipboardMIME = "text/vnd.mfek.glifjson"

// ErrNoClipboard is returned by editors constructed without a working
// clipboard when a clipboard edit is requested.
var ErrNoClipboard = errors.New("glifedit: no clipboard available")

// Clipboard is the system clipboard surface this package depends on.
// Either method may fail when the platform clipboard is unavailable;
// failures abort the edit without modifying editor state.
type Clipboard interface {
	GetText() (string, error)
	SetText(text string) error
}

// MemClipboard is an in-process Clipboard. It backs editors that are
// not attached to a system clipboard, and tests.
type MemClipboard struct {
	text string
}

// GetText implements Clipboard.
func (m *MemClipboard) GetText() (string, error) { return m.text, nil }

// SetText implements Clipboard.
func (m *MemClipboard) SetText(text string) error {
	m.text = text
	return nil
}

// encodeClipboard frames a layer for the clipboard. Pretty payloads
// are indented for inspectability.
func encodeClipboard(l *Layer, pretty bool) (string, error) {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(l, "", "  ")
	} else {
		data, err = json.Marshal(l)
	}
	if err != nil {
		return "", fmt.Errorf("glifedit: encoding clipboard layer: %w", err)
	}
	return ClipboardMIME + "\t" + string(data), nil
}

// decodeClipboard parses a clipboard string back into a layer. Any
// framing or payload problem returns an error describing why the text
// is not ours; callers treat every error as "abort silently".
func decodeClipboard(text string) (*Layer, error) {
	tab := strings.IndexByte(text, '\t')
	if tab < 0 {
		return nil, errors.New("missing tab framing")
	}
	if text[:tab] != ClipboardMIME {
		return nil, fmt.Errorf("foreign mimetype %q", text[:tab])
	}
	payload := text[tab+1:]
	if !gjson.Valid(payload) {
		return nil, errors.New("payload is not valid JSON")
	}

	var l Layer
	if err := json.Unmarshal([]byte(payload), &l); err != nil {
		return nil, fmt.Errorf("payload does not decode as a layer: %w", err)
	}
	return &l, nil
}
