// Package glifedit provides a glyph outline editor core for Go.
//
// # Overview
//
// glifedit models the editable form of a font glyph: layers of
// skeleton contours with optional per-contour operations such as
// variable width strokes, patterns repeated along a path, and dashes.
// The package separates the skeleton a user edits from the outline a
// renderer fills; the outline is derived from the skeleton on demand
// and cached by revision.
//
// # Quick Start
//
//	import "github.com/mariocaiti/glifedit"
//
//	ed := glifedit.NewEditor()
//	ref, _ := ed.StartContour(100, 100)
//	ed.AppendPoint(ref.Contour, 400, 100, glifedit.TypeLine)
//	ed.AppendPoint(ref.Contour, 400, 400, glifedit.TypeLine)
//
//	// Derive the fillable outline of the active layer.
//	outline := ed.Outline()
//
// # Architecture
//
// The module is organized into:
//   - Public API: Editor, Glyph, Layer, Contour, Point, Operation
//   - geom: float32 points, cubics, affine transforms, arc-length measure
//   - render: CPU rasterization of derived outlines into alpha masks
//   - fontimport: extraction of editable skeletons from OpenType fonts
//   - settings: TOML-backed preferences and the snapping grid
//
// # Coordinate System
//
// Glyphs use font-unit coordinates:
//   - Origin (0,0) at the baseline's left end
//   - X increases right
//   - Y increases up
//   - Angles in radians, 0 is right, increases counter-clockwise
//
// The render package flips y when mapping onto images.
//
// # Concurrency
//
// An Editor is not safe for concurrent use. Hosts drive it from their
// input handling and read derived outlines from the same goroutine.
package glifedit

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
