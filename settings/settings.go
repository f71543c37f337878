// Package settings loads and saves editor preferences from a TOML
// file, including the snapping grid model.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"

	"github.com/mariocaiti/glifedit/geom"
)

// Settings are the persisted editor preferences. Zero fields are
// replaced with defaults on load.
type Settings struct {
	// UndoDepth bounds the built-in history stack.
	UndoDepth int `toml:"undo_depth"`
	// NudgeSmall and NudgeBig are the arrow-key move increments in
	// font units.
	NudgeSmall float32 `toml:"nudge_small"`
	NudgeBig   float32 `toml:"nudge_big"`
	// PrettyClipboard indents clipboard JSON payloads for
	// inspectability at the cost of size.
	PrettyClipboard bool `toml:"pretty_clipboard"`

	Grid Grid `toml:"grid"`
}

// Grid is the snapping grid: horizontal lines every Spacing units
// starting at Offset, and vertical lines slanted by Slope for italic
// masters.
type Grid struct {
	Show    bool    `toml:"show"`
	Spacing float32 `toml:"spacing"`
	Offset  float32 `toml:"offset"`
	// Slope is the horizontal shift per unit of height (tan of the
	// italic angle); 0 means an upright grid.
	Slope float32 `toml:"slope"`
}

// Default returns the settings used when no file exists.
func Default() Settings {
	return Settings{
		UndoDepth:  64,
		NudgeSmall: 1,
		NudgeBig:   10,
		Grid: Grid{
			Spacing: 30,
		},
	}
}

// Normalize clamps the grid into canonical form: a positive spacing
// and an offset wrapped into [0, spacing).
func (g Grid) Normalize() Grid {
	if g.Spacing <= 0 {
		g.Spacing = Default().Grid.Spacing
	}
	g.Offset = math32.Mod(g.Offset, g.Spacing)
	if g.Offset < 0 {
		g.Offset += g.Spacing
	}
	return g
}

// Snap returns the grid intersection nearest to p. Vertical grid lines
// follow the slope, so the x snap depends on height.
func (g Grid) Snap(p geom.Point) geom.Point {
	g = g.Normalize()
	snap := func(v float32) float32 {
		return math32.Round((v-g.Offset)/g.Spacing)*g.Spacing + g.Offset
	}
	shear := p.Y * g.Slope
	return geom.Pt(snap(p.X-shear)+shear, snap(p.Y))
}

// normalize fills unset fields with defaults and canonicalizes the
// grid.
func (s Settings) normalize() Settings {
	def := Default()
	if s.UndoDepth <= 0 {
		s.UndoDepth = def.UndoDepth
	}
	if s.NudgeSmall <= 0 {
		s.NudgeSmall = def.NudgeSmall
	}
	if s.NudgeBig <= 0 {
		s.NudgeBig = def.NudgeBig
	}
	s.Grid = s.Grid.Normalize()
	return s
}

// Load reads settings from path. A missing file yields the defaults
// without error; a malformed file returns an error with the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("settings: reading %s: %w", path, err)
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("settings: parsing %s: %w", path, err)
	}
	return s.normalize(), nil
}

// Save writes settings to path as TOML.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s.normalize())
	if err != nil {
		return fmt.Errorf("settings: encoding: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: writing %s: %w", path, err)
	}
	return nil
}
